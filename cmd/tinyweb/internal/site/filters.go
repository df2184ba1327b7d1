package site

import (
	"crypto/subtle"

	"github.com/dmitrymomot/tinyweb"
)

// PoweredBy tags every response.
type PoweredBy struct{}

func (PoweredBy) Before(c tinyweb.Context) {
	c.SetHeader("X-Powered-By", "tinyweb")
}

type TokenArgs struct {
	Token string
}

// AdminOnly sends visitors without the admin token back to the home page.
type AdminOnly struct {
	token string
}

func (f AdminOnly) Before(c tinyweb.Context, a TokenArgs) tinyweb.Result {
	if f.token == "" || subtle.ConstantTimeCompare([]byte(a.Token), []byte(f.token)) != 1 {
		c.LogWarn("admin access denied")
		return tinyweb.Redirect("/")
	}
	return nil
}

// NoStore disables caching of responses produced by the handler.
type NoStore struct{}

func (NoStore) After(c tinyweb.Context) {
	c.SetHeader("Cache-Control", "no-store")
}
