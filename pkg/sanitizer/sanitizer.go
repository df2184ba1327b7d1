// Package sanitizer cleans untrusted request strings before they are bound to
// handler parameters.
//
// Policies are referenced by name from the `sanitize` struct tag understood by
// the binder:
//
//	type commentArgs struct {
//	    Author string `sanitize:"strict"` // all markup removed
//	    Body   string `sanitize:"html"`   // basic formatting kept
//	    Email  string `sanitize:"trim"`
//	}
package sanitizer

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Policy names accepted by Lookup.
const (
	PolicyStrict = "strict"
	PolicyHTML   = "html"
	PolicyTrim   = "trim"
)

var (
	strictPolicy *bluemonday.Policy
	htmlPolicy   *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		htmlPolicy = bluemonday.NewPolicy()
		htmlPolicy.AllowStandardURLs()
		htmlPolicy.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		htmlPolicy.AllowAttrs("href").OnElements("a")
		htmlPolicy.RequireNoFollowOnLinks(true)
	})
}

// Strict removes all markup and returns plain text.
func Strict(s string) string {
	initPolicies()
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// HTML keeps basic formatting tags and strips scripts, event handlers and
// javascript: URLs.
func HTML(s string) string {
	initPolicies()
	return htmlPolicy.Sanitize(s)
}

// Lookup returns the sanitizer registered under name.
func Lookup(name string) (func(string) string, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PolicyStrict:
		return Strict, true
	case PolicyHTML:
		return HTML, true
	case PolicyTrim:
		return strings.TrimSpace, true
	}
	return nil, false
}
