package site

import (
	"strconv"

	"github.com/dmitrymomot/tinyweb"
)

// Home renders the landing page.
type Home struct{}

func (Home) Get() tinyweb.Result { return tinyweb.HTML("index.html") }

// About renders a Markdown page inside the shared layout.
type About struct{}

func (About) Get() tinyweb.Result { return tinyweb.HTML("about.md") }

type GreetArgs struct {
	Name  string `default:"world" sanitize:"strict"`
	Shout bool
}

// Greeting says hello to the name given in the path, query or form.
type Greeting struct{}

func (Greeting) Get(a GreetArgs) tinyweb.Result {
	msg := "Hello, " + a.Name
	if a.Shout {
		return tinyweb.Text(msg + "!")
	}
	return tinyweb.Text(msg + ".")
}

func (g Greeting) Post(a GreetArgs) tinyweb.Result { return g.Get(a) }

// Legacy forwards an old URL to the greeting page.
type Legacy struct{}

func (Legacy) Get() tinyweb.Result {
	return tinyweb.RedirectTo[Greeting](tinyweb.Args{"name": "visitor"})
}

type SumArgs struct {
	Numbers []float64
}

type sumResponse struct {
	Numbers []float64 `json:"numbers"`
	Total   float64   `json:"total"`
}

// Sum adds the numbers[] values of the query string or form body.
type Sum struct{}

func (Sum) Get(a SumArgs) tinyweb.Result {
	var total float64
	for _, n := range a.Numbers {
		total += n
	}
	return tinyweb.JSON(sumResponse{Numbers: a.Numbers, Total: total})
}

func (s Sum) Post(a SumArgs) tinyweb.Result { return s.Get(a) }

type DownloadArgs struct {
	Path string `param:"*" default:"hello.txt"`
}

// Download serves embedded files.
type Download struct{}

func (Download) Get(a DownloadArgs) tinyweb.Result { return tinyweb.File(a.Path) }

// Admin is only reachable through the AdminOnly filter.
type Admin struct{}

func (Admin) Get(c tinyweb.Context) tinyweb.Result {
	c.LogInfo("admin page viewed")
	return tinyweb.Text("welcome, admin")
}

// Notes lists and creates notes.
type Notes struct {
	store *NoteStore
}

type NoteArgs struct {
	Note Note
}

func (h *Notes) Get() tinyweb.Result {
	return tinyweb.JSON(h.store.List())
}

func (h *Notes) Post(a NoteArgs) (tinyweb.Result, error) {
	if a.Note.Title == "" {
		return nil, tinyweb.ErrBadRequest("title is required")
	}
	id := h.store.Add(a.Note)
	return tinyweb.RedirectTo[*NoteDetail](tinyweb.Args{"id": id}), nil
}

// NoteDetail shows or deletes one note.
type NoteDetail struct {
	store *NoteStore
}

type NoteIDArgs struct {
	ID int
}

func (h *NoteDetail) Get(a NoteIDArgs) (tinyweb.Result, error) {
	n, ok := h.store.Get(a.ID)
	if !ok {
		return nil, tinyweb.ErrNotFound("note " + strconv.Itoa(a.ID) + " not found")
	}
	return tinyweb.JSON(n), nil
}

func (h *NoteDetail) Delete(a NoteIDArgs) tinyweb.Result {
	h.store.Delete(a.ID)
	return nil
}
