// Package view renders HTML views from an fs.FS.
//
// Two kinds of view are supported:
//
//   - html/template files, executed with the caller's data;
//   - Markdown files (".md"), converted with goldmark (GitHub Flavored
//     Markdown). A page may start with YAML frontmatter; a "layout" key names
//     an html/template that receives a LayoutData with the converted content.
//
// Example page:
//
//	---
//	title: About
//	layout: layout.html
//	---
//	# About us
//
// Parsed templates and converted pages are cached on first use, so the
// filesystem should be immutable (embed.FS, os.DirFS on a release build).
//
//	r := view.New(views)
//	err := r.Render(w, "about.md", nil)
package view
