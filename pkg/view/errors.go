package view

import "errors"

var (
	// ErrNotFound indicates the view file does not exist or the name is not a valid path.
	ErrNotFound = errors.New("view not found")

	// ErrRenderFailed indicates parsing or executing a view failed.
	ErrRenderFailed = errors.New("failed to render view")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter in a Markdown view.
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")
)
