package view

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Page is a Markdown view split into YAML frontmatter and body.
type Page struct {
	Meta map[string]any
	Body []byte
}

// Layout returns the layout named in the frontmatter, if any.
func (p *Page) Layout() string {
	s, _ := p.Meta["layout"].(string)
	return s
}

// ParsePage extracts optional "---" delimited YAML frontmatter from content.
func ParsePage(content []byte) (*Page, error) {
	delimiter := []byte("---")

	if !bytes.HasPrefix(content, delimiter) {
		return &Page{Meta: map[string]any{}, Body: content}, nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(content, delimiter), "\r\n")
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	end := bytes.Index(rest, delimiter)
	if end == -1 {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	front := rest[:end]
	body := rest[end+len(delimiter):]
	// One line break after the closing delimiter belongs to it.
	body = bytes.TrimPrefix(body, []byte("\r"))
	body = bytes.TrimPrefix(body, []byte("\n"))

	meta := map[string]any{}
	if len(bytes.TrimSpace(front)) > 0 {
		if err := yaml.Unmarshal(front, &meta); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	return &Page{Meta: meta, Body: body}, nil
}
