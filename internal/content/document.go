// Package content models the markdown sources of a site and assembles
// them into the concrete page tree the index is built from.
package content

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the parsed form of one markdown source file.
type Document struct {
	Title       string
	Titles      []string // alternate titles, extra lookup keys
	Kind        string   // "article", "section", or empty
	Tags        []string
	Body        string
	Frontmatter map[string]interface{}
}

// Content is what a page carries: a typed wrapper around a Document.
type Content interface {
	Meta() *Document
}

// Article is a leaf content page.
type Article struct {
	Document
}

// Meta returns the underlying document.
func (a *Article) Meta() *Document { return &a.Document }

// Section is a grouping page that primarily organizes children.
type Section struct {
	Document
}

// Meta returns the underlying document.
func (s *Section) Meta() *Document { return &s.Document }

// contentFor wraps a document in its declared content type. Unknown kinds
// fall back to article for leaf documents; sections are chosen by the tree
// builder for directory pages.
func contentFor(doc Document, directory bool) Content {
	switch doc.Kind {
	case "section":
		return &Section{Document: doc}
	case "article":
		return &Article{Document: doc}
	}
	if directory {
		return &Section{Document: doc}
	}
	return &Article{Document: doc}
}

// ParseDocument extracts frontmatter and body from raw markdown bytes.
// Invalid YAML frontmatter degrades to an empty header with the whole
// input as body; parsing never fails on malformed sources.
func ParseDocument(data []byte) *Document {
	fm, body := splitFrontmatter(data)
	doc := &Document{
		Body:        body,
		Frontmatter: fm,
		Title:       deriveTitle(fm, body),
		Titles:      stringList(fm, "titles"),
		Tags:        stringList(fm, "tags"),
	}
	if k, ok := fm["kind"].(string); ok {
		doc.Kind = strings.TrimSpace(k)
	}
	return doc
}

// splitFrontmatter separates YAML frontmatter (between leading ---
// delimiters) from the markdown body. Missing or invalid frontmatter
// yields a nil map and the entire input as body.
func splitFrontmatter(data []byte) (map[string]interface{}, string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data)
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data)
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]interface{}
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		return nil, string(data)
	}
	return fm, body
}

// stringList reads a frontmatter field that may be a single string or a
// YAML list of strings.
func stringList(fm map[string]interface{}, key string) []string {
	if fm == nil {
		return nil
	}
	var out []string
	switch v := fm[key].(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

// deriveTitle returns the frontmatter "title" if present, otherwise the
// first H1 heading, otherwise empty string.
func deriveTitle(fm map[string]interface{}, body string) string {
	if fm != nil {
		if t, ok := fm["title"].(string); ok && t != "" {
			return t
		}
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
