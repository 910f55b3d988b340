package content

import (
	"testing"
)

func TestParseDocument_FrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: Hello\ntags:\n  - go\n  - site\n---\n# Hello\nBody text.\n")
	doc := ParseDocument(input)
	if doc.Title != "Hello" {
		t.Errorf("title = %q, want %q", doc.Title, "Hello")
	}
	if len(doc.Tags) < 2 || doc.Tags[0] != "go" || doc.Tags[1] != "site" {
		t.Errorf("tags = %v, want [go site]", doc.Tags)
	}
	if doc.Body != "# Hello\nBody text.\n" {
		t.Errorf("body = %q", doc.Body)
	}
}

func TestParseDocument_NoFrontmatter(t *testing.T) {
	doc := ParseDocument([]byte("# Just a heading\nSome text.\n"))
	if doc.Frontmatter != nil {
		t.Errorf("expected nil frontmatter, got %v", doc.Frontmatter)
	}
	// Title falls back to the first H1.
	if doc.Title != "Just a heading" {
		t.Errorf("title = %q, want %q", doc.Title, "Just a heading")
	}
}

func TestParseDocument_InvalidYAMLFallback(t *testing.T) {
	input := []byte("---\n: invalid: yaml: {{{\n---\nBody\n")
	doc := ParseDocument(input)
	// Invalid YAML falls back to treating everything as body.
	if doc.Frontmatter != nil {
		t.Error("expected nil frontmatter on invalid YAML")
	}
	if doc.Body != string(input) {
		t.Errorf("body = %q, want full input", doc.Body)
	}
}

func TestParseDocument_AlternateTitles(t *testing.T) {
	single := ParseDocument([]byte("---\ntitle: Main\ntitles: Alias\n---\nx"))
	if len(single.Titles) != 1 || single.Titles[0] != "Alias" {
		t.Errorf("single titles = %v", single.Titles)
	}

	list := ParseDocument([]byte("---\ntitle: Main\ntitles:\n  - One\n  - Two\n---\nx"))
	if len(list.Titles) != 2 || list.Titles[0] != "One" || list.Titles[1] != "Two" {
		t.Errorf("list titles = %v", list.Titles)
	}
}

func TestParseDocument_Kind(t *testing.T) {
	doc := ParseDocument([]byte("---\nkind: section\n---\nx"))
	if doc.Kind != "section" {
		t.Errorf("kind = %q, want section", doc.Kind)
	}
}

func TestContentFor(t *testing.T) {
	if _, ok := contentFor(Document{Kind: "section"}, false).(*Section); !ok {
		t.Error("declared section should become a Section")
	}
	if _, ok := contentFor(Document{Kind: "article"}, true).(*Article); !ok {
		t.Error("declared article should become an Article")
	}
	if _, ok := contentFor(Document{}, true).(*Section); !ok {
		t.Error("directory default should be Section")
	}
	if _, ok := contentFor(Document{}, false).(*Article); !ok {
		t.Error("leaf default should be Article")
	}
}
