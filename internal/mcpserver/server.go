// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the site's address resolution and content tools for LLM
// integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/starford/raido/internal/address"
	"github.com/starford/raido/internal/content"
	"github.com/starford/raido/internal/server"
	"github.com/starford/raido/internal/storage"
)

// RebuildFunc refreshes the site snapshot after a mutation.
type RebuildFunc func(ctx context.Context) error

// Server wraps the MCP server with site tools.
type Server struct {
	mcp     *mcpsrv.MCPServer
	svc     *server.Service
	store   storage.Provider
	rebuild RebuildFunc
}

// New creates a new MCP server with all site tools registered.
func New(svc *server.Service, store storage.Provider, rebuild RebuildFunc) *Server {
	s := &Server{svc: svc, store: store, rebuild: rebuild}

	s.mcp = mcpsrv.NewMCPServer(
		"Raido",
		"1.0.0",
		mcpsrv.WithToolCapabilities(false),
		mcpsrv.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("resolve_address",
		mcp.WithDescription("Parse a site address and resolve it against the page index. "+
			"Read the raido://address-grammar resource for the accepted forms."),
		mcp.WithString("address", mcp.Required(), mcp.Description("Address text, e.g. 'docs/setup', '/docs/', 'style.css'")),
		mcp.WithString("kind", mcp.Description("Pointer kind: entity (default), page, image, style, script")),
		mcp.WithString("base", mcp.Description("Base location the address is resolved from (default: site root)")),
	), s.resolveAddress)

	s.mcp.AddTool(mcp.NewTool("search_pages",
		mcp.WithDescription("Full-text search through page titles and bodies."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchPages)

	s.mcp.AddTool(mcp.NewTool("read_page",
		mcp.WithDescription("Read the document of the page at a location."),
		mcp.WithString("location", mcp.Required(), mcp.Description("Page location, e.g. 'docs/setup/' or '/'")),
	), s.readPage)

	s.mcp.AddTool(mcp.NewTool("list_pages",
		mcp.WithDescription("List every indexed page with its location, title, and content kind."),
	), s.listPages)

	s.mcp.AddTool(mcp.NewTool("create_page",
		mcp.WithDescription("Create a new markdown source file. Content MUST follow the "+
			"canonical page format (YAML frontmatter with title, optional titles/kind/tags, "+
			"markdown body). The site snapshot is rebuilt afterwards."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Source path for the new page (must end with .md)")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Markdown content following the page format contract")),
	), s.createPage)

	// Resource: the address grammar.
	s.mcp.AddResource(
		mcp.NewResource("raido://address-grammar", "Address Grammar",
			mcp.WithResourceDescription("The address forms accepted by resolve_address and site links."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readGrammarResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return mcpsrv.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *mcpsrv.MCPServer {
	return s.mcp
}

func parseLocation(text string) (address.Location, error) {
	p, suffix := address.ParsePath(strings.TrimPrefix(text, "/"))
	if suffix != "" {
		n, err := address.ParseName(suffix)
		if err != nil {
			return address.Location{}, err
		}
		p = p.Append(n)
	}
	return address.LocationOf(p)
}

func (s *Server) resolveAddress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	addr, err := req.RequireString("address")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	kindToken := ""
	if k, kerr := req.RequireString("kind"); kerr == nil {
		kindToken = k
	}
	kind := address.Entity()
	switch kindToken {
	case "", "entity":
	case "page":
		kind = address.Page
	case "image":
		kind = address.Image
	case "style", "stylesheet":
		kind = address.Stylesheet
	case "script":
		kind = address.Script
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind: %s", kindToken)), nil
	}

	base := address.Root
	if b, berr := req.RequireString("base"); berr == nil && b != "" {
		base, err = parseLocation(b)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid base: %v", err)), nil
		}
	}

	res, rerr := s.svc.Resolve(addr, kind, base)
	out := map[string]string{
		"kind":    res.Pointer.Kind().Token(),
		"variant": res.Pointer.Variant().String(),
		"href":    res.Href,
	}
	if res.Page != nil {
		out["location"] = "/" + res.Page.Location().String()
	} else if rerr != nil {
		out["note"] = rerr.Error()
	}
	payload, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(payload)), nil
}

func (s *Server) searchPages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	locText, err := req.RequireString("location")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	loc, err := parseLocation(locText)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid location: %v", err)), nil
	}
	node, err := s.svc.PageAt(loc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", locText)), nil
	}
	doc := node.Document()
	var b strings.Builder
	if doc.Title != "" {
		b.WriteString("# " + doc.Title + "\n\n")
	}
	b.WriteString(doc.Body)
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) listPages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var lines []string
	for _, p := range s.svc.Pages() {
		line := "/" + p.Location().String()
		if n, ok := p.(*content.Node); ok {
			if t := n.Document().Title; t != "" {
				line += "\t" + t
			}
		}
		lines = append(lines, line)
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) createPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pageContent, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !strings.HasSuffix(path, ".md") {
		return mcp.NewToolResultError("path must end with .md"), nil
	}

	if _, readErr := s.store.Read(path); readErr == nil {
		return mcp.NewToolResultError(fmt.Sprintf("page source already exists: %s", path)), nil
	}
	if err := s.store.Write(path, []byte(pageContent)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.rebuild != nil {
		if err := s.rebuild(ctx); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("created %s but rebuild failed: %v", path, err)), nil
		}
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", path)), nil
}

func (s *Server) readGrammarResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "raido://address-grammar",
			MIMEType: "text/markdown",
			Text:     AddressGrammar,
		},
	}, nil
}
