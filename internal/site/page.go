// Package site builds and queries the whole-tree lookup index that address
// searches are resolved against.
package site

import (
	"context"
	"reflect"

	"github.com/starford/raido/internal/address"
)

// Page is one node of the site tree as the index consumes it. The two
// fetching methods may suspend (network, disk); everything else is a plain
// fact about the node.
type Page interface {
	// Name is the primary lookup key.
	Name() address.Name
	// Location is the node's absolute coordinate.
	Location() address.Location
	// Titles returns the alternate lookup keys.
	Titles(ctx context.Context) ([]address.Name, error)
	// Children returns the node's direct children.
	Children(ctx context.Context) ([]Page, error)
	// ContentType describes the content the page carries, for type-filtered
	// queries.
	ContentType() reflect.Type
}
