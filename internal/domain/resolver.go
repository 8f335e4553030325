package domain

import "context"

// NameResolver looks up the display name for a station id at a remote
// endpoint.
type NameResolver interface {
	// ResolveName returns the station's display name, or "" when the
	// lookup succeeded but no usable name was found.
	ResolveName(ctx context.Context, id int) (string, error)
}
