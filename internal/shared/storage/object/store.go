package object

import (
	"context"
	"io"
)

// Namespace is a per-submission container returned by a Backend. ID is the
// backend's own handle (a folder id, a key prefix or a directory path).
type Namespace struct {
	Name string
	ID   string
}

// Backend writes submission artifacts into a storage service.
// Every Upload is an independent write; nothing is rolled back on failure.
type Backend interface {
	CreateNamespace(ctx context.Context, name string) (Namespace, error)
	Upload(ctx context.Context, ns Namespace, name string, r io.Reader, contentType string) error
}
