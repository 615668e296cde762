package weather

import (
	"context"
	"io"
)

// Source abstracts where delimited weather text comes from (a local file, a remote URL).
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Store is the contract the in-memory store (and any future persistent store) must satisfy.
type Store interface {
	SaveSnapshot(snapshot Snapshot)
	GetLatest(source string) (Snapshot, error)
	GetHistory(source string) ([]Snapshot, error)
}
