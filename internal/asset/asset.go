// Package asset talks to the external image host that stores company logos.
package asset

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -destination=mock_asset/mock_store.go -package=mock_asset job-board/internal/asset Store

// Uploader stores a file under publicID and returns the handle to persist.
type Uploader interface {
	Upload(ctx context.Context, publicID, filename string, file io.Reader) (string, error)
}

// Checker reports whether a handle refers to an existing asset.
type Checker interface {
	Exists(ctx context.Context, handle string) (bool, error)
}

// URLBuilder turns a stored handle into a public delivery URL without a remote call.
type URLBuilder interface {
	URL(handle string) string
}

type Store interface {
	Uploader
	Checker
	URLBuilder
}
