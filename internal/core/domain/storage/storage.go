package storage

import (
	"context"
	"errors"
	"fmt"
)

var ErrDocumentDoesNotExist = errors.New("document does not exist")

// Error is returned for any read or write failure other than a missing document.
type Error struct {
	Op   string
	Name string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Name, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Store keeps named JSON documents. Writes replace a document in full.
type Store interface {
	Read(ctx context.Context, name string, v interface{}) error
	Write(ctx context.Context, name string, v interface{}) error
}
