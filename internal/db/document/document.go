package document

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/storage"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FileStore keeps every document as a JSON file inside one directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	if dir == "" {
		panic(e.NewNilArgumentError("dir"))
	}
	return &FileStore{dir: dir}
}

func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *FileStore) Read(ctx context.Context, name string, v interface{}) error {
	content, err := os.ReadFile(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return storage.ErrDocumentDoesNotExist
	}
	if err != nil {
		return &storage.Error{Op: "read", Name: name, Err: err}
	}
	if err := json.Unmarshal(content, v); err != nil {
		return &storage.Error{Op: "decode", Name: name, Err: err}
	}
	return nil
}

func (s *FileStore) Write(ctx context.Context, name string, v interface{}) error {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &storage.Error{Op: "encode", Name: name, Err: err}
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &storage.Error{Op: "write", Name: name, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return &storage.Error{Op: "write", Name: name, Err: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return &storage.Error{Op: "write", Name: name, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &storage.Error{Op: "write", Name: name, Err: err}
	}
	if err := os.Rename(tmp.Name(), s.Path(name)); err != nil {
		return &storage.Error{Op: "write", Name: name, Err: err}
	}
	return nil
}
