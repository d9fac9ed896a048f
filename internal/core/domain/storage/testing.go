package storage

import (
	"context"
	"encoding/json"
	"sync"
)

type FakeStore struct {
	Documents  map[string][]byte
	ReadError  error
	WriteError error
	WriteCount map[string]int
	lock       sync.Mutex
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		Documents:  make(map[string][]byte),
		WriteCount: make(map[string]int),
	}
}

func (s *FakeStore) Read(ctx context.Context, name string, v interface{}) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.ReadError != nil {
		return s.ReadError
	}
	content, ok := s.Documents[name]
	if !ok {
		return ErrDocumentDoesNotExist
	}
	return json.Unmarshal(content, v)
}

func (s *FakeStore) Write(ctx context.Context, name string, v interface{}) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.WriteError != nil {
		return &Error{Op: "write", Name: name, Err: s.WriteError}
	}
	content, err := json.Marshal(v)
	if err != nil {
		return &Error{Op: "write", Name: name, Err: err}
	}
	s.Documents[name] = content
	s.WriteCount[name]++
	return nil
}

func (s *FakeStore) Writes(name string) int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.WriteCount[name]
}
