//go:build js && wasm

package storage

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/repositories"
)

// LocalStorage is a store backed by the browser's window.localStorage.
type LocalStorage struct {
	storage js.Value
}

var _ repositories.Store = &LocalStorage{}

// Open returns the browser's localStorage. connStr is ignored in the browser.
func Open(ctx context.Context, connStr string) (repositories.Store, error) {
	storage := js.Global().Get("localStorage")
	if storage.IsUndefined() || storage.IsNull() {
		return nil, fmt.Errorf("localStorage is not available")
	}
	if connStr != "" {
		log.Debug("Ignoring store %s in the browser", connStr)
	}
	return &LocalStorage{storage: storage}, nil
}

func (s *LocalStorage) Close(ctx context.Context) error {
	return nil
}

func (s *LocalStorage) Get(ctx context.Context, key string) (value string, err error) {
	// storage access throws in some privacy modes
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read %s from localStorage: %v", key, r)
		}
	}()

	item := s.storage.Call("getItem", key)
	if item.IsNull() {
		return "", &repositories.ErrNotFound{Key: key}
	}
	return item.String(), nil
}

func (s *LocalStorage) Set(ctx context.Context, key string, value string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to write %s to localStorage: %v", key, r)
		}
	}()

	s.storage.Call("setItem", key, value)
	return nil
}
