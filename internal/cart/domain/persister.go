package domain

import (
	"context"
	"errors"

	"storefront/platform/kv"
)

// load hydrates the cart from the sink. It never fails; the status says which
// fallback, if any, was taken.
func (s *Store) load(ctx context.Context) LoadResult {
	data, err := s.sink.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return LoadResult{Status: LoadMissing}
	}
	if err != nil {
		s.log.PersistenceFailure("load", s.key, err)
		return LoadResult{Status: LoadUnavailable, Err: err}
	}

	items, err := decodeSnapshot(data)
	if err != nil {
		s.log.PersistenceFailure("load", s.key, err)
		return LoadResult{Status: LoadMalformed, Err: err}
	}

	s.items = items
	return LoadResult{Status: LoadRestored, Items: len(items)}
}

// write mirrors the current items to the sink. Callers hold s.mu.
func (s *Store) write(ctx context.Context) PersistResult {
	data, err := encodeSnapshot(s.items)
	if err == nil {
		err = s.sink.Set(ctx, s.key, data)
	}
	if err != nil {
		s.log.PersistenceFailure(string(PersistWrite), s.key, err)
	}
	return PersistResult{Action: PersistWrite, Err: err}
}

// remove deletes the persisted record. Callers hold s.mu.
func (s *Store) remove(ctx context.Context) PersistResult {
	err := s.sink.Delete(ctx, s.key)
	if err != nil {
		s.log.PersistenceFailure(string(PersistDelete), s.key, err)
	}
	return PersistResult{Action: PersistDelete, Err: err}
}
