package store

import (
	"context"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/strandworks/genchat/core/content"
)

// cacheStore wraps a Store with an in-memory LRU of decoded records.
// Hits never touch the backing store; writes go through.
type cacheStore struct {
	inner Store
	cache *lru.Cache[string, *Record]
}

// NewCacheStore wraps inner with an LRU cache holding up to size records.
// Returns inner unchanged when size is not positive.
func NewCacheStore(inner Store, size int) Store {
	cache, err := lru.New[string, *Record](size)
	if err != nil {
		return inner
	}
	return &cacheStore{inner: inner, cache: cache}
}

func (s *cacheStore) Save(ctx context.Context, record *Record) error {
	if err := s.inner.Save(ctx, record); err != nil {
		return err
	}
	s.cache.Add(record.ID, cloneRecord(record))
	return nil
}

func (s *cacheStore) Load(ctx context.Context, id string) (*Record, error) {
	if record, ok := s.cache.Get(id); ok {
		return cloneRecord(record), nil
	}

	record, err := s.inner.Load(ctx, id)
	if err != nil || record == nil {
		return record, err
	}
	s.cache.Add(id, cloneRecord(record))
	return record, nil
}

func (s *cacheStore) Delete(ctx context.Context, id string) error {
	s.cache.Remove(id)
	return s.inner.Delete(ctx, id)
}

func (s *cacheStore) List(ctx context.Context) ([]string, error) {
	return s.inner.List(ctx)
}

// cloneRecord copies a record so callers cannot mutate cached turns in place.
func cloneRecord(record *Record) *Record {
	out := *record
	out.Contents = make([]*content.Content, len(record.Contents))
	for i, c := range record.Contents {
		cc := *c
		cc.Parts = slices.Clone(c.Parts)
		out.Contents[i] = &cc
	}
	return &out
}
