package redis

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/companydex/internal/db"
)

// PutDocument stores a JSON document, replacing any previous version.
func (s *Store) PutDocument(ctx context.Context, collection, id string, data []byte) error {
	cmd := s.b().Arbitrary("JSON.SET").Keys(s.docKey(collection, id)).Args("$", string(data)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return wrapErr(db.OpJSONSet, err)
	}
	return nil
}

// GetDocument retrieves a JSON document.
func (s *Store) GetDocument(ctx context.Context, collection, id string) ([]byte, error) {
	cmd := s.b().Arbitrary("JSON.GET").Keys(s.docKey(collection, id)).Build()
	raw, err := s.do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, wrapErr(db.OpJSONGet, err)
	}
	if raw == "" {
		return nil, db.ErrKeyNotFound
	}
	return []byte(raw), nil
}

// DeleteDocument removes a document. Missing documents yield db.ErrKeyNotFound.
func (s *Store) DeleteDocument(ctx context.Context, collection, id string) error {
	cmd := s.b().Del().Key(s.docKey(collection, id)).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return wrapErr(db.OpDel, err)
	}
	if n == 0 {
		return db.ErrKeyNotFound
	}
	return nil
}

// DocumentExists reports whether a document is stored.
func (s *Store) DocumentExists(ctx context.Context, collection, id string) (bool, error) {
	cmd := s.b().Exists().Key(s.docKey(collection, id)).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return false, wrapErr(db.OpExists, err)
	}
	return n > 0, nil
}
