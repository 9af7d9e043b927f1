package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kailas-cloud/companydex/internal/db"
)

// refreshPolicy makes writes visible to the next search.
const refreshPolicy = "wait_for"

// PutDocument indexes a JSON document under id, replacing any previous version.
func (s *Store) PutDocument(ctx context.Context, collection, id string, data []byte) error {
	res, err := s.client.Index(
		s.indexName(collection),
		bytes.NewReader(data),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(id),
		s.client.Index.WithRefresh(refreshPolicy),
	)
	if err != nil {
		return unavailable(opIndex, err)
	}
	defer closeBody(res)
	if res.IsError() {
		return responseError(opIndex, res)
	}
	return nil
}

// GetDocument returns the _source of a document.
func (s *Store) GetDocument(ctx context.Context, collection, id string) ([]byte, error) {
	res, err := s.client.Get(
		s.indexName(collection), id,
		s.client.Get.WithContext(ctx),
	)
	if err != nil {
		return nil, unavailable(opGet, err)
	}
	defer closeBody(res)
	if res.StatusCode == http.StatusNotFound {
		return nil, db.ErrKeyNotFound
	}
	if res.IsError() {
		return nil, responseError(opGet, res)
	}

	var body struct {
		Found  bool            `json:"found"`
		Source json.RawMessage `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode get response: %w", err)
	}
	if !body.Found || len(body.Source) == 0 {
		return nil, db.ErrKeyNotFound
	}
	return body.Source, nil
}

// DeleteDocument removes a document. Missing documents yield db.ErrKeyNotFound.
func (s *Store) DeleteDocument(ctx context.Context, collection, id string) error {
	res, err := s.client.Delete(
		s.indexName(collection), id,
		s.client.Delete.WithContext(ctx),
		s.client.Delete.WithRefresh(refreshPolicy),
	)
	if err != nil {
		return unavailable(opDelete, err)
	}
	defer closeBody(res)
	if res.StatusCode == http.StatusNotFound {
		return db.ErrKeyNotFound
	}
	if res.IsError() {
		return responseError(opDelete, res)
	}
	return nil
}

// DocumentExists reports whether a document is stored.
func (s *Store) DocumentExists(ctx context.Context, collection, id string) (bool, error) {
	res, err := s.client.Exists(
		s.indexName(collection), id,
		s.client.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, unavailable(opExists, err)
	}
	defer closeBody(res)
	switch {
	case res.StatusCode == http.StatusNotFound:
		return false, nil
	case res.IsError():
		return false, responseError(opExists, res)
	default:
		return true, nil
	}
}
