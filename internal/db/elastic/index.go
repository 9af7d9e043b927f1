package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/kailas-cloud/companydex/internal/db"
)

// lowercaseNormalizer folds TAG values that are not case sensitive,
// at index time and for term queries alike.
const lowercaseNormalizer = "lowercase"

// CreateIndex creates the index of def.Collection with a mapping derived from def.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if def == nil {
		return errors.New("index definition is required")
	}
	if err := def.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(buildIndexBody(def, s.window))
	if err != nil {
		return fmt.Errorf("marshal mapping: %w", err)
	}

	res, err := s.client.Indices.Create(
		s.indexName(def.Collection),
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return unavailable(opIndicesCreate, err)
	}
	defer closeBody(res)
	if res.IsError() {
		reason, typ := readReason(res)
		if typ == "resource_already_exists_exception" {
			return db.ErrIndexExists
		}
		if res.StatusCode >= http.StatusInternalServerError {
			return &db.Error{Op: opIndicesCreate, Err: fmt.Errorf("%w: %s", db.ErrUnavailable, reason)}
		}
		return &db.Error{Op: opIndicesCreate, Err: fmt.Errorf("%w: %s", db.ErrRejected, reason)}
	}
	return nil
}

// DropIndex deletes the index of a collection together with its documents.
func (s *Store) DropIndex(ctx context.Context, collection string) error {
	res, err := s.client.Indices.Delete(
		[]string{s.indexName(collection)},
		s.client.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		return unavailable(opIndicesDelete, err)
	}
	defer closeBody(res)
	if res.StatusCode == http.StatusNotFound {
		return db.ErrIndexNotFound
	}
	if res.IsError() {
		return responseError(opIndicesDelete, res)
	}
	return nil
}

// IndexExists reports whether the index of a collection exists.
func (s *Store) IndexExists(ctx context.Context, collection string) (bool, error) {
	res, err := s.client.Indices.Exists(
		[]string{s.indexName(collection)},
		s.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, unavailable(opIndicesExists, err)
	}
	defer closeBody(res)
	switch {
	case res.StatusCode == http.StatusNotFound:
		return false, nil
	case res.IsError():
		return false, responseError(opIndicesExists, res)
	default:
		return true, nil
	}
}

// SupportsTextSearch returns true: text fields are analyzed natively.
func (s *Store) SupportsTextSearch(_ context.Context) bool {
	return true
}

// buildIndexBody derives settings and mappings from def. A field keyed
// by its own name maps the property itself; aliased fields become separate
// properties fed through copy_to.
func buildIndexBody(def *db.IndexDefinition, window int) map[string]any {
	props := make(map[string]map[string]any)
	copyTo := make(map[string][]string)
	var order []string

	for i := range def.Fields {
		f := &def.Fields[i]
		props[f.Key()] = fieldMapping(f)
		if f.Key() != f.Name {
			if _, seen := copyTo[f.Name]; !seen {
				order = append(order, f.Name)
			}
			copyTo[f.Name] = append(copyTo[f.Name], f.Key())
		}
	}

	for _, src := range order {
		p, ok := props[src]
		if !ok {
			p = map[string]any{"type": "keyword", "index": false}
			props[src] = p
		}
		p["copy_to"] = copyTo[src]
	}

	properties := make(map[string]any, len(props))
	for k, v := range props {
		properties[k] = v
	}

	return map[string]any{
		"settings": map[string]any{
			"index": map[string]any{
				"max_result_window": window,
			},
			"analysis": map[string]any{
				"normalizer": map[string]any{
					lowercaseNormalizer: map[string]any{
						"type":   "custom",
						"filter": []string{"lowercase"},
					},
				},
			},
		},
		"mappings": map[string]any{
			"dynamic":    false,
			"properties": properties,
		},
	}
}

func fieldMapping(f *db.IndexField) map[string]any {
	switch f.Type {
	case db.IndexFieldNumeric:
		return map[string]any{"type": "double"}
	case db.IndexFieldText:
		return map[string]any{"type": "text"}
	default:
		m := map[string]any{"type": "keyword"}
		if !f.CaseSensitive {
			m["normalizer"] = lowercaseNormalizer
		}
		return m
	}
}
