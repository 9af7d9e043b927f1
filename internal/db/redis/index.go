package redis

import (
	"context"
	"errors"

	"github.com/kailas-cloud/companydex/internal/db"
)

// CreateIndex creates an FT index over the JSON documents of def.Collection.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	args, err := s.buildCreateArgs(def)
	if err != nil {
		return err
	}

	cmd := s.b().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return db.ErrIndexExists
		}
		return wrapErr(db.OpCreateIndex, err)
	}
	return nil
}

// DropIndex removes the FT index of a collection. Documents are kept.
func (s *Store) DropIndex(ctx context.Context, collection string) error {
	cmd := s.b().Arbitrary("FT.DROPINDEX").Args(s.indexName(collection)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") {
			return db.ErrIndexNotFound
		}
		return wrapErr(db.OpDropIndex, err)
	}
	return nil
}

// IndexExists probes index existence via FT.INFO; "unknown index name" means absent.
func (s *Store) IndexExists(ctx context.Context, collection string) (bool, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(s.indexName(collection)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") {
			return false, nil
		}
		return false, wrapErr(db.OpIndexInfo, err)
	}
	return true, nil
}

// SupportsTextSearch returns true: RediSearch provides TEXT fields.
func (s *Store) SupportsTextSearch(_ context.Context) bool {
	return true
}

func (s *Store) buildCreateArgs(idx *db.IndexDefinition) ([]string, error) {
	if idx == nil {
		return nil, errors.New("index definition is required")
	}
	if err := idx.Validate(); err != nil {
		return nil, err
	}

	args := []string{
		s.indexName(idx.Collection),
		"ON", "JSON",
		"PREFIX", "1", s.keyPrefix(idx.Collection),
		"SCHEMA",
	}
	for i := range idx.Fields {
		fieldArgs, err := buildFieldArgs(&idx.Fields[i])
		if err != nil {
			return nil, err
		}
		args = append(args, fieldArgs...)
	}
	return args, nil
}

// buildFieldArgs renders one SCHEMA entry. JSON paths always get an alias
// so queries can address the field by key.
func buildFieldArgs(f *db.IndexField) ([]string, error) {
	if f.Name == "" {
		return nil, errors.New("field name is required")
	}

	path := "$." + f.Name
	if f.Multi {
		path += "[*]"
	}
	args := []string{path, "AS", f.Key()}

	switch f.Type {
	case db.IndexFieldNumeric:
		args = append(args, "NUMERIC")
	case db.IndexFieldText:
		args = append(args, "TEXT")
	case db.IndexFieldTag:
		args = append(args, "TAG")
		if f.CaseSensitive {
			args = append(args, "CASESENSITIVE")
		}
		if f.SuffixTrie {
			args = append(args, "WITHSUFFIXTRIE")
		}
	default:
		return nil, errors.New("unknown field type")
	}

	if f.Sortable {
		args = append(args, "SORTABLE")
	}
	return args, nil
}
