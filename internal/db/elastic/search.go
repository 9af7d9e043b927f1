package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kailas-cloud/companydex/internal/db"
	"github.com/kailas-cloud/companydex/internal/domain/search/filter"
	"github.com/kailas-cloud/companydex/internal/domain/search/sort"
)

// Find returns one ordered page of matching documents via _search.
// Total hits are not tracked; use Count.
// Pages are cut at the result window: an offset at or past it yields no
// entries without a round trip.
func (s *Store) Find(ctx context.Context, q *db.FindQuery) (*db.SearchResult, error) {
	if q.Collection == "" {
		return nil, fmt.Errorf("collection is required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	if q.Offset < 0 {
		return nil, fmt.Errorf("offset must not be negative")
	}
	if q.Offset >= s.window {
		return &db.SearchResult{Entries: []db.SearchEntry{}}, nil
	}
	size := min(q.Limit, s.window-q.Offset)

	body := map[string]any{
		"query":            buildQuery(q.Filter, q.TextFields),
		"from":             q.Offset,
		"size":             size,
		"track_total_hits": false,
	}
	if srt := buildSort(q.Sort); len(srt) > 0 {
		body["sort"] = srt
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal search body: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.indexName(q.Collection)),
		s.client.Search.WithBody(bytes.NewReader(payload)),
	)
	if err != nil {
		return nil, unavailable(opSearch, err)
	}
	defer closeBody(res)
	if res.IsError() {
		return nil, responseError(opSearch, res)
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	entries := make([]db.SearchEntry, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		var score float64
		if hit.Score != nil {
			score = *hit.Score
		}
		entries = append(entries, db.SearchEntry{
			ID:     hit.ID,
			Score:  score,
			Source: hit.Source,
		})
	}
	return &db.SearchResult{Total: len(entries), Entries: entries}, nil
}

// Count returns the number of documents matching the filter via _count.
func (s *Store) Count(ctx context.Context, q *db.CountQuery) (int, error) {
	if q.Collection == "" {
		return 0, fmt.Errorf("collection is required")
	}

	payload, err := json.Marshal(map[string]any{"query": buildQuery(q.Filter, q.TextFields)})
	if err != nil {
		return 0, fmt.Errorf("marshal count body: %w", err)
	}

	res, err := s.client.Count(
		s.client.Count.WithContext(ctx),
		s.client.Count.WithIndex(s.indexName(q.Collection)),
		s.client.Count.WithBody(bytes.NewReader(payload)),
	)
	if err != nil {
		return 0, unavailable(opCount, err)
	}
	defer closeBody(res)
	if res.IsError() {
		return 0, responseError(opCount, res)
	}

	var r struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, fmt.Errorf("decode count response: %w", err)
	}
	return r.Count, nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string          `json:"_id"`
			Score  *float64        `json:"_score"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// --- Query building ---

// buildQuery translates filter.Expression into a bool query. The text leaf
// scores (must); every other leaf only filters.
func buildQuery(expr filter.Expression, textFields []string) map[string]any {
	if expr.IsEmpty() {
		return map[string]any{"match_all": map[string]any{}}
	}

	var must, filters []any
	for _, cond := range expr.Conditions() {
		switch cond.Kind() {
		case filter.KindText:
			mm := map[string]any{"query": cond.Value()}
			if len(textFields) > 0 {
				mm["fields"] = textFields
			}
			must = append(must, map[string]any{"multi_match": mm})
		case filter.KindPattern:
			filters = append(filters, map[string]any{
				"wildcard": map[string]any{
					cond.Key(): map[string]any{
						"value":            "*" + escapeWildcard(cond.Value()) + "*",
						"case_insensitive": true,
					},
				},
			})
		case filter.KindExact:
			filters = append(filters, termQuery(cond.Key(), cond.Value()))
		case filter.KindRange:
			filters = append(filters, rangeQuery(cond.Key(), *cond.Range()))
		case filter.KindAll:
			for _, v := range cond.Values() {
				filters = append(filters, termQuery(cond.Key(), v))
			}
		}
	}

	boolQuery := map[string]any{}
	if len(must) > 0 {
		boolQuery["must"] = must
	}
	if len(filters) > 0 {
		boolQuery["filter"] = filters
	}
	return map[string]any{"bool": boolQuery}
}

func termQuery(key, value string) map[string]any {
	return map[string]any{"term": map[string]any{key: value}}
}

func rangeQuery(key string, r filter.Range) map[string]any {
	bounds := map[string]any{}
	if r.GTE() != nil {
		bounds["gte"] = *r.GTE()
	}
	if r.LTE() != nil {
		bounds["lte"] = *r.LTE()
	}
	return map[string]any{"range": map[string]any{key: bounds}}
}

func buildSort(spec sort.Spec) []any {
	if len(spec) == 0 {
		return nil
	}
	out := make([]any, 0, len(spec))
	for _, f := range spec {
		out = append(out, map[string]any{
			f.Name: map[string]any{"order": f.Direction.String()},
		})
	}
	return out
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

func escapeWildcard(s string) string {
	return wildcardEscaper.Replace(s)
}
