package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/companydex/internal/db"
	"github.com/kailas-cloud/companydex/internal/domain/search/filter"
	"github.com/kailas-cloud/companydex/internal/domain/search/sort"
)

// Find returns one ordered page of matching documents via FT.AGGREGATE,
// which unlike FT.SEARCH accepts several sort keys.
// The Total of the result is not a match count; use Count.
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

	args := []string{
		s.indexName(q.Collection),
		buildQuery(q.Filter, q.TextFields),
		"LOAD", "2", "@__key", "$",
	}
	args = append(args, buildSortArgs(q.Sort)...)
	args = append(args,
		"LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit),
		"DIALECT", "2",
	)

	cmd := s.b().Arbitrary("FT.AGGREGATE").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, wrapErr(db.OpAggregate, err)
	}

	return parseAggregateResult(raw, s.keyPrefix(q.Collection))
}

// Count returns the number of documents matching the filter via FT.SEARCH with LIMIT 0 0.
func (s *Store) Count(ctx context.Context, q *db.CountQuery) (int, error) {
	if q.Collection == "" {
		return 0, fmt.Errorf("collection is required")
	}

	cmd := s.b().Arbitrary("FT.SEARCH").Args(
		s.indexName(q.Collection),
		buildQuery(q.Filter, q.TextFields),
		"LIMIT", "0", "0",
		"DIALECT", "2",
	).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return 0, wrapErr(db.OpSearch, err)
	}
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return int(total), nil
}

// --- Result parsing ---

// parseAggregateResult reads [total, row1, row2, ...] where each row is a
// flat [name, value, ...] list holding __key and $ (the JSON document).
func parseAggregateResult(raw []rueidis.RedisMessage, keyPrefix string) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}

	entries := make([]db.SearchEntry, 0, len(raw)-1)
	for _, row := range raw[1:] {
		fields, err := row.ToArray()
		if err != nil {
			continue
		}
		m := parseFieldPairs(fields)
		key, source := m["__key"], m["$"]
		if key == "" || source == "" {
			continue
		}
		entries = append(entries, db.SearchEntry{
			ID:     strings.TrimPrefix(key, keyPrefix),
			Source: []byte(source),
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// --- Query building ---

func buildSortArgs(spec sort.Spec) []string {
	if len(spec) == 0 {
		return nil
	}
	args := make([]string, 0, 2+2*len(spec))
	args = append(args, "SORTBY", strconv.Itoa(2*len(spec)))
	for _, f := range spec {
		dir := "ASC"
		if f.Direction == sort.Desc {
			dir = "DESC"
		}
		args = append(args, "@"+f.Name, dir)
	}
	return args
}

// buildQuery translates filter.Expression into a RediSearch query string.
// Clauses are space-joined (intersection); the empty expression matches all.
func buildQuery(expr filter.Expression, textFields []string) string {
	if expr.IsEmpty() {
		return "*"
	}

	var parts []string
	for _, cond := range expr.Conditions() {
		parts = append(parts, buildCondition(cond, textFields)...)
	}
	return strings.Join(parts, " ")
}

func buildCondition(cond filter.Condition, textFields []string) []string {
	switch cond.Kind() {
	case filter.KindText:
		return []string{buildTextFilter(cond.Value(), textFields)}
	case filter.KindPattern:
		return []string{fmt.Sprintf("@%s:{*%s*}", cond.Key(), tagEscaper.Replace(cond.Value()))}
	case filter.KindExact:
		return []string{buildTagFilter(cond.Key(), cond.Value())}
	case filter.KindRange:
		return []string{buildNumericFilter(cond.Key(), *cond.Range())}
	case filter.KindAll:
		values := cond.Values()
		out := make([]string, 0, len(values))
		for _, v := range values {
			out = append(out, buildTagFilter(cond.Key(), v))
		}
		return out
	default:
		return nil
	}
}

// buildTextFilter matches any of the query terms in any of the text fields.
func buildTextFilter(query string, fields []string) string {
	terms := strings.Fields(query)
	for i, t := range terms {
		terms[i] = escapeQuery(t)
	}
	expr := "(" + strings.Join(terms, "|") + ")"
	if len(fields) == 0 {
		return expr
	}
	return "@" + strings.Join(fields, "|") + ":" + expr
}

func buildTagFilter(key, value string) string {
	return fmt.Sprintf("@%s:{%s}", key, tagEscaper.Replace(value))
}

func buildNumericFilter(key string, r filter.Range) string {
	minBound := "-inf"
	maxBound := "+inf"
	if r.GTE() != nil {
		minBound = strconv.FormatFloat(*r.GTE(), 'f', -1, 64)
	}
	if r.LTE() != nil {
		maxBound = strconv.FormatFloat(*r.LTE(), 'f', -1, 64)
	}
	return fmt.Sprintf("@%s:[%s %s]", key, minBound, maxBound)
}

// --- Query helpers ---

var tagEscaper = strings.NewReplacer(
	`\`, `\\`,
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"[", "\\[",
	"]", "\\]",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	"/", "\\/",
	"?", "\\?",
	" ", "\\ ",
)

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
	`:`, `\:`,
)
