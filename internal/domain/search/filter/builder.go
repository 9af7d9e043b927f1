package filter

import (
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/companydex/internal/domain/company"
	"github.com/kailas-cloud/companydex/internal/domain/search/params"
)

// FromParams translates listing parameters into a filter expression.
// Unspecified fields contribute nothing, non-numeric range bounds are dropped
// and the input is never modified. It never fails.
func FromParams(p params.Params) Expression {
	var conds []Condition

	if v, ok := params.Value(p.Search); ok {
		conds = append(conds, Condition{kind: KindText, value: v})
	}
	if v, ok := params.Value(p.Name); ok {
		conds = append(conds, Condition{kind: KindPattern, key: company.FieldName, value: v})
	}
	if v, ok := params.Value(p.Industry); ok {
		conds = append(conds, Condition{kind: KindExact, key: company.FieldIndustry, value: v})
	}
	if v, ok := params.Value(p.Location); ok {
		conds = append(conds, Condition{kind: KindPattern, key: company.FieldLocation, value: v})
	}
	if tags := collectTags(p.Tags, p.Tag); len(tags) > 0 {
		conds = append(conds, Condition{kind: KindAll, key: company.FieldTags, values: tags})
	}
	if r, ok := numericRange(p.SizeMin, p.SizeMax); ok {
		conds = append(conds, Condition{kind: KindRange, key: company.FieldSize, rangeExpr: r})
	}
	if r, ok := numericRange(p.FoundedFrom, p.FoundedTo); ok {
		conds = append(conds, Condition{kind: KindRange, key: company.FieldFoundedYear, rangeExpr: r})
	}

	return Expression{conditions: conds}
}

// collectTags merges every comma-joined tags occurrence with the single tag
// parameter. Entries are trimmed, blanks dropped, duplicates removed in
// first-occurrence order.
func collectTags(lists []string, single *string) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(t string) {
		t = strings.TrimSpace(t)
		if t == "" {
			return
		}
		if _, dup := seen[t]; dup {
			return
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	for _, list := range lists {
		for _, t := range strings.Split(list, ",") {
			add(t)
		}
	}
	if single != nil {
		add(*single)
	}
	return out
}

func numericRange(minRaw, maxRaw *string) (*Range, bool) {
	lo := parseBound(minRaw)
	hi := parseBound(maxRaw)
	if lo == nil && hi == nil {
		return nil, false
	}
	return &Range{gte: lo, lte: hi}, true
}

// parseBound returns nil for absent, blank or non-numeric input.
func parseBound(raw *string) *float64 {
	v, ok := params.Value(raw)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
