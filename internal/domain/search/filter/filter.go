package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxConditions is the maximum number of leaves in one expression.
const MaxConditions = 32

// Kind identifies the leaf type of a Condition.
type Kind int

const (
	// KindText is a store-native full-text match.
	KindText Kind = iota + 1
	// KindPattern is a case-insensitive substring match on a text field.
	KindPattern
	// KindExact is an equality match on a field.
	KindExact
	// KindRange is an inclusive numeric range on a field.
	KindRange
	// KindAll requires a multi-valued field to contain every listed value.
	KindAll
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindPattern:
		return "pattern"
	case KindExact:
		return "exact"
	case KindRange:
		return "range"
	case KindAll:
		return "all"
	default:
		return "unknown"
	}
}

// Expression is an AND of leaf conditions. The zero value matches every record.
type Expression struct {
	conditions []Condition
}

// NewExpression validates and creates an Expression.
// At most one text condition is allowed.
func NewExpression(conditions ...Condition) (Expression, error) {
	if len(conditions) > MaxConditions {
		return Expression{}, fmt.Errorf("too many conditions (max %d)", MaxConditions)
	}
	texts := 0
	for _, c := range conditions {
		if c.kind == 0 {
			return Expression{}, fmt.Errorf("condition kind is required")
		}
		if c.kind == KindText {
			texts++
		}
	}
	if texts > 1 {
		return Expression{}, fmt.Errorf("at most one text condition is allowed, got %d", texts)
	}
	return Expression{conditions: append([]Condition(nil), conditions...)}, nil
}

// Conditions returns the leaves in construction order.
func (e Expression) Conditions() []Condition {
	return append([]Condition(nil), e.conditions...)
}

// IsEmpty reports whether the expression has no conditions (universal predicate).
func (e Expression) IsEmpty() bool { return len(e.conditions) == 0 }

// Text returns the full-text query, if the expression has one.
func (e Expression) Text() (string, bool) {
	for _, c := range e.conditions {
		if c.kind == KindText {
			return c.value, true
		}
	}
	return "", false
}

// String renders a deterministic form for logs.
func (e Expression) String() string {
	if e.IsEmpty() {
		return "*"
	}
	parts := make([]string, len(e.conditions))
	for i, c := range e.conditions {
		parts[i] = c.String()
	}
	return strings.Join(parts, " AND ")
}

// Condition is a single leaf of an Expression.
type Condition struct {
	kind      Kind
	key       string
	value     string
	values    []string
	rangeExpr *Range
}

// NewText creates a full-text condition.
func NewText(query string) (Condition, error) {
	if query == "" {
		return Condition{}, fmt.Errorf("text query is required")
	}
	return Condition{kind: KindText, value: query}, nil
}

// NewPattern creates a case-insensitive substring condition.
func NewPattern(key, value string) (Condition, error) {
	if err := requireKeyValue(key, value); err != nil {
		return Condition{}, err
	}
	return Condition{kind: KindPattern, key: key, value: value}, nil
}

// NewExact creates an equality condition.
func NewExact(key, value string) (Condition, error) {
	if err := requireKeyValue(key, value); err != nil {
		return Condition{}, err
	}
	return Condition{kind: KindExact, key: key, value: value}, nil
}

// NewRange creates a numeric range condition.
func NewRange(key string, r Range) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	return Condition{kind: KindRange, key: key, rangeExpr: &r}, nil
}

// NewAll creates a contains-all condition over a multi-valued field.
func NewAll(key string, values []string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if len(values) == 0 {
		return Condition{}, fmt.Errorf("at least one value is required for key %q", key)
	}
	return Condition{kind: KindAll, key: key, values: append([]string(nil), values...)}, nil
}

func requireKeyValue(key, value string) error {
	if key == "" {
		return fmt.Errorf("filter key is required")
	}
	if value == "" {
		return fmt.Errorf("value is required for key %q", key)
	}
	return nil
}

// Kind returns the leaf type.
func (c Condition) Kind() Kind { return c.kind }

// Key returns the field name. Empty for text conditions.
func (c Condition) Key() string { return c.key }

// Value returns the text query, pattern or exact value.
func (c Condition) Value() string { return c.value }

// Values returns the required values of a contains-all condition.
func (c Condition) Values() []string { return append([]string(nil), c.values...) }

// Range returns the numeric range, nil for non-range conditions.
func (c Condition) Range() *Range { return c.rangeExpr }

func (c Condition) String() string {
	switch c.kind {
	case KindText:
		return fmt.Sprintf("text(%q)", c.value)
	case KindPattern:
		return fmt.Sprintf("%s~%q", c.key, c.value)
	case KindExact:
		return fmt.Sprintf("%s=%q", c.key, c.value)
	case KindRange:
		return fmt.Sprintf("%s:%s", c.key, c.rangeExpr.String())
	case KindAll:
		return fmt.Sprintf("%s:all(%s)", c.key, strings.Join(c.values, ","))
	default:
		return "?"
	}
}

// Range is an inclusive numeric range; either bound may be absent.
type Range struct {
	gte *float64
	lte *float64
}

// NewRangeFilter creates a Range. At least one bound is required.
// Bound ordering is not checked: gte > lte is a valid range that matches nothing.
func NewRangeFilter(gte, lte *float64) (Range, error) {
	if gte == nil && lte == nil {
		return Range{}, fmt.Errorf("at least one range boundary is required")
	}
	return Range{gte: gte, lte: lte}, nil
}

// GTE returns the inclusive lower bound.
func (r Range) GTE() *float64 { return r.gte }

// LTE returns the inclusive upper bound.
func (r Range) LTE() *float64 { return r.lte }

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	if r.gte != nil && v < *r.gte {
		return false
	}
	if r.lte != nil && v > *r.lte {
		return false
	}
	return true
}

func (r Range) String() string {
	lo, hi := "-inf", "+inf"
	if r.gte != nil {
		lo = strconv.FormatFloat(*r.gte, 'f', -1, 64)
	}
	if r.lte != nil {
		hi = strconv.FormatFloat(*r.lte, 'f', -1, 64)
	}
	return "[" + lo + "," + hi + "]"
}
