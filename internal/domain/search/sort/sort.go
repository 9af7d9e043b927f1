// Package sort parses listing sort specifications.
package sort

import (
	"strings"

	"github.com/kailas-cloud/companydex/internal/domain/company"
)

// Direction is the ordering of a sort key.
type Direction int

const (
	// Asc sorts ascending.
	Asc Direction = iota
	// Desc sorts descending.
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Field is a single sort key.
type Field struct {
	Name      string
	Direction Direction
}

func (f Field) String() string {
	if f.Direction == Desc {
		return "-" + f.Name
	}
	return f.Name
}

// Spec is an ordered list of sort keys. Earlier keys take precedence.
type Spec []Field

// Default returns the listing order used when no sort is supplied: newest first.
func Default() Spec {
	return Spec{{Name: company.FieldCreatedAt, Direction: Desc}}
}

// Parse reads a comma-separated list of field names. A leading "-" marks
// descending order. Empty tokens are skipped; a repeated field keeps its
// first position and takes the later direction.
// Absent or blank input yields Default.
func Parse(raw *string) Spec {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return Default()
	}

	spec := Spec{}
	pos := make(map[string]int)
	for _, tok := range strings.Split(*raw, ",") {
		tok = strings.TrimSpace(tok)
		dir := Asc
		if strings.HasPrefix(tok, "-") {
			dir = Desc
			tok = strings.TrimSpace(tok[1:])
		}
		if tok == "" {
			continue
		}
		if i, ok := pos[tok]; ok {
			spec[i].Direction = dir
			continue
		}
		pos[tok] = len(spec)
		spec = append(spec, Field{Name: tok, Direction: dir})
	}
	return spec
}

// String renders the spec in its query form, e.g. "-foundedYear,name".
func (s Spec) String() string {
	parts := make([]string, len(s))
	for i, f := range s {
		parts[i] = f.String()
	}
	return strings.Join(parts, ",")
}
