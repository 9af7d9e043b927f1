package page

import "testing"

func strPtr(s string) *string { return &s }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		page      *string
		limit     *string
		wantPage  int
		wantLimit int
	}{
		{"defaults", nil, nil, 1, 10},
		{"limit clamped high", nil, strPtr("500"), 1, 100},
		{"limit clamped low", nil, strPtr("0"), 1, 1},
		{"negative limit", nil, strPtr("-5"), 1, 1},
		{"page zero", strPtr("0"), nil, 1, 10},
		{"negative page", strPtr("-3"), nil, 1, 10},
		{"non-numeric", strPtr("abc"), strPtr("x"), 1, 10},
		{"fractional is non-numeric", strPtr("2.5"), strPtr("2.5"), 1, 10},
		{"whitespace trimmed", strPtr(" 3 "), strPtr(" 25 "), 3, 25},
		{"blank", strPtr(""), strPtr(" "), 1, 10},
		{"page at int max", strPtr("9223372036854775807"), nil, MaxPage, 10},
		{"page beyond int range", strPtr("99999999999999999999999"), nil, MaxPage, 10},
		{"limit beyond int range", nil, strPtr("99999999999999999999999"), 1, 100},
		{"negative beyond int range", strPtr("-99999999999999999999999"), nil, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Normalize(tt.page, tt.limit)
			if r.Page != tt.wantPage || r.Limit != tt.wantLimit {
				t.Errorf("Normalize() = %+v, want page=%d limit=%d", r, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestNormalize_Bounds(t *testing.T) {
	inputs := []string{"-1000", "-1", "0", "1", "7", "99", "100", "101", "1000000", "junk", ""}
	for _, p := range inputs {
		for _, l := range inputs {
			r := Normalize(strPtr(p), strPtr(l))
			if r.Page < 1 {
				t.Errorf("Normalize(%q, %q).Page = %d", p, l, r.Page)
			}
			if r.Limit < 1 || r.Limit > MaxLimit {
				t.Errorf("Normalize(%q, %q).Limit = %d", p, l, r.Limit)
			}
		}
	}
}

func TestRequest_Skip(t *testing.T) {
	if s := (Request{Page: 1, Limit: 10}).Skip(); s != 0 {
		t.Errorf("Skip() = %d, want 0", s)
	}
	if s := (Request{Page: 3, Limit: 25}).Skip(); s != 50 {
		t.Errorf("Skip() = %d, want 50", s)
	}
}

func TestResult_Pages(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{100, 1, 100},
	}
	for _, tt := range tests {
		r := NewResult[int](nil, tt.total, Request{Page: 1, Limit: tt.limit})
		if got := r.Pages(); got != tt.want {
			t.Errorf("Pages(total=%d, limit=%d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestNewResult_NilItems(t *testing.T) {
	r := NewResult[string](nil, 0, Request{Page: 2, Limit: 5})
	if r.Items == nil || len(r.Items) != 0 {
		t.Errorf("Items = %v, want empty slice", r.Items)
	}
	if r.Page != 2 || r.Limit != 5 {
		t.Errorf("page/limit = %d/%d", r.Page, r.Limit)
	}
}

func TestRequest_Skip_HugePageNeverOverflows(t *testing.T) {
	for _, raw := range []string{"9223372036854775807", "99999999999999999999999", "4611686018427387904"} {
		for _, l := range []string{"1", "10", "100", "500"} {
			r := Normalize(strPtr(raw), strPtr(l))
			if s := r.Skip(); s < 0 {
				t.Errorf("Normalize(%q, %q).Skip() = %d, want >= 0", raw, l, s)
			}
		}
	}
}
