package elastic

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/kailas-cloud/companydex/internal/db"
	"github.com/kailas-cloud/companydex/internal/domain/search/filter"
	"github.com/kailas-cloud/companydex/internal/domain/search/params"
	"github.com/kailas-cloud/companydex/internal/domain/search/sort"
)

// fakeTransport answers every request with handler and records what was sent.
type fakeTransport struct {
	mu       sync.Mutex
	handler  func(req *http.Request, body string) (int, string)
	err      error
	requests []recordedRequest
}

type recordedRequest struct {
	method string
	path   string
	query  string
	body   string
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body string
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		body = string(b)
	}

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		method: req.Method, path: req.URL.Path, query: req.URL.RawQuery, body: body,
	})
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	status, resp := f.handler(req, body)
	return &http.Response{
		StatusCode: status,
		Header: http.Header{
			"X-Elastic-Product": []string{"Elasticsearch"},
			"Content-Type":      []string{"application/json"},
		},
		Body:    io.NopCloser(strings.NewReader(resp)),
		Request: req,
	}, nil
}

func (f *fakeTransport) last() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func newTestStore(t *testing.T, handler func(req *http.Request, body string) (int, string)) (*Store, *fakeTransport) {
	t.Helper()
	ft := &fakeTransport{handler: handler}
	s, err := NewStore(Config{
		Addresses: []string{"http://es.test:9200"},
		Transport: ft,
	})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s, ft
}

func respond(status int, body string) func(*http.Request, string) (int, string) {
	return func(*http.Request, string) (int, string) { return status, body }
}

const (
	notFoundIndexBody = `{"error":{"type":"index_not_found_exception","reason":"no such index [companydex-companies]"},"status":404}`
	badRequestBody    = `{"error":{"type":"search_phase_execution_exception","reason":"No mapping found for [bogus] in order to sort on"},"status":400}`
)

// --- client.go tests ---

func TestNewStore_RequiresAddresses(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addresses")
	}
}

func TestPing_Success(t *testing.T) {
	s, _ := newTestStore(t, respond(http.StatusOK, `{}`))
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_TransportError(t *testing.T) {
	s, ft := newTestStore(t, nil)
	ft.err = errors.New("connection refused")

	err := s.Ping(context.Background())
	if !errors.Is(err, db.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestIndexName(t *testing.T) {
	s, _ := newTestStore(t, nil)
	if got := s.indexName("Companies"); got != "companydex-companies" {
		t.Errorf("indexName() = %q", got)
	}
}

// --- documents.go tests ---

func TestPutDocument(t *testing.T) {
	s, ft := newTestStore(t, respond(http.StatusCreated, `{"result":"created"}`))

	err := s.PutDocument(context.Background(), "companies", "c-1", []byte(`{"name":"Acme"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := ft.last()
	if req.method != http.MethodPut {
		t.Errorf("method = %s, want PUT", req.method)
	}
	if req.path != "/companydex-companies/_doc/c-1" {
		t.Errorf("path = %s", req.path)
	}
	if !strings.Contains(req.query, "refresh=wait_for") {
		t.Errorf("query = %s, want refresh=wait_for", req.query)
	}
	if req.body != `{"name":"Acme"}` {
		t.Errorf("body = %s", req.body)
	}
}

func TestGetDocument(t *testing.T) {
	s, ft := newTestStore(t, respond(http.StatusOK,
		`{"_index":"companydex-companies","_id":"c-1","found":true,"_source":{"name":"Acme"}}`))

	data, err := s.GetDocument(context.Background(), "companies", "c-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"name":"Acme"}` {
		t.Errorf("data = %s", data)
	}
	if p := ft.last().path; p != "/companydex-companies/_doc/c-1" {
		t.Errorf("path = %s", p)
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	s, _ := newTestStore(t, respond(http.StatusNotFound, `{"_id":"c-1","found":false}`))

	_, err := s.GetDocument(context.Background(), "companies", "c-1")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestDeleteDocument_NotFound(t *testing.T) {
	s, ft := newTestStore(t, respond(http.StatusNotFound, `{"result":"not_found"}`))

	err := s.DeleteDocument(context.Background(), "companies", "c-1")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
	if m := ft.last().method; m != http.MethodDelete {
		t.Errorf("method = %s, want DELETE", m)
	}
}

func TestDocumentExists(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{"present", http.StatusOK, true},
		{"absent", http.StatusNotFound, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t, respond(tt.status, ``))
			ok, err := s.DocumentExists(context.Background(), "companies", "c-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.want {
				t.Errorf("exists = %v, want %v", ok, tt.want)
			}
		})
	}
}

// --- index.go tests ---

func testIndex() *db.IndexDefinition {
	return db.NewIndex("companies").
		Tag("name", db.Sortable(), db.SuffixTrie()).
		Text("name", db.As("name_text")).
		Tag("industry", db.CaseSensitive()).
		Numeric("size", db.Sortable()).
		Tag("tags", db.Multi(), db.CaseSensitive()).
		Text("tags", db.As("tags_text"), db.Multi()).
		MustBuild()
}

func TestCreateIndex_Mapping(t *testing.T) {
	s, ft := newTestStore(t, respond(http.StatusOK, `{"acknowledged":true}`))

	if err := s.CreateIndex(context.Background(), testIndex()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := ft.last()
	if req.method != http.MethodPut || req.path != "/companydex-companies" {
		t.Fatalf("request = %s %s", req.method, req.path)
	}

	var body struct {
		Settings struct {
			Index struct {
				MaxResultWindow int `json:"max_result_window"`
			} `json:"index"`
		} `json:"settings"`
		Mappings struct {
			Properties map[string]map[string]any `json:"properties"`
		} `json:"mappings"`
	}
	if err := json.Unmarshal([]byte(req.body), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Settings.Index.MaxResultWindow != DefaultMaxResultWindow {
		t.Errorf("max_result_window = %d, want %d", body.Settings.Index.MaxResultWindow, DefaultMaxResultWindow)
	}
	props := body.Mappings.Properties

	if props["name"]["type"] != "keyword" || props["name"]["normalizer"] != "lowercase" {
		t.Errorf("name mapping = %v", props["name"])
	}
	if cp, _ := props["name"]["copy_to"].([]any); len(cp) != 1 || cp[0] != "name_text" {
		t.Errorf("name copy_to = %v", props["name"]["copy_to"])
	}
	if props["name_text"]["type"] != "text" {
		t.Errorf("name_text mapping = %v", props["name_text"])
	}
	if _, ok := props["industry"]["normalizer"]; ok {
		t.Errorf("case-sensitive tag must not be normalized: %v", props["industry"])
	}
	if props["size"]["type"] != "double" {
		t.Errorf("size mapping = %v", props["size"])
	}
	if cp, _ := props["tags"]["copy_to"].([]any); len(cp) != 1 || cp[0] != "tags_text" {
		t.Errorf("tags copy_to = %v", props["tags"]["copy_to"])
	}
}

func TestCreateIndex_AlreadyExists(t *testing.T) {
	s, _ := newTestStore(t, respond(http.StatusBadRequest,
		`{"error":{"type":"resource_already_exists_exception","reason":"index [companydex-companies] already exists"},"status":400}`))

	err := s.CreateIndex(context.Background(), testIndex())
	if !errors.Is(err, db.ErrIndexExists) {
		t.Errorf("expected ErrIndexExists, got %v", err)
	}
}

func TestCreateIndex_Invalid(t *testing.T) {
	s, ft := newTestStore(t, nil)
	if err := s.CreateIndex(context.Background(), &db.IndexDefinition{Collection: "companies"}); err == nil {
		t.Fatal("expected validation error")
	}
	if len(ft.requests) != 0 {
		t.Error("invalid definition should not reach the cluster")
	}
}

func TestDropIndex_NotFound(t *testing.T) {
	s, _ := newTestStore(t, respond(http.StatusNotFound, notFoundIndexBody))
	if err := s.DropIndex(context.Background(), "companies"); !errors.Is(err, db.ErrIndexNotFound) {
		t.Errorf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestIndexExists(t *testing.T) {
	s, ft := newTestStore(t, respond(http.StatusNotFound, ``))
	ok, err := s.IndexExists(context.Background(), "companies")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected false")
	}
	if req := ft.last(); req.method != http.MethodHead || req.path != "/companydex-companies" {
		t.Errorf("request = %s %s", req.method, req.path)
	}
}

// --- search.go tests ---

func TestFind(t *testing.T) {
	s, ft := newTestStore(t, respond(http.StatusOK, `{
		"hits": {"hits": [
			{"_id": "a", "_score": null, "_source": {"name": "A"}},
			{"_id": "b", "_score": 1.5, "_source": {"name": "B"}}
		]}
	}`))

	res, err := s.Find(context.Background(), &db.FindQuery{
		Collection: "companies",
		Filter:     filter.FromParams(params.Params{Industry: params.Ptr("Software")}),
		Sort:       sort.Parse(params.Ptr("-foundedYear,name")),
		Offset:     20,
		Limit:      10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(res.Entries))
	}
	if res.Entries[0].ID != "a" || string(res.Entries[0].Source) != `{"name": "A"}` {
		t.Errorf("entry[0] = %+v", res.Entries[0])
	}
	if res.Entries[1].Score != 1.5 {
		t.Errorf("entry[1].Score = %v", res.Entries[1].Score)
	}

	req := ft.last()
	if req.path != "/companydex-companies/_search" {
		t.Errorf("path = %s", req.path)
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(req.body), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["from"] != float64(20) || body["size"] != float64(10) {
		t.Errorf("from/size = %v/%v", body["from"], body["size"])
	}
	sortJSON, _ := json.Marshal(body["sort"])
	if string(sortJSON) != `[{"foundedYear":{"order":"desc"}},{"name":{"order":"asc"}}]` {
		t.Errorf("sort = %s", sortJSON)
	}
}

func TestFind_ErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind error
	}{
		{"bad sort field", http.StatusBadRequest, badRequestBody, db.ErrRejected},
		{"missing index", http.StatusNotFound, notFoundIndexBody, db.ErrIndexNotFound},
		{"cluster down", http.StatusServiceUnavailable, `{}`, db.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t, respond(tt.status, tt.body))
			_, err := s.Find(context.Background(), &db.FindQuery{Collection: "companies", Limit: 10})
			if !errors.Is(err, tt.wantKind) {
				t.Errorf("expected %v, got %v", tt.wantKind, err)
			}
		})
	}
}

func TestFind_ResultWindow(t *testing.T) {
	const window = 10000
	hits := respond(http.StatusOK, `{"hits":{"hits":[]}}`)

	tests := []struct {
		name     string
		offset   int
		limit    int
		wantSent bool
		wantSize float64
	}{
		{"inside window", 9000, 100, true, 100},
		{"straddles window", 9950, 100, true, 50},
		{"at window", window, 100, false, 0},
		{"far past window", 99_999_900, 100, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := &fakeTransport{handler: hits}
			s, err := NewStore(Config{
				Addresses:       []string{"http://es.test:9200"},
				MaxResultWindow: window,
				Transport:       ft,
			})
			if err != nil {
				t.Fatalf("NewStore: %v", err)
			}

			res, err := s.Find(context.Background(), &db.FindQuery{
				Collection: "companies",
				Offset:     tt.offset,
				Limit:      tt.limit,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Entries == nil || len(res.Entries) != 0 {
				t.Errorf("entries = %v, want empty", res.Entries)
			}

			if !tt.wantSent {
				if len(ft.requests) != 0 {
					t.Errorf("requests = %d, want none past the window", len(ft.requests))
				}
				return
			}
			var body map[string]any
			if err := json.Unmarshal([]byte(ft.last().body), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["from"] != float64(tt.offset) || body["size"] != tt.wantSize {
				t.Errorf("from/size = %v/%v, want %d/%v", body["from"], body["size"], tt.offset, tt.wantSize)
			}
		})
	}
}

func TestFind_Validation(t *testing.T) {
	s, _ := newTestStore(t, nil)
	if _, err := s.Find(context.Background(), &db.FindQuery{Limit: 10}); err == nil {
		t.Error("expected error for empty collection")
	}
	if _, err := s.Find(context.Background(), &db.FindQuery{Collection: "companies"}); err == nil {
		t.Error("expected error for zero limit")
	}
}

func TestCount(t *testing.T) {
	s, ft := newTestStore(t, respond(http.StatusOK, `{"count":25}`))

	n, err := s.Count(context.Background(), &db.CountQuery{Collection: "companies"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 25 {
		t.Errorf("count = %d, want 25", n)
	}
	req := ft.last()
	if req.path != "/companydex-companies/_count" {
		t.Errorf("path = %s", req.path)
	}
	if req.body != `{"query":{"match_all":{}}}` {
		t.Errorf("body = %s", req.body)
	}
}

func TestBuildQuery(t *testing.T) {
	textFields := []string{"name_text", "description"}
	tests := []struct {
		name string
		p    params.Params
		want string
	}{
		{"empty", params.Params{}, `{"match_all":{}}`},
		{
			"text",
			params.Params{Search: params.Ptr("cloud")},
			`{"bool":{"must":[{"multi_match":{"fields":["name_text","description"],"query":"cloud"}}]}}`,
		},
		{
			"pattern",
			params.Params{Name: params.Ptr("ac*me")},
			`{"bool":{"filter":[{"wildcard":{"name":{"case_insensitive":true,"value":"*ac\\*me*"}}}]}}`,
		},
		{
			"exact and tags",
			params.Params{Industry: params.Ptr("Software"), Tags: []string{"ai,b2b"}},
			`{"bool":{"filter":[{"term":{"industry":"Software"}},{"term":{"tags":"ai"}},{"term":{"tags":"b2b"}}]}}`,
		},
		{
			"open range",
			params.Params{SizeMin: params.Ptr("50"), SizeMax: params.Ptr("abc")},
			`{"bool":{"filter":[{"range":{"size":{"gte":50}}}]}}`,
		},
		{
			"inverted range kept literally",
			params.Params{FoundedFrom: params.Ptr("2020"), FoundedTo: params.Ptr("1990")},
			`{"bool":{"filter":[{"range":{"foundedYear":{"gte":2020,"lte":1990}}}]}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(buildQuery(filter.FromParams(tt.p), textFields))
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("buildQuery() = %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestBuildSort_Empty(t *testing.T) {
	if got := buildSort(sort.Spec{}); got != nil {
		t.Errorf("buildSort(empty) = %v, want nil", got)
	}
}
