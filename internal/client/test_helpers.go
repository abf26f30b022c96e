package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fivetwenty-io/zayo-client/internal/auth"
	"github.com/fivetwenty-io/zayo-client/internal/cache"
	"github.com/fivetwenty-io/zayo-client/internal/constants"
	"github.com/fivetwenty-io/zayo-client/pkg/zayo"
)

// FakeZayo is an in-memory service-management API for tests. List routes
// honour filter equality and offset/limit paging; notification routes serve
// the configured headers and details.
type FakeZayo struct {
	*httptest.Server

	mu            sync.Mutex
	lists         map[string][]map[string]any
	shifted       map[string][]map[string]any
	notifications map[string][]zayo.Notification
	details       map[string]zayo.NotificationDetail
	requests      []string
}

// NewFakeZayo starts a fake API server closed on test cleanup.
func NewFakeZayo(t *testing.T) *FakeZayo {
	t.Helper()

	fake := &FakeZayo{
		lists:         make(map[string][]map[string]any),
		shifted:       make(map[string][]map[string]any),
		notifications: make(map[string][]zayo.Notification),
		details:       make(map[string]zayo.NotificationDetail),
	}

	fake.Server = httptest.NewServer(http.HandlerFunc(fake.serve))
	t.Cleanup(fake.Close)

	return fake
}

// AddRecords appends records, encoded through JSON, to a list route.
func (f *FakeZayo) AddRecords(route string, records ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, rec := range records {
		f.lists[route] = append(f.lists[route], toFields(rec))
	}
}

func toFields(rec any) map[string]any {
	raw, _ := json.Marshal(rec)

	var fields map[string]any

	_ = json.Unmarshal(raw, &fields)

	return fields
}

// InsertBeforeLaterPages simulates rows created while a listing is in
// flight: the count and the first page do not see them, every page with a
// non-zero skip sees them at the head of the route.
func (f *FakeZayo) InsertBeforeLaterPages(route string, records ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, rec := range records {
		f.shifted[route] = append(f.shifted[route], toFields(rec))
	}
}

// AddNotification registers a header under caseNumber and its detail.
func (f *FakeZayo) AddNotification(caseNumber string, detail zayo.NotificationDetail) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.notifications[caseNumber] = append(f.notifications[caseNumber], zayo.Notification{
		Name: detail.Name,
		Type: detail.Type,
		Date: detail.Date,
	})
	f.details[detail.Name] = detail
}

// Requests returns "METHOD path" for every request served.
func (f *FakeZayo) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.requests...)
}

// RequestsTo counts requests whose path starts with prefix.
func (f *FakeZayo) RequestsTo(method, prefix string) int {
	count := 0

	for _, req := range f.Requests() {
		if strings.HasPrefix(req, method+" /"+prefix) {
			count++
		}
	}

	return count
}

func (f *FakeZayo) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer test-token" {
		w.WriteHeader(http.StatusUnauthorized)

		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/")

	switch {
	case r.Method == http.MethodPost:
		f.serveList(w, r, path)
	case r.Method == http.MethodGet && strings.HasPrefix(path, "maintenance-cases/notifications/"):
		name, _ := url.PathUnescape(strings.TrimPrefix(path, "maintenance-cases/notifications/"))
		f.serveDetail(w, name)
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/notifications"):
		caseNumber, _ := url.PathUnescape(strings.TrimSuffix(strings.TrimPrefix(path, "maintenance-cases/"), "/notifications"))
		f.serveHeaders(w, caseNumber)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *FakeZayo) serveList(w http.ResponseWriter, r *http.Request, route string) {
	var req zayo.PageRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)

		return
	}

	f.mu.Lock()
	matched := make([]map[string]any, 0)
	source := f.lists[route]

	if req.Paging.Skip > 0 && len(f.shifted[route]) > 0 {
		source = append(slices.Clone(f.shifted[route]), source...)
	}

	for _, rec := range source {
		if matches(rec, req.Filter) {
			matched = append(matched, rec)
		}
	}
	f.mu.Unlock()

	page := make([]map[string]any, 0)

	if req.Paging.Top > 0 && req.Paging.Skip < len(matched) {
		end := min(req.Paging.Skip+req.Paging.Top, len(matched))
		page = matched[req.Paging.Skip:end]
	}

	writeJSON(w, map[string]any{
		"data": map[string]any{
			"metadata": map[string]any{"totalRecordCount": len(matched)},
			"records":  page,
		},
	})
}

func (f *FakeZayo) serveHeaders(w http.ResponseWriter, caseNumber string) {
	f.mu.Lock()
	headers := f.notifications[caseNumber]
	f.mu.Unlock()

	if headers == nil {
		headers = []zayo.Notification{}
	}

	writeJSON(w, map[string]any{"data": headers})
}

func (f *FakeZayo) serveDetail(w http.ResponseWriter, name string) {
	f.mu.Lock()
	detail, ok := f.details[name]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"notification not found"}`))

		return
	}

	writeJSON(w, map[string]any{"data": detail})
}

func matches(rec map[string]any, filter map[string]any) bool {
	for key, want := range filter {
		if fmt.Sprint(rec[key]) != fmt.Sprint(want) {
			return false
		}
	}

	return true
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

// NewTestClient creates a client against baseURL with a valid token and the
// given cache (nil disables caching).
func NewTestClient(baseURL string, store cache.Cache) *Client {
	config := zayo.DefaultConfig()
	config.BaseURL = baseURL
	config.PageTimeout = 5 * time.Second
	config.RetryMultiplier = time.Millisecond
	config.RetryMaxWait = 5 * time.Millisecond
	config = config.WithDefaults()

	tokenManager := auth.NewSingleShotTokenManager(&auth.Token{
		AccessToken: "test-token",
		TokenType:   "bearer",
		ExpiresAt:   time.Now().Add(time.Hour),
	})

	client := NewWithTokenManager(config, tokenManager, store)
	client.notificationConcurrency = constants.DefaultNotificationConcurrency

	return client
}
