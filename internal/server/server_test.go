package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seatplan/pkg/buildinfo"
	"github.com/matzehuels/seatplan/pkg/cache"
	"github.com/matzehuels/seatplan/pkg/observability"
	"github.com/matzehuels/seatplan/pkg/pipeline"
)

const examTOML = `
[exam]
title = "Midterm"
subject = "Biology"
start = 2026-03-02T10:00:00Z
student_count = 10

[setup]
rooms = ["North", "South"]
columns_per_room = 4

[supervision]
invigilators = ["Lin"]
`

const examJSON = `{
  "exam": {"title": "Midterm", "subject": "Biology", "student_count": 10},
  "setup": {"rooms": ["North", "South"]},
  "supervision": {"invigilators": ["Lin"]}
}`

func newTestHandler() http.Handler {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewMemoryCache(), cache.NewScopedKeyer(nil, "api:"), logger)
	runner.Now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	return New(runner, Config{}, logger).Router()
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newTestHandler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/toml", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" || body["version"] != buildinfo.Get().Version {
		t.Errorf("healthz = %d %v", resp.StatusCode, body)
	}
}

func TestSeatPlanFormats(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		query       string
		contentType string
		prefix      string
	}{
		{"", "application/pdf", "%PDF-"},
		{"?format=svg", "image/svg+xml", "<svg"},
		{"?format=json", "application/json", "{"},
		{"?format=text", "text/plain; charset=utf-8", ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := post(t, srv, "/v1/seat-plan"+tt.query, examTOML)
			body := readBody(t, resp)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %s", resp.StatusCode, body)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if !bytes.HasPrefix(body, []byte(tt.prefix)) {
				t.Errorf("body starts with %q, want %q", body[:min(10, len(body))], tt.prefix)
			}
			if !strings.Contains(resp.Header.Get("Content-Disposition"), "Seat_Plan_Biology_2026-03-02") {
				t.Errorf("Content-Disposition = %q", resp.Header.Get("Content-Disposition"))
			}
		})
	}
}

func TestSeatPlanCacheHeader(t *testing.T) {
	srv := newTestServer(t)
	first := post(t, srv, "/v1/seat-plan?format=svg", examTOML)
	if got := first.Header.Get("X-Cache"); got != "miss" {
		t.Errorf("first X-Cache = %q, want miss", got)
	}
	second := post(t, srv, "/v1/seat-plan?format=svg", examTOML)
	if got := second.Header.Get("X-Cache"); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
	third := post(t, srv, "/v1/seat-plan?format=svg&refresh=true", examTOML)
	if got := third.Header.Get("X-Cache"); got != "miss" {
		t.Errorf("refresh X-Cache = %q, want miss", got)
	}
}

func TestDutyRosterJSONBody(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/duty-roster?format=txt", examJSON)
	body := string(readBody(t, resp))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	for _, want := range []string{"Duty Roster", "North", "South", "Lin"} {
		if !strings.Contains(body, want) {
			t.Errorf("roster missing %q:\n%s", want, body)
		}
	}
}

func TestNotReady(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/seat-plan", `[exam]
title = "Empty"
student_count = 0
[setup]
rooms = ["A"]
`)
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
	if body.Error != "NOT_READY" || body.Reason == "" {
		t.Errorf("body = %+v", body)
	}
}

func TestBadRequests(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name string
		path string
		body string
		code string
	}{
		{"empty body", "/v1/seat-plan", "", "INVALID_INPUT"},
		{"bad toml", "/v1/seat-plan", "[exam\n", "INVALID_INPUT"},
		{"negative students", "/v1/seat-plan", "[exam]\nstudent_count = -3\n", "INVALID_STUDENT_COUNT"},
		{"bad format", "/v1/seat-plan?format=docx", examTOML, "INVALID_FORMAT"},
		{"bad page size", "/v1/seat-plan?page_size=B5", examTOML, "INVALID_PAGE_SIZE"},
		{"bad margin", "/v1/seat-plan?margin=wide", examTOML, "INVALID_INPUT"},
		{"bad kind", "/v1/preview?kind=report", examTOML, "INVALID_KIND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, tt.path, tt.body)
			var body errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if body.Error != tt.code {
				t.Errorf("error = %q, want %q (%s)", body.Error, tt.code, body.Message)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/preview?kind=roster", examTOML)
	var body struct {
		Kind   string `json:"kind"`
		Ready  bool   `json:"ready"`
		Roster struct {
			Rows []struct {
				Room        string `json:"room"`
				Invigilator string `json:"invigilator"`
				Seats       int    `json:"seats"`
			} `json:"rows"`
		} `json:"roster"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if !body.Ready || body.Kind != "duty-roster" || len(body.Roster.Rows) != 2 {
		t.Fatalf("preview = %+v", body)
	}
	if body.Roster.Rows[1].Invigilator != "Lin" || body.Roster.Rows[0].Seats != 5 {
		t.Errorf("rows = %+v", body.Roster.Rows)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	h := newTestHandler()
	for _, format := range []string{"json", "gif"} {
		req := httptest.NewRequest(http.MethodPost, "/v1/seat-plan?format="+format, strings.NewReader(examTOML))
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.statuses) != 2 || hooks.statuses[0] != 200 || hooks.statuses[1] != 400 {
		t.Errorf("statuses = %v, want [200 400]", hooks.statuses)
	}
}

func TestOverflowHeader(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/v1/seat-plan?format=svg", examTOML)
	if got := resp.Header.Get("X-Overflow"); got != "" {
		t.Errorf("X-Overflow = %q for rooms that fit", got)
	}

	crowded := strings.Replace(examTOML, "student_count = 10", "student_count = 800", 1)
	for _, want := range []string{"miss", "hit"} {
		resp := post(t, srv, "/v1/seat-plan?format=svg", crowded)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		if got := resp.Header.Get("X-Overflow"); got != "2" {
			t.Errorf("X-Overflow = %q on cache %s, want 2", got, want)
		}
		if got := resp.Header.Get("X-Cache"); got != want {
			t.Errorf("X-Cache = %q, want %q", got, want)
		}
	}
}
