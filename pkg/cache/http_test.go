package cache

import (
	"bytes"
	"io"
	"net/http"
	"testing"
	"time"
)

func TestResponseToEntry(t *testing.T) {
	tests := []struct {
		name    string
		resp    *http.Response
		wantErr bool
	}{
		{
			name: "valid response with all headers",
			resp: &http.Response{
				StatusCode: 200,
				Header: http.Header{
					"Expires":       []string{time.Now().Add(1 * time.Hour).Format(http.TimeFormat)},
					"Last-Modified": []string{time.Now().Add(-1 * time.Hour).Format(http.TimeFormat)},
					"ETag":          []string{`"abc123"`},
					"Content-Type":  []string{"application/json"},
				},
				Body: io.NopCloser(bytes.NewReader([]byte(`{"id": 1}`))),
			},
			wantErr: false,
		},
		{
			name: "response without caching headers",
			resp: &http.Response{
				StatusCode: 200,
				Header: http.Header{
					"Content-Type": []string{"application/json"},
				},
				Body: io.NopCloser(bytes.NewReader([]byte(`{"id": 1}`))),
			},
			wantErr: false,
		},
		{
			name:    "nil response",
			resp:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := ResponseToEntry(tt.resp)
			if (err != nil) != tt.wantErr {
				t.Errorf("ResponseToEntry() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			if entry == nil {
				t.Fatal("ResponseToEntry() returned nil entry")
			}

			body, _ := io.ReadAll(tt.resp.Body)
			if len(body) == 0 {
				t.Error("Response body was not restored")
			}

			if entry.StatusCode != tt.resp.StatusCode {
				t.Errorf("StatusCode = %v, want %v", entry.StatusCode, tt.resp.StatusCode)
			}

			if entry.ETag != tt.resp.Header.Get("ETag") {
				t.Errorf("ETag = %v, want %v", entry.ETag, tt.resp.Header.Get("ETag"))
			}

			if entry.Expires.IsZero() {
				t.Error("Expires time was not set")
			}
		})
	}
}

func TestParseExpires(t *testing.T) {
	now := time.Now()
	futureTime := now.Add(1 * time.Hour)
	pastTime := now.Add(-1 * time.Hour)
	tolerance := 2 * time.Second

	tests := []struct {
		name    string
		headers http.Header
		want    time.Time
	}{
		{
			name:    "valid expires header",
			headers: http.Header{"Expires": []string{futureTime.Format(http.TimeFormat)}},
			want:    futureTime,
		},
		{
			name:    "no caching headers",
			headers: http.Header{},
			want:    now.Add(DefaultTTL),
		},
		{
			name:    "invalid expires header",
			headers: http.Header{"Expires": []string{"not a valid date"}},
			want:    now.Add(DefaultTTL),
		},
		{
			name:    "expires in the past",
			headers: http.Header{"Expires": []string{pastTime.Format(http.TimeFormat)}},
			want:    now,
		},
		{
			name:    "max-age wins over expires",
			headers: http.Header{
				"Cache-Control": []string{"public, max-age=86400"},
				"Expires":       []string{pastTime.Format(http.TimeFormat)},
			},
			want: now.Add(24 * time.Hour),
		},
		{
			name:    "no-cache is immediately stale",
			headers: http.Header{"Cache-Control": []string{"no-cache"}},
			want:    now,
		},
		{
			name:    "invalid max-age falls through",
			headers: http.Header{"Cache-Control": []string{"max-age=soon"}},
			want:    now.Add(DefaultTTL),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseExpires(tt.headers)
			diff := got.Sub(tt.want)
			if diff < -tolerance || diff > tolerance {
				t.Errorf("ParseExpires() = %v, want approximately %v (diff: %v)", got, tt.want, diff)
			}
		})
	}
}

func TestIsCacheable(t *testing.T) {
	tests := []struct {
		name string
		resp *http.Response
		want bool
	}{
		{name: "nil", resp: nil, want: false},
		{name: "ok", resp: &http.Response{StatusCode: 200, Header: http.Header{}}, want: true},
		{name: "not found", resp: &http.Response{StatusCode: 404, Header: http.Header{}}, want: false},
		{
			name: "no-store",
			resp: &http.Response{StatusCode: 200, Header: http.Header{"Cache-Control": []string{"private, No-Store"}}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCacheable(tt.resp); got != tt.want {
				t.Errorf("IsCacheable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldMakeConditionalRequest(t *testing.T) {
	tests := []struct {
		name  string
		entry *CacheEntry
		want  bool
	}{
		{name: "nil entry", entry: nil, want: false},
		{name: "entry with ETag", entry: &CacheEntry{ETag: `"abc123"`}, want: true},
		{name: "entry with Last-Modified", entry: &CacheEntry{LastModified: time.Now()}, want: true},
		{name: "entry without validators", entry: &CacheEntry{Data: []byte("data")}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldMakeConditionalRequest(tt.entry); got != tt.want {
				t.Errorf("ShouldMakeConditionalRequest() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddConditionalHeaders(t *testing.T) {
	tests := []struct {
		name       string
		entry      *CacheEntry
		wantHeader string
		wantValue  string
	}{
		{
			name:       "add If-None-Match with ETag",
			entry:      &CacheEntry{ETag: `"abc123"`},
			wantHeader: "If-None-Match",
			wantValue:  `"abc123"`,
		},
		{
			name:       "add If-Modified-Since with Last-Modified",
			entry:      &CacheEntry{LastModified: time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)},
			wantHeader: "If-Modified-Since",
			wantValue:  "Sun, 01 Jan 2023 12:00:00 GMT",
		},
		{
			name: "prefer ETag over Last-Modified",
			entry: &CacheEntry{
				ETag:         `"abc123"`,
				LastModified: time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC),
			},
			wantHeader: "If-None-Match",
			wantValue:  `"abc123"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "https://pokeapi.co/api/v2/pokemon/1", nil)
			AddConditionalHeaders(req, tt.entry)

			if got := req.Header.Get(tt.wantHeader); got != tt.wantValue {
				t.Errorf("Header %s = %v, want %v", tt.wantHeader, got, tt.wantValue)
			}
		})
	}
}

func TestAddConditionalHeaders_NilInputs(t *testing.T) {
	// Should not panic with nil inputs
	AddConditionalHeaders(nil, &CacheEntry{ETag: "test"})
	AddConditionalHeaders(&http.Request{}, nil)
}

func TestEntryToResponse(t *testing.T) {
	entry := &CacheEntry{
		Data:       []byte(`{"id": 25, "name": "pikachu"}`),
		StatusCode: http.StatusOK,
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
	}
	req, _ := http.NewRequest("GET", "https://pokeapi.co/api/v2/pokemon/25", nil)

	resp := EntryToResponse(entry, req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Cache") != "HIT" {
		t.Errorf("X-Cache = %q, want HIT", resp.Header.Get("X-Cache"))
	}
	if entry.Headers.Get("X-Cache") != "" {
		t.Error("EntryToResponse mutated the entry headers")
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != string(entry.Data) {
		t.Errorf("Body = %s, want %s", body, entry.Data)
	}
	if resp.Request != req {
		t.Error("Request not attached to response")
	}
}

func TestEntryToResponse_Defaults(t *testing.T) {
	resp := EntryToResponse(&CacheEntry{Data: []byte("{}")}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if resp.Header == nil {
		t.Error("Header should be initialized")
	}
}
