package counter

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		want   int
	}{
		{
			name:   "no cookie",
			cookie: "",
			want:   0,
		},
		{
			name:   "empty value",
			cookie: "visits=",
			want:   0,
		},
		{
			name:   "non-numeric",
			cookie: "visits=abc",
			want:   0,
		},
		{
			name:   "numeric prefix",
			cookie: "visits=12abc",
			want:   0,
		},
		{
			name:   "negative",
			cookie: "visits=-3",
			want:   0,
		},
		{
			name:   "zero",
			cookie: "visits=0",
			want:   0,
		},
		{
			name:   "valid",
			cookie: "visits=5",
			want:   5,
		},
		{
			name:   "other cookies present",
			cookie: "session=xyz; visits=42",
			want:   42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.Header.Set("Cookie", tt.cookie)
			}
			if got := Read(req); got != tt.want {
				t.Errorf("Read() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, 7)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].Name != CookieName || cookies[0].Value != "7" {
		t.Fatalf("unexpected cookie %s=%s", cookies[0].Name, cookies[0].Value)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	if got := Read(req); got != 7 {
		t.Errorf("round trip Read() = %d, want 7", got)
	}
}

func TestWriteSetsNoAttributes(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, 1)

	c := rec.Result().Cookies()[0]
	if c.Path != "" || c.Domain != "" || !c.Expires.IsZero() || c.MaxAge != 0 {
		t.Errorf("cookie should carry no explicit attributes, got %+v", c)
	}
}
