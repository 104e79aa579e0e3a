package updater

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewer(t *testing.T) {
	tests := []struct {
		tag, current string
		want         bool
	}{
		{"v0.2.0", "0.1.0", true},
		{"v0.10.0", "0.2.0", true},
		{"0.1.0", "v0.1.0", false},
		{"v0.1.0", "0.1.1", false},
		{"v1.0.0", "1.0.0-rc1", true},
	}
	for _, tt := range tests {
		got, err := Newer(tt.tag, tt.current)
		if err != nil {
			t.Fatalf("Newer(%q, %q): %v", tt.tag, tt.current, err)
		}
		if got != tt.want {
			t.Errorf("Newer(%q, %q) = %v, want %v", tt.tag, tt.current, got, tt.want)
		}
	}

	if _, err := Newer("nightly", "0.1.0"); err == nil {
		t.Error("expected an error for a non-version tag")
	}
}

func TestCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name":"v0.3.0","html_url":"https://example.com/r/v0.3.0"}`))
	}))
	defer srv.Close()

	c := &Checker{URL: srv.URL, Client: srv.Client()}
	rel, newer, err := c.Check(context.Background(), "0.1.0")
	if err != nil {
		t.Fatal(err)
	}
	if !newer || rel.TagName != "v0.3.0" || rel.HTMLURL != "https://example.com/r/v0.3.0" {
		t.Errorf("Check = %+v, %v", rel, newer)
	}

	_, newer, err = c.Check(context.Background(), "0.3.0")
	if err != nil || newer {
		t.Errorf("same version: newer=%v err=%v", newer, err)
	}
}

func TestCheckBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	c := &Checker{URL: srv.URL, Client: srv.Client()}
	if _, _, err := c.Check(context.Background(), "0.1.0"); err == nil {
		t.Error("expected an error for a non-200 response")
	}
}
