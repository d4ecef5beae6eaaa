package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoJSON_SendsHeadersAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/echo" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "k" || r.Header.Get("X-Extra") != "e" {
			t.Errorf("missing headers: %v", r.Header)
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["msg"]})
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/", 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	c.Headers["X-Api-Key"] = "k"

	var out map[string]string
	err = c.DoJSON(context.Background(), http.MethodPost, "v1/echo", map[string]string{"X-Extra": "e"}, map[string]string{"msg": "hola"}, &out)
	if err != nil {
		t.Fatalf("DoJSON error: %v", err)
	}
	if out["echo"] != "hola" {
		t.Fatalf("unexpected body: %v", out)
	}
}

func TestDoJSON_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, _ := New(srv.URL, 0)
	err := c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	if StatusCode(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(" ", 0); err == nil {
		t.Fatalf("expected error")
	}
}
