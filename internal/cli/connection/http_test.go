package connection

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewHTTPClient_PrefixesScheme(t *testing.T) {
	if got := NewHTTPClient("localhost:5080").BaseURL(); got != "http://localhost:5080" {
		t.Fatalf("BaseURL = %q", got)
	}
	if got := NewHTTPClient("https://example.com").BaseURL(); got != "https://example.com" {
		t.Fatalf("BaseURL = %q", got)
	}
}

func TestPost_SendsJSONBody(t *testing.T) {
	var gotBody map[string]any
	var gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	resp, err := client.Post(context.Background(), "/v1/set", map[string]any{"key": 1})
	if err != nil {
		t.Fatalf("Post: %v", err)
	}

	var out struct {
		Success bool `json:"success"`
	}
	if err := ParseResponse(resp, &out); err != nil {
		t.Fatalf("ParseResponse: %v", err)
	}
	if !out.Success {
		t.Fatalf("response not parsed")
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q", gotContentType)
	}
	if gotBody["key"] != float64(1) {
		t.Fatalf("body = %v", gotBody)
	}
}

func TestParseResponse_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"disk on fire"}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	resp, err := client.Get(context.Background(), "/v1/get")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	err = ParseResponse(resp, nil)
	if err == nil {
		t.Fatalf("expected error for 500 response")
	}
	if err.Error() != "disk on fire" {
		t.Fatalf("error = %q, want server message", err)
	}
}

func TestParseResponse_ErrorStatusWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	resp, err := client.Get(context.Background(), "/")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if err := ParseResponse(resp, nil); err == nil {
		t.Fatalf("expected error for 502 response")
	}
}
