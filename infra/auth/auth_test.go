package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetTokenAndSetAuthHeader(t *testing.T) {
	// Simple OAuth2 token endpoint returning a static token
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"token123","token_type":"bearer","expires_in":3600}`))
	}))
	defer server.Close()

	cfg := Conf{ClientID: "id", ClientSecret: "secret", AuthURL: server.URL}
	client := NewClientCred(cfg)

	token, err := client.GetToken()
	if err != nil {
		t.Fatalf("GetToken returned error: %v", err)
	}
	if token != "token123" {
		t.Fatalf("unexpected token %s", token)
	}

	// A still-valid token is served from the cache.
	if _, err := client.GetToken(); err != nil {
		t.Fatalf("cached GetToken returned error: %v", err)
	}
	if hits != 1 {
		t.Fatalf("expected 1 token request, got %d", hits)
	}

	req, _ := http.NewRequest("GET", "http://example.com", nil)
	if err := client.SetAuthHeader(req); err != nil {
		t.Fatalf("SetAuthHeader returned error: %v", err)
	}
	if auth := req.Header.Get("Authorization"); auth == "" {
		t.Fatalf("Authorization header not set")
	}

	if _, err := client.ForceRefresh(); err != nil {
		t.Fatalf("ForceRefresh returned error: %v", err)
	}
	if hits != 2 {
		t.Fatalf("expected refresh to hit the endpoint, got %d requests", hits)
	}
}

func TestConfValidate(t *testing.T) {
	full := Conf{ClientID: "id", ClientSecret: "secret", AuthURL: "https://auth.example"}
	if err := full.Validate(); err != nil {
		t.Fatalf("valid conf rejected: %v", err)
	}
	for _, c := range []Conf{
		{ClientSecret: "secret", AuthURL: "https://auth.example"},
		{ClientID: "id", AuthURL: "https://auth.example"},
		{ClientID: "id", ClientSecret: "secret"},
	} {
		if err := c.Validate(); err == nil {
			t.Fatalf("expected error for %+v", c)
		}
	}
}
