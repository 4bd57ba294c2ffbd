package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestDoGetPrettyPrintsAndSendsToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"balance":"100"}`))
	}))
	defer server.Close()

	baseURL = server.URL
	timeout = 5 * time.Second
	token = "session-token"
	defer func() { token = "" }()

	out := captureOutput(t, func() {
		doGet("/api/v1/accounts/ACC001/balance")
	})

	if gotAuth != "Bearer session-token" {
		t.Fatalf("expected bearer token on request, got %q", gotAuth)
	}

	expected := "{\n  \"balance\": \"100\"\n}\n"
	if out != expected {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestDoPostSendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	baseURL = server.URL
	timeout = 5 * time.Second

	captureOutput(t, func() {
		doPost("/api/v1/ledger/deposit", map[string]any{
			"account_number": "ACC001",
			"amount":         "50",
		})
	})

	if gotContentType != "application/json" {
		t.Fatalf("expected json content type, got %q", gotContentType)
	}
	if gotBody["account_number"] != "ACC001" || gotBody["amount"] != "50" {
		t.Fatalf("unexpected request body: %+v", gotBody)
	}
}

func TestDoGetPrintsRawBodyWhenNotJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("plain text"))
	}))
	defer server.Close()

	baseURL = server.URL
	timeout = 5 * time.Second

	out := captureOutput(t, func() {
		doGet("/")
	})

	if out != "plain text\n" {
		t.Fatalf("expected raw body passthrough, got %q", out)
	}
}
