package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Task{{ID: "t1", Title: "demo"}})
	}))
	defer ts.Close()

	api, err := New(ts.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	tasks, err := api.ListTasks(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("ListTasks returned error: %v", err)
	}
	if gotAuth != "Bearer token-abc" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if len(tasks) != 1 || tasks[0].ID != "t1" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
}

func TestClientExtractsNestedErrorMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"Task not found"}}`))
	}))
	defer ts.Close()

	api, err := New(ts.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = api.UpdateTask(context.Background(), "token", "missing", TaskInput{})
	apiErr, ok := err.(APIError)
	if !ok {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Message != "Task not found" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestClientExtractsFlatErrorMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}))
	defer ts.Close()

	api, err := New(ts.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = api.Login(context.Background(), "a@example.com", "wrong")
	apiErr, ok := err.(APIError)
	if !ok {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "invalid credentials" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}

func TestNewNormalizesBaseURL(t *testing.T) {
	api, err := New("localhost:5000/")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if api.baseURL != "http://localhost:5000" {
		t.Fatalf("unexpected base url %q", api.baseURL)
	}

	api, err = New("")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if api.baseURL != "http://localhost:5000" {
		t.Fatalf("expected default base url, got %q", api.baseURL)
	}
}
