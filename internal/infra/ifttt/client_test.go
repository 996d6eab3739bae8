package ifttt_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"patriot-buddy/internal/domain"
	"patriot-buddy/internal/infra/ifttt"
)

func TestClient_SetLights(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		paths = append(paths, r.URL.Path)
		w.Write([]byte("Congratulations! You've fired the event"))
	}))
	defer server.Close()

	client := ifttt.NewClientWithURL("k3y", "", "", server.URL, server.Client())

	if err := client.SetLights(context.Background(), true); err != nil {
		t.Fatalf("SetLights(true) error: %v", err)
	}
	if err := client.SetLights(context.Background(), false); err != nil {
		t.Fatalf("SetLights(false) error: %v", err)
	}

	want := []string{"/trigger/PLUGON/with/key/k3y", "/trigger/PLUGOFF/with/key/k3y"}
	if len(paths) != len(want) {
		t.Fatalf("got %d requests, want %d", len(paths), len(want))
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("request %d: got %s, want %s", i, paths[i], want[i])
		}
	}
}

func TestClient_SetLightsNonOK(t *testing.T) {
	for _, status := range []int{http.StatusCreated, http.StatusUnauthorized, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := ifttt.NewClientWithURL("k3y", "ON", "OFF", server.URL, server.Client())
		err := client.SetLights(context.Background(), true)
		server.Close()

		if !errors.Is(err, domain.ErrUpstreamStatus) {
			t.Errorf("status %d: expected upstream status error, got %v", status, err)
		}
	}
}

func TestClient_MissingKey(t *testing.T) {
	client := ifttt.NewClientWithURL("", "", "", "http://127.0.0.1:0", nil)

	if err := client.SetLights(context.Background(), true); err == nil {
		t.Fatal("expected error without key")
	}
}
