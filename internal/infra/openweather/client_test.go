package openweather_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"patriot-buddy/internal/domain"
	"patriot-buddy/internal/infra/openweather"
)

func TestClient_Current(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "Paris" || q.Get("appid") != "k" || q.Get("units") != "imperial" {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"main":{"temp":72},"weather":[{"description":"clear sky"}],"name":"Paris","sys":{"country":"FR"}}`))
	}))
	defer server.Close()

	client := openweather.NewClientWithURL(server.URL, server.Client())

	w, err := client.Current(context.Background(), "Paris", "k")
	if err != nil {
		t.Fatalf("Current error: %v", err)
	}

	want := domain.Weather{Temp: 72, Condition: "clear sky", City: "Paris", Country: "FR"}
	if *w != want {
		t.Errorf("got %+v, want %+v", *w, want)
	}
}

func TestClient_CurrentNonOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := openweather.NewClientWithURL(server.URL, server.Client())

	_, err := client.Current(context.Background(), "Atlantis", "k")
	if !errors.Is(err, domain.ErrUpstreamStatus) {
		t.Fatalf("expected upstream status error, got %v", err)
	}
}

func TestClient_CurrentMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := openweather.NewClientWithURL(server.URL, server.Client())

	_, err := client.Current(context.Background(), "Paris", "k")
	if err == nil || errors.Is(err, domain.ErrUpstreamStatus) {
		t.Fatalf("expected decode error, got %v", err)
	}
}
