package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCurrent_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("q"); got != "London,GB" {
			t.Errorf("q = %q, want London,GB", got)
		}
		if got := q.Get("units"); got != "metric" {
			t.Errorf("units = %q, want metric", got)
		}
		if got := q.Get("appid"); got != "test-key" {
			t.Errorf("appid = %q, want test-key", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"main": {"temp": 17.3, "humidity": 64},
			"weather": [{"main": "Rain", "description": "light rain"}]
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, time.Second)
	reading, err := client.Current(context.Background(), "London", "GB")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.Temperature != 17.3 {
		t.Errorf("temperature = %v, want 17.3", reading.Temperature)
	}
	if reading.Humidity != 64 {
		t.Errorf("humidity = %v, want 64", reading.Humidity)
	}
	if reading.Condition != "light rain" {
		t.Errorf("condition = %q, want light rain", reading.Condition)
	}
}

func TestCurrent_NonOKStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusUnauthorized, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := NewClient("test-key", srv.URL, time.Second)
		reading, err := client.Current(context.Background(), "Nowhere", "XX")
		if err == nil {
			t.Errorf("status %d should yield an error", status)
		}
		if reading != nil {
			t.Errorf("status %d should yield a nil reading", status)
		}
		srv.Close()
	}
}

func TestCurrent_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, time.Second)
	if _, err := client.Current(context.Background(), "London", "GB"); err == nil {
		t.Error("malformed body should yield an error")
	}
}

func TestCurrent_MissingConditionFallsBackToMain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"main":{"temp":1,"humidity":2},"weather":[{"main":"Clouds"}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, time.Second)
	reading, err := client.Current(context.Background(), "Paris", "FR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.Condition != "Clouds" {
		t.Errorf("condition = %q, want Clouds", reading.Condition)
	}
}
