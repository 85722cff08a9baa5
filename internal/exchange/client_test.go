package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Rate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/test-key/pair/USD/EUR" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"result":"success","conversion_rate":0.92}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	rate, err := c.Rate(context.Background(), "USD", "EUR")
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if rate != 0.92 {
		t.Errorf("rate: got %v, want 0.92", rate)
	}
}

func TestClient_Rate_InvalidPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"result":"error","error-type":"unsupported-code"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	if _, err := c.Rate(context.Background(), "USD", "XXX"); err != ErrInvalidPair {
		t.Errorf("Rate: got %v, want ErrInvalidPair", err)
	}
}

func TestClient_Rate_MissingRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"success"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	if _, err := c.Rate(context.Background(), "USD", "EUR"); err == nil {
		t.Error("expected error for body without conversion_rate")
	}
}
