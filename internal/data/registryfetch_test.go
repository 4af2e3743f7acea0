package data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchRegistryParsesSuccessfulResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"stations":[{"station_id":"A","capacity":10}]}}`))
	}))
	defer srv.Close()

	client := NewRegistryClient(srv.URL)
	reg, err := client.FetchRegistry(context.Background(), "/registry")
	if err != nil {
		t.Fatalf("FetchRegistry: %v", err)
	}
	if reg.Len() != 1 || reg.Index("A") != 0 {
		t.Fatalf("unexpected registry: %+v", reg)
	}
}

func TestFetchRegistryNonOKStatusReturnsTypedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewRegistryClient(srv.URL)
	_, err := client.FetchRegistry(context.Background(), "/registry")
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
	regErr, ok := err.(*RegistryError)
	if !ok {
		t.Fatalf("error type = %T, want *RegistryError", err)
	}
	if regErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("StatusCode = %d, want 500", regErr.StatusCode)
	}
}
