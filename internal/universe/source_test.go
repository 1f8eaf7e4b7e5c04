package universe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

const screenerBody = `{
  "finance": {
    "result": [
      {
        "quotes": [
          {"symbol": "AAPL"},
          {"symbol": "MSFT"},
          {"symbol": ""}
        ]
      }
    ]
  }
}`

func TestHTTPSource_Constituents(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(screenerBody))
	}))
	defer srv.Close()

	s := NewHTTPSource(srv.URL, 2000, 5*time.Second)
	symbols, err := s.Constituents(context.Background(), "sp500")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"AAPL", "MSFT"}
	if !reflect.DeepEqual(symbols, want) {
		t.Errorf("got %v, want %v", symbols, want)
	}
	if gotQuery["scrIds"][0] != "sp500" {
		t.Errorf("scrIds %v", gotQuery["scrIds"])
	}
	if gotQuery["count"][0] != "2000" {
		t.Errorf("count %v", gotQuery["count"])
	}
}

func TestHTTPSource_UnexpectedShapeIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"something":"else"}`))
	}))
	defer srv.Close()

	s := NewHTTPSource(srv.URL, 2000, 5*time.Second)
	if _, err := s.Constituents(context.Background(), "sp500"); err == nil {
		t.Error("expected error for unexpected response shape")
	}
}

func TestHTTPSource_HTTPErrorIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewHTTPSource(srv.URL, 2000, 5*time.Second)
	if _, err := s.Constituents(context.Background(), "sp500"); err == nil {
		t.Error("expected error for non-2xx status")
	}
}
