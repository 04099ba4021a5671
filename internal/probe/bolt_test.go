package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/can-bmu/restaurant-monitor/internal/fetch"
	"github.com/can-bmu/restaurant-monitor/internal/models"
)

const boltStorefrontURL = "https://food.bolt.eu/ro-RO/325-bucharest/p/53203-some-slug"

func newTestClient(t *testing.T) *fetch.Client {
	t.Helper()
	client, err := fetch.New(5 * time.Second)
	if err != nil {
		t.Fatalf("creating fetch client: %v", err)
	}
	return client
}

func TestBoltMatches(t *testing.T) {
	b := NewBolt(newTestClient(t))
	if !b.Matches(boltStorefrontURL) {
		t.Error("expected bolt probe to match a bolt.eu URL")
	}
	if b.Matches("https://wolt.com/en/rou/bucharest/restaurant/x") {
		t.Error("bolt probe must not match a wolt.com URL")
	}
}

func TestBoltOpenWhenAnyFlagSet(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"data":{"available_for_delivery":true,"available_for_scheduled_pickup":true}}`))
	}))
	defer srv.Close()

	b := NewBolt(newTestClient(t))
	b.BaseURL = srv.URL

	v, ok := b.Check(context.Background(), boltStorefrontURL)
	if !ok {
		t.Fatal("expected a verdict")
	}
	if v.Status != models.StatusOpen {
		t.Fatalf("status = %s, want open (reason %q)", v.Status, v.Reason)
	}
	if v.Source != models.SourceAPI {
		t.Errorf("source = %s, want api", v.Source)
	}
	if !strings.Contains(v.Reason, "delivery") || !strings.Contains(v.Reason, "scheduled pickup") {
		t.Errorf("reason %q should list the true flags", v.Reason)
	}

	if got := gotQuery["provider_id"]; len(got) != 1 || got[0] != "53203" {
		t.Errorf("provider_id = %v, want [53203]", got)
	}
	if got := gotQuery["deviceId"]; len(got) != 1 || got[0] == "" {
		t.Errorf("deviceId missing from query: %v", gotQuery)
	}
}

func TestBoltClosedUsesOperatorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"snackbar":{"message":"Deschide la 10:00"}}}`))
	}))
	defer srv.Close()

	b := NewBolt(newTestClient(t))
	b.BaseURL = srv.URL

	v, ok := b.Check(context.Background(), boltStorefrontURL)
	if !ok {
		t.Fatal("expected a verdict")
	}
	if v.Status != models.StatusClosed {
		t.Fatalf("status = %s, want closed", v.Status)
	}
	if !strings.Contains(v.Reason, "Deschide la 10:00") {
		t.Errorf("reason %q should carry the operator message", v.Reason)
	}
}

func TestBoltClosedGenericReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	b := NewBolt(newTestClient(t))
	b.BaseURL = srv.URL

	v, ok := b.Check(context.Background(), boltStorefrontURL)
	if !ok {
		t.Fatal("expected a verdict")
	}
	if v.Status != models.StatusClosed || v.Reason == "" {
		t.Fatalf("got %+v, want closed with non-empty reason", v)
	}
}

func TestBoltDeclines(t *testing.T) {
	t.Run("no provider id in url", func(t *testing.T) {
		b := NewBolt(newTestClient(t))
		b.BaseURL = "http://127.0.0.1:1" // must not be contacted
		if _, ok := b.Check(context.Background(), "https://food.bolt.eu/ro-RO/325-bucharest/info"); ok {
			t.Fatal("expected decline for URL without provider id")
		}
	})

	t.Run("http error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		b := NewBolt(newTestClient(t))
		b.BaseURL = srv.URL
		if _, ok := b.Check(context.Background(), boltStorefrontURL); ok {
			t.Fatal("expected decline on HTTP 500")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>challenge page</html>`))
		}))
		defer srv.Close()

		b := NewBolt(newTestClient(t))
		b.BaseURL = srv.URL
		if _, ok := b.Check(context.Background(), boltStorefrontURL); ok {
			t.Fatal("expected decline on malformed JSON")
		}
	})

	t.Run("unreachable api", func(t *testing.T) {
		b := NewBolt(newTestClient(t))
		b.BaseURL = "http://127.0.0.1:1"
		if _, ok := b.Check(context.Background(), boltStorefrontURL); ok {
			t.Fatal("expected decline on transport error")
		}
	})
}
