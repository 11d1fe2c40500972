package parcels

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newVendor(t *testing.T, handler http.HandlerFunc) *Checker {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewChecker(srv.URL, 2*time.Second)
}

func TestIsReady(t *testing.T) {
	c := newVendor(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("no"); got != "YT7519202938551" {
			t.Errorf("track query = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":"0000","msg":"入库"}`))
	})

	ready, err := c.IsReady(context.Background(), "YT7519202938551")
	if err != nil {
		t.Fatalf("IsReady: %v", err)
	}
	if !ready {
		t.Fatal("ready = false, want true")
	}
}

func TestIsReadyNotArrived(t *testing.T) {
	c := newVendor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"1001","msg":"not found"}`))
	})

	ready, err := c.IsReady(context.Background(), "YT000000000001")
	if err != nil {
		t.Fatalf("IsReady: %v", err)
	}
	if ready {
		t.Fatal("ready = true, want false")
	}
}

func TestIsReadyVendorErrors(t *testing.T) {
	t.Run("http status", func(t *testing.T) {
		c := newVendor(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		if _, err := c.IsReady(context.Background(), "YT1"); err == nil {
			t.Fatal("expected error on 502")
		}
	})

	t.Run("bad json", func(t *testing.T) {
		c := newVendor(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>gateway timeout</html>`))
		})
		if _, err := c.IsReady(context.Background(), "YT1"); err == nil {
			t.Fatal("expected error on non-JSON body")
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		c := NewChecker(srv.URL, 500*time.Millisecond)
		if _, err := c.IsReady(context.Background(), "YT1"); err == nil {
			t.Fatal("expected error on closed server")
		}
	})
}

func TestTrackCodeIsEscaped(t *testing.T) {
	var gotRaw string
	c := newVendor(t, func(w http.ResponseWriter, r *http.Request) {
		gotRaw = r.URL.RawQuery
		w.Write([]byte(`{"code":"1001","msg":""}`))
	})

	if _, err := c.IsReady(context.Background(), "a b&c"); err != nil {
		t.Fatalf("IsReady: %v", err)
	}
	if gotRaw != "no=a+b%26c" {
		t.Fatalf("raw query = %q", gotRaw)
	}
}
