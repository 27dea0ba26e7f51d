package praktikum

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homework_status_bot/internal/domain/homework"
)

func TestClient_FetchSendsCursorAndToken(t *testing.T) {
	var gotAuth, gotFrom string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		gotAuth = r.Header.Get("Authorization")
		gotFrom = r.URL.Query().Get("from_date")
		_, _ = io.WriteString(w, `{"homeworks":[{"homework_name":"hw","status":"reviewing"}],"current_date":1700000100}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", time.Second)
	snap, err := c.Fetch(context.Background(), 1700000000)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if gotAuth != "OAuth secret" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "OAuth secret")
	}
	if gotFrom != "1700000000" {
		t.Errorf("from_date = %q, want 1700000000", gotFrom)
	}
	rec, ok := snap.Latest()
	if !ok || rec.StatusCode() != homework.StatusReviewing {
		t.Errorf("Latest() = %+v, %v", rec, ok)
	}
	if cur, _ := snap.NextCursor(); cur != 1700000100 {
		t.Errorf("NextCursor() = %d, want 1700000100", cur)
	}
}

func TestClient_FetchZeroCursorUsesNow(t *testing.T) {
	var gotFrom string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFrom = r.URL.Query().Get("from_date")
		_, _ = io.WriteString(w, `{"homeworks":[],"current_date":1}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", time.Second)
	c.now = func() time.Time { return time.Unix(424242, 0) }
	if _, err := c.Fetch(context.Background(), 0); err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if gotFrom != "424242" {
		t.Fatalf("from_date = %q, want 424242", gotFrom)
	}
}

func TestClient_FetchNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"code":"not_authenticated"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "bad", time.Second).Fetch(context.Background(), 1)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusUnauthorized {
		t.Errorf("Code = %d, want 401", statusErr.Code)
	}
}

func TestClient_FetchNonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>maintenance</html>")
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "secret", time.Second).Fetch(context.Background(), 1)
	if !errors.Is(err, homework.ErrMalformedResponse) {
		t.Fatalf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestClient_FetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := NewClient(srv.URL, "secret", 50*time.Millisecond).Fetch(context.Background(), 1)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("request was not bounded by the client timeout")
	}
}

func TestClient_FetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	if _, err := NewClient(addr, "secret", time.Second).Fetch(context.Background(), 1); err == nil {
		t.Fatal("expected connection error")
	}
}
