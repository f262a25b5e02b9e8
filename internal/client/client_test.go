package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/auth"
)

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestBearerHeader(t *testing.T) {
	var got string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{"tags":[]}`))
	})

	tokens := auth.NewService(auth.NewMemoryStore())
	c := New(srv.URL, tokens)

	if _, err := c.ListTags(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("anonymous request sent Authorization %q", got)
	}

	_ = tokens.SetToken("secret")
	if _, err := c.ListTags(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got != "Bearer secret" {
		t.Errorf("Authorization = %q, want Bearer secret", got)
	}
}

func TestUnauthorized_ClearsTokenAndRedirects(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"unauthorized"}`))
	})

	tokens := auth.NewService(auth.NewMemoryStore())
	_ = tokens.SetToken("expired")
	var redirected string
	c := New(srv.URL, tokens, WithUnauthorizedHook(func(path string) { redirected = path }))

	_, err := c.ListPosts(context.Background())
	if !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	var ce *Error
	if !errors.As(err, &ce) || ce.Status != http.StatusUnauthorized || ce.Message != "unauthorized" {
		t.Errorf("err = %#v", err)
	}
	if tok, _ := tokens.Token(); tok != "" {
		t.Errorf("token not cleared: %q", tok)
	}
	if redirected != LoginPath {
		t.Errorf("hook got %q, want %q", redirected, LoginPath)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"boom"}`, "boom"},
		{"error field", `{"error":"internal error"}`, "internal error"},
		{"no body", ``, "something went wrong"},
		{"not json", `<html>`, "something went wrong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(tt.body))
			})
			_, err := New(srv.URL, nil).ListCategories(context.Background())
			var ce *Error
			if !errors.As(err, &ce) {
				t.Fatalf("err = %v, want *Error", err)
			}
			if ce.Status != 500 || ce.Message != tt.want {
				t.Errorf("got %d %q, want 500 %q", ce.Status, ce.Message, tt.want)
			}
		})
	}
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, nil).GetSiteInfo(context.Background())
	var ce *Error
	if !errors.As(err, &ce) || ce.Status != 0 || ce.Message != "something went wrong" {
		t.Errorf("err = %#v", err)
	}
}

func TestGetPost_NotFoundIsMiss(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posts/missing" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	})
	p, err := New(srv.URL, nil).GetPost(context.Background(), "missing")
	if err != nil || p != nil {
		t.Errorf("GetPost = %v, %v; want nil, nil", p, err)
	}
}

func TestFilterQueries(t *testing.T) {
	var gotQuery string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"posts":null,"total":0}`))
	})
	c := New(srv.URL+"/", nil)

	posts, err := c.ListPostsByTag(context.Background(), "typescript")
	if err != nil {
		t.Fatal(err)
	}
	if posts == nil {
		t.Error("posts is nil, want empty slice")
	}
	if gotQuery != "tag=typescript" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestSearch_BlankSkipsRequest(t *testing.T) {
	called := false
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) { called = true })
	got, err := New(srv.URL, nil).Search(context.Background(), "   ")
	if err != nil || got == nil || len(got) != 0 {
		t.Errorf("Search = %#v, %v", got, err)
	}
	if called {
		t.Error("blank search hit the server")
	}
}

func TestContextCancel(t *testing.T) {
	release := make(chan struct{})
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := New(srv.URL, nil).ListPosts(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
}
