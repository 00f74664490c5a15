package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	pkgopenapi "github.com/goliatone/go-formdialog/pkg/openapi"
)

const payload = `openapi: 3.0.0`

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "api.yaml")
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), pkgopenapi.SourceFromFile(path))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(doc.Raw()) != payload || doc.Location() != path {
		t.Fatalf("unexpected document %q from %q", doc.Raw(), doc.Location())
	}
}

func TestLoadFS(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{"specs/api.yaml": {Data: []byte(payload)}}
	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))
	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("specs/api.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
}

func TestLoadHTTPRequiresOptIn(t *testing.T) {
	t.Parallel()

	_, err := New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), pkgopenapi.SourceFromURL("http://127.0.0.1:1/api.yaml"))
	if err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected disabled http error, got %v", err)
	}
}

func TestLoadHTTP(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api.yaml" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPFallback(0)))
	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/api.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	_, err = l.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/missing"))
	if err == nil || !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("expected status error, got %v", err)
	}
}
