package render_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/PageDAO/PageProvenanceService/pkg/document"
	"github.com/PageDAO/PageProvenanceService/pkg/render"
)

type stubRenderer struct {
	name string
	ext  string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, document.Document, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

type fileStub struct{ stubRenderer }

func (f fileStub) FileExtension() string { return f.ext }

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := render.NewRegistry(stubRenderer{name: "text"}, stubRenderer{name: "pdf"})

	if err := registry.Register(stubRenderer{name: "pdf"}); err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if err := registry.Register(stubRenderer{name: "  "}); err == nil {
		t.Fatalf("expected unnamed renderer to be rejected")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer to be rejected")
	}

	got, err := registry.Get("PDF")
	if err != nil || got.Name() != "pdf" {
		t.Fatalf("expected case-insensitive lookup, got %v (%v)", got, err)
	}
	if _, err := registry.Get("docx"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
	if diff := cmp.Diff([]string{"pdf", "text"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryResolveFallback(t *testing.T) {
	registry := render.NewRegistry(stubRenderer{name: "pdf"}, stubRenderer{name: "json"})

	got, err := registry.Resolve("", "pdf")
	if err != nil || got.Name() != "pdf" {
		t.Fatalf("expected fallback renderer, got %v (%v)", got, err)
	}
	got, err = registry.Resolve("json", "pdf")
	if err != nil || got.Name() != "json" {
		t.Fatalf("expected explicit renderer, got %v (%v)", got, err)
	}
}

func TestRegistryConcurrentReads(t *testing.T) {
	registry := render.NewRegistry(stubRenderer{name: "pdf"})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !registry.Has("pdf") {
				t.Errorf("expected pdf renderer")
			}
		}()
	}
	wg.Wait()
}

func TestExtension(t *testing.T) {
	if got := render.Extension(stubRenderer{name: "text"}); got != "text" {
		t.Fatalf("expected name fallback, got %q", got)
	}
	if got := render.Extension(fileStub{stubRenderer{name: "text", ext: "txt"}}); got != "txt" {
		t.Fatalf("expected txt, got %q", got)
	}
}
