package journey

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/devdumpling/traverse-sub000/internal/navigation"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

func TestLoadDefinition_CompilesAndRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkout.json")
	body := `{
		"name": "checkout",
		"description": "add to cart and check out",
		"base_url": "https://shop.example.com",
		"steps": [
			{"name": "home", "capture": ["cwv"]},
			{"name": "cart", "goto": "https://shop.example.com/cart", "capture": ["resources", "memory"]}
		]
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	spec, def, err := LoadDefinition(path)
	if err != nil {
		t.Fatalf("LoadDefinition() error = %v", err)
	}
	if spec.BaseURL != "https://shop.example.com" {
		t.Errorf("spec.BaseURL = %q", spec.BaseURL)
	}
	if err := def.Validate(); err != nil {
		t.Fatalf("compiled definition failed validation: %v", err)
	}

	tab := &fakeTab{navTimings: []string{`{"url":"/","navType":"navigate","requestStart":0,"loadEventEnd":1,"startTime":0}`}, heap: 512}
	jctx := &Context{ctx: context.Background(), page: tab, tracker: navigation.NewTracker()}
	if err := def.Run(jctx); err != nil {
		t.Fatalf("def.Run() error = %v", err)
	}
	if len(jctx.steps) != 2 {
		t.Fatalf("len(steps) = %d, want 2", len(jctx.steps))
	}
	if jctx.steps[0].Data.CWV == nil {
		t.Errorf("home step should have captured CWV")
	}
	if jctx.steps[1].Data.Resources == nil || jctx.steps[1].Data.Memory == nil {
		t.Errorf("cart step should have captured resources and memory")
	}
}

func TestLoadDefinition_MissingFile(t *testing.T) {
	_, _, err := LoadDefinition(filepath.Join(t.TempDir(), "missing.json"))
	if !werr.Is(err, werr.CodeFileNotFound) {
		t.Errorf("error = %v, want file_not_found", err)
	}
}

func TestLoadDefinition_RejectsIncompleteSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"name":"x"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := LoadDefinition(path)
	if !werr.Is(err, werr.CodeUnknownFormat) {
		t.Errorf("error = %v, want unknown_format", err)
	}
}
