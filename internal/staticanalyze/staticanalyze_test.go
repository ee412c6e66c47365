package staticanalyze

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/devdumpling/traverse-sub000/internal/types"
)

func TestClassifyChunk(t *testing.T) {
	tests := []struct {
		path string
		want types.ChunkKind
	}{
		{"static/chunks/vendor-a1b2.js", types.ChunkVendor},
		{"static/chunks/main.js", types.ChunkEntry},
		{"static/chunks/pages/about.js", types.ChunkRoute},
		{"static/chunks/common-shared.js", types.ChunkShared},
		{"static/chunks/9f8e7d6c.js", types.ChunkUnknown},
	}
	for _, tt := range tests {
		if got := ClassifyChunk(tt.path); got != tt.want {
			t.Errorf("ClassifyChunk(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestDetectFramework(t *testing.T) {
	chunks := []types.Chunk{{Path: "static/chunks/pages/index.js"}}
	if got := DetectFramework("/build/.next", chunks); got != types.StaticNext {
		t.Errorf("DetectFramework(.next) = %v, want nextjs", got)
	}
	if got := DetectFramework("/build/out", nil); got != types.StaticUnknown {
		t.Errorf("DetectFramework(empty) = %v, want unknown", got)
	}
}

func TestFSAnalyzer_Analyze(t *testing.T) {
	dir := t.TempDir()
	chunkDir := filepath.Join(dir, "static", "chunks")
	if err := os.MkdirAll(chunkDir, 0o755); err != nil {
		t.Fatal(err)
	}
	mainJS := []byte("console.log('hello world');")
	if err := os.WriteFile(filepath.Join(chunkDir, "main.js"), mainJS, 0o644); err != nil {
		t.Fatal(err)
	}
	vendorJS := []byte("/* vendor bundle */ var x = 1;")
	if err := os.WriteFile(filepath.Join(chunkDir, "vendor-abc.js"), vendorJS, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	capture, err := NewFSAnalyzer().Analyze(context.Background(), dir)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(capture.Chunks) != 2 {
		t.Fatalf("len(Chunks) = %d, want 2 (readme.txt must be excluded)", len(capture.Chunks))
	}
	if capture.Bundles.JS.Raw != int64(len(mainJS)+len(vendorJS)) {
		t.Errorf("Bundles.JS.Raw = %d, want %d", capture.Bundles.JS.Raw, len(mainJS)+len(vendorJS))
	}
	for _, c := range capture.Chunks {
		if c.Size.Gzip <= 0 {
			t.Errorf("chunk %q has non-positive gzip size %d", c.Path, c.Size.Gzip)
		}
		if c.Size.Brotli <= 0 {
			t.Errorf("chunk %q has non-positive brotli size %d", c.Path, c.Size.Brotli)
		}
	}
}
