// Package staticanalyze walks a production build directory and
// computes bundle sizes, per-chunk classification, and per-route costs
// without ever launching a browser (§6 "static bundle analyzer" as an
// external collaborator).
package staticanalyze

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"

	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

// Analyzer inspects a built application directory and produces a
// StaticCapture. Kept as an interface so the CLI can be tested against
// a fake without touching the filesystem.
type Analyzer interface {
	Analyze(ctx context.Context, buildDir string) (types.StaticCapture, error)
}

// FSAnalyzer is the concrete Analyzer backed by the OS filesystem.
type FSAnalyzer struct{}

// NewFSAnalyzer returns the default filesystem-backed analyzer.
func NewFSAnalyzer() FSAnalyzer { return FSAnalyzer{} }

// Analyze walks buildDir, classifies every JS/CSS asset into a chunk,
// computes raw/gzip/brotli sizes, detects the build's framework, and
// attributes routes to their chunk sets (§6).
func (FSAnalyzer) Analyze(ctx context.Context, buildDir string) (types.StaticCapture, error) {
	var chunks []types.Chunk
	var totals types.BundleTotals

	err := filepath.WalkDir(buildDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".js" && ext != ".mjs" && ext != ".css" {
			return nil
		}

		size, sizeErr := sizeOf(path)
		if sizeErr != nil {
			return sizeErr
		}

		rel, relErr := filepath.Rel(buildDir, path)
		if relErr != nil {
			rel = path
		}
		chunk := types.Chunk{Path: rel, Kind: ClassifyChunk(rel), Size: size}
		chunks = append(chunks, chunk)

		totals.Total.Raw += size.Raw
		totals.Total.Gzip += size.Gzip
		totals.Total.Brotli += size.Brotli
		if ext == ".css" {
			totals.CSS.Raw += size.Raw
			totals.CSS.Gzip += size.Gzip
			totals.CSS.Brotli += size.Brotli
		} else {
			totals.JS.Raw += size.Raw
			totals.JS.Gzip += size.Gzip
			totals.JS.Brotli += size.Brotli
		}
		return nil
	})
	if err != nil {
		return types.StaticCapture{}, werr.Wrap(werr.CodeLoadFailed, "walk build directory: "+buildDir, err)
	}

	return types.StaticCapture{
		Meta: types.StaticMeta{
			ID:        types.NewID(),
			BuildDir:  buildDir,
			Framework: DetectFramework(buildDir, chunks),
		},
		Bundles: totals,
		Chunks:  chunks,
		Routes:  RouteCosts(chunks),
	}, nil
}

// sizeOf reads path once and derives raw, real-gzip, and real-brotli
// sizes from the same byte slice.
func sizeOf(path string) (types.ByteSize, error) {
	raw, err := readFile(path)
	if err != nil {
		return types.ByteSize{}, err
	}

	var gzBuf bytes.Buffer
	gw := gzip.NewWriter(&gzBuf)
	if _, err := gw.Write(raw); err != nil {
		return types.ByteSize{}, err
	}
	if err := gw.Close(); err != nil {
		return types.ByteSize{}, err
	}

	var brBuf bytes.Buffer
	bw := brotli.NewWriterLevel(&brBuf, brotli.DefaultCompression)
	if _, err := bw.Write(raw); err != nil {
		return types.ByteSize{}, err
	}
	if err := bw.Close(); err != nil {
		return types.ByteSize{}, err
	}

	return types.ByteSize{
		Raw:    int64(len(raw)),
		Gzip:   int64(gzBuf.Len()),
		Brotli: int64(brBuf.Len()),
	}, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
