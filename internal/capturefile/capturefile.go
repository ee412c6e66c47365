// Package capturefile loads persisted capture JSON and determines its
// kind structurally, without relying on an explicit discriminator
// field in the file itself (§4.9, §6).
package capturefile

import (
	"encoding/json"
	"os"

	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

// File is the tagged union over the three capture kinds this package
// can load. Exactly one of Benchmark/Journey/Static is populated,
// matching Kind.
type File struct {
	Kind      types.CaptureKind
	Benchmark *types.RuntimeBenchmark
	Journey   *types.JourneyResult
	Static    *types.StaticCapture
}

// Load reads path, decodes it as untyped JSON, detects its kind
// structurally, and unmarshals it into the matching typed record
// (§4.9, §6).
func Load(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, werr.Wrap(werr.CodeFileNotFound, "capture file not found: "+path, err)
		}
		return File{}, werr.Wrap(werr.CodeLoadFailed, "read capture file: "+path, err)
	}

	var generic map[string]json.RawMessage
	if err := json.Unmarshal(raw, &generic); err != nil {
		return File{}, werr.Wrap(werr.CodeInvalidJSON, "capture file is not valid JSON: "+path, err)
	}

	kind, err := DetectKind(generic)
	if err != nil {
		return File{}, err
	}

	switch kind {
	case types.KindBenchmark:
		var b types.RuntimeBenchmark
		if err := json.Unmarshal(raw, &b); err != nil {
			return File{}, werr.Wrap(werr.CodeInvalidJSON, "malformed benchmark capture: "+path, err)
		}
		return File{Kind: kind, Benchmark: &b}, nil
	case types.KindJourney:
		var j types.JourneyResult
		if err := json.Unmarshal(raw, &j); err != nil {
			return File{}, werr.Wrap(werr.CodeInvalidJSON, "malformed journey capture: "+path, err)
		}
		return File{Kind: kind, Journey: &j}, nil
	case types.KindStatic:
		var s types.StaticCapture
		if err := json.Unmarshal(raw, &s); err != nil {
			return File{}, werr.Wrap(werr.CodeInvalidJSON, "malformed static capture: "+path, err)
		}
		return File{Kind: kind, Static: &s}, nil
	default:
		return File{}, werr.New(werr.CodeUnknownFormat, "unrecognized capture shape: "+path)
	}
}

// DetectKind inspects the decoded top-level JSON object structurally
// (§4.9):
//   - meta.url ∧ meta.runs ∧ top.cwv ⇒ benchmark
//   - meta.name ∧ meta.base_url ∧ top.steps ⇒ journey
//   - meta.framework ∧ top.bundles ⇒ static
//   - otherwise ⇒ UNKNOWN_FORMAT
func DetectKind(top map[string]json.RawMessage) (types.CaptureKind, error) {
	metaRaw, hasMeta := top["meta"]
	if !hasMeta {
		return "", werr.New(werr.CodeUnknownFormat, "capture file has no meta object")
	}
	var meta map[string]json.RawMessage
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		return "", werr.New(werr.CodeUnknownFormat, "capture file meta is not an object")
	}

	_, hasURL := meta["url"]
	_, hasRuns := meta["runs"]
	_, hasCWV := top["cwv"]
	if hasURL && hasRuns && hasCWV {
		return types.KindBenchmark, nil
	}

	_, hasName := meta["name"]
	_, hasBaseURL := meta["base_url"]
	_, hasSteps := top["steps"]
	if hasName && hasBaseURL && hasSteps {
		return types.KindJourney, nil
	}

	_, hasFramework := meta["framework"]
	_, hasBundles := top["bundles"]
	if hasFramework && hasBundles {
		return types.KindStatic, nil
	}

	return "", werr.New(werr.CodeUnknownFormat, "capture file matches no known shape")
}
