package staticanalyze

import (
	"path/filepath"
	"strings"

	"github.com/devdumpling/traverse-sub000/internal/types"
)

// ClassifyChunk names a build asset's role from its path conventions.
// These markers follow the output layout of the major bundlers
// (webpack/Next.js, Vite, Remix): vendor chunks carry "vendor"/"node_modules"
// in their name, route chunks live under a "pages"/"routes"/"app" segment,
// and anything shared across more than one entry is named "chunk"/"shared".
func ClassifyChunk(relPath string) types.ChunkKind {
	lower := strings.ToLower(relPath)
	base := strings.ToLower(filepath.Base(relPath))

	switch {
	case strings.Contains(lower, "vendor") || strings.Contains(lower, "node_modules"):
		return types.ChunkVendor
	case base == "main.js" || base == "index.js" || strings.Contains(base, "entry"):
		return types.ChunkEntry
	case strings.Contains(lower, "/pages/") || strings.Contains(lower, "/routes/") || strings.Contains(lower, "/app/"):
		return types.ChunkRoute
	case strings.Contains(base, "chunk") || strings.Contains(base, "shared") || strings.Contains(base, "common"):
		return types.ChunkShared
	default:
		return types.ChunkUnknown
	}
}

// DetectFramework infers the build's framework family from marker
// files/directories found among the walked chunks (§6
// "nextjs | react-router | sveltekit | generic-spa | unknown"). Unknown
// frameworks degrade gracefully rather than erroring (§6).
func DetectFramework(buildDir string, chunks []types.Chunk) types.StaticFramework {
	hasAny := func(needle string) bool {
		for _, c := range chunks {
			if strings.Contains(strings.ToLower(c.Path), needle) {
				return true
			}
		}
		return false
	}

	switch {
	case strings.Contains(strings.ToLower(buildDir), ".next") || hasAny("/static/chunks/pages") || hasAny("_next"):
		return types.StaticNext
	case hasAny("build/server") && hasAny("build/client"):
		return types.StaticReactRouter
	case hasAny(".svelte-kit") || hasAny("_app/immutable"):
		return types.StaticSvelteKit
	case len(chunks) > 0:
		return types.StaticGenericSPA
	default:
		return types.StaticUnknown
	}
}

// RouteCosts attributes each route chunk its own size plus the size of
// every vendor, shared and entry chunk in the build, approximating
// per-route download cost for a generic-SPA style build where every
// route loads the shared runtime (§6 top.bundles / routes). Imports are
// not traced: each route is charged all of those chunks.
func RouteCosts(chunks []types.Chunk) []types.RouteCost {
	var shared []types.Chunk
	for _, c := range chunks {
		if c.Kind == types.ChunkVendor || c.Kind == types.ChunkShared || c.Kind == types.ChunkEntry {
			shared = append(shared, c)
		}
	}

	var routes []types.RouteCost
	for _, c := range chunks {
		if c.Kind != types.ChunkRoute {
			continue
		}
		size := c.Size
		chunkPaths := []string{c.Path}
		for _, s := range shared {
			size.Raw += s.Size.Raw
			size.Gzip += s.Size.Gzip
			size.Brotli += s.Size.Brotli
			chunkPaths = append(chunkPaths, s.Path)
		}
		routes = append(routes, types.RouteCost{
			Route:  routeNameFor(c.Path),
			Size:   size,
			Chunks: chunkPaths,
		})
	}
	return routes
}

func routeNameFor(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return "/" + strings.TrimSuffix(base, ext)
}
