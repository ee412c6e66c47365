// Package probes implements the in-page capture scripts and their
// Go-side parsers (§4.4). Each probe is a small IIFE evaluated in the
// page context that resolves to plain JSON; the parser here only knows
// the wire shape, not how the browser produced it.
package probes

// cwvScript reads TTFB from the navigation-timing entry, subscribes to
// paint/LCP/CLS observers with buffered entries, and resolves once the
// document is complete plus a short settle delay or a hard cap.
const cwvScript = `(() => new Promise((resolve) => {
  const SETTLE_MS = 500;
  const HARD_CAP_MS = 5000;
  let settled = false;

  const nav = performance.getEntriesByType("navigation")[0];
  const ttfb = nav ? (nav.responseStart - nav.requestStart) : null;

  let fcp = null;
  try {
    const paintEntries = performance.getEntriesByType("paint");
    const fcpEntry = paintEntries.find((e) => e.name === "first-contentful-paint");
    if (fcpEntry) fcp = fcpEntry.startTime;
  } catch {}

  let lcp = null;
  try {
    const lcpObserver = new PerformanceObserver((list) => {
      const entries = list.getEntries();
      if (entries.length > 0) lcp = entries[entries.length - 1].startTime;
    });
    lcpObserver.observe({ type: "largest-contentful-paint", buffered: true });
  } catch {}

  let cls = 0;
  try {
    const clsObserver = new PerformanceObserver((list) => {
      for (const entry of list.getEntries()) {
        if (!entry.hadRecentInput) cls += entry.value;
      }
    });
    clsObserver.observe({ type: "layout-shift", buffered: true });
  } catch {}

  const finish = () => {
    if (settled) return;
    settled = true;
    resolve({ lcp, fcp, cls, ttfb });
  };

  const afterSettle = () => setTimeout(finish, SETTLE_MS);
  if (document.readyState === "complete") {
    afterSettle();
  } else {
    window.addEventListener("load", afterSettle, { once: true });
  }
  setTimeout(finish, HARD_CAP_MS);
}))()`

// resourceScript reads every resource + navigation timing entry and
// returns their raw fields; type and cache status are classified on the
// Go side (see Resources).
const resourceScript = `(() => {
  const entries = performance.getEntriesByType("resource");
  const nav = performance.getEntriesByType("navigation")[0];
  const out = [];
  if (nav) {
    out.push({
      name: nav.name || location.href,
      initiatorType: "navigation",
      transferSize: nav.transferSize || 0,
      decodedBodySize: nav.decodedBodySize || 0,
      duration: nav.duration || 0,
    });
  }
  for (const e of entries) {
    out.push({
      name: e.name,
      initiatorType: e.initiatorType,
      transferSize: e.transferSize || 0,
      decodedBodySize: e.decodedBodySize || 0,
      duration: e.duration || 0,
    });
  }
  return out;
})()`

// longTaskInitScript must be injected before navigation (via the
// driver's AddScriptToEvaluateOnNewDocument-equivalent) so the observer
// is listening before the page's own scripts run.
const longTaskInitScript = `(() => {
  window.__wp_longTasks = window.__wp_longTasks || [];
  try {
    const observer = new PerformanceObserver((list) => {
      for (const entry of list.getEntries()) {
        window.__wp_longTasks.push({ startTime: entry.startTime, duration: entry.duration });
      }
    });
    observer.observe({ type: "longtask", buffered: true });
  } catch {}
})()`

// longTaskReadScript reads the page-scoped buffer plus the standard
// entry list and returns both for de-duplication on the Go side.
const longTaskReadScript = `(() => {
  const buffered = window.__wp_longTasks || [];
  let fromEntries = [];
  try {
    fromEntries = performance.getEntriesByType("longtask").map((e) => ({ startTime: e.startTime, duration: e.duration }));
  } catch {}
  return { buffered, fromEntries };
})()`

// ssrScript finds the first root candidate with children, then walks
// inline (no-src) scripts classifying each by content marker.
const ssrScript = `(() => {
  const ROOT_SELECTORS = ["#__next", "#root", "[data-reactroot]", "#app", "main"];
  let root = null;
  for (const sel of ROOT_SELECTORS) {
    const el = document.querySelector(sel);
    if (el && el.children.length > 0) { root = el; break; }
  }
  const rootInfo = root
    ? { id: root.id || null, childCount: root.children.length, textLength: (root.textContent || "").length }
    : { id: null, childCount: 0, textLength: 0 };

  let inlineScriptSize = 0;
  let inlineScriptCount = 0;
  let hydrationFramework = "none";
  let nextDataSize = 0;
  let reactRouterDataSize = 0;
  let rscPayloadSize = 0;
  let rscChunkCount = 0;

  const scripts = Array.from(document.querySelectorAll("script:not([src])"));
  for (const s of scripts) {
    const text = s.textContent || "";
    if (text.length === 0) continue;
    inlineScriptSize += text.length;
    inlineScriptCount += 1;

    if (text.includes("self.__next_f") || text.includes("__NEXT_DATA__")) {
      hydrationFramework = "next";
      if (text.includes("self.__next_f")) {
        rscPayloadSize += text.length;
        rscChunkCount += 1;
      }
      if (text.includes("__NEXT_DATA__")) {
        nextDataSize += text.length;
      }
    } else if (text.includes("__reactRouterContext")) {
      hydrationFramework = "react-router";
      reactRouterDataSize += text.length;
    } else if (text.includes("__remixContext")) {
      hydrationFramework = "remix";
      reactRouterDataSize += text.length;
    } else if (hydrationFramework === "none" && (text.includes("hydrateRoot") || text.includes("__REACT_DEVTOOLS_GLOBAL_HOOK__"))) {
      hydrationFramework = "unknown";
    }
  }

  return {
    root: rootInfo,
    inlineScriptSize,
    inlineScriptCount,
    hydrationFramework,
    nextDataSize,
    reactRouterDataSize,
    rscPayloadSize,
    rscChunkCount,
  };
})()`

// navTimingScript is the single page-context read the navigation
// tracker classifies against (§4.7).
const navTimingScript = `(() => {
  const nav = performance.getEntriesByType("navigation")[0];
  return {
    url: location.href,
    navType: nav ? nav.type : "navigate",
    requestStart: nav ? nav.requestStart : 0,
    loadEventEnd: nav ? nav.loadEventEnd : 0,
    startTime: nav ? nav.startTime : 0,
  };
})()`
