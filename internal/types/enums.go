package types

// ResourceType classifies a captured resource by extension and
// initiator type (§4.4).
type ResourceType string

const (
	ResourceScript     ResourceType = "script"
	ResourceStylesheet ResourceType = "stylesheet"
	ResourceImage      ResourceType = "image"
	ResourceFont       ResourceType = "font"
	ResourceFetch      ResourceType = "fetch"
	ResourceDocument   ResourceType = "document"
	ResourceOther      ResourceType = "other"
)

// CacheStatus classifies how a resource was served (§4.4).
type CacheStatus string

const (
	CacheMemory  CacheStatus = "memory"
	CacheDisk    CacheStatus = "disk"
	CacheNetwork CacheStatus = "network"
)

// HydrationFramework is the recognized SSR/hydration family (§6).
type HydrationFramework string

const (
	HydrationNext        HydrationFramework = "next"
	HydrationReactRouter HydrationFramework = "react-router"
	HydrationRemix       HydrationFramework = "remix"
	HydrationUnknown     HydrationFramework = "unknown"
	HydrationNone        HydrationFramework = "none"
)

// StaticFramework is the recognized framework family for static bundle
// analysis (§6). Distinct from HydrationFramework because static
// analysis works from build manifests, not runtime DOM markers.
type StaticFramework string

const (
	StaticNext        StaticFramework = "nextjs"
	StaticReactRouter StaticFramework = "react-router"
	StaticSvelteKit   StaticFramework = "sveltekit"
	StaticGenericSPA  StaticFramework = "generic-spa"
	StaticUnknown     StaticFramework = "unknown"
)

// NavType is the browser-reported navigation type feeding the
// navigation tracker (§4.7).
type NavType string

const (
	NavTypeNavigate     NavType = "navigate"
	NavTypeReload       NavType = "reload"
	NavTypeBackForward  NavType = "back_forward"
	NavTypePrerender    NavType = "prerender"
)

// TransitionType is the classified navigation transition emitted by the
// navigation tracker (§4.7, §6).
type TransitionType string

const (
	TransitionInitial TransitionType = "initial"
	TransitionHard    TransitionType = "hard"
	TransitionSoft    TransitionType = "soft"
	TransitionNone    TransitionType = "none"
)

// Trigger is the classified cause of a navigation (§6).
type Trigger string

const (
	TriggerLink        Trigger = "link"
	TriggerProgrammatic Trigger = "programmatic"
	TriggerBackForward Trigger = "back-forward"
	TriggerReload      Trigger = "reload"
)

// Direction encodes whether a lower or higher metric value is the
// improvement, per §4.9 / §9 ("directional diff ... as data, not
// polymorphism").
type Direction string

const (
	LowerIsBetter  Direction = "lower-is-better"
	HigherIsBetter Direction = "higher-is-better"
)

// CaptureKind is the structurally-detected shape of a persisted capture
// file (§4.9).
type CaptureKind string

const (
	KindBenchmark CaptureKind = "benchmark"
	KindJourney   CaptureKind = "journey"
	KindStatic    CaptureKind = "static"
)
