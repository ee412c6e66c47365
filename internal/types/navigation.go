package types

// NavigationData is the classified outcome of one journey step's
// navigation, produced by the navigation tracker (§3, §4.7).
type NavigationData struct {
	Type           TransitionType `json:"type"`
	Trigger        Trigger        `json:"trigger,omitempty"`
	PrefetchStatus string         `json:"prefetch_status,omitempty"`
	Duration       float64        `json:"duration"`
}

// NavTiming is the single page-context timing read the navigation
// tracker classifies against (§4.7).
type NavTiming struct {
	URL          string
	NavType      NavType
	RequestStart float64
	LoadEventEnd float64
	StartTime    float64
}
