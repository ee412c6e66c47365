package journey

import (
	"context"
	"testing"

	"github.com/devdumpling/traverse-sub000/internal/navigation"
)

func TestCaptureScope_MarkAccumulatesCustomValues(t *testing.T) {
	tab := &fakeTab{navTimings: []string{`{"url":"/","navType":"navigate","requestStart":0,"loadEventEnd":1,"startTime":0}`}}
	scope := newCaptureScope(context.Background(), tab, navigation.NewTracker())
	scope.Mark("clicks", 3)
	scope.Mark("scrollDepth", 0.8)
	if scope.data.Custom["clicks"] != 3 {
		t.Errorf("clicks = %v, want 3", scope.data.Custom["clicks"])
	}
	if scope.data.Custom["scrollDepth"] != 0.8 {
		t.Errorf("scrollDepth = %v, want 0.8", scope.data.Custom["scrollDepth"])
	}
}

func TestCaptureScope_InteractionTimingRequiresStart(t *testing.T) {
	tab := &fakeTab{}
	scope := newCaptureScope(context.Background(), tab, navigation.NewTracker())
	scope.EndInteraction()
	if scope.data.Interaction != nil {
		t.Errorf("EndInteraction without a matching Start should be a no-op")
	}

	scope.StartInteraction("add-to-cart")
	scope.EndInteraction()
	if scope.data.Interaction == nil || scope.data.Interaction.Name != "add-to-cart" {
		t.Errorf("Interaction = %+v, want name add-to-cart", scope.data.Interaction)
	}
}

func TestCaptureScope_MemoryLazilyOpensControl(t *testing.T) {
	tab := &fakeTab{heap: 2048}
	scope := newCaptureScope(context.Background(), tab, navigation.NewTracker())
	if scope.control != nil {
		t.Fatalf("control should not be opened before Memory is called")
	}
	if err := scope.Memory(); err != nil {
		t.Fatalf("Memory() error = %v", err)
	}
	if scope.control == nil {
		t.Errorf("Memory() should lazily open the control channel")
	}
	if scope.data.Memory == nil || *scope.data.Memory != 2048 {
		t.Errorf("Memory = %v, want 2048", scope.data.Memory)
	}
}
