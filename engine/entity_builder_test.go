package engine

import (
	"errors"
	"testing"

	"github.com/lixenwraith/undercity/component"
	"github.com/lixenwraith/undercity/core"
)

func TestBuilderAssemblesAnAgent(t *testing.T) {
	w := NewWorld(4)

	e, err := With(
		With(w.Spawn(), w.Components.Identity, component.IdentityComponent{Callsign: "flint-1"}),
		w.Components.Wealth, component.WealthComponent{Cash: 120},
	).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	id, err := w.Components.Identity.Get(e)
	if err != nil || id.Callsign != "flint-1" {
		t.Errorf("Expected the identity attached, got %v %v", id, err)
	}
	wc, err := w.Components.Wealth.Get(e)
	if err != nil || wc.Cash != 120 {
		t.Errorf("Expected the wealth attached, got %v %v", wc, err)
	}
}

func TestBuilderErrorSticksAndSkips(t *testing.T) {
	w := NewWorld(4)

	eb := With(w.Spawn(), w.Components.Identity, component.IdentityComponent{Callsign: "first"})
	eb = With(eb, w.Components.Identity, component.IdentityComponent{Callsign: "duplicate"})
	eb = With(eb, w.Components.Wealth, component.WealthComponent{Cash: 50})

	e, err := eb.Build()
	if !errors.Is(err, core.ErrDuplicateComponent) {
		t.Fatalf("Expected a duplicate component error, got %v", err)
	}
	if e != core.NoEntity {
		t.Errorf("Expected no entity on failure, got %d", e)
	}

	// The reserved id is reclaimed, nothing half-built survives
	if w.EntityCount() != 0 {
		t.Errorf("Expected an empty world after the failed build, got %d", w.EntityCount())
	}
	if w.Components.Wealth.Count() != 0 {
		t.Errorf("Expected the later add skipped, got %d wealth entries", w.Components.Wealth.Count())
	}
}

func TestBuilderSurfacesCapacity(t *testing.T) {
	w := NewWorld(1)

	if _, err := w.Spawn().Build(); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, err := w.Spawn().Build(); !errors.Is(err, core.ErrCapacityExceeded) {
		t.Errorf("Expected capacity exceeded on a full world, got %v", err)
	}
}
