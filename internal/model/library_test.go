package model

import "testing"

func TestBuiltinNetlistsValidate(t *testing.T) {
	for _, nl := range BuiltinNetlists() {
		if err := nl.Validate(); err != nil {
			t.Errorf("built-in netlist %q invalid: %v", nl.Name, err)
		}
	}
}

func TestDemoNetlistShape(t *testing.T) {
	nl := DemoNetlist()

	if len(nl.Modules) != 10 {
		t.Errorf("modules = %d, want 10", len(nl.Modules))
	}
	if len(nl.Nets) != 13 {
		t.Errorf("nets = %d, want 13", len(nl.Nets))
	}
	if nl.Die.Width != 20 || nl.Die.Height != 20 {
		t.Errorf("die = %v, want 20x20", nl.Die)
	}

	// Every net in the demo is a two-pin net
	for _, n := range nl.Nets {
		if len(n.Modules) != 2 {
			t.Errorf("net %q has %d pins, want 2", n.Label, len(n.Modules))
		}
	}
}

func TestQuadNetlistHasMultiPinNet(t *testing.T) {
	nl := QuadNetlist()

	found := false
	for _, n := range nl.Nets {
		if len(n.Modules) > 2 {
			found = true
		}
	}
	if !found {
		t.Error("expected at least one multi-pin net")
	}
}
