package model

// netlistSpec is the compact form used to declare built-in netlists.
type netlistSpec struct {
	name    string
	die     Die
	modules []struct {
		label string
		w, h  float64
	}
	nets [][]string // module labels per net
}

// buildNetlist expands a spec into a Netlist, wiring nets by module label.
func buildNetlist(spec netlistSpec) Netlist {
	nl := Netlist{Name: spec.name, Die: spec.die}
	byLabel := make(map[string]string, len(spec.modules))
	for _, ms := range spec.modules {
		m := NewModule(ms.label, ms.w, ms.h)
		byLabel[ms.label] = m.ID
		nl.Modules = append(nl.Modules, m)
	}
	for i, labels := range spec.nets {
		ids := make([]string, len(labels))
		for j, l := range labels {
			ids[j] = byLabel[l]
		}
		nl.Nets = append(nl.Nets, NewNet(netLabel(i), ids...))
	}
	return nl
}

func netLabel(i int) string {
	return "N" + string(rune('0'+i/10)) + string(rune('0'+i%10))
}

// DemoNetlist returns the classic 10-module benchmark: modules A through J
// on a 20x20 die with 13 two-pin nets. It is the default workload for the
// compare command and a convenient smoke test for schedule tuning.
func DemoNetlist() Netlist {
	return buildNetlist(netlistSpec{
		name: "Demo A-J (20x20)",
		die:  Die{Width: 20, Height: 20},
		modules: []struct {
			label string
			w, h  float64
		}{
			{"A", 2, 3}, {"B", 3, 2}, {"C", 2, 2}, {"D", 1, 4}, {"E", 3, 3},
			{"F", 2, 4}, {"G", 4, 2}, {"H", 2, 3}, {"I", 3, 1}, {"J", 2, 2},
		},
		nets: [][]string{
			{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"},
			{"E", "F"}, {"F", "G"}, {"G", "H"},
			{"H", "I"}, {"I", "J"}, {"E", "A"},
			{"B", "F"}, {"C", "H"}, {"D", "J"},
		},
	})
}

// QuadNetlist returns a small 4-module example with one multi-pin net,
// useful for demonstrating HPWL on nets with more than two pins.
func QuadNetlist() Netlist {
	return buildNetlist(netlistSpec{
		name: "Quad (12x12)",
		die:  Die{Width: 12, Height: 12},
		modules: []struct {
			label string
			w, h  float64
		}{
			{"CPU", 4, 4}, {"RAM", 3, 2}, {"IO", 2, 3}, {"PLL", 2, 2},
		},
		nets: [][]string{
			{"CPU", "RAM", "IO"},
			{"CPU", "PLL"},
			{"RAM", "IO"},
		},
	})
}

// BuiltinNetlists returns the netlists shipped with the application.
func BuiltinNetlists() []Netlist {
	return []Netlist{DemoNetlist(), QuadNetlist()}
}
