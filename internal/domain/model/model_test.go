package model

import "testing"

func TestWhoWhere(t *testing.T) {
	o := Order{Name: "Ion Popescu", Address: "Str. X nr.1"}
	if got := o.WhoWhere(); got != "Ion Popescu • Str. X nr.1" {
		t.Fatalf("unexpected display string %q", got)
	}

	o = Order{Address: "Str. X nr.1"}
	if got := o.WhoWhere(); got != "Str. X nr.1" {
		t.Fatalf("expected bare address when name missing, got %q", got)
	}
}
