package models

import "testing"

func TestCursor(t *testing.T) {
	var none Cursor
	if _, ok := none.MaxID(); ok {
		t.Error("zero Cursor should be unbounded")
	}
	if none.String() != "none" {
		t.Errorf("String() = %q, want none", none.String())
	}

	c := Before(150)
	if id, ok := c.MaxID(); !ok || id != 149 {
		t.Errorf("Before(150).MaxID() = %d, %v; want 149, true", id, ok)
	}
	if c.String() != "149" {
		t.Errorf("String() = %q, want 149", c.String())
	}

	// Before(1) is a real bound of 0, not "no bound".
	if id, ok := Before(1).MaxID(); !ok || id != 0 {
		t.Errorf("Before(1).MaxID() = %d, %v; want 0, true", id, ok)
	}
}

func TestCursorBelow(t *testing.T) {
	var none Cursor
	tests := []struct {
		name  string
		c     Cursor
		other Cursor
		want  bool
	}{
		{"bounded below none", Before(100), none, true},
		{"none below none", none, none, false},
		{"none below bounded", none, Before(100), false},
		{"smaller", Before(50), Before(100), true},
		{"equal", Before(100), Before(100), false},
		{"larger", Before(200), Before(100), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Below(tt.other); got != tt.want {
				t.Errorf("%v.Below(%v) = %v, want %v", tt.c, tt.other, got, tt.want)
			}
		})
	}
}
