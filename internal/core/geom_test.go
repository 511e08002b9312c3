package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestRectInset(t *testing.T) {
	tests := []struct {
		r        Rect
		n        int
		expected Rect
	}{
		{NewRect(0, 0, 10, 6), 1, NewRect(1, 1, 8, 4)},
		{NewRect(2, 3, 4, 4), 2, NewRect(4, 5, 0, 0)},
		{NewRect(0, 0, 3, 3), 2, NewRect(2, 2, 0, 0)},
	}

	for _, tc := range tests {
		if got := tc.r.Inset(tc.n); got != tc.expected {
			t.Errorf("%+v.Inset(%d) = %+v, expected %+v", tc.r, tc.n, got, tc.expected)
		}
	}
}

func TestInputFrameOrder(t *testing.T) {
	f := NewInputFrame(ActionRotateCW, ActionNone, ActionDrop)

	got := f.Actions()
	if len(got) != 2 || got[0] != ActionRotateCW || got[1] != ActionDrop {
		t.Fatalf("Actions() = %v, expected [RotateCW Drop]", got)
	}

	f.Clear()
	if len(f.Actions()) != 0 {
		t.Error("Clear() should empty the frame")
	}
	f.Set(ActionHold)
	if got := f.Actions(); len(got) != 1 || got[0] != ActionHold {
		t.Errorf("Actions() after reuse = %v, expected [Hold]", got)
	}
}

func TestActionString(t *testing.T) {
	if ActionRotateCCW.String() != "RotateCCW" {
		t.Errorf("String() = %q, expected %q", ActionRotateCCW.String(), "RotateCCW")
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("String() = %q, expected %q", Action(99).String(), "Unknown")
	}
}
