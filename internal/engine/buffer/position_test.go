package buffer

import (
	"errors"
	"testing"
)

func TestPositionCompare(t *testing.T) {
	tests := []struct {
		a, b Position
		want int
	}{
		{Pos(0, 0), Pos(0, 0), 0},
		{Pos(0, 1), Pos(0, 2), -1},
		{Pos(1, 0), Pos(0, 9), 1},
		{Pos(2, 5), Pos(3, 0), -1},
		{Pos(4, 4), Pos(4, 4), 0},
	}

	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%s.Compare(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := tt.a.Before(tt.b); got != (tt.want < 0) {
			t.Errorf("%s.Before(%s) = %v", tt.a, tt.b, got)
		}
		if got := tt.a.After(tt.b); got != (tt.want > 0) {
			t.Errorf("%s.After(%s) = %v", tt.a, tt.b, got)
		}
	}
}

func TestNewPosition(t *testing.T) {
	p, err := NewPosition(3, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != Pos(3, 7) {
		t.Errorf("expected (3:7), got %s", p)
	}

	if _, err := NewPosition(-1, 0); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("expected ErrInvalidPosition, got %v", err)
	}
	if _, err := NewPosition(0, -4); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("expected ErrInvalidPosition, got %v", err)
	}
}

func TestPositionString(t *testing.T) {
	if s := Pos(12, 3).String(); s != "(12:3)" {
		t.Errorf("expected (12:3), got %s", s)
	}
	if !Pos(0, 0).IsZero() {
		t.Error("(0:0) should be zero")
	}
}
