package game

import (
	"testing"
	"time"
)

func TestTierForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  Tier
	}{
		{1, TierBeginner},
		{2, TierBeginner},
		{3, TierElementary},
		{4, TierElementary},
		{5, TierIntermediate},
		{6, TierIntermediate},
		{7, TierAdvanced},
		{8, TierAdvanced},
		{9, TierExpert},
		{10, TierExpert},
	}

	for _, tt := range tests {
		if got := TierForLevel(tt.level); got != tt.want {
			t.Errorf("TierForLevel(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestAdvanceDelay(t *testing.T) {
	tests := []struct {
		level int
		auto  bool
		delay time.Duration
	}{
		{1, false, 0},
		{4, false, 0},
		{5, true, 1500 * time.Millisecond},
		{6, true, 1500 * time.Millisecond},
		{7, true, 1000 * time.Millisecond},
		{9, true, 800 * time.Millisecond},
		{10, true, 800 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := AutoAdvance(tt.level); got != tt.auto {
			t.Errorf("AutoAdvance(%d) = %v, want %v", tt.level, got, tt.auto)
		}
		if got := AdvanceDelay(tt.level); got != tt.delay {
			t.Errorf("AdvanceDelay(%d) = %v, want %v", tt.level, got, tt.delay)
		}
	}
}
