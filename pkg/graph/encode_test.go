package graph

import "testing"

func TestPhaseColor(t *testing.T) {
	tests := []struct {
		name   string
		phases string
		want   string
	}{
		{"SinglePhaseA", "A", "#ff0000"},
		{"SinglePhaseB", "B", "#00ff00"},
		{"SinglePhaseC", "C", "#0000ff"},
		{"TwoPhaseAB", "ABN", "#ffff00"},
		{"TwoPhaseBC", "BC", "#00ffff"},
		{"TwoPhaseAC", "ACN", "#ff00ff"},
		{"AllThreeIsBlackNotWhite", "ABC", "black"},
		{"AllThreeWithNeutral", "ABCN", "black"},
		{"AllThreeWithService", "ABCD", "black"},
		{"NoPhaseLetters", "N", "#000000"},
		{"ServiceOnly", "S", "#000000"},
		// The empty string takes the no-channel branch, never the
		// all-three override: both end up dark but via different paths.
		{"Empty", "", "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PhaseColor(tt.phases); got != tt.want {
				t.Errorf("PhaseColor(%q) = %q, want %q", tt.phases, got, tt.want)
			}
		})
	}
}

func TestPhaseShape(t *testing.T) {
	tests := []struct {
		name   string
		phases string
		want   Shape
	}{
		{"Service", "AS", ShapeRound},
		{"Delta", "ABCD", ShapeTriangleUp},
		{"Plain", "ABCN", ShapeTriangleDown},
		{"SinglePhase", "AN", ShapeTriangleDown},
		{"ServiceBeatsDelta", "SD", ShapeRound},
		{"Empty", "", ShapeTriangleDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PhaseShape(tt.phases); got != tt.want {
				t.Errorf("PhaseShape(%q) = %q, want %q", tt.phases, got, tt.want)
			}
		})
	}
}

func TestPhaseEdgeColor(t *testing.T) {
	tests := []struct {
		phases string
		want   string
	}{
		{"ABCN", "black"},
		{"N", "black"},
		{"ABC", "white"},
		{"", "white"},
	}

	for _, tt := range tests {
		if got := PhaseEdgeColor(tt.phases); got != tt.want {
			t.Errorf("PhaseEdgeColor(%q) = %q, want %q", tt.phases, got, tt.want)
		}
	}
}
