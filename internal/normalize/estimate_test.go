package normalize

import "testing"

func TestEstimateParticipants(t *testing.T) {
	tests := []struct {
		name         string
		commentCount int
		volume       float64
		want         int
	}{
		{"volume dominates", 5, 5_000_000, 10_000},
		{"comments dominate", 300, 1_000, 300},
		{"zero both", 0, 0, 0},
		{"volume rounds", 0, 1_250, 3},
		{"tie", 10, 5_000, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateParticipants(tt.commentCount, tt.volume); got != tt.want {
				t.Errorf("EstimateParticipants(%d, %v) = %d, want %d",
					tt.commentCount, tt.volume, got, tt.want)
			}
		})
	}
}

func TestTrending(t *testing.T) {
	tests := []struct {
		name      string
		volume1wk float64
		featured  bool
		want      bool
	}{
		{"high weekly volume", 1_500_000, false, true},
		{"exactly at threshold", 1_000_000, false, false},
		{"featured overrides low volume", 100, true, true},
		{"neither", 999_999, false, false},
		{"both", 50_000_000, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Trending(tt.volume1wk, tt.featured); got != tt.want {
				t.Errorf("Trending(%v, %v) = %v, want %v",
					tt.volume1wk, tt.featured, got, tt.want)
			}
		})
	}
}
