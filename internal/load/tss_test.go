package load

import (
	"math"
	"testing"

	"github.com/garrettladley/ready/internal/wellness"
)

func ptr[T any](v T) *T { return &v }

func TestTSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		durationMin float64
		intensity   float64
		want        float64
	}{
		{name: "one hour at max intensity", durationMin: 60, intensity: 10, want: 100},
		{name: "rounds half up", durationMin: 30, intensity: 5, want: 13},
		{name: "ninety minutes at seven", durationMin: 90, intensity: 7, want: 74},
		{name: "zero duration", durationMin: 0, intensity: 8, want: 0},
		{name: "zero intensity", durationMin: 45, intensity: 0, want: 0},
		{name: "negative duration", durationMin: -10, intensity: 8, want: 0},
		{name: "intensity clamped to ten", durationMin: 60, intensity: 15, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TSS(tt.durationMin, tt.intensity); got != tt.want {
				t.Errorf("TSS(%v, %v) = %v, want %v", tt.durationMin, tt.intensity, got, tt.want)
			}
		})
	}
}

func TestTSSZeroForEitherZeroInput(t *testing.T) {
	t.Parallel()

	for x := 0.0; x <= 300; x += 7.5 {
		if got := TSS(0, x); got != 0 {
			t.Errorf("TSS(0, %v) = %v, want 0", x, got)
		}
		if got := TSS(x, 0); got != 0 {
			t.Errorf("TSS(%v, 0) = %v, want 0", x, got)
		}
	}

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := TSS(bad, 5); got != 0 {
			t.Errorf("TSS(%v, 5) = %v, want 0", bad, got)
		}
		if got := TSS(60, bad); got != 0 {
			t.Errorf("TSS(60, %v) = %v, want 0", bad, got)
		}
		if got := TSSWithRPE(60, bad, 5); got != 0 {
			t.Errorf("TSSWithRPE(60, %v, 5) = %v, want 0", bad, got)
		}
		if got, want := TSSWithRPE(60, 10, bad), TSS(60, 10); got != want {
			t.Errorf("TSSWithRPE(60, 10, %v) = %v, want unscaled %v", bad, got, want)
		}
	}
}

func TestTSSNonDecreasing(t *testing.T) {
	t.Parallel()

	for intensity := 0.0; intensity <= 10; intensity += 0.5 {
		prev := -1.0
		for duration := 0.0; duration <= 240; duration += 5 {
			got := TSS(duration, intensity)
			if got < prev {
				t.Fatalf("TSS decreased in duration at (%v, %v): %v < %v", duration, intensity, got, prev)
			}
			prev = got
		}
	}

	for duration := 0.0; duration <= 240; duration += 15 {
		prev := -1.0
		for intensity := 0.0; intensity <= 12; intensity += 0.25 {
			got := TSS(duration, intensity)
			if got < prev {
				t.Fatalf("TSS decreased in intensity at (%v, %v): %v < %v", duration, intensity, got, prev)
			}
			prev = got
		}
	}
}

func TestTSSWithRPE(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rpe  float64
		want float64
	}{
		{name: "no rpe leaves score unscaled", rpe: 0, want: 100},
		{name: "rpe clamped to ten", rpe: 20, want: 77},
		{name: "half of neutral", rpe: 6.5, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TSSWithRPE(60, 10, tt.rpe); got != tt.want {
				t.Errorf("TSSWithRPE(60, 10, %v) = %v, want %v", tt.rpe, got, tt.want)
			}
		})
	}
}

func TestSessionTSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		session wellness.TrainingSession
		want    float64
	}{
		{
			name:    "precomputed wins",
			session: wellness.TrainingSession{Duration: 60, RPE: 10, TSS: ptr(42.0)},
			want:    42,
		},
		{
			name:    "rpe used as intensity",
			session: wellness.TrainingSession{Duration: 60, RPE: 10},
			want:    100,
		},
		{
			name:    "intensity scaled by rpe",
			session: wellness.TrainingSession{Duration: 60, RPE: 6.5, Intensity: ptr(10.0)},
			want:    50,
		},
		{
			name:    "non-finite stored score",
			session: wellness.TrainingSession{Duration: 60, RPE: 10, TSS: ptr(math.NaN())},
			want:    0,
		},
		{
			name:    "nothing recorded",
			session: wellness.TrainingSession{},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SessionTSS(tt.session); got != tt.want {
				t.Errorf("SessionTSS() = %v, want %v", got, tt.want)
			}
		})
	}
}
