package sim

import (
	"math"
	"testing"

	"github.com/chrissnell/solarsim/internal/types"
)

func testInverterSpec() types.InverterSpec {
	return types.InverterSpec{
		Name:          "test-3000",
		PowerACRatedW: 3000,
		Efficiency: []types.EffPoint{
			{DCW: 25, Eta: 0.90},
			{DCW: 300, Eta: 0.95},
			{DCW: 1500, Eta: 0.965},
			{DCW: 3100, Eta: 0.96},
		},
	}
}

func TestNewInverterRejects(t *testing.T) {
	tests := []struct {
		name string
		spec types.InverterSpec
	}{
		{
			name: "single-point curve",
			spec: types.InverterSpec{
				Name:          "bad",
				PowerACRatedW: 1000,
				Efficiency:    []types.EffPoint{{DCW: 100, Eta: 0.9}},
			},
		},
		{
			name: "non-increasing curve",
			spec: types.InverterSpec{
				Name:          "bad",
				PowerACRatedW: 1000,
				Efficiency: []types.EffPoint{
					{DCW: 100, Eta: 0.9},
					{DCW: 100, Eta: 0.95},
				},
			},
		},
		{
			name: "efficiency above one",
			spec: types.InverterSpec{
				Name:          "bad",
				PowerACRatedW: 1000,
				Efficiency: []types.EffPoint{
					{DCW: 100, Eta: 0.9},
					{DCW: 200, Eta: 1.05},
				},
			},
		},
		{
			name: "zero rated power",
			spec: types.InverterSpec{
				Name: "bad",
				Efficiency: []types.EffPoint{
					{DCW: 100, Eta: 0.9},
					{DCW: 200, Eta: 0.95},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewInverter(tt.spec); err == nil {
				t.Error("expected an error")
			} else if !types.IsValidationError(err) {
				t.Errorf("expected a validation error, got %v", err)
			}
		})
	}
}

func TestInverterConvert(t *testing.T) {
	inv, err := NewInverter(testInverterSpec())
	if err != nil {
		t.Fatalf("NewInverter: %v", err)
	}

	tests := []struct {
		name     string
		dcW      float64
		wantAC   float64
		wantLoss float64
		wantClip float64
		epsilon  float64
	}{
		{name: "no input", dcW: 0, wantAC: 0, wantLoss: 0, wantClip: 0, epsilon: 0},
		{name: "below power-on threshold", dcW: 10, wantAC: 0, wantLoss: 10, wantClip: 0, epsilon: 0},
		{name: "at a curve knot", dcW: 300, wantAC: 285, wantLoss: 15, wantClip: 0, epsilon: 1e-9},
		{name: "between knots", dcW: 162.5, wantAC: 150.3125, wantLoss: 12.1875, wantClip: 0, epsilon: 1e-9},
		{name: "clipping at nameplate", dcW: 3500, wantAC: 3000, wantLoss: 140, wantClip: 360, epsilon: 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ac, loss, clip := inv.Convert(tt.dcW)
			if math.Abs(ac-tt.wantAC) > tt.epsilon {
				t.Errorf("AC = %v, want %v", ac, tt.wantAC)
			}
			if math.Abs(loss-tt.wantLoss) > tt.epsilon {
				t.Errorf("conversion loss = %v, want %v", loss, tt.wantLoss)
			}
			if math.Abs(clip-tt.wantClip) > tt.epsilon {
				t.Errorf("clipping loss = %v, want %v", clip, tt.wantClip)
			}
		})
	}
}

func TestInverterNeverExceedsRated(t *testing.T) {
	inv, err := NewInverter(testInverterSpec())
	if err != nil {
		t.Fatalf("NewInverter: %v", err)
	}

	rated := inv.Spec().PowerACRatedW
	for dc := 0.0; dc <= 100000; dc += 37 {
		ac, _, _ := inv.Convert(dc)
		if ac > rated {
			t.Fatalf("AC %v exceeds rated %v at DC %v", ac, rated, dc)
		}
	}
}

func TestInverterPowerOnThreshold(t *testing.T) {
	inv, err := NewInverter(testInverterSpec())
	if err != nil {
		t.Fatalf("NewInverter: %v", err)
	}

	if got := inv.PowerOnThresholdW(); got != 25 {
		t.Errorf("PowerOnThresholdW = %v, want 25", got)
	}
}
