package ltasg_test

import (
	"errors"
	"math"
	"testing"

	"envmapgen/ltasg"
)

func TestNewPlanDefaults(t *testing.T) {
	plan, err := ltasg.NewPlan(ltasg.Options{
		ImageSize:      128,
		MipLevelSigmas: []float32{0.1},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(plan.Levels) != 1 {
		t.Fatalf("plan should have 1 level but has %d", len(plan.Levels))
	}

	spec := plan.Levels[0]
	if spec.Size != 128 {
		t.Errorf("level size should be 128 but is %d", spec.Size)
	}
	if spec.NumPasses != 2 {
		t.Errorf("level passes should be 2 but are %d", spec.NumPasses)
	}
	if spec.Scale != 0.5 {
		t.Errorf("kernel scale should be 0.5 but is %g", spec.Scale)
	}
	// sigma 0.1 over 2 passes at 128px is 9.05px, radius floor(9.05*2*3).
	if spec.Radius() != 54 {
		t.Errorf("kernel radius should be 54 but is %d", spec.Radius())
	}
}

func TestNewPlanLevelSizes(t *testing.T) {
	plan, err := ltasg.NewPlan(ltasg.Options{
		ImageSize:      100,
		MipLevelSigmas: []float32{0.05, 0.1, 0.2, 0.3},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []int{100, 50, 25, 13}
	for i, spec := range plan.Levels {
		if spec.Size != want[i] {
			t.Errorf("level %d size should be %d but is %d", i, want[i], spec.Size)
		}
	}
}

func TestNewPlanVarianceDecomposition(t *testing.T) {
	plan, err := ltasg.NewPlan(ltasg.Options{
		ImageSize:      64,
		MipLevelSigmas: []float32{0.1, 0.2},
		MinNumPasses:   1,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Level 1 carries only the residue variance 0.2^2 - 0.1^2 = 0.03,
	// spread over its passes at the 32px resolution.
	spec := plan.Levels[1]
	perPass := 0.03 / float64(spec.NumPasses)
	wantSigma := math.Sqrt(perPass) * 32

	// The kernel sigma is expressed in taps, two per pixel.
	gotSigma := kernelSigma(spec.Kernel) / 2
	if math.Abs(gotSigma-wantSigma) > wantSigma*0.03 {
		t.Errorf("level 1 pass sigma should be %.3fpx but measures %.3fpx", wantSigma, gotSigma)
	}
}

// kernelSigma measures the standard deviation of a kernel in tap units.
func kernelSigma(kernel []float32) float64 {
	radius := len(kernel) / 2
	var variance float64
	for i, w := range kernel {
		d := float64(i - radius)
		variance += float64(w) * d * d
	}
	return math.Sqrt(variance)
}

func TestNewPlanRepeatedSigmaIsNearNoop(t *testing.T) {
	plan, err := ltasg.NewPlan(ltasg.Options{
		ImageSize:      64,
		MipLevelSigmas: []float32{0.1, 0.1, 0.1},
	})
	if err != nil {
		t.Fatal(err)
	}

	// The cumulative target advances level by level, so repeating a sigma
	// leaves no residue variance and degenerates to identity kernels.
	for lvl := 1; lvl < 3; lvl++ {
		if r := plan.Levels[lvl].Radius(); r != 0 {
			t.Errorf("level %d kernel radius should be 0 but is %d", lvl, r)
		}
	}
	if plan.Levels[0].Radius() == 0 {
		t.Error("level 0 must carry the whole blur")
	}
}

func TestNewPlanRejectsNonMonotonicSigmas(t *testing.T) {
	_, err := ltasg.NewPlan(ltasg.Options{
		ImageSize:      64,
		MipLevelSigmas: []float32{0.1, 0.05},
	})
	if !errors.Is(err, ltasg.ErrNonMonotonicSigmas) {
		t.Errorf("got %v, want ErrNonMonotonicSigmas", err)
	}

	_, err = ltasg.NewPlan(ltasg.Options{
		ImageSize:      64,
		MipLevelSigmas: []float32{-0.1},
	})
	if !errors.Is(err, ltasg.ErrNonMonotonicSigmas) {
		t.Errorf("negative sigma: got %v, want ErrNonMonotonicSigmas", err)
	}
}

func TestNewPlanRejectsBadSizes(t *testing.T) {
	_, err := ltasg.NewPlan(ltasg.Options{
		ImageSize:      0,
		MipLevelSigmas: []float32{0.1},
	})
	if !errors.Is(err, ltasg.ErrInvalidSize) {
		t.Errorf("zero size: got %v, want ErrInvalidSize", err)
	}

	_, err = ltasg.NewPlan(ltasg.Options{
		ImageSize:      40000,
		MipLevelSigmas: []float32{0.1},
	})
	if !errors.Is(err, ltasg.ErrInvalidSize) {
		t.Errorf("oversized: got %v, want ErrInvalidSize", err)
	}
}

func TestNewPlanKernelsRespectFootprintGuard(t *testing.T) {
	// The per-pass sigma cap keeps even aggressive blurs on tiny faces
	// within the one-neighbor footprint bound.
	plan, err := ltasg.NewPlan(ltasg.Options{
		ImageSize:      8,
		MipLevelSigmas: []float32{0.4},
	})
	if err != nil {
		t.Fatal(err)
	}

	for i, spec := range plan.Levels {
		if float32(spec.Size) <= float32(spec.Radius())*spec.Scale*1.8 {
			t.Errorf("level %d radius %d at scale %g breaks the footprint bound for size %d",
				i, spec.Radius(), spec.Scale, spec.Size)
		}
	}
}
