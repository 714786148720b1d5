package ltasg_test

import (
	"math/rand"
	"testing"

	"envmapgen/ltasg"
)

func randomFaceSet(t *testing.T, size int, min, max float32) *ltasg.FaceSet {
	t.Helper()
	set, err := ltasg.NewFaceSet(size)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(0))
	data := set.Concat()
	for i := range data {
		data[i] = rng.Float32()*(max-min) + min
	}
	return set
}

func constantFaceSet(t *testing.T, size int, color [4]float32) *ltasg.FaceSet {
	t.Helper()
	set, err := ltasg.NewFaceSet(size)
	if err != nil {
		t.Fatal(err)
	}
	data := set.Concat()
	for i := range data {
		data[i] = color[i%4]
	}
	return set
}

func emptyFaceSet(t *testing.T, size int) *ltasg.FaceSet {
	t.Helper()
	set, err := ltasg.NewFaceSet(size)
	if err != nil {
		t.Fatal(err)
	}
	return set
}

// channelSum adds up one channel over all six faces.
func channelSum(set *ltasg.FaceSet, ch int) float64 {
	var sum float64
	data := set.Concat()
	for i := ch; i < len(data); i += ltasg.Channels {
		sum += float64(data[i])
	}
	return sum
}

func maxAbsDiff(a, b []float32) float32 {
	var max float32
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		if d > max {
			max = d
		}
	}
	return max
}
