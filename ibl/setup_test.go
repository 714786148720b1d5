package ibl_test

import (
	"math/rand"
	"testing"

	"envmapgen/ibl"
)

func randomFloats(count int, min, max float32) []float32 {
	rng := rand.New(rand.NewSource(0))
	ret := make([]float32, count)
	for i := range ret {
		ret[i] = rng.Float32()*(max-min) + min
	}
	return ret
}

// randomEnv fills a single level environment with random premultiplied
// pixels: color in [0, max*alpha], alpha in (0, 1].
func randomEnv(t *testing.T, size int, max float32) *ibl.IblEnv {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	data := make([]float32, ibl.CalcCubeMapFloats(size, 1))
	for i := 0; i < len(data); i += 4 {
		a := rng.Float32()*0.75 + 0.25
		data[i+0] = rng.Float32() * max * a
		data[i+1] = rng.Float32() * max * a
		data[i+2] = rng.Float32() * max * a
		data[i+3] = a
	}
	return ibl.NewIblEnv(data, size, 1)
}

func constantEnv(t *testing.T, size int, color [4]float32) *ibl.IblEnv {
	t.Helper()
	data := make([]float32, ibl.CalcCubeMapFloats(size, 1))
	for i := range data {
		data[i] = color[i%4]
	}
	return ibl.NewIblEnv(data, size, 1)
}
