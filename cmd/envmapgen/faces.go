package main

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"envmapgen/libio"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// A cube map on disk is six image files named posx.EXT, negx.EXT and so
// forth in one directory; any one of them identifies the set.
var faceStems = [6]string{"posx", "negx", "posy", "negy", "posz", "negz"}

type cubeMapPaths struct {
	dir string
	ext string
}

func cubeMapPathsFromOne(name string) (*cubeMapPaths, error) {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for _, s := range faceStems {
		if strings.EqualFold(stem, s) {
			return &cubeMapPaths{dir: filepath.Dir(name), ext: ext}, nil
		}
	}
	return nil, fmt.Errorf("%q does not name a cube map face (posx%s .. negz%s)", name, ext, ext)
}

func (c *cubeMapPaths) path(face int) string {
	return filepath.Join(c.dir, faceStems[face]+c.ext)
}

func (c *cubeMapPaths) name() string {
	return filepath.Base(filepath.Clean(c.dir))
}

// loadFaceImage decodes one face file into a 4 channel 8-bit image.
// PNG and JPEG decode via the standard library, BMP and TIFF via x/image.
func loadFaceImage(path string) (*libio.IntImage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer close(file)

	src, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}

	bounds := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	return libio.FromRGBA(rgba), nil
}

func loadCubeMapFaces(paths *cubeMapPaths) ([]*libio.IntImage, error) {
	faces := make([]*libio.IntImage, 6)
	for i := range faces {
		img, err := loadFaceImage(paths.path(i))
		if err != nil {
			return nil, err
		}
		faces[i] = img
	}
	return faces, nil
}
