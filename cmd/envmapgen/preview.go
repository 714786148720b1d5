package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"envmapgen/ibl"
	"envmapgen/libio"
)

type previewArgs struct {
	commonArgs
	gamma    float64
	scale    float64
	reinhard bool
}

func createPreviewCommand() *command {
	args := previewArgs{
		commonArgs: commonArgs{
			ext: ".png",
		},
		gamma: 2.2,
		scale: 1.0,
	}

	flags := flag.NewFlagSet("preview", flag.ExitOnError)

	registerCommonFlags(flags, &args.commonArgs)

	flags.Float64Var(&args.gamma, "gamma", args.gamma, "gamma correction value")
	flags.Float64Var(&args.scale, "scale", args.scale, "brightness scale factor")
	flags.BoolVar(&args.reinhard, "reinhard", args.reinhard, "apply reinhard tonemapping")

	return &command{
		Name: "preview",
		Help: "render iblenv environments to png",
		Run: func(self *command) {
			if self.Flags.NArg() < 1 {
				printCommandUsage(self, " file-glob...")
			}
			setCommonArgs(&args.commonArgs)

			runPreview(args, gatherInputFiles(self.Flags.Args()))
		},
		Flags: flags,
	}
}

func runPreview(args previewArgs, inputFiles []string) {
	ext := cargs.suffix + cargs.ext
	success := 0
	start := time.Now()
	for i, p := range inputFiles {
		if !cargs.quiet {
			fmt.Printf("Processing file %d/%d %q ...\n", i+1, len(inputFiles), filepath.ToSlash(filepath.Clean(p)))
		}
		err := previewFile(args, p, ext)
		softerr(err)
		if err == nil {
			success++
		}
	}
	if !cargs.quiet {
		took := float32(time.Since(start).Milliseconds()) / 1000
		fmt.Printf("Converted %d/%d files in %.3f seconds\n", success, len(inputFiles), took)
	}
}

func previewFile(args previewArgs, p string, ext string) error {
	inFile, err := os.Open(p)
	if err != nil {
		return err
	}
	defer close(inFile)

	hdri, err := ibl.DecodeOldIblEnv(inFile)
	if err != nil {
		return err
	}

	if !cargs.quiet {
		fmt.Printf("Converting %d levels to png ...\n", hdri.Levels)
	}

	for i := 0; i < hdri.Levels; i++ {
		outFilename := filepath.Join(cargs.out, strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))+fmt.Sprintf("_%d", i)+ext)
		outFile, err := os.OpenFile(outFilename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
		if err != nil {
			return err
		}
		defer close(outFile)

		size := hdri.Size(i)
		// The six faces of one level are contiguous, so the level reads as
		// one tall image with the faces stacked vertically.
		fimg := libio.NewFloatImage(unpremultiply(hdri.Level(i)), 4, size, size*6)
		if args.reinhard {
			for i := 0; i < fimg.Count(); i++ {
				fimg.Pix[i*4+0] = fimg.Pix[i*4+0] / (1 + fimg.Pix[i*4+0])
				fimg.Pix[i*4+1] = fimg.Pix[i*4+1] / (1 + fimg.Pix[i*4+1])
				fimg.Pix[i*4+2] = fimg.Pix[i*4+2] / (1 + fimg.Pix[i*4+2])
			}
		}
		rgba := fimg.ToIntImage(float32(args.gamma), float32(args.scale)).ToRGBA()

		if !cargs.quiet {
			fmt.Printf("Writing %q ...\n", filepath.ToSlash(filepath.Clean(outFilename)))
		}

		err = png.Encode(outFile, rgba)
		if err != nil {
			return err
		}
	}

	return nil
}

// unpremultiply copies the pixels with alpha divided back out, leaving
// alpha itself untouched for the png encoder.
func unpremultiply(pix []float32) []float32 {
	out := make([]float32, len(pix))
	copy(out, pix)
	for i := 0; i+3 < len(out); i += 4 {
		a := out[i+3]
		if a > 0 && a < 1 {
			out[i+0] /= a
			out[i+1] /= a
			out[i+2] /= a
		}
	}
	return out
}
