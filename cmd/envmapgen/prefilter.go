package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"envmapgen/ibl"
	"envmapgen/libio"
	"envmapgen/ltasg"
)

type prefilterArgs struct {
	commonArgs
	sigmas     sigmaList
	passes     int
	resolution float64
	width      float64
	linear     bool
	pngOut     bool
}

func createPrefilterCommand() *command {
	args := prefilterArgs{
		commonArgs: commonArgs{
			ext: ".iblenv",
		},
		sigmas:     sigmaList{0.02, 0.05, 0.1, 0.2},
		passes:     ltasg.DefaultMinNumPasses,
		resolution: ltasg.DefaultKernelResolution,
		width:      ltasg.DefaultKernelWidth,
	}

	flags := flag.NewFlagSet("prefilter", flag.ExitOnError)

	registerCommonFlags(flags, &args.commonArgs)

	flags.Var(&args.sigmas, "sigmas", "comma separated gaussian sigma per mip level, relative to the face size")
	flags.Var(&args.sigmas, "s", "shorthand for sigmas")
	flags.IntVar(&args.passes, "passes", args.passes, "minimum number of convolution rounds per level")
	flags.Float64Var(&args.resolution, "resolution", args.resolution, "kernel taps per pixel")
	flags.Float64Var(&args.width, "width", args.width, "kernel half extent in standard deviations")
	flags.BoolVar(&args.linear, "linear", args.linear, "treat input color as linear instead of srgb")
	flags.BoolVar(&args.pngOut, "png", args.pngOut, "additionally write each mip level face as png")

	return &command{
		Name: "prefilter",
		Help: "convolve cube maps into pre-filtered radiance mip chains",
		Run: func(self *command) {
			if self.Flags.NArg() < 1 || args.compress < 0 || args.compress > 10 {
				printCommandUsage(self, " face-file...")
			}
			setCommonArgs(&args.commonArgs)

			runPrefilter(args, gatherInputFiles(self.Flags.Args()))
		},
		Flags: flags,
	}
}

func runPrefilter(args prefilterArgs, inputFiles []string) {
	ext := cargs.suffix + cargs.ext

	success := 0
	start := time.Now()
	for i, p := range inputFiles {
		if !cargs.quiet {
			fmt.Printf("Processing file %d/%d %q ...\n", i+1, len(inputFiles), filepath.ToSlash(filepath.Clean(p)))
		}
		err := prefilterFile(args, p, ext)
		softerr(err)
		if err == nil {
			success++
		}
	}
	if !cargs.quiet {
		took := float32(time.Since(start).Milliseconds()) / 1000
		fmt.Printf("Prefiltered %d/%d cube maps in %.3f seconds\n", success, len(inputFiles), took)
	}
}

func prefilterFile(args prefilterArgs, p string, ext string) error {
	paths, err := cubeMapPathsFromOne(p)
	if err != nil {
		return err
	}

	faces, err := loadCubeMapFaces(paths)
	if err != nil {
		return err
	}

	size := faces[0].Width
	conv, err := ibl.NewLtasgConvolver(ltasg.Options{
		ImageSize:        size,
		MipLevelSigmas:   args.sigmas,
		MinNumPasses:     args.passes,
		KernelResolution: float32(args.resolution),
		KernelWidth:      float32(args.width),
	})
	if err != nil {
		return err
	}
	defer conv.Release()

	coercer := ibl.NewSwCoercer()
	defer coercer.Release()

	data := make([]float32, ibl.CalcCubeMapFloats(size, 1))
	env := ibl.NewIblEnv(data, size, 1)
	for i, img := range faces {
		if img.Width != size || img.Height != size {
			return fmt.Errorf("face %q is %dx%d, want %dx%d", paths.path(i), img.Width, img.Height, size, size)
		}
		flt, err := coercer.CoerceIn(img, !args.linear)
		if err != nil {
			return err
		}
		copy(env.Face(0, i), flt.Pix)
	}

	if !cargs.quiet {
		fmt.Printf("Prefiltering %d levels from %dx%d ...\n", len(args.sigmas), size, size)
	}

	result, err := conv.Convolve(env)
	if err != nil {
		return err
	}

	outFilename := filepath.Join(cargs.out, paths.name()+ext)
	outFile, err := os.OpenFile(outFilename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer close(outFile)

	if !cargs.quiet {
		fmt.Printf("Writing %q ...\n", filepath.ToSlash(filepath.Clean(outFilename)))
	}

	err = ibl.EncodeIblEnv(outFile, result, ibl.OptCompress(cargs.compress-1))
	if err != nil {
		outFile.Close()
		os.Remove(outFilename)
		return err
	}

	if args.pngOut {
		return writeLevelPngs(paths.name(), coercer, result)
	}

	return nil
}

func writeLevelPngs(name string, coercer ibl.Coercer, env *ibl.IblEnv) error {
	for lvl := 0; lvl < env.Levels; lvl++ {
		size := env.Size(lvl)
		for f := 0; f < 6; f++ {
			flt := libio.NewFloatImage(env.Face(lvl, f), 4, size, size)
			img, err := coercer.CoerceOut(flt, ibl.PixelFormatSRGBA8)
			if err != nil {
				return err
			}

			outFilename := filepath.Join(cargs.out, fmt.Sprintf("%s_%d_%s.png", name, lvl, faceStems[f]))
			outFile, err := os.OpenFile(outFilename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
			if err != nil {
				return err
			}

			err = png.Encode(outFile, img.ToRGBA())
			outFile.Close()
			if err != nil {
				return err
			}
		}
	}
	return nil
}
