package ibl

import (
	"encoding/binary"
	"fmt"
	"io"

	"envmapgen/libio"

	"github.com/pierrec/lz4/v4"
)

type IblEnvVersion uint32

const (
	// Single level, RGB, four byte RGBE payload.
	IblEnvVersion1_001_000 = IblEnvVersion(1_001_000)
	// Mip chain, RGB, four byte RGBE payload.
	IblEnvVersion1_002_000 = IblEnvVersion(1_002_000)
	// Mip chain, premultiplied RGBA, five byte RGBE+A payload.
	IblEnvVersion1_003_000 = IblEnvVersion(1_003_000)
)

type IblEnvCompression uint32

const (
	IblEnvCompressionNone = IblEnvCompression(iota)
	IblEnvCompressionLZ4Fast
	IblEnvCompressionLZ4
)

type IblEnvHeader struct {
	Check       uint32
	Version     IblEnvVersion
	Compression IblEnvCompression
	Size        uint32
	Levels      uint32
}

type EncodeContext struct {
	Compression IblEnvCompression
	Writer      io.Writer
}

type EncodeOption func(ctx *EncodeContext) error

// OptCompress wraps the payload in an LZ4 stream. Level 0 selects the fast
// encoder, higher levels trade speed for ratio; negative levels disable
// compression.
func OptCompress(level int) EncodeOption {
	levels := []lz4.CompressionLevel{lz4.Fast, lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5, lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9}
	if level < 0 {
		return nil
	}

	if level >= len(levels) {
		level = len(levels) - 1
	}

	return func(ctx *EncodeContext) error {
		if ctx.Compression != IblEnvCompressionNone {
			return fmt.Errorf("compression already configured")
		}
		lzw := lz4.NewWriter(ctx.Writer)
		lzw.Apply(lz4.CompressionLevelOption(levels[level]))
		if level == 0 {
			ctx.Compression = IblEnvCompressionLZ4Fast
		} else {
			ctx.Compression = IblEnvCompressionLZ4
		}
		ctx.Writer = lzw
		return nil
	}
}

// EncodeIblEnv writes env to w in the iblenv container format: a little
// endian header followed by the RGBE+A payload of every mip level.
func EncodeIblEnv(w io.Writer, env *IblEnv, options ...EncodeOption) (err error) {
	var bw *libio.BinaryWriter
	var ok bool

	if bw, ok = w.(*libio.BinaryWriter); !ok {
		bw = &libio.BinaryWriter{
			Dst:   w,
			Order: binary.LittleEndian,
		}

		defer func() {
			if bw.Err != nil {
				if err == nil {
					err = bw.Err
				} else {
					err = fmt.Errorf("%v: %w", err, bw.Err)
				}
			}
		}()
	}

	ctx := EncodeContext{
		Writer: bw.Dst,
	}

	for _, opt := range options {
		if opt != nil {
			err = opt(&ctx)
			if err != nil {
				return err
			}
		}
	}

	header := IblEnvHeader{
		Check:       MagicNumberIBLENV,
		Version:     IblEnvVersion1_003_000,
		Compression: ctx.Compression,
		Size:        uint32(env.BaseSize),
		Levels:      uint32(env.Levels),
	}
	if !bw.WriteRef(&header) {
		return fmt.Errorf("could not write ibl env header: %w", bw.Err)
	}

	if err := EncodeRgbe(ctx.Writer, env.Concat()); err != nil {
		return fmt.Errorf("could not write ibl env encoded pixels: %w", err)
	}

	if closer, ok := (ctx.Writer).(io.WriteCloser); ok {
		err = closer.Close()
		if err != nil {
			return err
		}
	}

	return nil
}
