package ibl

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/chewxy/math32"
	"github.com/pierrec/lz4/v4"
)

type iblEnvHeader1_001_000 struct {
	Check       uint32
	Version     IblEnvVersion
	Compression IblEnvCompression
	Size        uint32
}

// DecodeOldIblEnv reads containers written before version 1.3. Those store
// straight RGB without alpha as four byte RGBE records; the pixels are
// upgraded to opaque premultiplied RGBA.
func DecodeOldIblEnv(r io.Reader) (env *IblEnv, err error) {
	le := binary.LittleEndian

	header := iblEnvHeader1_001_000{}
	err = binary.Read(r, le, &header)
	if err != nil {
		return nil, err
	}

	if header.Check != MagicNumberIBLENV {
		return nil, fmt.Errorf("environment header is corrupt")
	}

	levels := uint32(1)
	switch header.Version {
	case IblEnvVersion1_001_000:
	case IblEnvVersion1_002_000:
		err = binary.Read(r, le, &levels)
		if err != nil {
			return nil, err
		}
	case IblEnvVersion1_003_000:
		full := IblEnvHeader{
			Check:       header.Check,
			Version:     header.Version,
			Compression: header.Compression,
			Size:        header.Size,
		}
		err = binary.Read(r, le, &full.Levels)
		if err != nil {
			return nil, err
		}
		return decodeIblEnvPayload(r, full)
	default:
		return nil, fmt.Errorf("environment version %d unsupported", header.Version)
	}

	pixr := r
	if header.Compression == IblEnvCompressionLZ4 || header.Compression == IblEnvCompressionLZ4Fast {
		pixr = lz4.NewReader(r)
	} else if header.Compression != IblEnvCompressionNone {
		return nil, fmt.Errorf("environment compression id %d unsupported", header.Compression)
	}

	pixels := CalcCubeMapPixels(int(header.Size), int(levels))
	data := make([]byte, pixels*4)
	_, err = io.ReadFull(pixr, data)
	if err != nil {
		return nil, fmt.Errorf("expected %d encoded pixels; %w", pixels, err)
	}

	colors := make([]float32, pixels*4)
	for i := 0; i < pixels; i++ {
		e := data[i*4+3]
		if e != 0 {
			f := math32.Ldexp(1, int(e)-(128+8))
			colors[i*4+0] = float32(data[i*4+0]) * f
			colors[i*4+1] = float32(data[i*4+1]) * f
			colors[i*4+2] = float32(data[i*4+2]) * f
		}
		colors[i*4+3] = 1
	}

	return NewIblEnv(colors, int(header.Size), int(levels)), nil
}

func decodeIblEnvPayload(r io.Reader, header IblEnvHeader) (*IblEnv, error) {
	pixr := r
	if header.Compression == IblEnvCompressionLZ4 || header.Compression == IblEnvCompressionLZ4Fast {
		pixr = lz4.NewReader(r)
	} else if header.Compression != IblEnvCompressionNone {
		return nil, fmt.Errorf("environment compression id %d unsupported", header.Compression)
	}

	pixels := CalcCubeMapPixels(int(header.Size), int(header.Levels))
	data := make([]byte, pixels*rgbeRecordBytes)
	_, err := io.ReadFull(pixr, data)
	if err != nil {
		return nil, fmt.Errorf("expected %d encoded pixels; %w", pixels, err)
	}

	colors, err := DecodeRgbeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("decoding error: %w", err)
	}

	return NewIblEnv(colors, int(header.Size), int(header.Levels)), nil
}
