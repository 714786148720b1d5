package ibl

import (
	"encoding/binary"
	"fmt"
	"io"

	"envmapgen/libio"
)

// DecodeIblEnv reads an iblenv container written by EncodeIblEnv. Older
// versions are handled by DecodeOldIblEnv.
func DecodeIblEnv(r io.Reader) (env *IblEnv, err error) {
	var br *libio.BinaryReader
	var ok bool

	if br, ok = r.(*libio.BinaryReader); !ok {
		br = &libio.BinaryReader{
			Src:   r,
			Order: binary.LittleEndian,
		}

		defer func() {
			if br.Err != nil {
				if err == nil {
					err = br.Err
				} else {
					err = fmt.Errorf("%v: %w", err, br.Err)
				}
			}
		}()
	}

	header := IblEnvHeader{}
	if !br.ReadRef(&header) {
		return nil, fmt.Errorf("expected environment header; byte 0x%08x", br.LastIndex)
	}

	if header.Check != MagicNumberIBLENV {
		return nil, fmt.Errorf("environment header is corrupt; byte 0x%08x", br.LastIndex)
	}

	if header.Version != IblEnvVersion1_003_000 {
		return nil, fmt.Errorf("environment version %d unsupported; byte 0x%08x", header.Version, br.LastIndex)
	}

	return decodeIblEnvPayload(br.Src, header)
}
