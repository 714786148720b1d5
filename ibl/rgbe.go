package ibl

import (
	"fmt"
	"io"

	"github.com/chewxy/math32"
)

// The container payload stores each premultiplied RGBA pixel as a five byte
// record: a shared-exponent RGBE color (Ward's encoding) followed by one
// linear alpha byte. Color keeps its high dynamic range; alpha is a
// coverage fraction and survives 8 bits.

const (
	rgbeRecordBytes = 5
	// 3072 pixels per streaming chunk: 48 KiB of floats in, 15 KiB out.
	rgbeChunkPixels = 3072
)

// EncodeRgbe writes RGBA float pixels to w as five byte RGBE+A records,
// streaming in fixed size chunks. The data length must be a multiple of 4.
func EncodeRgbe(w io.Writer, data []float32) error {
	if len(data)%4 != 0 {
		return fmt.Errorf("source not a multiple of 4 floats")
	}

	buf := make([]byte, rgbeChunkPixels*rgbeRecordBytes)

	rsize := rgbeChunkPixels * 4
	for i := 0; i < len(data); i += rsize {
		j := i + rsize
		if j > len(data) {
			j = len(data)
		}
		chunk := data[i:j]
		n := encodeRgbeChunk(chunk, buf)

		_, err := w.Write(buf[:n])
		if err != nil {
			return err
		}
	}
	return nil
}

// EncodeRgbeBytes encodes RGBA float pixels into a new byte slice.
func EncodeRgbeBytes(data []float32) ([]byte, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("source not a multiple of 4 floats")
	}

	result := make([]byte, len(data)/4*rgbeRecordBytes)
	n := encodeRgbeChunk(data, result)

	return result[:n], nil
}

// DecodeRgbeBytes decodes five byte RGBE+A records into RGBA float pixels.
func DecodeRgbeBytes(data []byte) ([]float32, error) {
	if len(data)%rgbeRecordBytes != 0 {
		return nil, fmt.Errorf("source not a multiple of %d bytes", rgbeRecordBytes)
	}

	result := make([]float32, len(data)/rgbeRecordBytes*4)
	n := decodeRgbeChunk(data, result)

	return result[:n], nil
}

func encodeRgbeChunk(data []float32, buf []byte) (n int) {
	for i := 0; i+3 < len(data); i += 4 {
		r := math32.Max(data[i+0], 0)
		g := math32.Max(data[i+1], 0)
		b := math32.Max(data[i+2], 0)
		a := math32.Min(math32.Max(data[i+3], 0), 1)

		m := math32.Max(r, math32.Max(g, b))
		if m < 1e-32 {
			buf[n+0], buf[n+1], buf[n+2], buf[n+3] = 0, 0, 0, 0
		} else {
			frac, exp := math32.Frexp(m)
			scale := frac * 256 / m
			buf[n+0] = uint8(r * scale)
			buf[n+1] = uint8(g * scale)
			buf[n+2] = uint8(b * scale)
			buf[n+3] = uint8(exp + 128)
		}
		buf[n+4] = uint8(a*0xff + 0.5)
		n += rgbeRecordBytes
	}
	return n
}

func decodeRgbeChunk(data []byte, buf []float32) (n int) {
	for i := 0; i+rgbeRecordBytes-1 < len(data); i += rgbeRecordBytes {
		e := data[i+3]
		if e == 0 {
			buf[n+0], buf[n+1], buf[n+2] = 0, 0, 0
		} else {
			f := math32.Ldexp(1, int(e)-(128+8))
			buf[n+0] = float32(data[i+0]) * f
			buf[n+1] = float32(data[i+1]) * f
			buf[n+2] = float32(data[i+2]) * f
		}
		buf[n+3] = float32(data[i+4]) / 0xff
		n += 4
	}
	return n
}
