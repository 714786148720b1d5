// Package libio provides small binary and raster image helpers shared by
// the environment pipeline and the command line tools.
package libio

import (
	"encoding/binary"
	"io"
)

// BinaryReader wraps an io.Reader with an error-carrying typed read API.
// After a failed read every subsequent call is a no-op returning false, so
// a decode sequence checks Err once at the end.
type BinaryReader struct {
	Order     binary.ByteOrder
	Src       io.Reader
	Index     int
	LastIndex int
	Err       error
}

func (br *BinaryReader) Read(p []byte) (n int, err error) {
	return br.Src.Read(p)
}

func (br *BinaryReader) ReadRef(data any) (ok bool) {
	if br.Err != nil {
		return false
	}
	err := binary.Read(br.Src, br.Order, data)
	br.Err = err
	br.LastIndex = br.Index
	if err == nil {
		br.Index += binary.Size(data)
	}
	return err == nil
}

// BinaryWriter is the writing counterpart of BinaryReader.
type BinaryWriter struct {
	Order binary.ByteOrder
	Dst   io.Writer
	Err   error
}

func (bw *BinaryWriter) Write(p []byte) (n int, err error) {
	return bw.Dst.Write(p)
}

func (bw *BinaryWriter) WriteBytes(p []byte) (ok bool) {
	if bw.Err != nil {
		return false
	}

	_, err := bw.Dst.Write(p)
	if err != nil {
		bw.Err = err
		return false
	}
	return true
}

func (bw *BinaryWriter) WriteRef(data any) (ok bool) {
	if bw.Err != nil {
		return false
	}
	err := binary.Write(bw.Dst, bw.Order, data)
	bw.Err = err
	return err == nil
}
