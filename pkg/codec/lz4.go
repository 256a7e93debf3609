package codec

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

// LZ4Frame is the LZ4 frame-format codec used by v105 (Skyrim SE) archives.
type LZ4Frame struct{}

func (LZ4Frame) Compress(w io.Writer, r io.Reader) (int64, error) {
	cw := &countingWriter{w: w}
	zw := lz4.NewWriter(cw)
	if _, err := io.Copy(zw, r); err != nil {
		zw.Close()
		return cw.n, err
	}
	if err := zw.Close(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

func (LZ4Frame) Decompress(w io.Writer, r io.Reader) (int64, error) {
	zr := lz4.NewReader(r)
	return io.Copy(w, zr)
}
