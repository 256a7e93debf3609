package codec

import (
	"io"

	"github.com/klauspost/compress/zlib"
)

// Deflate is the zlib-wrapped DEFLATE codec used by v103 and v104
// archives.
type Deflate struct{}

func (Deflate) Compress(w io.Writer, r io.Reader) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zlib.NewWriter(cw)
	if _, err := io.Copy(zw, r); err != nil {
		zw.Close()
		return cw.n, err
	}
	if err := zw.Close(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

func (Deflate) Decompress(w io.Writer, r io.Reader) (int64, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return 0, err
	}
	defer zr.Close()
	return io.Copy(w, zr)
}
