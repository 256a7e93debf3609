// Package codec implements the per-profile (de)compression schemes: DEFLATE
// for v103/v104 and the LZ4 frame format for v105.
package codec

import "io"

// Codec compresses and decompresses a single file's payload.
type Codec interface {
	// Compress reads all of r, writes the compressed form to w, and
	// returns the number of compressed bytes written.
	Compress(w io.Writer, r io.Reader) (int64, error)
	// Decompress reads the compressed form from r and writes the
	// decompressed payload to w.
	Decompress(w io.Writer, r io.Reader) (int64, error)
}

// countingWriter tallies the bytes actually written to the underlying
// writer, which is what Compress needs to report: io.Copy's own return
// value only reflects bytes accepted by the compressing writer's buffer,
// not what it has flushed to w.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
