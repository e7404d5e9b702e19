package pipeserver

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"
)

// lz4Compress and lz4Uncompress wrap the streaming LZ4 frame format
// (rather than internal/persist's block API) since a save file's
// compressed size is not known up front the way a single blob's is.
func lz4Compress(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(raw); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lz4Uncompress(compressed []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(compressed))
	return io.ReadAll(r)
}
