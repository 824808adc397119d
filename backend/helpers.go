package backend

import (
	"bytes"
	"fmt"
	"io"
)

// ChunkFunc receives one chunk of a chunked upload.  offset is the position of the chunk in the source and last is set
// on the final chunk.  chunk is only valid for the duration of the call.
type ChunkFunc func(chunk []byte, offset int64, last bool) error

// ReadChunks reads r in chunks of chunkSize bytes and hands each to fn, in order.  The final chunk may be short; an
// empty reader produces a single empty final chunk so that providers still create the file.  It returns the number of
// chunks and bytes read.  Buffers grow with the data actually read, so chunkSize only bounds memory use.
func ReadChunks(r io.Reader, chunkSize int64, fn ChunkFunc) (chunks int, total int64, err error) {
	if chunkSize <= 0 {
		return 0, 0, fmt.Errorf("invalid chunk size %d", chunkSize)
	}

	var cur, next bytes.Buffer
	if err := readChunk(r, chunkSize, &cur); err != nil {
		return 0, 0, err
	}
	for {
		// look ahead one chunk to know whether the current one is the last
		last := int64(cur.Len()) < chunkSize
		if !last {
			if err := readChunk(r, chunkSize, &next); err != nil {
				return chunks, total, err
			}
			last = next.Len() == 0
		}

		n := cur.Len()
		if err := fn(cur.Bytes(), total, last); err != nil {
			return chunks, total, err
		}
		chunks++
		total += int64(n)

		if last {
			return chunks, total, nil
		}
		cur, next = next, cur
	}
}

// readChunk replaces the contents of buf with up to size bytes of r.
func readChunk(r io.Reader, size int64, buf *bytes.Buffer) error {
	buf.Reset()
	_, err := buf.ReadFrom(io.LimitReader(r, size))
	return err
}
