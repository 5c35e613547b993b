package core

import (
	"context"
	"io"
)

const defaultChunkSize = 32 * 1024

// FanOut copies a stream to an ordered set of sinks. Each chunk is read
// once and handed to every sink, in order, before the next read.
type FanOut struct {
	ChunkSize int
}

func NewFanOut(chunkSize int) FanOut {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return FanOut{ChunkSize: chunkSize}
}

// Copy returns the number of bytes read from src. It stops at the first
// read or write error; sinks that were already written keep what they got.
func (f FanOut) Copy(ctx context.Context, src io.Reader, sinks ...io.Writer) (int64, error) {
	size := f.ChunkSize
	if size <= 0 {
		size = defaultChunkSize
	}
	buf := make([]byte, size)
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, readErr := src.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			for _, sink := range sinks {
				written, err := sink.Write(chunk)
				if err != nil {
					return total, err
				}
				if written != n {
					return total, io.ErrShortWrite
				}
			}
			total += int64(n)
		}
		if readErr == io.EOF {
			return total, nil
		}
		if readErr != nil {
			return total, readErr
		}
	}
}
