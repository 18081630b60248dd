package transport

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
)

// MaxFrameSize bounds a single newline-delimited frame.
const MaxFrameSize = 4 * 1024 * 1024

// ErrFrameTooLong is returned for a line longer than MaxFrameSize. The line
// is consumed, so reading can go on with the next frame.
var ErrFrameTooLong = fmt.Errorf("%w: frame exceeds %d bytes", ErrMalformedFrame, MaxFrameSize)

// FrameReader reads newline-delimited frames.
type FrameReader struct {
	r *bufio.Reader
}

func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: bufio.NewReaderSize(r, 64*1024)}
}

// Next returns the next non-empty frame, or io.EOF once the reader is
// exhausted. Errors wrapping ErrMalformedFrame leave the reader usable.
func (f *FrameReader) Next() ([]byte, error) {
	for {
		line, err := f.readLine()
		if err != nil {
			return nil, err
		}
		if len(line) > 0 {
			return line, nil
		}
	}
}

// readLine returns one line without its line ending. The last line may lack
// a terminating newline.
func (f *FrameReader) readLine() ([]byte, error) {
	var line []byte
	tooLong := false

	for {
		chunk, err := f.r.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(chunk) > MaxFrameSize+2 {
				// keep reading until the newline but stop buffering
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}

		switch {
		case err == nil:
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if !tooLong && len(line) == 0 {
				return nil, io.EOF
			}
		default:
			return nil, err
		}

		if tooLong {
			return nil, ErrFrameTooLong
		}
		line = bytes.TrimSuffix(line, []byte("\n"))
		line = bytes.TrimSuffix(line, []byte("\r"))
		if len(line) > MaxFrameSize {
			return nil, ErrFrameTooLong
		}
		return line, nil
	}
}

// FrameWriter writes newline-terminated frames. Writes are serialized so
// concurrent senders never interleave.
type FrameWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: w}
}

func (f *FrameWriter) Write(frame []byte) error {
	buf := make([]byte, 0, len(frame)+1)
	buf = append(buf, frame...)
	buf = append(buf, '\n')

	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := f.w.Write(buf)
	return err
}
