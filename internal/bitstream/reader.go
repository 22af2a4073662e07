package bitstream

import (
	"errors"
	"io"

	"github.com/icza/bitio"
)

// Reader reads fixed-width unsigned fields from a seekable byte source.
// ReadBits returns io.EOF once fewer than the requested bits remain.
type Reader struct {
	src      io.ReadSeeker
	bits     *bitio.Reader
	bitsRead int64
}

func NewReader(src io.ReadSeeker) *Reader {
	return &Reader{src: src, bits: bitio.NewReader(src)}
}

func (r *Reader) ReadBits(n uint8) (uint64, error) {
	value, err := r.bits.ReadBits(n)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, io.EOF
		}
		return 0, err
	}
	r.bitsRead += int64(n)
	return value, nil
}

func (r *Reader) ReadBit() (bool, error) {
	bit, err := r.ReadBits(1)
	return bit == 1, err
}

// Reset rewinds to the first bit of the source and drops any cached bits.
func (r *Reader) Reset() error {
	if _, err := r.src.Seek(0, io.SeekStart); err != nil {
		return err
	}
	r.bits = bitio.NewReader(r.src)
	return nil
}

// BitsRead is the number of bits handed out since the reader was created.
func (r *Reader) BitsRead() int64 {
	return r.bitsRead
}
