package bitstream

import (
	"errors"
	"io"

	"github.com/icza/bitio"
)

var ErrWriterClosed = errors.New("bit writer already closed")

// Writer packs bits MSB-first into bytes. Close pads the last partial byte
// with zeros, flushes it and closes the sink if it is an io.Closer.
type Writer struct {
	sink        io.Writer
	bits        *bitio.Writer
	bitsWritten int64
	closed      bool
}

func NewWriter(sink io.Writer) *Writer {
	return &Writer{sink: sink, bits: bitio.NewWriter(sink)}
}

func (w *Writer) WriteBits(value uint64, n uint8) error {
	if w.closed {
		return ErrWriterClosed
	}
	if err := w.bits.WriteBits(value, n); err != nil {
		return err
	}
	w.bitsWritten += int64(n)
	return nil
}

func (w *Writer) WriteBit(bit bool) error {
	if w.closed {
		return ErrWriterClosed
	}
	if err := w.bits.WriteBool(bit); err != nil {
		return err
	}
	w.bitsWritten++
	return nil
}

func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	err := w.bits.Close()
	if closer, ok := w.sink.(io.Closer); ok {
		err = errors.Join(err, closer.Close())
	}
	return err
}

// BitsWritten excludes the zero padding added by Close.
func (w *Writer) BitsWritten() int64 {
	return w.bitsWritten
}
