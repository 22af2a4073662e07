package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/adilg123/huff-processor/internal/bitstream"
)

// Decompress checks the magic number, rebuilds the tree from the header and
// decodes the body into out until the end-of-stream code. Nothing is
// written to out if the magic number or header is bad. out is closed on
// every return path.
func (p *Processor) Decompress(in BitReader, out BitWriter) (err error) {
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	magic, err := in.ReadBits(BitsPerInt)
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: stream shorter than magic number", ErrBadMagic)
	}
	if err != nil {
		return fmt.Errorf("reading magic number: %w", err)
	}
	if magic != HuffTree {
		return fmt.Errorf("%w: got %#x", ErrBadMagic, magic)
	}

	root, err := p.readTreeHeader(in)
	if err != nil {
		return err
	}
	p.log.Debugf(debugLow, "header read, tree has %d leaves", countLeaves(root))

	if err = readCompressedBits(root, in, out); err != nil {
		return err
	}
	if counter, ok := in.(interface{ BitsRead() int64 }); ok {
		p.log.Debugf(debugLow, "decompress read %d bits", counter.BitsRead())
	}
	return nil
}

// readCompressedBits walks root one bit at a time, emitting each leaf it
// reaches and starting over at root, until it reaches PseudoEOF.
func readCompressedBits(root huffmanTree, in BitReader, out BitWriter) error {
	current := root
	for {
		bit, err := in.ReadBits(1)
		if errors.Is(err, io.EOF) {
			return ErrTruncatedBody
		}
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		node, ok := current.(huffmanNode)
		if !ok {
			return fmt.Errorf("%w: decode cursor on leaf", ErrInternal)
		}
		if bit == 0 {
			current = node.left
		} else {
			current = node.right
		}
		leaf, ok := current.(huffmanLeaf)
		if !ok {
			continue
		}
		switch {
		case leaf.symbol == PseudoEOF:
			return nil
		case leaf.symbol > PseudoEOF:
			return fmt.Errorf("%w: %d", ErrUnknownSymbol, leaf.symbol)
		}
		if err = out.WriteBits(uint64(leaf.symbol), BitsPerWord); err != nil {
			return err
		}
		current = root
	}
}

type DecompressionWriter struct {
	core *decompressionCore
}
type DecompressionReader struct {
	core *decompressionCore
}

type decompressionCore struct {
	isInputBufferClosed bool
	lock                sync.Mutex
	inputBuffer         *bytes.Buffer
	outputBuffer        *bytes.Buffer
	processor           *Processor
}

func (dr *DecompressionReader) Read(data []byte) (int, error) {
	dr.core.lock.Lock()
	defer dr.core.lock.Unlock()
	if !dr.core.isInputBufferClosed {
		return 0, errors.New("input buffer not closed")
	}
	return dr.core.outputBuffer.Read(data)
}

func (dr *DecompressionReader) Close() error {
	dr.core.lock.Lock()
	defer dr.core.lock.Unlock()
	dr.core.inputBuffer.Reset()
	dr.core.outputBuffer.Reset()
	return nil
}

func (dw *DecompressionWriter) Write(data []byte) (int, error) {
	dw.core.lock.Lock()
	defer dw.core.lock.Unlock()
	if dw.core.isInputBufferClosed {
		return 0, errors.New("write after close")
	}
	return dw.core.inputBuffer.Write(data)
}

// Close decompresses everything written so far. On a truncated body the
// reader still holds the bytes decoded before the error.
func (dw *DecompressionWriter) Close() error {
	dw.core.lock.Lock()
	defer dw.core.lock.Unlock()
	if dw.core.isInputBufferClosed {
		return nil
	}
	dw.core.isInputBufferClosed = true
	in := bitstream.NewReader(bytes.NewReader(dw.core.inputBuffer.Bytes()))
	out := bitstream.NewWriter(dw.core.outputBuffer)
	return dw.core.processor.Decompress(in, out)
}

func NewDecompressionReaderAndWriter(opts Options) (io.ReadCloser, io.WriteCloser) {
	newDecompressionCore := new(decompressionCore)
	newDecompressionCore.inputBuffer, newDecompressionCore.outputBuffer = new(bytes.Buffer), new(bytes.Buffer)
	newDecompressionCore.processor = NewProcessor(opts)
	newDecompressionReader, newDecompressionWriter := new(DecompressionReader), new(DecompressionWriter)
	newDecompressionReader.core, newDecompressionWriter.core = newDecompressionCore, newDecompressionCore
	return newDecompressionReader, newDecompressionWriter
}
