package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/adilg123/huff-processor/internal/bitstream"
	"github.com/adilg123/huff-processor/pkg/logger"
)

const (
	debugLow  = logger.DebugLow
	debugHigh = logger.DebugHigh
)

// BitReader yields fixed-width fields and io.EOF once the stream is exhausted.
// Reset rewinds to the first bit.
type BitReader interface {
	ReadBits(n uint8) (uint64, error)
	Reset() error
}

// BitWriter accumulates bits into bytes. Close pads the final byte with
// zeros and flushes it.
type BitWriter interface {
	WriteBits(value uint64, n uint8) error
	WriteBit(bit bool) error
	Close() error
}

// Options configure one Processor. A nil Logger logs through logger.New at DebugLevel.
type Options struct {
	DebugLevel int
	Logger     logger.Logger
}

// Processor compresses and decompresses streams. It holds no per-call state,
// so one Processor may serve concurrent calls on independent streams.
type Processor struct {
	log logger.Logger
}

func NewProcessor(opts Options) *Processor {
	log := opts.Logger
	if log == nil {
		log = logger.New(opts.DebugLevel)
	}
	return &Processor{log: log}
}

// Compress writes the magic number, the tree header and the encoded body of
// in to out. in is read twice and rewound in between. out is closed on
// every return path.
func (p *Processor) Compress(in BitReader, out BitWriter) (err error) {
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	counts, err := readForCounts(in)
	if err != nil {
		return err
	}
	root := makeTreeFromCounts(counts)
	codings := makeCodingsFromTree(root)
	p.log.Debugf(debugLow, "tree built with %d leaves", countLeaves(root))
	if p.log.Level() >= debugHigh {
		p.dumpCodings(counts, codings)
	}

	if err = out.WriteBits(HuffTree, BitsPerInt); err != nil {
		return err
	}
	if err = p.writeHeader(root, out); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err = in.Reset(); err != nil {
		return fmt.Errorf("rewinding input: %w", err)
	}
	if err = writeCompressedBits(codings, in, out); err != nil {
		return err
	}
	if counter, ok := out.(interface{ BitsWritten() int64 }); ok {
		p.log.Debugf(debugLow, "compress wrote %d bits", counter.BitsWritten())
	}
	return nil
}

// readForCounts tallies every 8-bit symbol until the end of in. PseudoEOF
// is always counted exactly once.
func readForCounts(in BitReader) ([]int, error) {
	counts := make([]int, AlphSize+1)
	for {
		val, err := in.ReadBits(BitsPerWord)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("counting symbols: %w", err)
		}
		counts[val]++
	}
	counts[PseudoEOF] = 1
	return counts, nil
}

// CodeTable maps a symbol to its code as a string of '0' and '1'.
type CodeTable [AlphSize + 1]string

// Code returns the code for symbol and whether the symbol is in the tree.
func (ct *CodeTable) Code(symbol int) (string, bool) {
	if symbol < 0 || symbol > PseudoEOF || ct[symbol] == "" {
		return "", false
	}
	return ct[symbol], true
}

func makeCodingsFromTree(root huffmanTree) *CodeTable {
	codings := new(CodeTable)
	getSymbolEncoding(root, codings, []byte{})
	return codings
}

func getSymbolEncoding(tree huffmanTree, codings *CodeTable, currentPrefix []byte) {
	switch node := tree.(type) {
	case huffmanLeaf:
		if node.symbol <= PseudoEOF {
			codings[node.symbol] = string(currentPrefix)
		}
	case huffmanNode:
		getSymbolEncoding(node.left, codings, append(currentPrefix, '0'))
		getSymbolEncoding(node.right, codings, append(currentPrefix, '1'))
	}
}

// BuildCodeTable returns the code table Compress would use for data.
func BuildCodeTable(data []byte) (*CodeTable, error) {
	counts, err := readForCounts(bitstream.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, err
	}
	return makeCodingsFromTree(makeTreeFromCounts(counts)), nil
}

func writeCompressedBits(codings *CodeTable, in BitReader, out BitWriter) error {
	for {
		val, err := in.ReadBits(BitsPerWord)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if err = writeCode(codings, int(val), out); err != nil {
			return err
		}
	}
	return writeCode(codings, PseudoEOF, out)
}

func writeCode(codings *CodeTable, symbol int, out BitWriter) error {
	code, ok := codings.Code(symbol)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoCode, symbol)
	}
	for i := 0; i < len(code); i++ {
		if err := out.WriteBit(code[i] == '1'); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) dumpCodings(counts []int, codings *CodeTable) {
	var symbols []int
	for symbol := range codings {
		if codings[symbol] != "" {
			symbols = append(symbols, symbol)
		}
	}
	sort.Slice(symbols, func(i, j int) bool {
		if len(codings[symbols[i]]) == len(codings[symbols[j]]) {
			return symbols[i] < symbols[j]
		}
		return len(codings[symbols[i]]) < len(codings[symbols[j]])
	})
	for _, symbol := range symbols {
		p.log.Debugf(debugHigh, "symbol %d count %d code %s", symbol, counts[symbol], codings[symbol])
	}
}

type CompressionWriter struct {
	core *compressionCore
}
type CompressionReader struct {
	core *compressionCore
}

type compressionCore struct {
	isInputBufferClosed bool
	lock                sync.Mutex
	inputBuffer         *bytes.Buffer
	outputBuffer        *bytes.Buffer
	processor           *Processor
}

func (cr *CompressionReader) Read(data []byte) (int, error) {
	cr.core.lock.Lock()
	defer cr.core.lock.Unlock()
	if !cr.core.isInputBufferClosed {
		return 0, errors.New("input buffer not closed")
	}
	return cr.core.outputBuffer.Read(data)
}

func (cr *CompressionReader) Close() error {
	cr.core.lock.Lock()
	defer cr.core.lock.Unlock()
	cr.core.inputBuffer.Reset()
	cr.core.outputBuffer.Reset()
	return nil
}

func (cw *CompressionWriter) Write(data []byte) (int, error) {
	cw.core.lock.Lock()
	defer cw.core.lock.Unlock()
	if cw.core.isInputBufferClosed {
		return 0, errors.New("write after close")
	}
	return cw.core.inputBuffer.Write(data)
}

// Close compresses everything written so far into the reader's buffer.
func (cw *CompressionWriter) Close() error {
	cw.core.lock.Lock()
	defer cw.core.lock.Unlock()
	if cw.core.isInputBufferClosed {
		return nil
	}
	cw.core.isInputBufferClosed = true
	in := bitstream.NewReader(bytes.NewReader(cw.core.inputBuffer.Bytes()))
	out := bitstream.NewWriter(cw.core.outputBuffer)
	return cw.core.processor.Compress(in, out)
}

func NewCompressionReaderAndWriter(opts Options) (io.ReadCloser, io.WriteCloser) {
	newCompressionCore := new(compressionCore)
	newCompressionCore.inputBuffer, newCompressionCore.outputBuffer = new(bytes.Buffer), new(bytes.Buffer)
	newCompressionCore.processor = NewProcessor(opts)
	newCompressionReader, newCompressionWriter := new(CompressionReader), new(CompressionWriter)
	newCompressionReader.core, newCompressionWriter.core = newCompressionCore, newCompressionCore
	return newCompressionReader, newCompressionWriter
}
