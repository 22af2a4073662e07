package compression

import (
	"errors"
	"fmt"
	"io"

	"github.com/adilg123/huff-processor/internal/compression/algorithms/huffman"
	"github.com/adilg123/huff-processor/pkg/logger"
)

// SupportedAlgorithms contains all supported compression algorithms
var SupportedAlgorithms = []string{
	"huffman",
}

// Options contains compression/decompression options
type Options struct {
	Algorithm  string
	DebugLevel int
	Logger     logger.Logger
}

// Stats contains compression statistics
type Stats struct {
	OriginalSize     int
	ProcessedSize    int
	CompressionRatio float64
	Algorithm        string
}

// AlgorithmFactory defines the interface for compression algorithms
type AlgorithmFactory interface {
	NewCompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser)
	NewDecompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser)
}

// factoryMap maps algorithm names to their factories
var factoryMap = map[string]AlgorithmFactory{
	"huffman": &HuffmanFactory{},
}

type HuffmanFactory struct{}

func (f *HuffmanFactory) NewCompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser) {
	return huffman.NewCompressionReaderAndWriter(huffmanOptions(options))
}

func (f *HuffmanFactory) NewDecompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser) {
	return huffman.NewDecompressionReaderAndWriter(huffmanOptions(options))
}

func huffmanOptions(options Options) huffman.Options {
	return huffman.Options{DebugLevel: options.DebugLevel, Logger: options.Logger}
}

// ErrUnsupportedAlgorithm is returned for names missing from SupportedAlgorithms.
var ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

// IsValidAlgorithm checks if the provided algorithm is supported
func IsValidAlgorithm(algorithm string) bool {
	_, exists := factoryMap[algorithm]
	return exists
}

// GetSupportedAlgorithms returns a list of supported algorithms
func GetSupportedAlgorithms() []string {
	return append([]string{}, SupportedAlgorithms...)
}

// IsFormatError reports whether err means the input was not a valid compressed stream.
func IsFormatError(err error) bool {
	return huffman.IsFormatError(err)
}

// Compress compresses data using the specified algorithm
func Compress(data []byte, options Options) ([]byte, *Stats, error) {
	if !IsValidAlgorithm(options.Algorithm) {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, options.Algorithm)
	}

	factory := factoryMap[options.Algorithm]
	reader, writer := factory.NewCompressionReaderAndWriter(options)

	compressedData, err := processData(data, reader, writer)
	if err != nil {
		return nil, nil, fmt.Errorf("compression failed: %w", err)
	}

	stats := &Stats{
		OriginalSize:  len(data),
		ProcessedSize: len(compressedData),
		Algorithm:     options.Algorithm,
	}

	if len(data) > 0 {
		stats.CompressionRatio = float64(len(compressedData)) / float64(len(data)) * 100
	}

	return compressedData, stats, nil
}

// Decompress decompresses data using the specified algorithm
func Decompress(data []byte, options Options) ([]byte, *Stats, error) {
	if !IsValidAlgorithm(options.Algorithm) {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, options.Algorithm)
	}

	factory := factoryMap[options.Algorithm]
	reader, writer := factory.NewDecompressionReaderAndWriter(options)

	decompressedData, err := processData(data, reader, writer)
	if err != nil {
		return nil, nil, fmt.Errorf("decompression failed: %w", err)
	}

	stats := &Stats{
		OriginalSize:  len(data),
		ProcessedSize: len(decompressedData),
		Algorithm:     options.Algorithm,
	}

	if len(decompressedData) > 0 {
		stats.CompressionRatio = float64(len(data)) / float64(len(decompressedData)) * 100
	}

	return decompressedData, stats, nil
}

// processData writes inputData through writer, closes it to run the
// algorithm, then drains reader.
func processData(inputData []byte, reader io.ReadCloser, writer io.WriteCloser) ([]byte, error) {
	defer reader.Close()

	if _, err := writer.Write(inputData); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return io.ReadAll(reader)
}
