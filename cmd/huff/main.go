package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	pb "github.com/cheggaaa/pb/v3"

	"github.com/adilg123/huff-processor/internal/bitstream"
	"github.com/adilg123/huff-processor/internal/compression/algorithms/huffman"
	"github.com/adilg123/huff-processor/internal/config"
	"github.com/adilg123/huff-processor/pkg/logger"
)

const usage = `usage: huff [flags] compress|decompress <input> <output>
       huff [flags] codes <input>`

func main() {
	cfg := config.Load()
	debug := flag.Int("debug", cfg.DebugLevel, "debug level (1 low, 4 high)")
	progress := flag.Bool("progress", false, "show a progress bar while reading input")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	logg := logger.New(*debug)
	if err := run(flag.Args(), *progress, logg); err != nil {
		if huffman.IsFormatError(err) {
			logg.Errorf("not a valid compressed file: %v", err)
			os.Exit(2)
		}
		logg.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(args []string, progress bool, logg logger.Logger) error {
	if len(args) == 0 {
		flag.Usage()
		return errors.New("missing command")
	}
	switch args[0] {
	case "compress", "decompress":
		if len(args) != 3 {
			flag.Usage()
			return fmt.Errorf("%s needs <input> and <output>", args[0])
		}
		return process(args[0], args[1], args[2], progress, logg)
	case "codes":
		if len(args) != 2 {
			flag.Usage()
			return errors.New("codes needs <input>")
		}
		return printCodes(args[1], os.Stdout)
	default:
		flag.Usage()
		return fmt.Errorf("unexpected command %q", args[0])
	}
}

func process(action, inPath, outPath string, progress bool, logg logger.Logger) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	var src io.ReadSeeker = in
	if progress {
		info, err := in.Stat()
		if err != nil {
			return err
		}
		total := info.Size()
		if action == "compress" {
			// compress reads the input once to count and once to encode
			total *= 2
		}
		bar := pb.Full.Start64(total)
		bar.Set(pb.Bytes, true)
		bar.SetWriter(os.Stderr)
		defer bar.Finish()
		src = &progressReader{ReadSeeker: in, bar: bar}
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}

	p := huffman.NewProcessor(huffman.Options{DebugLevel: logg.Level(), Logger: logg})
	reader, writer := bitstream.NewReader(src), bitstream.NewWriter(out)
	if action == "compress" {
		err = p.Compress(reader, writer)
	} else {
		err = p.Decompress(reader, writer)
	}
	if err != nil {
		os.Remove(outPath)
		return fmt.Errorf("%s %s: %w", action, inPath, err)
	}
	logg.Debugf(logger.DebugLow, "%s: read %d bits, wrote %d bits", action, reader.BitsRead(), writer.BitsWritten())
	return nil
}

// progressReader advances bar for every byte read. A rewind keeps the bar
// where it is, so the second pass of compress continues from the first.
type progressReader struct {
	io.ReadSeeker
	bar *pb.ProgressBar
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.ReadSeeker.Read(p)
	r.bar.Add(n)
	return n, err
}

func printCodes(inPath string, w io.Writer) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	table, err := huffman.BuildCodeTable(data)
	if err != nil {
		return err
	}
	var symbols []int
	for symbol := 0; symbol <= huffman.PseudoEOF; symbol++ {
		if _, ok := table.Code(symbol); ok {
			symbols = append(symbols, symbol)
		}
	}
	sort.SliceStable(symbols, func(i, j int) bool {
		ci, _ := table.Code(symbols[i])
		cj, _ := table.Code(symbols[j])
		return len(ci) < len(cj)
	})
	for _, symbol := range symbols {
		code, _ := table.Code(symbol)
		label := "EOF"
		if symbol < huffman.PseudoEOF {
			label = fmt.Sprintf("%#02x", symbol)
		}
		fmt.Fprintf(w, "%-5s %2d %s\n", label, len(code), code)
	}
	return nil
}
