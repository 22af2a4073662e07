package huffman

import (
	"errors"
	"fmt"
)

// Format errors describe input that is not a compressed stream this package
// produced. They all match ErrFormat under errors.Is.
var (
	ErrFormat          = errors.New("not a valid compressed file")
	ErrBadMagic        = fmt.Errorf("%w: magic number mismatch", ErrFormat)
	ErrTruncatedHeader = fmt.Errorf("%w: header ended early", ErrFormat)
	ErrMalformedHeader = fmt.Errorf("%w: malformed header tree", ErrFormat)
	ErrTruncatedBody   = fmt.Errorf("%w: body ended before end-of-stream code", ErrFormat)
	ErrUnknownSymbol   = fmt.Errorf("%w: decoded symbol outside alphabet", ErrFormat)
)

// Internal errors mean the tree or code table broke its own invariants.
var (
	ErrInternal = errors.New("huffman internal consistency error")
	ErrNoCode   = fmt.Errorf("%w: symbol has no code", ErrInternal)
)

func IsFormatError(err error) bool {
	return errors.Is(err, ErrFormat)
}

func IsInternalError(err error) bool {
	return errors.Is(err, ErrInternal)
}
