package huffman

import (
	"errors"
	"fmt"
	"io"
)

// writeHeader writes the tree in pre-order: 0 for an internal node followed
// by its left and right subtrees, 1 for a leaf followed by its symbol in
// SymbolBits bits.
func (p *Processor) writeHeader(tree huffmanTree, out BitWriter) error {
	switch node := tree.(type) {
	case huffmanNode:
		if err := out.WriteBit(false); err != nil {
			return err
		}
		if err := p.writeHeader(node.left, out); err != nil {
			return err
		}
		return p.writeHeader(node.right, out)
	case huffmanLeaf:
		if err := out.WriteBit(true); err != nil {
			return err
		}
		p.log.Debugf(debugHigh, "wrote leaf %d in header", node.symbol)
		return out.WriteBits(uint64(node.symbol), SymbolBits)
	default:
		return fmt.Errorf("%w: unexpected tree node %T", ErrInternal, tree)
	}
}

// readTreeHeader rebuilds the tree written by writeHeader. Weights are not
// transmitted and come back as zero.
func (p *Processor) readTreeHeader(in BitReader) (huffmanTree, error) {
	ids := 0
	root, err := p.readHeaderNode(in, 0, &ids)
	if err != nil {
		return nil, err
	}
	if _, ok := root.(huffmanNode); !ok {
		return nil, fmt.Errorf("%w: root is a leaf", ErrMalformedHeader)
	}
	return root, nil
}

func (p *Processor) readHeaderNode(in BitReader, depth int, ids *int) (huffmanTree, error) {
	if depth > maxTreeDepth {
		return nil, fmt.Errorf("%w: deeper than %d levels", ErrMalformedHeader, maxTreeDepth)
	}
	bit, err := in.ReadBits(1)
	if err != nil {
		return nil, headerReadError(err)
	}
	if bit == 0 {
		left, err := p.readHeaderNode(in, depth+1, ids)
		if err != nil {
			return nil, err
		}
		right, err := p.readHeaderNode(in, depth+1, ids)
		if err != nil {
			return nil, err
		}
		*ids++
		return huffmanNode{left: left, right: right, id: *ids}, nil
	}
	symbol, err := in.ReadBits(SymbolBits)
	if err != nil {
		return nil, headerReadError(err)
	}
	p.log.Debugf(debugHigh, "read leaf %d from header", symbol)
	*ids++
	return huffmanLeaf{symbol: int(symbol), id: *ids}, nil
}

func headerReadError(err error) error {
	if errors.Is(err, io.EOF) {
		return ErrTruncatedHeader
	}
	return fmt.Errorf("reading header: %w", err)
}
