package huffman

import (
	"container/heap"
)

const (
	BitsPerWord = 8
	BitsPerInt  = 32
	// SymbolBits is wide enough for every byte, PseudoEOF and placeholderSymbol.
	SymbolBits = 9
	AlphSize   = 1 << BitsPerWord
	PseudoEOF  = AlphSize
	HuffTree   = 0xface8200 | 1

	placeholderSymbol = PseudoEOF + 1
	// A tree over AlphSize+1 symbols plus the placeholder is never deeper than this.
	maxTreeDepth = AlphSize + 2
)

type huffmanTree interface {
	getFrequency() int
	getId() int
}

type huffmanLeaf struct {
	freq, id int
	symbol   int
}

type huffmanNode struct {
	freq, id    int
	left, right huffmanTree
}

type huffmanHeap []huffmanTree

func (hub *huffmanHeap) Push(item any) {
	*hub = append(*hub, item.(huffmanTree))
}

func (hub *huffmanHeap) Pop() any {
	popped := (*hub)[len(*hub)-1]
	(*hub) = (*hub)[:len(*hub)-1]
	return popped
}

func (hub huffmanHeap) Len() int {
	return len(hub)
}

// Less orders by weight, then by id. Leaves get ids in ascending symbol
// order and merged nodes get ids in creation order, so equal weights always
// resolve the same way.
func (hub huffmanHeap) Less(i, j int) bool {
	if hub[i].getFrequency() != hub[j].getFrequency() {
		return hub[i].getFrequency() < hub[j].getFrequency()
	}
	return hub[i].getId() < hub[j].getId()
}

func (hub huffmanHeap) Swap(i, j int) {
	hub[i], hub[j] = hub[j], hub[i]
}

func (leaf huffmanLeaf) getId() int {
	return leaf.id
}

func (leaf huffmanLeaf) getFrequency() int {
	return leaf.freq
}

func (node huffmanNode) getFrequency() int {
	return node.freq
}

func (node huffmanNode) getId() int {
	return node.id
}

// makeTreeFromCounts builds the code tree for counts indexed by symbol.
// The result is always a huffmanNode: when only one symbol is present a
// zero-weight placeholder leaf becomes its sibling.
func makeTreeFromCounts(counts []int) huffmanTree {
	var treehub huffmanHeap
	monoId := 0
	for symbol, freq := range counts {
		if freq <= 0 {
			continue
		}
		treehub = append(treehub, huffmanLeaf{
			freq:   freq,
			symbol: symbol,
			id:     monoId,
		})
		monoId++
	}
	if treehub.Len() == 1 {
		only := treehub[0]
		return huffmanNode{
			freq:  only.getFrequency(),
			left:  only,
			right: huffmanLeaf{symbol: placeholderSymbol, id: monoId},
			id:    monoId + 1,
		}
	}
	heap.Init(&treehub)
	for treehub.Len() > 1 {
		x := heap.Pop(&treehub).(huffmanTree)
		y := heap.Pop(&treehub).(huffmanTree)
		heap.Push(&treehub, huffmanNode{
			freq:  x.getFrequency() + y.getFrequency(),
			left:  x,
			right: y,
			id:    monoId,
		})
		monoId++
	}
	return heap.Pop(&treehub).(huffmanTree)
}

func countLeaves(tree huffmanTree) int {
	switch node := tree.(type) {
	case huffmanLeaf:
		return 1
	case huffmanNode:
		return countLeaves(node.left) + countLeaves(node.right)
	}
	return 0
}
