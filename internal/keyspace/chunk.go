package keyspace

import "fmt"

// Chunk is an ordered batch of candidates of one length.
type Chunk struct {
	Length     int
	Seq        int
	Candidates []string
}

func (c Chunk) Size() int {
	return len(c.Candidates)
}

func (c Chunk) String() string {
	return fmt.Sprintf("Chunk<Length: %d, Seq: %d, Size: %d>", c.Length, c.Seq, len(c.Candidates))
}

// Chunker regroups a Generator's sequence into chunks of at most size
// candidates. Every chunk owns its slice.
type Chunker struct {
	gen  *Generator
	size int
	seq  int
}

func NewChunker(gen *Generator, size int) *Chunker {
	if size < 1 {
		size = 1
	}
	return &Chunker{gen: gen, size: size}
}

func (c *Chunker) Next() (Chunk, bool) {
	candidates := make([]string, 0, c.size)
	for len(candidates) < c.size {
		word, ok := c.gen.Next()
		if !ok {
			break
		}
		candidates = append(candidates, word)
	}
	if len(candidates) == 0 {
		return Chunk{}, false
	}
	chunk := Chunk{
		Length:     c.gen.Length(),
		Seq:        c.seq,
		Candidates: candidates,
	}
	c.seq++
	return chunk, true
}
