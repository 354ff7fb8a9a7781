package pools

import (
	"strings"
	"sync"
)

// GlobalPools provides centralized memory pooling for the hot loops of the
// gene analysis (edit distances and gene strings)
type GlobalPools struct {
	IntRows      sync.Pool
	RuneSlices   sync.Pool
	GeneBuilders sync.Pool
}

// Pools is the global instance of memory pools
var Pools = &GlobalPools{
	IntRows: sync.Pool{
		New: func() interface{} {
			slice := make([]int, 0, 32)
			return &slice
		},
	},
	RuneSlices: sync.Pool{
		New: func() interface{} {
			slice := make([]rune, 0, 32)
			return &slice
		},
	},
	GeneBuilders: sync.Pool{
		New: func() interface{} {
			builder := &strings.Builder{}
			builder.Grow(16) // one letter per area column
			return builder
		},
	},
}

// GetIntRow returns a zeroed int slice of length n
func (gp *GlobalPools) GetIntRow(n int) []int {
	slicePtr := gp.IntRows.Get().(*[]int)
	row := *slicePtr
	if cap(row) < n {
		row = make([]int, n)
	} else {
		row = row[:n]
		clear(row)
	}
	return row
}

// ReturnIntRow returns an int slice to the pool
func (gp *GlobalPools) ReturnIntRow(row []int) {
	if cap(row) < 4096 { // Prevent memory bloat
		emptySlice := row[:0]
		gp.IntRows.Put(&emptySlice)
	}
}

// GetRunes decodes s into a pooled rune slice
func (gp *GlobalPools) GetRunes(s string) []rune {
	slicePtr := gp.RuneSlices.Get().(*[]rune)
	runes := (*slicePtr)[:0]
	for _, r := range s {
		runes = append(runes, r)
	}
	return runes
}

// ReturnRunes returns a rune slice to the pool
func (gp *GlobalPools) ReturnRunes(runes []rune) {
	if cap(runes) < 4096 {
		emptySlice := runes[:0]
		gp.RuneSlices.Put(&emptySlice)
	}
}

// GetGeneBuilder gets a reset string builder from the pool
func (gp *GlobalPools) GetGeneBuilder() *strings.Builder {
	builder := gp.GeneBuilders.Get().(*strings.Builder)
	builder.Reset()
	return builder
}

// ReturnGeneBuilder returns a string builder to the pool
func (gp *GlobalPools) ReturnGeneBuilder(builder *strings.Builder) {
	gp.GeneBuilders.Put(builder)
}
