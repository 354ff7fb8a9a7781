package analysis

import (
	"runtime"
	"sort"
	"sync"

	"github.com/alphadose/haxmap"

	"github.com/ChristianF88/catgene/pools"
)

// EditDistance is the Levenshtein distance between a and b with unit costs
func EditDistance(a, b string) int {
	ra, rb := pools.Pools.GetRunes(a), pools.Pools.GetRunes(b)
	prev := pools.Pools.GetIntRow(len(rb) + 1)
	curr := pools.Pools.GetIntRow(len(rb) + 1)
	defer func() {
		pools.Pools.ReturnRunes(ra)
		pools.Pools.ReturnRunes(rb)
		pools.Pools.ReturnIntRow(prev)
		pools.Pools.ReturnIntRow(curr)
	}()
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// geneChunk is a contiguous range of rows handed to one worker
type geneChunk struct {
	start int
	end   int
}

// distanceWorker computes the distance of every gene in its chunks to root
func distanceWorker(chunks <-chan geneChunk, genes []string, root string, results *haxmap.Map[int, int], wg *sync.WaitGroup) {
	defer wg.Done()
	for chunk := range chunks {
		for i := chunk.start; i < chunk.end; i++ {
			results.Set(i, EditDistance(root, genes[i]))
		}
	}
}

// GeneDistances computes the edit distance from root to every gene in parallel
func GeneDistances(root string, genes []string) []int {
	results := haxmap.New[int, int](uintptr(len(genes) + 1))

	numWorkers := runtime.NumCPU()
	chunkSize := (len(genes) + numWorkers - 1) / numWorkers
	if chunkSize < 64 {
		chunkSize = 64
	}

	chunks := make(chan geneChunk, numWorkers)
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go distanceWorker(chunks, genes, root, results, &wg)
	}
	for start := 0; start < len(genes); start += chunkSize {
		chunks <- geneChunk{start: start, end: min(start+chunkSize, len(genes))}
	}
	close(chunks)
	wg.Wait()

	distances := make([]int, len(genes))
	for i := range distances {
		distances[i], _ = results.Get(i)
	}
	return distances
}

// DistanceTable puts the root row first and orders all other rows by
// increasing distance, keeping row order among equal distances.
func DistanceTable(rootRow int, catalysts, genes []string, distances []int, areas [][]float64) []DistanceRow {
	rowAreas := func(i int) []float64 {
		out := make([]float64, len(areas))
		for k, a := range areas {
			out[k] = a[i]
		}
		return out
	}

	table := make([]DistanceRow, 0, len(genes))
	table = append(table, DistanceRow{Row: rootRow, Catalyst: catalysts[rootRow], Gene: genes[rootRow], Areas: rowAreas(rootRow)})

	others := make([]DistanceRow, 0, len(genes)-1)
	for i := range genes {
		if i == rootRow {
			continue
		}
		others = append(others, DistanceRow{Row: i, Catalyst: catalysts[i], Gene: genes[i], Distance: distances[i], Areas: rowAreas(i)})
	}
	sort.SliceStable(others, func(i, j int) bool { return others[i].Distance < others[j].Distance })

	return append(table, others...)
}
