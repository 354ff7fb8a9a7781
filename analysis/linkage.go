package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/ChristianF88/catgene/layout"
)

// Link is one agglomeration step. A and B are cluster ids: ids below the
// number of observations are leaves, id n+i is the cluster formed by link i.
type Link struct {
	A        int
	B        int
	Distance float64
	Size     int
}

// Linkage clusters the rows of data agglomeratively on Euclidean distances.
// Cluster distances are updated with the Lance-Williams formula of method.
func Linkage(data *mat.Dense, method string) ([]Link, error) {
	update, ok := linkageUpdates[method]
	if !ok {
		return nil, fmt.Errorf("unknown linkage method %q", method)
	}

	n, _ := data.Dims()
	if n < 2 {
		return nil, fmt.Errorf("at least two observations are required for clustering, got %d", n)
	}

	dist := pairwiseDistances(data)

	// slot i holds the cluster id and size of an active cluster
	ids := make([]int, n)
	sizes := make([]int, n)
	active := make([]bool, n)
	for i := range ids {
		ids[i] = i
		sizes[i] = 1
		active[i] = true
	}

	links := make([]Link, 0, n-1)
	for step := 0; step < n-1; step++ {
		a, b := -1, -1
		best := math.Inf(1)
		for i := 0; i < n; i++ {
			if !active[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if active[j] && dist.At(i, j) < best {
					best = dist.At(i, j)
					a, b = i, j
				}
			}
		}
		if a < 0 {
			return nil, fmt.Errorf("no finite distance left at step %d", step)
		}

		links = append(links, Link{
			A:        min(ids[a], ids[b]),
			B:        max(ids[a], ids[b]),
			Distance: best,
			Size:     sizes[a] + sizes[b],
		})

		for k := 0; k < n; k++ {
			if !active[k] || k == a || k == b {
				continue
			}
			d := update(dist.At(k, a), dist.At(k, b), best, float64(sizes[a]), float64(sizes[b]), float64(sizes[k]))
			dist.SetSym(k, a, d)
		}
		ids[a] = n + step
		sizes[a] += sizes[b]
		active[b] = false
	}

	return links, nil
}

func pairwiseDistances(data *mat.Dense) *mat.SymDense {
	n, _ := data.Dims()
	dist := mat.NewSymDense(n, nil)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = mat.Row(nil, i, data)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dist.SetSym(i, j, floats.Distance(rows[i], rows[j], 2))
		}
	}
	return dist
}

// lanceWilliams returns the distance from cluster k to the union of i and j
type lanceWilliams func(dki, dkj, dij, ni, nj, nk float64) float64

var linkageUpdates = map[string]lanceWilliams{
	"single": func(dki, dkj, _, _, _, _ float64) float64 {
		return math.Min(dki, dkj)
	},
	"complete": func(dki, dkj, _, _, _, _ float64) float64 {
		return math.Max(dki, dkj)
	},
	"average": func(dki, dkj, _, ni, nj, _ float64) float64 {
		return (ni*dki + nj*dkj) / (ni + nj)
	},
	"weighted": func(dki, dkj, _, _, _, _ float64) float64 {
		return (dki + dkj) / 2
	},
	"centroid": func(dki, dkj, dij, ni, nj, _ float64) float64 {
		n := ni + nj
		return math.Sqrt(math.Max(0, (ni*dki*dki+nj*dkj*dkj)/n-ni*nj*dij*dij/(n*n)))
	},
	"median": func(dki, dkj, dij, _, _, _ float64) float64 {
		return math.Sqrt(math.Max(0, dki*dki/2+dkj*dkj/2-dij*dij/4))
	},
	"ward": func(dki, dkj, dij, ni, nj, nk float64) float64 {
		t := ni + nj + nk
		return math.Sqrt(math.Max(0, ((nk+ni)*dki*dki+(nk+nj)*dkj*dkj-nk*dij*dij)/t))
	},
}

// Dendrogram holds the drawing coordinates of a cluster tree. Leaves sit at
// x = 5, 15, 25, ... in traversal order; links are listed children first.
type Dendrogram struct {
	ICoord [][4]float64
	DCoord [][4]float64
	Leaves []int
	Labels []string
}

const (
	leafSpacing = 10.0
	leafOffset  = 5.0
)

// BuildDendrogram lays out links with the lower cluster id on the left.
// labels are indexed by observation.
func BuildDendrogram(links []Link, labels []string) Dendrogram {
	n := len(links) + 1
	var d Dendrogram

	var walk func(id int) (x, h float64)
	walk = func(id int) (float64, float64) {
		if id < n {
			x := leafOffset + leafSpacing*float64(len(d.Leaves))
			d.Leaves = append(d.Leaves, id)
			if id < len(labels) {
				d.Labels = append(d.Labels, labels[id])
			} else {
				d.Labels = append(d.Labels, fmt.Sprint(id))
			}
			return x, 0
		}
		link := links[id-n]
		xa, ha := walk(link.A)
		xb, hb := walk(link.B)
		d.ICoord = append(d.ICoord, [4]float64{xa, xa, xb, xb})
		d.DCoord = append(d.DCoord, [4]float64{ha, link.Distance, link.Distance, hb})
		return (xa + xb) / 2, link.Distance
	}
	walk(2*n - 2)

	return d
}

// Segments turns each link into its three drawn lines as
// (height, position, height, position) tuples.
func (d Dendrogram) Segments() []layout.Segment {
	segments := make([]layout.Segment, 0, 3*len(d.ICoord))
	for i := range d.ICoord {
		ic, dc := d.ICoord[i], d.DCoord[i]
		for j := 0; j < 3; j++ {
			segments = append(segments, layout.Segment{dc[j], ic[j], dc[j+1], ic[j+1]})
		}
	}
	return segments
}
