// Copyright 2026 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package similarity

import (
	"math"

	"github.com/gorse-io/recsys/dataset"
	"gonum.org/v1/gonum/mat"
)

// Names of built-in similarity measures.
const (
	Cosine          = "cosine"
	MSD             = "msd"
	Pearson         = "pearson"
	PearsonBaseline = "pearson_baseline"
)

// Names lists built-in similarity measures in a fixed order.
var Names = []string{Cosine, MSD, Pearson, PearsonBaseline}

// Args are the inputs of a similarity function. X is the dimension the matrix
// is built over, Y is the dimension entries are co-rated through.
//
// GlobalMean, BX, BY and Shrinkage are only set for pearson_baseline.
type Args struct {
	NX         int                  // number of users (items)
	Ratings    [][]dataset.IdRating // ratings grouped by item (user)
	MinSupport int                  // minimum number of common ratings
	GlobalMean float64
	BX         []float64 // biases of x
	BY         []float64 // biases of y
	Shrinkage  float64
}

// Func builds a n_x × n_x similarity matrix.
type Func func(args Args) *mat.SymDense

// Registry maps names to similarity functions.
type Registry map[string]Func

// Default returns a registry of built-in similarity measures.
func Default() Registry {
	return Registry{
		Cosine:          CosineSimilarity,
		MSD:             MSDSimilarity,
		Pearson:         PearsonSimilarity,
		PearsonBaseline: PearsonBaselineSimilarity,
	}
}

// CosineSimilarity computes the cosine similarity between all pairs of
// users (or items). Only common ratings are taken into account.
func CosineSimilarity(args Args) *mat.SymDense {
	if args.NX == 0 {
		return &mat.SymDense{}
	}
	freq := mat.NewSymDense(args.NX, nil)
	prods := mat.NewSymDense(args.NX, nil)
	sqi := mat.NewDense(args.NX, args.NX, nil)
	sqj := mat.NewDense(args.NX, args.NX, nil)
	forEachPair(args.Ratings, func(xi, xj int, ri, rj float64) {
		freq.SetSym(xi, xj, freq.At(xi, xj)+1)
		prods.SetSym(xi, xj, prods.At(xi, xj)+ri*rj)
		sqi.Set(xi, xj, sqi.At(xi, xj)+ri*ri)
		sqj.Set(xi, xj, sqj.At(xi, xj)+rj*rj)
	})
	return fill(args.NX, func(xi, xj int) float64 {
		if freq.At(xi, xj) < float64(args.MinSupport) {
			return 0
		}
		denum := math.Sqrt(sqi.At(xi, xj) * sqj.At(xi, xj))
		if denum == 0 {
			return 0
		}
		return prods.At(xi, xj) / denum
	})
}

// MSDSimilarity computes the Mean Squared Difference similarity between all
// pairs of users (or items).
func MSDSimilarity(args Args) *mat.SymDense {
	if args.NX == 0 {
		return &mat.SymDense{}
	}
	freq := mat.NewSymDense(args.NX, nil)
	sqDiff := mat.NewSymDense(args.NX, nil)
	forEachPair(args.Ratings, func(xi, xj int, ri, rj float64) {
		freq.SetSym(xi, xj, freq.At(xi, xj)+1)
		sqDiff.SetSym(xi, xj, sqDiff.At(xi, xj)+(ri-rj)*(ri-rj))
	})
	return fill(args.NX, func(xi, xj int) float64 {
		n := freq.At(xi, xj)
		if n < float64(args.MinSupport) || n == 0 {
			return 0
		}
		return 1 / (sqDiff.At(xi, xj)/n + 1)
	})
}

// PearsonSimilarity computes the Pearson correlation coefficient between all
// pairs of users (or items). Means are computed over common ratings.
func PearsonSimilarity(args Args) *mat.SymDense {
	if args.NX == 0 {
		return &mat.SymDense{}
	}
	freq := mat.NewSymDense(args.NX, nil)
	prods := mat.NewSymDense(args.NX, nil)
	sqi := mat.NewDense(args.NX, args.NX, nil)
	sqj := mat.NewDense(args.NX, args.NX, nil)
	si := mat.NewDense(args.NX, args.NX, nil)
	sj := mat.NewDense(args.NX, args.NX, nil)
	forEachPair(args.Ratings, func(xi, xj int, ri, rj float64) {
		freq.SetSym(xi, xj, freq.At(xi, xj)+1)
		prods.SetSym(xi, xj, prods.At(xi, xj)+ri*rj)
		sqi.Set(xi, xj, sqi.At(xi, xj)+ri*ri)
		sqj.Set(xi, xj, sqj.At(xi, xj)+rj*rj)
		si.Set(xi, xj, si.At(xi, xj)+ri)
		sj.Set(xi, xj, sj.At(xi, xj)+rj)
	})
	return fill(args.NX, func(xi, xj int) float64 {
		n := freq.At(xi, xj)
		if n < float64(args.MinSupport) {
			return 0
		}
		num := n*prods.At(xi, xj) - si.At(xi, xj)*sj.At(xi, xj)
		denum := math.Sqrt((n*sqi.At(xi, xj) - si.At(xi, xj)*si.At(xi, xj)) *
			(n*sqj.At(xi, xj) - sj.At(xi, xj)*sj.At(xi, xj)))
		if denum == 0 || math.IsNaN(denum) {
			return 0
		}
		return num / denum
	})
}

// PearsonBaselineSimilarity computes the (shrunk) Pearson correlation
// coefficient between all pairs of users (or items) using baselines for
// centering instead of means:
//
//	sim(x, x') = Σ (r_xy - b_xy)(r_x'y - b_x'y) / sqrt(Σ (r_xy - b_xy)² Σ (r_x'y - b_x'y)²)
//	             × (|I| - 1) / (|I| - 1 + shrinkage)
//
// where b_xy = μ + b_x + b_y. At least two common ratings are required.
func PearsonBaselineSimilarity(args Args) *mat.SymDense {
	if args.NX == 0 {
		return &mat.SymDense{}
	}
	minSupport := max(args.MinSupport, 2)
	freq := mat.NewSymDense(args.NX, nil)
	prods := mat.NewSymDense(args.NX, nil)
	sqDiffI := mat.NewDense(args.NX, args.NX, nil)
	sqDiffJ := mat.NewDense(args.NX, args.NX, nil)
	for y, yRatings := range args.Ratings {
		partial := args.GlobalMean + args.BY[y]
		for _, a := range yRatings {
			diffI := a.Rating - (partial + args.BX[a.Id])
			for _, b := range yRatings {
				if a.Id >= b.Id {
					continue
				}
				diffJ := b.Rating - (partial + args.BX[b.Id])
				xi, xj := a.Id, b.Id
				freq.SetSym(xi, xj, freq.At(xi, xj)+1)
				prods.SetSym(xi, xj, prods.At(xi, xj)+diffI*diffJ)
				sqDiffI.Set(xi, xj, sqDiffI.At(xi, xj)+diffI*diffI)
				sqDiffJ.Set(xi, xj, sqDiffJ.At(xi, xj)+diffJ*diffJ)
			}
		}
	}
	return fill(args.NX, func(xi, xj int) float64 {
		n := freq.At(xi, xj)
		if n < float64(minSupport) {
			return 0
		}
		denum := math.Sqrt(sqDiffI.At(xi, xj) * sqDiffJ.At(xi, xj))
		if denum == 0 {
			return 0
		}
		sim := prods.At(xi, xj) / denum
		return sim * (n - 1) / (n - 1 + args.Shrinkage)
	})
}

// forEachPair visits each pair (xi < xj) of entities co-rating an entity y.
func forEachPair(ratings [][]dataset.IdRating, f func(xi, xj int, ri, rj float64)) {
	for _, yRatings := range ratings {
		for _, a := range yRatings {
			for _, b := range yRatings {
				if a.Id < b.Id {
					f(a.Id, b.Id, a.Rating, b.Rating)
				}
			}
		}
	}
}

// fill builds a symmetric matrix with ones on the diagonal and sim(xi, xj)
// for xi < xj elsewhere.
func fill(n int, sim func(xi, xj int) float64) *mat.SymDense {
	m := mat.NewSymDense(n, nil)
	for xi := 0; xi < n; xi++ {
		m.SetSym(xi, xi, 1)
		for xj := xi + 1; xj < n; xj++ {
			m.SetSym(xi, xj, sim(xi, xj))
		}
	}
	return m
}
