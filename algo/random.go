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

package algo

import (
	"math/rand"
	"sync"

	"github.com/gorse-io/recsys/model"
	"github.com/juju/errors"
	"gonum.org/v1/gonum/stat"
)

// NormalPredictor predicts a random rating based on the distribution of the
// training set, which is assumed to be normal. The prediction is generated
// from N(μ, σ²) where μ and σ are estimated by maximum likelihood:
//
//	μ = 1/|R| Σ r_{ui}
//	σ = sqrt(1/|R| Σ (r_{ui} - μ)²)
type NormalPredictor struct {
	*model.Base
	mean   float64
	stdDev float64
	mu     sync.Mutex
	rng    *rand.Rand
}

// NewNormalPredictor creates a NormalPredictor. The random generator is
// seeded by the random_state parameter.
func NewNormalPredictor(params model.Params, options ...model.Option) *NormalPredictor {
	algo := &NormalPredictor{
		rng: rand.New(rand.NewSource(params.GetInt64(model.RandomState, 0))),
	}
	algo.Base = model.NewBase(algo, options...)
	return algo
}

func (algo *NormalPredictor) Train(trainSet model.TrainSet) error {
	if err := algo.Base.Train(trainSet); err != nil {
		return errors.Trace(err)
	}
	var ratings []float64
	trainSet.ForEachRating(func(_, _ int, rating float64) {
		ratings = append(ratings, rating)
	})
	algo.mean, algo.stdDev = 0, 0
	if len(ratings) > 0 {
		algo.mean = stat.Mean(ratings, nil)
		algo.stdDev = stat.PopStdDev(ratings, nil)
	}
	return nil
}

func (algo *NormalPredictor) Estimate(_, _ int) (model.Estimation, error) {
	algo.mu.Lock()
	defer algo.mu.Unlock()
	return model.Estimation{Rating: algo.rng.NormFloat64()*algo.stdDev + algo.mean}, nil
}
