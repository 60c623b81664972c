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
	"github.com/gorse-io/recsys/base/heap"
	"github.com/gorse-io/recsys/dataset"
	"github.com/gorse-io/recsys/model"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const (
	reasonUnknown      = "User and/or item is unknown."
	reasonNotEnoughKNN = "Not enough neighbors."
)

// knn holds what neighborhood algorithms share. x is the dimension
// similarities are computed over (users if user_based) and y is the other.
type knn struct {
	*model.Base
	k         int
	minK      int
	userBased bool
	sim       *mat.SymDense
	xr        [][]dataset.IdRating
	yr        [][]dataset.IdRating
}

func newKNN(estimator model.Estimator, params model.Params, options []model.Option) knn {
	return knn{
		Base: model.NewBase(estimator, options...),
		k:    params.GetInt(model.K, 40),
		minK: params.GetInt(model.MinK, 1),
	}
}

func (knn *knn) train(trainSet model.TrainSet) error {
	knn.sim = nil
	if err := knn.Base.Train(trainSet); err != nil {
		return errors.Trace(err)
	}
	knn.userBased = knn.SimOptions.GetBool(model.UserBased, true)
	if knn.userBased {
		knn.xr, knn.yr = trainSet.UserRatings(), trainSet.ItemRatings()
	} else {
		knn.xr, knn.yr = trainSet.ItemRatings(), trainSet.UserRatings()
	}
	sim, err := knn.ComputeSimilarities()
	if err != nil {
		return errors.Trace(err)
	}
	knn.sim = sim
	return nil
}

// trained returns false if the last training failed.
func (knn *knn) trained() bool {
	return knn.sim != nil
}

func (knn *knn) switchIds(userId, itemId int) (int, int) {
	if knn.userBased {
		return userId, itemId
	}
	return itemId, userId
}

func (knn *knn) known(userId, itemId int) bool {
	return knn.TrainSet().KnowsUser(userId) && knn.TrainSet().KnowsItem(itemId)
}

// neighbors returns the k entities most similar to x that rated y, keeping
// only those with positive similarities.
func (knn *knn) neighbors(x, y int) []heap.Elem[dataset.IdRating, float64] {
	filter := heap.NewTopKFilter[dataset.IdRating, float64](knn.k)
	for _, nb := range knn.yr[y] {
		filter.Push(nb, knn.sim.At(x, nb.Id))
	}
	return lo.Filter(filter.PopAll(), func(e heap.Elem[dataset.IdRating, float64], _ int) bool {
		return e.Weight > 0
	})
}

func details(actualK int) map[string]interface{} {
	return map[string]interface{}{"actual_k": actualK}
}

// KNNBasic is a basic collaborative filtering algorithm.
//
//	\hat{r}_{ui} = Σ_{v∈N^k_i(u)} sim(u,v)·r_{vi} / Σ_{v∈N^k_i(u)} sim(u,v)
//
// where N^k_i(u) are the k users most similar to u that rated i, or the same
// over items if user_based is false.
type KNNBasic struct {
	knn
}

// NewKNNBasic creates a KNNBasic algorithm given k (default 40) and min_k
// (default 1) in params.
func NewKNNBasic(params model.Params, options ...model.Option) *KNNBasic {
	algo := new(KNNBasic)
	algo.knn = newKNN(algo, params, options)
	return algo
}

func (algo *KNNBasic) Train(trainSet model.TrainSet) error {
	return algo.train(trainSet)
}

func (algo *KNNBasic) Estimate(userId, itemId int) (model.Estimation, error) {
	if !algo.trained() {
		return model.Estimation{}, model.NewImpossible(model.ReasonNotTrained)
	}
	if !algo.known(userId, itemId) {
		return model.Estimation{}, model.NewImpossible(reasonUnknown)
	}
	x, y := algo.switchIds(userId, itemId)
	sumSim, sumRatings, actualK := 0.0, 0.0, 0
	for _, nb := range algo.neighbors(x, y) {
		sumSim += nb.Weight
		sumRatings += nb.Weight * nb.Value.Rating
		actualK++
	}
	if actualK < algo.minK || sumSim == 0 {
		return model.Estimation{}, model.NewImpossible(reasonNotEnoughKNN)
	}
	return model.Estimation{Rating: sumRatings / sumSim, Details: details(actualK)}, nil
}

// KNNWithMeans is a collaborative filtering algorithm taking into account
// the mean ratings of each user.
//
//	\hat{r}_{ui} = μ_u + Σ sim(u,v)·(r_{vi} - μ_v) / Σ sim(u,v)
//
// If there are not enough neighbors, μ_u is predicted.
type KNNWithMeans struct {
	knn
	means []float64
}

func NewKNNWithMeans(params model.Params, options ...model.Option) *KNNWithMeans {
	algo := new(KNNWithMeans)
	algo.knn = newKNN(algo, params, options)
	return algo
}

func (algo *KNNWithMeans) Train(trainSet model.TrainSet) error {
	algo.means = nil
	if err := algo.train(trainSet); err != nil {
		return errors.Trace(err)
	}
	algo.means = lo.Map(algo.xr, func(ratings []dataset.IdRating, _ int) float64 {
		return stat.Mean(lo.Map(ratings, func(r dataset.IdRating, _ int) float64 {
			return r.Rating
		}), nil)
	})
	return nil
}

func (algo *KNNWithMeans) Estimate(userId, itemId int) (model.Estimation, error) {
	if !algo.trained() || algo.means == nil {
		return model.Estimation{}, model.NewImpossible(model.ReasonNotTrained)
	}
	if !algo.known(userId, itemId) {
		return model.Estimation{}, model.NewImpossible(reasonUnknown)
	}
	x, y := algo.switchIds(userId, itemId)
	est := algo.means[x]
	sumSim, sumRatings, actualK := 0.0, 0.0, 0
	for _, nb := range algo.neighbors(x, y) {
		sumSim += nb.Weight
		sumRatings += nb.Weight * (nb.Value.Rating - algo.means[nb.Value.Id])
		actualK++
	}
	if actualK >= algo.minK && sumSim > 0 {
		est += sumRatings / sumSim
	}
	return model.Estimation{Rating: est, Details: details(actualK)}, nil
}

// KNNBaseline is a collaborative filtering algorithm taking into account a
// baseline rating.
//
//	\hat{r}_{ui} = b_{ui} + Σ sim(u,v)·(r_{vi} - b_{vi}) / Σ sim(u,v)
//
// If there are not enough neighbors, or if the user or the item is unknown,
// the baseline estimate b_{ui} is predicted.
type KNNBaseline struct {
	knn
	baselines *model.Baselines
}

func NewKNNBaseline(params model.Params, options ...model.Option) *KNNBaseline {
	algo := new(KNNBaseline)
	algo.knn = newKNN(algo, params, options)
	return algo
}

func (algo *KNNBaseline) Train(trainSet model.TrainSet) error {
	algo.baselines = nil
	if err := algo.train(trainSet); err != nil {
		return errors.Trace(err)
	}
	baselines, err := algo.ComputeBaselines()
	if err != nil {
		return errors.Trace(err)
	}
	algo.baselines = baselines
	return nil
}

func (algo *KNNBaseline) Estimate(userId, itemId int) (model.Estimation, error) {
	if !algo.trained() || algo.baselines == nil {
		return model.Estimation{}, model.NewImpossible(model.ReasonNotTrained)
	}
	trainSet := algo.TrainSet()
	est := baseline(trainSet, algo.baselines, userId, itemId)
	if !algo.known(userId, itemId) {
		return model.Estimation{Rating: est}, nil
	}
	x, y := algo.switchIds(userId, itemId)
	bx, by := algo.baselines.UserBias, algo.baselines.ItemBias
	if !algo.userBased {
		bx, by = by, bx
	}
	sumSim, sumRatings, actualK := 0.0, 0.0, 0
	for _, nb := range algo.neighbors(x, y) {
		nbBaseline := trainSet.GlobalMean() + bx[nb.Value.Id] + by[y]
		sumSim += nb.Weight
		sumRatings += nb.Weight * (nb.Value.Rating - nbBaseline)
		actualK++
	}
	if actualK >= algo.minK && sumSim > 0 {
		est += sumRatings / sumSim
	}
	return model.Estimation{Rating: est, Details: details(actualK)}, nil
}
