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

package model

import (
	"strings"

	"github.com/gorse-io/recsys/base/log"
	"github.com/juju/errors"
	"go.uber.org/zap"
)

// Baselines are user and item biases indexed by inner ids.
type Baselines struct {
	UserBias []float64
	ItemBias []float64
}

type optimizer func(trainSet TrainSet, params Params) *Baselines

var optimizers = map[string]optimizer{
	ALS: als,
	SGD: sgd,
}

// ComputeBaselines computes user and item biases with the method given by
// baseline options. Biases are computed once per training.
func (base *Base) ComputeBaselines() (*Baselines, error) {
	if base.baselines != nil {
		return base.baselines, nil
	}
	if base.trainSet == nil {
		return nil, errors.New("algorithm is not trained")
	}
	method := base.BaselineOptions.GetString(Method, ALS)
	optimize, exist := optimizers[method]
	if !exist {
		return nil, errors.NewNotValid(nil, "invalid method "+method+
			" for baseline computation. Available methods are "+strings.Join([]string{ALS, SGD}, ", ")+".")
	}
	log.Logger().Info("estimating biases", zap.String("method", method))
	base.baselines = optimize(base.trainSet, base.BaselineOptions)
	return base.baselines, nil
}

// sgd optimizes biases by stochastic gradient descent, visiting ratings in
// the order of the train set.
func sgd(trainSet TrainSet, params Params) *Baselines {
	reg := params.GetFloat64(Reg, 0.02)
	lr := params.GetFloat64(LearningRate, 0.005)
	nEpochs := params.GetInt(NEpochs, 20)
	mean := trainSet.GlobalMean()
	bu := make([]float64, trainSet.UserCount())
	bi := make([]float64, trainSet.ItemCount())
	for epoch := 0; epoch < nEpochs; epoch++ {
		trainSet.ForEachRating(func(u, i int, r float64) {
			diff := r - (mean + bu[u] + bi[i])
			bu[u] += lr * (diff - reg*bu[u])
			bi[i] += lr * (diff - reg*bi[i])
		})
	}
	return &Baselines{UserBias: bu, ItemBias: bi}
}

// als optimizes biases by alternating least squares. Item biases are fitted
// to current user biases, then user biases to the new item biases.
func als(trainSet TrainSet, params Params) *Baselines {
	regU := params.GetFloat64(RegU, 15)
	regI := params.GetFloat64(RegI, 10)
	nEpochs := params.GetInt(NEpochs, 10)
	mean := trainSet.GlobalMean()
	bu := make([]float64, trainSet.UserCount())
	bi := make([]float64, trainSet.ItemCount())
	for epoch := 0; epoch < nEpochs; epoch++ {
		for i, ratings := range trainSet.ItemRatings() {
			sum := 0.0
			for _, ur := range ratings {
				sum += ur.Rating - mean - bu[ur.Id]
			}
			bi[i] = sum / (regI + float64(len(ratings)))
		}
		for u, ratings := range trainSet.UserRatings() {
			sum := 0.0
			for _, ir := range ratings {
				sum += ir.Rating - mean - bi[ir.Id]
			}
			bu[u] = sum / (regU + float64(len(ratings)))
		}
	}
	return &Baselines{UserBias: bu, ItemBias: bi}
}
