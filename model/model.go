// Copyright 2020 gorse Project Authors
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
	"github.com/gorse-io/recsys/base/log"
	"github.com/gorse-io/recsys/common/parallel"
	"github.com/gorse-io/recsys/dataset"
	"github.com/gorse-io/recsys/similarity"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// UnknownId is the inner id given to users and items absent from the train set.
const UnknownId = -1

// ReasonNotTrained is the reason of predictions made before a successful training.
const ReasonNotTrained = "Algorithm is not trained."

// TrainSet is the read-only view of training data used by algorithms.
type TrainSet interface {
	UserCount() int
	ItemCount() int
	GlobalMean() float64
	// RatingScale returns the lower and upper bound of ratings.
	RatingScale() (float64, float64)
	// UserRatings returns (item, rating) pairs grouped by user.
	UserRatings() [][]dataset.IdRating
	// ItemRatings returns (user, rating) pairs grouped by item.
	ItemRatings() [][]dataset.IdRating
	ForEachRating(f func(userId, itemId int, rating float64))
	ToInnerUserId(rawUserId string) (int, error)
	ToInnerItemId(rawItemId string) (int, error)
	KnowsUser(userId int) bool
	KnowsItem(itemId int) bool
}

// Estimator estimates ratings given inner ids, which are UnknownId for users
// or items absent from the train set. An estimator returns an error built by
// NewImpossible if it is not able to estimate the rating.
type Estimator interface {
	Estimate(userId, itemId int) (Estimation, error)
}

// Algorithm is the interface of all rating prediction algorithms.
type Algorithm interface {
	Estimator
	// Train the algorithm on a train set.
	Train(trainSet TrainSet) error
	// Predict the rating given by a user to an item.
	Predict(rawUserId, rawItemId string, rating float64, verbose bool) Prediction
	// Test the algorithm on a test set.
	Test(testSet []dataset.Rating, verbose bool) []Prediction
}

// Base must be included by every algorithm. It manages the train set, raw id
// translation, prediction fallback and clipping, and provides baselines and
// similarities to algorithms on demand.
//
// A Base is not safe for concurrent Train or ComputeBaselines calls.
type Base struct {
	BaselineOptions Params
	SimOptions      Params

	estimator    Estimator
	trainSet     TrainSet
	similarities similarity.Registry
	jobs         int
	baselines    *Baselines // nil until computed on the current train set
}

// NewBase creates a base for estimator. If similarity options don't specify
// user_based, it is set to true.
func NewBase(estimator Estimator, options ...Option) *Base {
	base := &Base{
		BaselineOptions: Params{},
		SimOptions:      Params{},
		estimator:       estimator,
		similarities:    similarity.Default(),
		jobs:            1,
	}
	for _, option := range options {
		option(base)
	}
	if _, exist := base.SimOptions[UserBased]; !exist {
		base.SimOptions[UserBased] = true
	}
	return base
}

// TrainSet returns the current train set.
func (base *Base) TrainSet() TrainSet {
	return base.trainSet
}

// Train stores the train set and resets baselines. Algorithms must call it
// before anything else in their own Train.
func (base *Base) Train(trainSet TrainSet) error {
	if trainSet == nil {
		return errors.New("train set is nil")
	}
	base.trainSet = trainSet
	base.baselines = nil
	return nil
}

// Predict the rating given by a user to an item. Raw ids are converted into
// inner ids before being passed to the estimator. If the prediction is
// impossible, the global mean is predicted. The estimate is clipped to the
// rating scale of the train set.
func (base *Base) Predict(rawUserId, rawItemId string, rating float64, verbose bool) Prediction {
	pred := Prediction{UserId: rawUserId, ItemId: rawItemId, Rating: rating}
	if base.trainSet == nil {
		pred.Details = Details{WasImpossible: true, Reason: ReasonNotTrained}
		return pred
	}
	// Convert raw ids to inner ids
	userId, err := base.trainSet.ToInnerUserId(rawUserId)
	if err != nil {
		userId = UnknownId
	}
	itemId, err := base.trainSet.ToInnerItemId(rawItemId)
	if err != nil {
		itemId = UnknownId
	}

	est, err := base.estimator.Estimate(userId, itemId)
	if err != nil {
		if !IsImpossible(err) {
			log.Logger().Warn("failed to estimate rating",
				zap.String("user_id", rawUserId), zap.String("item_id", rawItemId), zap.Error(err))
		}
		pred.Estimate = base.trainSet.GlobalMean()
		pred.Details = Details{WasImpossible: true, Reason: reason(err)}
	} else {
		pred.Estimate = est.Rating
		pred.Details = Details{Extra: est.Details}
	}

	// clip estimate into [low, high]
	low, high := base.trainSet.RatingScale()
	pred.Estimate = lo.Clamp(pred.Estimate, low, high)

	if verbose {
		log.Logger().Info(pred.String())
	}
	return pred
}

// Test the algorithm on a test set. Predictions are returned in the order of
// the test set.
func (base *Base) Test(testSet []dataset.Rating, verbose bool) []Prediction {
	predictions := make([]Prediction, len(testSet))
	impossible := atomic.NewInt64(0)
	parallel.For(len(testSet), base.jobs, func(i int) {
		r := testSet[i]
		predictions[i] = base.Predict(r.UserId, r.ItemId, r.Rating, verbose)
		if predictions[i].Details.WasImpossible {
			impossible.Inc()
		}
	})
	log.Logger().Debug("test algorithm",
		zap.Int("n_predictions", len(predictions)),
		zap.Int64("n_impossible", impossible.Load()))
	return predictions
}

func reason(err error) string {
	var impossible *ImpossibleError
	if errors.As(err, &impossible) {
		return impossible.Reason
	}
	return err.Error()
}
