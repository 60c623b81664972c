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
	"testing"

	"github.com/gorse-io/recsys/dataset"
	"github.com/gorse-io/recsys/model"
	"github.com/gorse-io/recsys/similarity"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

var fixedSim = []float64{
	1, 0.5, -0.2,
	0.5, 1, 0.3,
	-0.2, 0.3, 1,
}

func fixedSimilarity() similarity.Registry {
	return similarity.Registry{similarity.MSD: func(args similarity.Args) *mat.SymDense {
		return mat.NewSymDense(args.NX, fixedSim)
	}}
}

func newKNNTrainSet() *dataset.TrainSet {
	return dataset.NewTrainSet([]dataset.Rating{
		{UserId: "u1", ItemId: "i1", Rating: 5},
		{UserId: "u1", ItemId: "i2", Rating: 3},
		{UserId: "u2", ItemId: "i1", Rating: 4},
		{UserId: "u2", ItemId: "i2", Rating: 2},
		{UserId: "u2", ItemId: "i3", Rating: 4},
		{UserId: "u3", ItemId: "i1", Rating: 1},
		{UserId: "u3", ItemId: "i3", Rating: 5},
	}, dataset.RatingScale{Min: 1, Max: 5})
}

func TestKNNBasic(t *testing.T) {
	algo := NewKNNBasic(model.Params{}, model.WithSimilarities(fixedSimilarity()))
	assert.NoError(t, algo.Train(newKNNTrainSet()))

	// neighbors with negative similarities are ignored
	pred := algo.Predict("u1", "i3", 0, false)
	assert.False(t, pred.Details.WasImpossible)
	assert.InDelta(t, 4.0, pred.Estimate, 1e-9)
	assert.Equal(t, map[string]interface{}{"actual_k": 1}, pred.Details.Extra)
	pred = algo.Predict("u3", "i2", 0, false)
	assert.InDelta(t, 2.0, pred.Estimate, 1e-9)
	pred = algo.Predict("u2", "i1", 0, false)
	assert.InDelta(t, 6.8/1.8, pred.Estimate, 1e-9)
	assert.Equal(t, map[string]interface{}{"actual_k": 3}, pred.Details.Extra)

	// unknown user
	pred = algo.Predict("u4", "i1", 0, false)
	assert.True(t, pred.Details.WasImpossible)
	assert.Equal(t, "User and/or item is unknown.", pred.Details.Reason)
	assert.InDelta(t, 24.0/7, pred.Estimate, 1e-9)
}

func TestKNNBasic_K(t *testing.T) {
	algo := NewKNNBasic(model.Params{model.K: 2}, model.WithSimilarities(fixedSimilarity()))
	assert.NoError(t, algo.Train(newKNNTrainSet()))
	pred := algo.Predict("u2", "i1", 0, false)
	assert.InDelta(t, 6.5/1.5, pred.Estimate, 1e-9)
	assert.Equal(t, map[string]interface{}{"actual_k": 2}, pred.Details.Extra)
}

func TestKNNBasic_MinK(t *testing.T) {
	algo := NewKNNBasic(model.Params{model.MinK: 2}, model.WithSimilarities(fixedSimilarity()))
	assert.NoError(t, algo.Train(newKNNTrainSet()))
	pred := algo.Predict("u1", "i3", 0, false)
	assert.True(t, pred.Details.WasImpossible)
	assert.Equal(t, "Not enough neighbors.", pred.Details.Reason)
	assert.InDelta(t, 24.0/7, pred.Estimate, 1e-9)
}

func TestKNNBasic_ItemBased(t *testing.T) {
	algo := NewKNNBasic(model.Params{},
		model.WithSimilarities(fixedSimilarity()),
		model.WithSimOptions(model.Params{model.UserBased: false}))
	assert.NoError(t, algo.Train(newKNNTrainSet()))
	// u1 rated i1 (similarity -0.2 with i3) and i2 (similarity 0.3 with i3)
	pred := algo.Predict("u1", "i3", 0, false)
	assert.InDelta(t, 3.0, pred.Estimate, 1e-9)
}

func TestKNNBasic_InvalidSimilarity(t *testing.T) {
	algo := NewKNNBasic(model.Params{}, model.WithSimOptions(model.Params{model.Name: "jaccard"}))
	assert.Error(t, algo.Train(newKNNTrainSet()))
	pred := algo.Predict("u1", "i3", 0, false)
	assert.True(t, pred.Details.WasImpossible)
	assert.Equal(t, model.ReasonNotTrained, pred.Details.Reason)
}

func TestKNN_FailedTrain(t *testing.T) {
	invalidSim := model.WithSimOptions(model.Params{model.Name: "jaccard"})
	invalidMethod := model.WithBaselineOptions(model.Params{model.Method: "adam"})
	pearsonBaseline := model.WithSimOptions(model.Params{model.Name: similarity.PearsonBaseline})
	algorithms := map[string]model.Algorithm{
		"KNNBasic":                     NewKNNBasic(nil, invalidSim),
		"KNNWithMeans":                 NewKNNWithMeans(nil, invalidSim),
		"KNNBaseline/similarity":       NewKNNBaseline(nil, invalidSim),
		"KNNBaseline/baseline":         NewKNNBaseline(nil, invalidMethod),
		"KNNBaseline/pearson_baseline": NewKNNBaseline(nil, pearsonBaseline, invalidMethod),
	}
	for name, algo := range algorithms {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, algo.Train(newKNNTrainSet()))
			for _, pred := range algo.Test([]dataset.Rating{
				{UserId: "u1", ItemId: "i3"},
				{UserId: "u4", ItemId: "i3"},
			}, false) {
				assert.True(t, pred.Details.WasImpossible)
				assert.Equal(t, model.ReasonNotTrained, pred.Details.Reason)
			}
		})
	}
}

func TestKNNBasic_Retrain(t *testing.T) {
	algo := NewKNNBasic(model.Params{})
	assert.NoError(t, algo.Train(newKNNTrainSet()))
	assert.False(t, algo.Predict("u1", "i3", 0, false).Details.WasImpossible)
	// a failed training discards the previous similarity matrix
	algo.SimOptions[model.Name] = "jaccard"
	assert.Error(t, algo.Train(newKNNTrainSet()))
	pred := algo.Predict("u1", "i3", 0, false)
	assert.True(t, pred.Details.WasImpossible)
	assert.Equal(t, model.ReasonNotTrained, pred.Details.Reason)
}

func TestKNNWithMeans(t *testing.T) {
	algo := NewKNNWithMeans(model.Params{}, model.WithSimilarities(fixedSimilarity()))
	assert.NoError(t, algo.Train(newKNNTrainSet()))
	assert.InDeltaSlice(t, []float64{4, 10.0 / 3, 3}, algo.means, 1e-9)
	pred := algo.Predict("u1", "i3", 0, false)
	assert.InDelta(t, 4+(4-10.0/3), pred.Estimate, 1e-9)
	assert.Equal(t, map[string]interface{}{"actual_k": 1}, pred.Details.Extra)

	// fall back to the mean of the user
	algo = NewKNNWithMeans(model.Params{model.MinK: 2}, model.WithSimilarities(fixedSimilarity()))
	assert.NoError(t, algo.Train(newKNNTrainSet()))
	pred = algo.Predict("u1", "i3", 0, false)
	assert.False(t, pred.Details.WasImpossible)
	assert.InDelta(t, 4.0, pred.Estimate, 1e-9)

	pred = algo.Predict("u1", "i4", 0, false)
	assert.True(t, pred.Details.WasImpossible)
}

func TestKNNBaseline(t *testing.T) {
	algo := NewKNNBaseline(model.Params{},
		model.WithSimilarities(fixedSimilarity()),
		model.WithBaselineOptions(model.Params{model.NEpochs: 0}))
	trainSet := newKNNTrainSet()
	assert.NoError(t, algo.Train(trainSet))
	mean := trainSet.GlobalMean()

	pred := algo.Predict("u1", "i3", 0, false)
	assert.InDelta(t, 4.0, pred.Estimate, 1e-9)
	assert.Equal(t, map[string]interface{}{"actual_k": 1}, pred.Details.Extra)

	// unknown users get the baseline estimate
	pred = algo.Predict("u4", "i3", 0, false)
	assert.False(t, pred.Details.WasImpossible)
	assert.InDelta(t, mean, pred.Estimate, 1e-9)
}

func TestKNNBaseline_Biases(t *testing.T) {
	algo := NewKNNBaseline(model.Params{model.MinK: 5},
		model.WithSimilarities(fixedSimilarity()),
		model.WithBaselineOptions(model.Params{model.Method: model.SGD}))
	trainSet := newKNNTrainSet()
	assert.NoError(t, algo.Train(trainSet))
	baselines, err := algo.ComputeBaselines()
	assert.NoError(t, err)
	// not enough neighbors, so the baseline estimate is predicted
	est, err := algo.Estimate(0, 2)
	assert.NoError(t, err)
	assert.InDelta(t, trainSet.GlobalMean()+baselines.UserBias[0]+baselines.ItemBias[2], est.Rating, 1e-9)
}

func TestKNNBaseline_PearsonBaseline(t *testing.T) {
	algo := NewKNNBaseline(model.Params{}, model.WithSimOptions(model.Params{model.Name: similarity.PearsonBaseline}))
	assert.NoError(t, algo.Train(newKNNTrainSet()))
	predictions := algo.Test([]dataset.Rating{
		{UserId: "u1", ItemId: "i3", Rating: 4},
		{UserId: "u3", ItemId: "i2", Rating: 2},
	}, false)
	for _, pred := range predictions {
		assert.False(t, pred.Details.WasImpossible)
		assert.GreaterOrEqual(t, pred.Estimate, 1.0)
		assert.LessOrEqual(t, pred.Estimate, 5.0)
	}
}
