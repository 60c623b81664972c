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

// Package algo implements rating prediction algorithms on top of model.Base.
package algo

import "github.com/gorse-io/recsys/model"

var (
	_ model.Algorithm = (*BaselineOnly)(nil)
	_ model.Algorithm = (*NormalPredictor)(nil)
	_ model.Algorithm = (*KNNBasic)(nil)
	_ model.Algorithm = (*KNNWithMeans)(nil)
	_ model.Algorithm = (*KNNBaseline)(nil)
)

// baseline estimate of user u and item i. Biases of unknown users or items
// are zero.
func baseline(trainSet model.TrainSet, baselines *model.Baselines, userId, itemId int) float64 {
	est := trainSet.GlobalMean()
	if trainSet.KnowsUser(userId) {
		est += baselines.UserBias[userId]
	}
	if trainSet.KnowsItem(itemId) {
		est += baselines.ItemBias[itemId]
	}
	return est
}
