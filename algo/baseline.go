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
	"github.com/gorse-io/recsys/model"
	"github.com/juju/errors"
)

// BaselineOnly predicts the baseline estimate for given user and item.
//
//	\hat{r}_{ui} = b_{ui} = μ + b_u + b_i
//
// If user u is unknown, then the bias b_u is assumed to be zero. The same
// applies for item i with b_i.
type BaselineOnly struct {
	*model.Base
	baselines *model.Baselines
}

// NewBaselineOnly creates a BaselineOnly algorithm. Biases are estimated with
// baseline options.
func NewBaselineOnly(options ...model.Option) *BaselineOnly {
	algo := new(BaselineOnly)
	algo.Base = model.NewBase(algo, options...)
	return algo
}

// Train estimates biases on the train set.
func (algo *BaselineOnly) Train(trainSet model.TrainSet) error {
	algo.baselines = nil
	if err := algo.Base.Train(trainSet); err != nil {
		return errors.Trace(err)
	}
	baselines, err := algo.ComputeBaselines()
	if err != nil {
		return errors.Trace(err)
	}
	algo.baselines = baselines
	return nil
}

func (algo *BaselineOnly) Estimate(userId, itemId int) (model.Estimation, error) {
	if algo.baselines == nil {
		return model.Estimation{}, model.NewImpossible(model.ReasonNotTrained)
	}
	return model.Estimation{Rating: baseline(algo.TrainSet(), algo.baselines, userId, itemId)}, nil
}
