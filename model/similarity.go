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
	"github.com/gorse-io/recsys/similarity"
	"github.com/juju/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// ComputeSimilarities builds the similarity matrix between users (user_based
// is true) or items with the measure given by similarity options. The matrix
// is computed on every call.
func (base *Base) ComputeSimilarities() (*mat.SymDense, error) {
	if base.trainSet == nil {
		return nil, errors.New("algorithm is not trained")
	}
	userBased := base.SimOptions.GetBool(UserBased, true)
	name := strings.ToLower(base.SimOptions.GetString(Name, similarity.MSD))
	sim, exist := base.similarities[name]
	if !exist {
		return nil, errors.NewNotValid(nil, "wrong sim name "+name+
			". Allowed values are "+strings.Join(similarity.Names, ", ")+".")
	}

	args := similarity.Args{
		MinSupport: base.SimOptions.GetInt(MinSupport, 1),
	}
	if userBased {
		args.NX, args.Ratings = base.trainSet.UserCount(), base.trainSet.ItemRatings()
	} else {
		args.NX, args.Ratings = base.trainSet.ItemCount(), base.trainSet.UserRatings()
	}
	if name == similarity.PearsonBaseline {
		baselines, err := base.ComputeBaselines()
		if err != nil {
			return nil, errors.Trace(err)
		}
		if userBased {
			args.BX, args.BY = baselines.UserBias, baselines.ItemBias
		} else {
			args.BX, args.BY = baselines.ItemBias, baselines.UserBias
		}
		args.Shrinkage = base.SimOptions.GetFloat64(Shrinkage, 100)
		args.GlobalMean = base.trainSet.GlobalMean()
	}

	log.Logger().Info("computing the similarity matrix",
		zap.String("name", name), zap.Bool("user_based", userBased))
	return sim(args), nil
}
