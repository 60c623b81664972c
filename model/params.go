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
	"fmt"

	"github.com/gorse-io/recsys/base/log"
	"go.uber.org/zap"
)

/* ParamName */

// ParamName is the type of option names.
type ParamName string

// Baseline options.
const (
	Method       ParamName = "method"        // baseline optimizer: als or sgd
	Reg          ParamName = "reg"           // regularization strength of SGD
	LearningRate ParamName = "learning_rate" // learning rate of SGD
	NEpochs      ParamName = "n_epochs"      // number of epochs
	RegU         ParamName = "reg_u"         // regularization strength of user biases in ALS
	RegI         ParamName = "reg_i"         // regularization strength of item biases in ALS
)

// Similarity options.
const (
	Name       ParamName = "name"        // similarity measure
	UserBased  ParamName = "user_based"  // similarities between users or items
	MinSupport ParamName = "min_support" // minimum number of common ratings
	Shrinkage  ParamName = "shrinkage"   // shrinkage of pearson_baseline
)

// Predictor options.
const (
	K           ParamName = "k"            // maximum number of neighbors
	MinK        ParamName = "min_k"        // minimum number of neighbors
	RandomState ParamName = "random_state" // random seed
)

// Baseline methods.
const (
	ALS = "als"
	SGD = "sgd"
)

// Params stores options of an algorithm. It is a map between names and
// values. For example, baseline options for SGD are given by:
//
//	model.Params{
//		model.Method:       model.SGD,
//		model.LearningRate: 0.005,
//		model.NEpochs:      20,
//		model.Reg:          0.02,
//	}
//
// Values are never validated ahead of time. A value of an unexpected type is
// reported and replaced by the default when it is read.
type Params map[ParamName]interface{}

// Copy options.
func (parameters Params) Copy() Params {
	newParams := make(Params, len(parameters))
	for k, v := range parameters {
		newParams[k] = v
	}
	return newParams
}

// GetInt gets an integer option by name. Returns _default if not exists or type doesn't match.
func (parameters Params) GetInt(name ParamName, _default int) int {
	if val, exist := parameters[name]; exist {
		switch val := val.(type) {
		case int:
			return val
		case int32:
			return int(val)
		case int64:
			return int(val)
		default:
			mismatch(name, "int", val)
		}
	}
	return _default
}

// GetInt64 gets an int64 option by name. Returns _default if not exists or type doesn't match.
func (parameters Params) GetInt64(name ParamName, _default int64) int64 {
	if val, exist := parameters[name]; exist {
		switch val := val.(type) {
		case int64:
			return val
		case int:
			return int64(val)
		case int32:
			return int64(val)
		default:
			mismatch(name, "int64", val)
		}
	}
	return _default
}

// GetBool gets a bool option by name. Returns _default if not exists or type doesn't match.
func (parameters Params) GetBool(name ParamName, _default bool) bool {
	if val, exist := parameters[name]; exist {
		switch val := val.(type) {
		case bool:
			return val
		default:
			mismatch(name, "bool", val)
		}
	}
	return _default
}

// GetFloat64 gets a float option by name. Integers are converted.
func (parameters Params) GetFloat64(name ParamName, _default float64) float64 {
	if val, exist := parameters[name]; exist {
		switch val := val.(type) {
		case float64:
			return val
		case float32:
			return float64(val)
		case int:
			return float64(val)
		case int64:
			return float64(val)
		default:
			mismatch(name, "float64", val)
		}
	}
	return _default
}

// GetString gets a string option by name. Returns _default if not exists or type doesn't match.
func (parameters Params) GetString(name ParamName, _default string) string {
	if val, exist := parameters[name]; exist {
		switch val := val.(type) {
		case string:
			return val
		default:
			mismatch(name, "string", val)
		}
	}
	return _default
}

// Overwrite returns a copy of options overwritten by params.
func (parameters Params) Overwrite(params Params) Params {
	merged := parameters.Copy()
	for k, v := range params {
		merged[k] = v
	}
	return merged
}

func mismatch(name ParamName, expect string, val interface{}) {
	log.Logger().Warn("unexpected option type, use default instead",
		zap.String("name", string(name)),
		zap.String("expect", expect),
		zap.String("actual", fmt.Sprintf("%T", val)))
}
