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

package config

import (
	"path/filepath"
	"reflect"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/gorse-io/recsys/model"
	"github.com/gorse-io/recsys/similarity"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the configuration of rating prediction algorithms. Method and
// similarity names are not checked here: invalid names are reported when
// baselines or similarities are computed.
type Config struct {
	Baseline   BaselineConfig   `mapstructure:"baseline"`
	Similarity SimilarityConfig `mapstructure:"similarity"`
	Neighbors  NeighborsConfig  `mapstructure:"neighbors"`
	Jobs        Jobs  `mapstructure:"jobs" validate:"gt=0"`
	RandomState int64 `mapstructure:"random_state"`
}

// Jobs is the number of goroutines used by tests. The string "auto" stands
// for the number of CPUs.
type Jobs int

// stringToJobsHookFunc decodes "auto" into the number of CPUs.
func stringToJobsHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(Jobs(0)) {
			return data, nil
		}
		if strings.EqualFold(strings.TrimSpace(reflect.ValueOf(data).String()), "auto") {
			return runtime.NumCPU(), nil
		}
		return data, nil
	}
}

type BaselineConfig struct {
	Method string `mapstructure:"method"`
	// NEpochs defaults to 10 for ALS and 20 for SGD if unset.
	NEpochs      *int    `mapstructure:"n_epochs" validate:"omitempty,gte=0"`
	Reg          float64 `mapstructure:"reg" validate:"gte=0"`
	LearningRate float64 `mapstructure:"learning_rate" validate:"gte=0"`
	RegU         float64 `mapstructure:"reg_u" validate:"gte=0"`
	RegI         float64 `mapstructure:"reg_i" validate:"gte=0"`
}

type SimilarityConfig struct {
	Name       string  `mapstructure:"name"`
	UserBased  bool    `mapstructure:"user_based"`
	MinSupport int     `mapstructure:"min_support" validate:"gte=0"`
	Shrinkage  float64 `mapstructure:"shrinkage" validate:"gte=0"`
}

type NeighborsConfig struct {
	K    int `mapstructure:"k" validate:"gt=0"`
	MinK int `mapstructure:"min_k" validate:"gte=0"`
}

func GetDefaultConfig() *Config {
	return &Config{
		Baseline: BaselineConfig{
			Method:       model.ALS,
			Reg:          0.02,
			LearningRate: 0.005,
			RegU:         15,
			RegI:         10,
		},
		Similarity: SimilarityConfig{
			Name:       similarity.MSD,
			UserBased:  true,
			MinSupport: 1,
			Shrinkage:  100,
		},
		Neighbors: NeighborsConfig{
			K:    40,
			MinK: 1,
		},
		Jobs: 1,
	}
}

func setDefault(v *viper.Viper) {
	defaultConfig := GetDefaultConfig()
	// [baseline]
	v.SetDefault("baseline.method", defaultConfig.Baseline.Method)
	v.SetDefault("baseline.reg", defaultConfig.Baseline.Reg)
	v.SetDefault("baseline.learning_rate", defaultConfig.Baseline.LearningRate)
	v.SetDefault("baseline.reg_u", defaultConfig.Baseline.RegU)
	v.SetDefault("baseline.reg_i", defaultConfig.Baseline.RegI)
	// [similarity]
	v.SetDefault("similarity.name", defaultConfig.Similarity.Name)
	v.SetDefault("similarity.user_based", defaultConfig.Similarity.UserBased)
	v.SetDefault("similarity.min_support", defaultConfig.Similarity.MinSupport)
	v.SetDefault("similarity.shrinkage", defaultConfig.Similarity.Shrinkage)
	// [neighbors]
	v.SetDefault("neighbors.k", defaultConfig.Neighbors.K)
	v.SetDefault("neighbors.min_k", defaultConfig.Neighbors.MinK)
	v.SetDefault("jobs", defaultConfig.Jobs)
	v.SetDefault("random_state", defaultConfig.RandomState)
}

type envBinding struct {
	key string
	env string
}

var envBindings = []envBinding{
	{"baseline.method", "RECSYS_BASELINE_METHOD"},
	{"baseline.n_epochs", "RECSYS_BASELINE_N_EPOCHS"},
	{"baseline.reg", "RECSYS_BASELINE_REG"},
	{"baseline.learning_rate", "RECSYS_BASELINE_LEARNING_RATE"},
	{"baseline.reg_u", "RECSYS_BASELINE_REG_U"},
	{"baseline.reg_i", "RECSYS_BASELINE_REG_I"},
	{"similarity.name", "RECSYS_SIMILARITY_NAME"},
	{"similarity.user_based", "RECSYS_SIMILARITY_USER_BASED"},
	{"similarity.min_support", "RECSYS_SIMILARITY_MIN_SUPPORT"},
	{"similarity.shrinkage", "RECSYS_SIMILARITY_SHRINKAGE"},
	{"neighbors.k", "RECSYS_NEIGHBORS_K"},
	{"neighbors.min_k", "RECSYS_NEIGHBORS_MIN_K"},
	{"jobs", "RECSYS_JOBS"},
	{"random_state", "RECSYS_RANDOM_STATE"},
}

type flagBinding struct {
	key  string
	name string
}

var flagBindings = []flagBinding{
	{"baseline.method", "baseline-method"},
	{"similarity.name", "similarity-name"},
	{"similarity.user_based", "user-based"},
	{"similarity.min_support", "min-support"},
	{"neighbors.k", "k"},
	{"neighbors.min_k", "min-k"},
	{"jobs", "jobs"},
}

// AddFlags registers command line flags overriding the configuration.
func AddFlags(flagSet *pflag.FlagSet) {
	defaultConfig := GetDefaultConfig()
	flagSet.String("baseline-method", defaultConfig.Baseline.Method, "method of baseline estimation (als or sgd)")
	flagSet.String("similarity-name", defaultConfig.Similarity.Name, "similarity measure (cosine, msd, pearson or pearson_baseline)")
	flagSet.Bool("user-based", defaultConfig.Similarity.UserBased, "compute similarities between users instead of items")
	flagSet.Int("min-support", defaultConfig.Similarity.MinSupport, "minimum number of common ratings")
	flagSet.Int("k", defaultConfig.Neighbors.K, "maximum number of neighbors")
	flagSet.Int("min-k", defaultConfig.Neighbors.MinK, "minimum number of neighbors")
	flagSet.Int("jobs", int(defaultConfig.Jobs), "number of jobs")
}

// LoadConfig loads the configuration from a TOML, YAML or JSON file. Values
// are overridden by environment variables prefixed by RECSYS_ and by changed
// flags registered with AddFlags. Path and flagSet are optional.
func LoadConfig(path string, flagSet *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefault(v)
	for _, binding := range envBindings {
		if err := v.BindEnv(binding.key, binding.env); err != nil {
			return nil, errors.Trace(err)
		}
	}
	if flagSet != nil {
		for _, binding := range flagBindings {
			if f := flagSet.Lookup(binding.name); f != nil {
				if err := v.BindPFlag(binding.key, f); err != nil {
					return nil, errors.Trace(err)
				}
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); !lo.Contains(viper.SupportedExts, ext) {
			// templates such as config.toml.template
			v.SetConfigType("toml")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Annotatef(err, "failed to read config file %s", path)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf, viper.DecodeHook(stringToJobsHookFunc())); err != nil {
		return nil, errors.Trace(err)
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &conf, nil
}

// Validate checks numerical values of the configuration.
func (config *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			messages := make([]string, 0, len(fieldErrors))
			for _, fieldError := range fieldErrors {
				messages = append(messages, fieldError.Namespace()+" must be "+fieldError.Tag()+" "+fieldError.Param())
			}
			return errors.NewNotValid(err, "invalid config: "+strings.Join(messages, "; "))
		}
		return errors.Trace(err)
	}
	return nil
}

// BaselineOptions returns options of baseline estimation.
func (config *Config) BaselineOptions() model.Params {
	params := model.Params{
		model.Method:       config.Baseline.Method,
		model.Reg:          config.Baseline.Reg,
		model.LearningRate: config.Baseline.LearningRate,
		model.RegU:         config.Baseline.RegU,
		model.RegI:         config.Baseline.RegI,
	}
	if config.Baseline.NEpochs != nil {
		params[model.NEpochs] = *config.Baseline.NEpochs
	}
	return params
}

// SimOptions returns options of similarity computation.
func (config *Config) SimOptions() model.Params {
	return model.Params{
		model.Name:       config.Similarity.Name,
		model.UserBased:  config.Similarity.UserBased,
		model.MinSupport: config.Similarity.MinSupport,
		model.Shrinkage:  config.Similarity.Shrinkage,
	}
}

// Params returns parameters of neighborhood and random algorithms.
func (config *Config) Params() model.Params {
	return model.Params{
		model.K:           config.Neighbors.K,
		model.MinK:        config.Neighbors.MinK,
		model.RandomState: config.RandomState,
	}
}

// Options returns options to create algorithms.
func (config *Config) Options() []model.Option {
	return []model.Option{
		model.WithBaselineOptions(config.BaselineOptions()),
		model.WithSimOptions(config.SimOptions()),
		model.WithJobs(int(config.Jobs)),
	}
}
