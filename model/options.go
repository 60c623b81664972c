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

import "github.com/gorse-io/recsys/similarity"

// Option changes the configuration of a Base.
type Option func(base *Base)

// WithBaselineOptions sets options of baseline estimation.
func WithBaselineOptions(params Params) Option {
	return func(base *Base) {
		base.BaselineOptions = params.Copy()
	}
}

// WithSimOptions sets options of similarity computation.
func WithSimOptions(params Params) Option {
	return func(base *Base) {
		base.SimOptions = params.Copy()
	}
}

// WithSimilarities replaces the registry of similarity functions.
func WithSimilarities(registry similarity.Registry) Option {
	return func(base *Base) {
		base.similarities = registry
	}
}

// WithJobs sets the number of goroutines used by Test.
func WithJobs(jobs int) Option {
	return func(base *Base) {
		base.jobs = jobs
	}
}
