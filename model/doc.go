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

/*
Package model provides the foundation of rating prediction algorithms.

Every algorithm embeds a Base, which translates raw ids into inner ids, turns
impossible predictions into the global mean and clips estimates into the
rating scale. The Base also computes on demand:

	* baselines: user and item biases estimated by ALS or SGD,
	* similarities: a matrix between users or items built by a measure from
	  a similarity registry.
*/
package model
