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
	"fmt"
	"slices"
	"strings"

	"github.com/juju/errors"
	"github.com/samber/lo"
)

// ImpossibleError is returned by an estimator that cannot predict a rating,
// for example when there are not enough neighbors.
type ImpossibleError struct {
	Reason string
}

// NewImpossible creates an error telling that a prediction is impossible.
func NewImpossible(reason string) error {
	return &ImpossibleError{Reason: reason}
}

func (e *ImpossibleError) Error() string {
	return e.Reason
}

// IsImpossible returns true if err tells that a prediction is impossible.
func IsImpossible(err error) bool {
	var impossible *ImpossibleError
	return errors.As(err, &impossible)
}

// Estimation is the result of an estimator: an estimated rating and optional
// details such as the number of neighbors.
type Estimation struct {
	Rating  float64
	Details map[string]interface{}
}

// Details of a prediction.
type Details struct {
	WasImpossible bool
	Reason        string                 // set if WasImpossible
	Extra         map[string]interface{} // details returned by the estimator
}

func (d Details) String() string {
	fields := []string{fmt.Sprintf("was_impossible: %v", d.WasImpossible)}
	if d.WasImpossible {
		fields = append(fields, fmt.Sprintf("reason: %s", d.Reason))
	}
	keys := lo.Keys(d.Extra)
	slices.Sort(keys)
	for _, key := range keys {
		fields = append(fields, fmt.Sprintf("%s: %v", key, d.Extra[key]))
	}
	return "{" + strings.Join(fields, ", ") + "}"
}

// Prediction of the rating given by a user to an item, identified by raw ids.
type Prediction struct {
	UserId   string
	ItemId   string
	Rating   float64 // true rating, 0 if unknown
	Estimate float64 // estimated rating
	Details  Details
}

func (p Prediction) String() string {
	return fmt.Sprintf("user: %-10s item: %-10s r_ui = %1.2f   est = %1.2f   %v",
		p.UserId, p.ItemId, p.Rating, p.Estimate, p.Details)
}
