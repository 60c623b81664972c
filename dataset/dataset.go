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

package dataset

import (
	"github.com/juju/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Rating is an observation given with raw ids.
type Rating struct {
	UserId string
	ItemId string
	Rating float64
}

// IdRating is a rating paired with the inner id of the counterpart entity.
type IdRating struct {
	Id     int
	Rating float64
}

// RatingScale is the closed interval ratings are expected to lie in.
type RatingScale struct {
	Min float64
	Max float64
}

// TrainSet is an immutable set of ratings indexed by dense inner ids. Inner
// ids are assigned in the order users and items first appear.
type TrainSet struct {
	userIndex   *Index
	itemIndex   *Index
	users       []int
	items       []int
	ratings     []float64
	userRatings [][]IdRating // ur
	itemRatings [][]IdRating // ir
	globalMean  float64
	scale       RatingScale
}

// NewTrainSet builds a train set. A zero scale is replaced by the minimum and
// maximum of observed ratings.
func NewTrainSet(ratings []Rating, scale RatingScale) *TrainSet {
	set := &TrainSet{
		userIndex: NewIndex(),
		itemIndex: NewIndex(),
		users:     make([]int, len(ratings)),
		items:     make([]int, len(ratings)),
		ratings:   make([]float64, len(ratings)),
	}
	for i, r := range ratings {
		set.users[i] = set.userIndex.Add(r.UserId)
		set.items[i] = set.itemIndex.Add(r.ItemId)
		set.ratings[i] = r.Rating
	}
	// Create user-based and item-based ratings
	set.userRatings = lo.Map(lo.Range(set.userIndex.Len()), func(u int, _ int) []IdRating {
		return make([]IdRating, 0, set.userIndex.Freq(u))
	})
	set.itemRatings = lo.Map(lo.Range(set.itemIndex.Len()), func(i int, _ int) []IdRating {
		return make([]IdRating, 0, set.itemIndex.Freq(i))
	})
	for i := range set.ratings {
		u, v, r := set.users[i], set.items[i], set.ratings[i]
		set.userRatings[u] = append(set.userRatings[u], IdRating{Id: v, Rating: r})
		set.itemRatings[v] = append(set.itemRatings[v], IdRating{Id: u, Rating: r})
	}
	if len(set.ratings) > 0 {
		set.globalMean = stat.Mean(set.ratings, nil)
	}
	set.scale = scale
	if scale == (RatingScale{}) && len(set.ratings) > 0 {
		set.scale = RatingScale{Min: floats.Min(set.ratings), Max: floats.Max(set.ratings)}
	}
	return set
}

// Count returns the number of ratings.
func (set *TrainSet) Count() int {
	return len(set.ratings)
}

func (set *TrainSet) UserCount() int {
	return set.userIndex.Len()
}

func (set *TrainSet) ItemCount() int {
	return set.itemIndex.Len()
}

// GlobalMean returns the mean of all ratings.
func (set *TrainSet) GlobalMean() float64 {
	return set.globalMean
}

// RatingScale returns the lower and upper bound of ratings.
func (set *TrainSet) RatingScale() (float64, float64) {
	return set.scale.Min, set.scale.Max
}

// UserRatings returns ratings grouped by inner user id.
func (set *TrainSet) UserRatings() [][]IdRating {
	return set.userRatings
}

// ItemRatings returns ratings grouped by inner item id.
func (set *TrainSet) ItemRatings() [][]IdRating {
	return set.itemRatings
}

// ForEachRating iterates ratings with inner ids in insertion order.
func (set *TrainSet) ForEachRating(f func(userId, itemId int, rating float64)) {
	for i := range set.ratings {
		f(set.users[i], set.items[i], set.ratings[i])
	}
}

func (set *TrainSet) ToInnerUserId(rawUserId string) (int, error) {
	if userId, ok := set.userIndex.Id(rawUserId); ok {
		return userId, nil
	}
	return 0, errors.NotFoundf("user %s", rawUserId)
}

func (set *TrainSet) ToInnerItemId(rawItemId string) (int, error) {
	if itemId, ok := set.itemIndex.Id(rawItemId); ok {
		return itemId, nil
	}
	return 0, errors.NotFoundf("item %s", rawItemId)
}

func (set *TrainSet) ToRawUserId(userId int) (string, error) {
	if rawUserId, ok := set.userIndex.Name(userId); ok {
		return rawUserId, nil
	}
	return "", errors.NotFoundf("inner user %d", userId)
}

func (set *TrainSet) ToRawItemId(itemId int) (string, error) {
	if rawItemId, ok := set.itemIndex.Name(itemId); ok {
		return rawItemId, nil
	}
	return "", errors.NotFoundf("inner item %d", itemId)
}

// KnowsUser returns true if the inner user id is part of the train set.
func (set *TrainSet) KnowsUser(userId int) bool {
	return userId >= 0 && userId < set.userIndex.Len()
}

// KnowsItem returns true if the inner item id is part of the train set.
func (set *TrainSet) KnowsItem(itemId int) bool {
	return itemId >= 0 && itemId < set.itemIndex.Len()
}
