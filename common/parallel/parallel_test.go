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

package parallel

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"go.uber.org/atomic"
)

func TestFor(t *testing.T) {
	// multiple threads
	a := lo.Range(10000)
	b := make([]int, len(a))
	count := atomic.NewInt64(0)
	For(len(a), 4, func(jobId int) {
		b[jobId] = a[jobId]
		count.Inc()
	})
	assert.Equal(t, a, b)
	assert.Equal(t, int64(len(a)), count.Load())
	// single thread
	b = make([]int, len(a))
	order := make([]int, 0, len(a))
	For(len(a), 1, func(jobId int) {
		b[jobId] = a[jobId]
		order = append(order, jobId)
	})
	assert.Equal(t, a, b)
	assert.Equal(t, a, order)
}

func TestForEmpty(t *testing.T) {
	called := false
	For(0, 4, func(int) { called = true })
	assert.False(t, called)
}
