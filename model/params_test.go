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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_Copy(t *testing.T) {
	// Create parameters
	a := Params{
		NEpochs:      1,
		LearningRate: 0.1,
		RandomState:  0,
	}
	// Create copy
	b := a.Copy()
	b[NEpochs] = 2
	b[LearningRate] = 0.2
	b[RandomState] = 1
	// Check original parameters
	assert.Equal(t, 1, a.GetInt(NEpochs, -1))
	assert.Equal(t, 0.1, a.GetFloat64(LearningRate, -0.1))
	assert.Equal(t, int64(0), a.GetInt64(RandomState, -1))
	// Check copy parameters
	assert.Equal(t, 2, b.GetInt(NEpochs, -1))
	assert.Equal(t, 0.2, b.GetFloat64(LearningRate, -0.1))
	assert.Equal(t, int64(1), b.GetInt64(RandomState, -1))
}

func TestParams_GetFloat64(t *testing.T) {
	p := Params{}
	// Empty case
	assert.Equal(t, 0.1, p.GetFloat64(Reg, 0.1))
	// Normal case
	p[Reg] = 1.0
	assert.Equal(t, 1.0, p.GetFloat64(Reg, 0.1))
	// Integers are accepted
	p[Reg] = 15
	assert.Equal(t, 15.0, p.GetFloat64(Reg, 0.1))
	p[Reg] = float32(0.5)
	assert.Equal(t, 0.5, p.GetFloat64(Reg, 0.1))
	// Wrong type case
	p[Reg] = "hello"
	assert.Equal(t, 0.1, p.GetFloat64(Reg, 0.1))
}

func TestParams_GetInt(t *testing.T) {
	p := Params{}
	// Empty case
	assert.Equal(t, -1, p.GetInt(K, -1))
	// Normal case
	p[K] = 0
	assert.Equal(t, 0, p.GetInt(K, -1))
	p[K] = int64(40)
	assert.Equal(t, 40, p.GetInt(K, -1))
	// Wrong type case
	p[K] = "hello"
	assert.Equal(t, -1, p.GetInt(K, -1))
}

func TestParams_GetInt64(t *testing.T) {
	p := Params{}
	// Empty case
	assert.Equal(t, int64(-1), p.GetInt64(RandomState, -1))
	// Normal case
	p[RandomState] = int64(0)
	assert.Equal(t, int64(0), p.GetInt64(RandomState, -1))
	// Wrong type case
	p[RandomState] = 0
	assert.Equal(t, int64(0), p.GetInt64(RandomState, -1))
	p[RandomState] = "hello"
	assert.Equal(t, int64(-1), p.GetInt64(RandomState, -1))
}

func TestParams_GetBool(t *testing.T) {
	p := Params{}
	assert.True(t, p.GetBool(UserBased, true))
	p[UserBased] = false
	assert.False(t, p.GetBool(UserBased, true))
	p[UserBased] = 1
	assert.True(t, p.GetBool(UserBased, true))
}

func TestParams_GetString(t *testing.T) {
	p := Params{}
	assert.Equal(t, ALS, p.GetString(Method, ALS))
	p[Method] = SGD
	assert.Equal(t, SGD, p.GetString(Method, ALS))
	p[Method] = 1
	assert.Equal(t, ALS, p.GetString(Method, ALS))
}

func TestParams_Overwrite(t *testing.T) {
	a := Params{Method: ALS, NEpochs: 10}
	b := a.Overwrite(Params{NEpochs: 5, RegU: 1})
	assert.Equal(t, Params{Method: ALS, NEpochs: 10}, a)
	assert.Equal(t, Params{Method: ALS, NEpochs: 5, RegU: 1}, b)
}
