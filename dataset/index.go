// Copyright 2025 gorse Project Authors
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

// Index assigns dense ids to raw ids in the order they are first added and
// counts how many times each raw id was added.
type Index struct {
	ids   map[string]int
	names []string
	freq  []int
}

func NewIndex() *Index {
	return &Index{ids: make(map[string]int)}
}

// Len returns the number of distinct raw ids.
func (idx *Index) Len() int {
	return len(idx.names)
}

// Add returns the dense id of name, which is assigned on first sight.
func (idx *Index) Add(name string) int {
	id, exist := idx.ids[name]
	if !exist {
		id = len(idx.names)
		idx.ids[name] = id
		idx.names = append(idx.names, name)
		idx.freq = append(idx.freq, 0)
	}
	idx.freq[id]++
	return id
}

// Id returns the dense id of name if it has been added.
func (idx *Index) Id(name string) (int, bool) {
	id, exist := idx.ids[name]
	return id, exist
}

// Name returns the raw id of a dense id.
func (idx *Index) Name(id int) (string, bool) {
	if id < 0 || id >= len(idx.names) {
		return "", false
	}
	return idx.names[id], true
}

// Freq returns how many times the raw id of a dense id was added, 0 for
// unknown ids.
func (idx *Index) Freq(id int) int {
	if id < 0 || id >= len(idx.freq) {
		return 0
	}
	return idx.freq[id]
}
