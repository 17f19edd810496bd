// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNaturalLess(t *testing.T) {
	assert.True(t, NaturalLess("v2", "v10"))
	assert.False(t, NaturalLess("v10", "v2"))
	assert.True(t, NaturalLess("a2a3", "a2a4"))
	assert.True(t, NaturalLess("b1a3", "b1c3"))
	assert.True(t, NaturalLess("e7e8", "e7e8q"))
	assert.False(t, NaturalLess("e2e4", "e2e4"))
}

func TestSortNatural(t *testing.T) {
	moves := []string{"g1f3", "a2a4", "b1c3", "a2a3", "e7e8q", "e7e8b"}
	SortNatural(moves)

	assert.Equal(t, []string{"a2a3", "a2a4", "b1c3", "e7e8b", "e7e8q", "g1f3"}, moves)
}
