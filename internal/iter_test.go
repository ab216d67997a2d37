package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	seq := IterSeq2Concat(maps.All(map[string]int{"a": 1}), maps.All(map[string]int{"b": 2}))
	assert.Equal(map[string]int{"a": 1, "b": 2}, maps.Collect(seq))

	for range seq {
		break
	}
}

func TestIterSeq2Sorted(t *testing.T) {
	assert := assert.New(t)

	var keys []string
	var values []int
	for key, value := range IterSeq2Sorted(map[string]int{"c": 3, "a": 1, "b": 2}) {
		keys = append(keys, key)
		values = append(values, value)
	}
	assert.Equal([]string{"a", "b", "c"}, keys)
	assert.Equal([]int{1, 2, 3}, values)
}
