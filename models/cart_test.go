package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityUnmarshal(t *testing.T) {
	var m CartMap
	err := json.Unmarshal([]byte(`{"a":2,"b":"1kg","c":"3","d":0.5}`), &m)
	require.NoError(t, err)

	assert.Equal(t, Quantity("2"), m["a"])
	assert.Equal(t, Quantity("1kg"), m["b"])
	assert.Equal(t, Quantity("3"), m["c"])
	assert.Equal(t, Quantity("0.5"), m["d"])
}

func TestQuantityMarshal(t *testing.T) {
	m := CartMap{"a": "2", "b": "1kg"}
	data, err := json.Marshal(m)
	require.NoError(t, err)

	assert.JSONEq(t, `{"a":2,"b":"1kg"}`, string(data))
}

func TestQuantityNumber(t *testing.T) {
	n, ok := Quantity("2.5").Number()
	assert.True(t, ok)
	assert.Equal(t, 2.5, n)

	_, ok = Quantity("1 dozen").Number()
	assert.False(t, ok)
}

func TestCartMergeNewKey(t *testing.T) {
	m := CartMap{}
	m.Merge("p1", "2")
	assert.Equal(t, Quantity("2"), m["p1"])
}

func TestCartMergeNumericAddition(t *testing.T) {
	m := CartMap{"p1": "2"}
	m.Merge("p1", "3")
	assert.Equal(t, Quantity("5"), m["p1"])
}

func TestCartMergeNonNumericIncomingCountsAsOne(t *testing.T) {
	m := CartMap{"p1": "2"}
	m.Merge("p1", "1kg")
	assert.Equal(t, Quantity("3"), m["p1"])
}

func TestCartMergeNonNumericExistingIsReplaced(t *testing.T) {
	m := CartMap{"p1": "1kg"}
	m.Merge("p1", "2")
	assert.Equal(t, Quantity("2"), m["p1"])
}
