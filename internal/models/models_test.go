package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_KeepsInsertionOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("zebra", 1)
	obj.Set("apple", 2)
	obj.Set("mango", 3)

	members := obj.Members()
	require.Len(t, members, 3)
	assert.Equal(t, "zebra", members[0].Key)
	assert.Equal(t, "apple", members[1].Key)
	assert.Equal(t, "mango", members[2].Key)
}

func TestObject_SetExistingKeyKeepsPosition(t *testing.T) {
	obj := NewObject()
	obj.Set("a", 1)
	obj.Set("b", 2)
	obj.Set("a", 99)

	members := obj.Members()
	require.Len(t, members, 2)
	assert.Equal(t, "a", members[0].Key)
	assert.Equal(t, 99, members[0].Value)
}

func TestObject_Get(t *testing.T) {
	obj := NewObject()
	obj.Set("name", "devfmt")

	v, ok := obj.Get("name")
	require.True(t, ok)
	assert.Equal(t, "devfmt", v)

	_, ok = obj.Get("missing")
	assert.False(t, ok)
}
