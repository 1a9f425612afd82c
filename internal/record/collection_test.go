package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id   string
	name string
}

func newItems(ids ...string) *Collection[item] {
	c := New(func(i item) string { return i.id })
	list := make([]item, 0, len(ids))
	for _, id := range ids {
		list = append(list, item{id: id, name: id})
	}
	c.Reset(list)
	return c
}

func ids(list []item) []string {
	out := make([]string, 0, len(list))
	for _, i := range list {
		out = append(out, i.id)
	}
	return out
}

func TestMoveToFront(t *testing.T) {
	c := newItems("a", "b", "c")

	c.MoveToFront(item{id: "c", name: "novo"})
	assert.Equal(t, []string{"c", "a", "b"}, ids(c.List()))

	got, ok := c.Find("c")
	require.True(t, ok)
	assert.Equal(t, "novo", got.name)

	c.MoveToFront(item{id: "d"})
	assert.Equal(t, []string{"d", "c", "a", "b"}, ids(c.List()))
}

func TestReplaceKeepsPosition(t *testing.T) {
	c := newItems("a", "b", "c")

	assert.True(t, c.Replace(item{id: "b", name: "editado"}))
	assert.Equal(t, []string{"a", "b", "c"}, ids(c.List()))
	got, _ := c.Find("b")
	assert.Equal(t, "editado", got.name)

	assert.False(t, c.Replace(item{id: "x"}))
	assert.Equal(t, 3, c.Len())
}

func TestRemoveAndPrepend(t *testing.T) {
	c := newItems("a", "b", "c")

	assert.True(t, c.Remove("b"))
	assert.False(t, c.Remove("b"))
	c.Prepend(item{id: "z"})
	assert.Equal(t, []string{"z", "a", "c"}, ids(c.List()))
}

func TestListIsCopy(t *testing.T) {
	c := newItems("a")
	list := c.List()
	list[0].id = "mutado"

	_, ok := c.Find("a")
	assert.True(t, ok)
}
