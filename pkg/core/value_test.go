package core_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quire/pkg/core"
)

func TestFromAny(t *testing.T) {
	var decoded any
	dec := json.NewDecoder(strings.NewReader(`{"a":"x","b":1.5,"c":true,"d":null,"e":[1,"two"],"f":{"g":7}}`))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&decoded))

	v, err := core.FromAny(decoded)
	require.NoError(t, err)
	require.Equal(t, core.KindObject, v.Kind())
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, v.Keys())

	a, _ := v.Field("a")
	s, ok := a.AsText()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	b, _ := v.Field("b")
	num, ok := b.AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 1.5, num)

	c, _ := v.Field("c")
	flag, ok := c.AsBool()
	assert.True(t, ok)
	assert.True(t, flag)

	d, _ := v.Field("d")
	assert.Equal(t, core.KindNull, d.Kind())

	e, _ := v.Field("e")
	items, ok := e.AsArray()
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.Equal(t, core.KindNumber, items[0].Kind())
	assert.Equal(t, core.KindText, items[1].Kind())

	f, _ := v.Field("f")
	g, ok := f.Field("g")
	require.True(t, ok)
	gv, _ := g.AsNumber()
	assert.Equal(t, 7.0, gv)
}

func TestFromAny_Unsupported(t *testing.T) {
	_, err := core.FromAny(struct{}{})
	assert.Error(t, err)

	_, err = core.FromAny([]any{"ok", make(chan int)})
	assert.Error(t, err)
}

func TestValue_AccessorsRejectOtherKinds(t *testing.T) {
	v := core.Number(3)

	_, ok := v.AsText()
	assert.False(t, ok)
	_, ok = v.AsObject()
	assert.False(t, ok)
	_, ok = v.Field("x")
	assert.False(t, ok)
	assert.Nil(t, v.Keys())
	assert.Equal(t, "number", v.Kind().String())
}

func TestValue_AnyRoundTrip(t *testing.T) {
	in := map[string]any{
		"list": []any{"a", 2.0, false, nil},
		"obj":  map[string]any{"k": "v"},
	}
	v, err := core.FromAny(in)
	require.NoError(t, err)
	assert.Equal(t, in, v.Any())
}
