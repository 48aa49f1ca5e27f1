package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
torch:
  kind: object
  light_radius: 6
  light_color: "#ffaa00"
  components: [light]
  weight: 1.5
  lit: true
  note: ~

goblin:
  kind: creature
  hp: 7
`

func TestParse_Lookups(t *testing.T) {
	c, err := Parse("sample.yaml", []byte(sample))
	require.NoError(t, err)

	r, err := c.Int("torch", "light_radius")
	require.NoError(t, err)
	assert.Equal(t, 6, r)

	col, err := c.String("torch", "light_color")
	require.NoError(t, err)
	assert.Equal(t, "#ffaa00", col)

	comps, err := c.Strings("torch", "components")
	require.NoError(t, err)
	assert.Equal(t, []string{"light"}, comps)

	w, err := c.Float("torch", "weight")
	require.NoError(t, err)
	assert.Equal(t, 1.5, w)

	// целое годится там, где ждут дробное
	f, err := c.Float("goblin", "hp")
	require.NoError(t, err)
	assert.Equal(t, 7.0, f)

	lit, err := c.Bool("torch", "lit")
	require.NoError(t, err)
	assert.True(t, lit)

	assert.True(t, c.Has("torch", "note"))
	assert.False(t, c.Has("torch", "nope"))
	assert.False(t, c.Has("nope", "kind"))

	assert.Equal(t, []string{"goblin", "torch"}, c.IDs())
	assert.Equal(t, []string{"goblin"}, c.ByKind("creature"))
}

func TestLookup_MissingKey(t *testing.T) {
	c, err := Parse("sample.yaml", []byte(sample))
	require.NoError(t, err)

	_, err = c.Int("dragon", "hp")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingKey))
	assert.Contains(t, err.Error(), "dragon")

	_, err = c.Int("goblin", "mana")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingKey))
	assert.Contains(t, err.Error(), "mana")
	assert.Contains(t, err.Error(), "sample.yaml")
}

func TestLookup_TypeMismatch(t *testing.T) {
	c, err := Parse("sample.yaml", []byte(sample))
	require.NoError(t, err)

	_, err = c.Int("torch", "light_color")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTypeMismatch))
	// строка 5, колонка 16 - значение "#ffaa00"
	assert.Contains(t, err.Error(), "sample.yaml:5:16")
	assert.Contains(t, err.Error(), "torch.light_color is string, want int")

	_, err = c.String("torch", "note")
	assert.True(t, errors.Is(err, ErrTypeMismatch))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"not a mapping", "- a\n- b\n", "bad.yaml:1:1"},
		{"entity not a mapping", "wall: 5\n", "bad.yaml:1:7"},
		{"nested mapping", "wall:\n  inner:\n    x: 1\n", "bad.yaml:3:5"},
		{"nested list", "wall:\n  l: [[1]]\n", "bad.yaml:2:7"},
		{"duplicate entity", "a: {x: 1}\na: {x: 2}\n", "bad.yaml"},
		{"syntax", "a: [\n", "bad.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.yaml", []byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrParse))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	c, err := Parse("empty.yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, c.IDs())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, c.File())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefault_IsConsistent(t *testing.T) {
	c := Default()

	// Всё, на что ссылается генерация, должно существовать.
	for _, attr := range []string{"wall", "torch"} {
		id, err := c.String("generation", attr)
		require.NoError(t, err)
		_, err = c.Lookup(id)
		require.NoError(t, err, attr)
	}
	creatures, err := c.Strings("generation", "creatures")
	require.NoError(t, err)
	for _, id := range creatures {
		hp, err := c.Int(id, "hp")
		require.NoError(t, err)
		assert.Positive(t, hp)
	}
	for _, palette := range []string{"surface", "underground"} {
		grounds, err := c.Strings(palette, "grounds")
		require.NoError(t, err)
		for _, g := range grounds {
			kind, err := c.String(g, "kind")
			require.NoError(t, err)
			assert.Equal(t, "ground", kind)
		}
	}
}

func TestValue_Format(t *testing.T) {
	v := Value{Kind: KindList, List: []Value{{Kind: KindInt, Int: 1}, {Kind: KindString, String: "a"}}}
	assert.Equal(t, `[1, "a"]`, v.Format())
}
