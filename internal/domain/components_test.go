package domain

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/emlai/zenith-sub000/pkg/binio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapAttrs - простая реализация Attributes для тестов.
type mapAttrs map[string]any

func (m mapAttrs) Has(attr string) bool {
	_, ok := m[attr]
	return ok
}

func (m mapAttrs) Int(attr string) (int, error) {
	v, ok := m[attr].(int)
	if !ok {
		return 0, fmt.Errorf("no int %q", attr)
	}
	return v, nil
}

func (m mapAttrs) Float(attr string) (float64, error) {
	v, ok := m[attr].(float64)
	if !ok {
		return 0, fmt.Errorf("no float %q", attr)
	}
	return v, nil
}

func (m mapAttrs) String(attr string) (string, error) {
	v, ok := m[attr].(string)
	if !ok {
		return "", fmt.Errorf("no string %q", attr)
	}
	return v, nil
}

func (m mapAttrs) Bool(attr string) (bool, error) {
	v, ok := m[attr].(bool)
	if !ok {
		return false, fmt.Errorf("no bool %q", attr)
	}
	return v, nil
}

func TestComponentRegistry_Build(t *testing.T) {
	reg := DefaultComponents()
	assert.Equal(t, []string{ComponentDoor, ComponentLight, ComponentWall}, reg.Names())

	c, ok, err := reg.Build(ComponentLight, mapAttrs{"light_radius": 6, "light_color": "#ff8000"})
	require.NoError(t, err)
	require.True(t, ok)
	light := c.(*LightComponent)
	assert.Equal(t, 6, light.Radius)
	assert.InDelta(t, 1.0, light.Color.R, 1e-9)
	assert.InDelta(t, 128.0/255.0, light.Color.G, 1e-9)
	assert.InDelta(t, 0.0, light.Color.B, 1e-9)
}

func TestComponentRegistry_UnknownIsNotFatal(t *testing.T) {
	reg := DefaultComponents()
	c, ok, err := reg.Build("teleporter", nil)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, c)
}

func TestComponentRegistry_ConfigureError(t *testing.T) {
	reg := DefaultComponents()
	_, ok, err := reg.Build(ComponentLight, mapAttrs{})
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestDoorComponent_UseToggles(t *testing.T) {
	door := &Object{Type: "door", Components: []Component{&DoorComponent{}}}
	assert.True(t, door.BlocksSight())
	assert.True(t, door.Use(&Creature{}))
	assert.False(t, door.BlocksSight())
	assert.False(t, door.BlocksMovement())

	wall := &Object{Type: "wall", Components: []Component{&WallComponent{}}}
	assert.False(t, wall.Use(&Creature{}))
}

func TestObject_Emitter(t *testing.T) {
	torch := &Object{Type: "torch", Components: []Component{&LightComponent{Radius: 4, Color: White}}}
	e, ok := torch.Emitter()
	require.True(t, ok)
	assert.Equal(t, 4, e.LightRadius())
	assert.Same(t, torch.Components[0], torch.Component(ComponentLight))
	assert.Nil(t, torch.Component(ComponentDoor))

	_, ok = (&Object{}).Emitter()
	assert.False(t, ok)
}

func TestComponents_SaveLoad(t *testing.T) {
	var buf bytes.Buffer
	w := binio.NewWriter(&buf)
	(&LightComponent{Radius: 7, Color: Color{R: 0.1, G: 0.2, B: 0.3}}).Save(w)
	(&DoorComponent{Open: true}).Save(w)
	require.NoError(t, w.Err())

	r := binio.NewReader(&buf)
	var light LightComponent
	light.Load(r)
	var door DoorComponent
	door.Load(r)
	require.NoError(t, r.Err())

	assert.Equal(t, LightComponent{Radius: 7, Color: Color{R: 0.1, G: 0.2, B: 0.3}}, light)
	assert.True(t, door.Open)
}

func TestColor_Max(t *testing.T) {
	a := Color{R: 0.5, G: 0.1, B: 0.9}
	b := Color{R: 0.2, G: 0.7, B: 0.3}
	assert.Equal(t, Color{R: 0.5, G: 0.7, B: 0.9}, a.Max(b))
	assert.Equal(t, 0.9, a.Intensity())
	assert.Equal(t, "#ffffff", White.Hex())
}
