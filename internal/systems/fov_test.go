package systems

import (
	"testing"

	"github.com/emlai/zenith-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestComputeVisibleTiles(t *testing.T) {
	// Стена к востоку от наблюдателя.
	w := newTestWorld(pts(2, 0)...)
	origin := domain.Position{}

	visible := ComputeVisibleTiles(w, 0, origin, 5)

	assert.True(t, visible[origin])
	assert.True(t, visible[domain.Position{X: 1}])
	assert.True(t, visible[domain.Position{X: 2}], "wall itself is visible")
	assert.False(t, visible[domain.Position{X: 3}], "tile behind wall")
	assert.True(t, visible[domain.Position{X: -5}])
	assert.False(t, visible[domain.Position{X: 4, Y: 4}], "outside radius")
}

func TestComputeVisibleTiles_Blind(t *testing.T) {
	w := newTestWorld()
	origin := domain.Position{X: 3, Y: -3}

	visible := ComputeVisibleTiles(w, 0, origin, 0)

	assert.Equal(t, map[domain.Position]bool{origin: true}, visible)
}
