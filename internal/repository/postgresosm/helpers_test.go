package postgresosm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ev-siting/internal/domain"
)

func TestNodeIDDeterministic(t *testing.T) {
	a := nodeID(52.5200066, 13.404954)
	b := nodeID(52.5200066, 13.404954)
	c := nodeID(52.5200067, 13.404954)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.GreaterOrEqual(t, a, int64(0))
}

func TestNormalizeHighwayTypes(t *testing.T) {
	got := normalizeHighwayTypes([]string{" Primary", "secondary", "", "primary", "residential"})
	assert.Equal(t, []string{"primary", "residential", "secondary"}, got)
	assert.Empty(t, normalizeHighwayTypes(nil))
}

func TestValidateBBox(t *testing.T) {
	assert.NoError(t, validateBBox(domain.BoundingBox{MinLat: 52.3, MinLon: 13.0, MaxLat: 52.7, MaxLon: 13.8}))
	assert.Error(t, validateBBox(domain.BoundingBox{MinLat: 52.7, MinLon: 13.0, MaxLat: 52.3, MaxLon: 13.8}))
	assert.Error(t, validateBBox(domain.BoundingBox{MinLat: -95, MinLon: 13.0, MaxLat: 52.3, MaxLon: 13.8}))
}
