package geospatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoint(t *testing.T) {
	// Nelson, New Zealand
	p, err := Point(-41.2706, 173.2840)
	require.NoError(t, err)
	assert.Equal(t, 173.2840, p.Lon())
	assert.Equal(t, -41.2706, p.Lat())

	_, err = Point(90.01, 0)
	assert.ErrorIs(t, err, ErrLatitudeOutOfRange)

	_, err = Point(0, -180.5)
	assert.ErrorIs(t, err, ErrLongitudeOutOfRange)
}

func TestValidateCoordinatesBounds(t *testing.T) {
	assert.NoError(t, ValidateCoordinates(90, 180))
	assert.NoError(t, ValidateCoordinates(-90, -180))
	assert.NoError(t, ValidateCoordinates(0, 0))

	assert.Error(t, ValidateCoordinates(-91, 0))
	assert.Error(t, ValidateCoordinates(0, 181))
}

func TestDistanceMeters(t *testing.T) {
	nelson, err := Point(-41.2706, 173.2840)
	require.NoError(t, err)
	richmond, err := Point(-41.3333, 173.1833)
	require.NoError(t, err)

	d := DistanceMeters(nelson, richmond)
	assert.Greater(t, d, 10000.0)
	assert.Less(t, d, 13000.0)

	assert.Zero(t, DistanceMeters(nelson, nelson))
}
