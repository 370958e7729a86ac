package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Anchor in an apple-growing valley
const (
	testLat = 47.4235
	testLon = -120.3103
)

func TestNewLayoutValidation(t *testing.T) {
	_, err := NewLayout(testLat, testLon, 0)
	assert.ErrorIs(t, err, ErrInvalidLayout)

	_, err = NewLayout(95, testLon, 4)
	assert.ErrorIs(t, err, ErrInvalidLayout)

	l, err := NewLayout(testLat, testLon, 4)
	require.NoError(t, err)
	assert.Equal(t, 4.0, l.Spacing())
}

func TestLocateSpacing(t *testing.T) {
	l, err := NewLayout(testLat, testLon, 4)
	require.NoError(t, err)

	a := l.Locate(0, 0)
	east := l.Locate(0, 1)
	south := l.Locate(1, 0)

	assert.InDelta(t, 4.0, HaversineDistance(a.Latitude, a.Longitude, east.Latitude, east.Longitude), 0.01)
	assert.InDelta(t, 4.0, HaversineDistance(a.Latitude, a.Longitude, south.Latitude, south.Longitude), 0.01)

	assert.Less(t, south.Latitude, a.Latitude)
	assert.Greater(t, east.Longitude, a.Longitude)

	// First tree sits half a cell in from the corner
	diag := HaversineDistance(testLat, testLon, a.Latitude, a.Longitude)
	assert.InDelta(t, 2.8284, diag, 0.01)
}

func TestFootprint(t *testing.T) {
	l, err := NewLayout(testLat, testLon, 4)
	require.NoError(t, err)

	fp := l.Footprint(12, 15)

	// 48m x 60m
	assert.InDelta(t, 0.288, fp.AreaHectares, 0.001)
	assert.InDelta(t, 625, fp.TreesPerHectare, 2)
	assert.InDelta(t, testLat, fp.NorthWest.Latitude, 1e-9)
	assert.Less(t, fp.SouthEast.Latitude, fp.NorthWest.Latitude)
	assert.Greater(t, fp.SouthEast.Longitude, fp.NorthWest.Longitude)
}

func TestDestinationPointRoundTrip(t *testing.T) {
	lat, lon := DestinationPoint(testLat, testLon, BearingEast, 1000)
	assert.InDelta(t, 1000, HaversineDistance(testLat, testLon, lat, lon), 0.5)
}
