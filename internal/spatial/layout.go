package spatial

import (
	"errors"
	"fmt"

	"github.com/applico/orchard-advisor/internal/models"
	"github.com/golang/geo/s2"
)

// ErrInvalidLayout reports an anchor or spacing that cannot place trees
var ErrInvalidLayout = errors.New("invalid orchard layout")

// Layout places grid trees on the ground. The anchor is the north-west
// corner of the planting; rows run south and columns run east.
type Layout struct {
	anchor  s2.LatLng
	spacing float64 // meters between neighbouring trees
}

// NewLayout creates a layout anchored at lat/lon with the given tree spacing
func NewLayout(lat, lon, spacingMeters float64) (*Layout, error) {
	anchor := s2.LatLngFromDegrees(lat, lon)
	if !anchor.IsValid() {
		return nil, fmt.Errorf("%w: anchor %.6f,%.6f out of range", ErrInvalidLayout, lat, lon)
	}
	if spacingMeters <= 0 {
		return nil, fmt.Errorf("%w: spacing must be positive, got %v", ErrInvalidLayout, spacingMeters)
	}

	return &Layout{anchor: anchor, spacing: spacingMeters}, nil
}

// Spacing returns the distance between neighbouring trees in meters
func (l *Layout) Spacing() float64 {
	return l.spacing
}

// Locate returns the centre of the cell at row/col
func (l *Layout) Locate(row, col int) models.GeoLocation {
	return l.offset((float64(row)+0.5)*l.spacing, (float64(col)+0.5)*l.spacing)
}

// Footprint returns the extent, area and planting density of a rows x cols grid
func (l *Layout) Footprint(rows, cols int) models.GridFootprint {
	nw := models.GeoLocation{
		Latitude:  l.anchor.Lat.Degrees(),
		Longitude: l.anchor.Lng.Degrees(),
	}
	se := l.offset(float64(rows)*l.spacing, float64(cols)*l.spacing)

	rect := s2.RectFromLatLng(l.anchor).AddPoint(s2.LatLngFromDegrees(se.Latitude, se.Longitude))
	hectares := rect.Area() * EarthRadiusMeters * EarthRadiusMeters / SquareMetersPerHa

	density := 0.0
	if hectares > 0 {
		density = float64(rows*cols) / hectares
	}

	return models.GridFootprint{
		AreaHectares:    hectares,
		TreesPerHectare: density,
		NorthWest:       nw,
		SouthEast:       se,
	}
}

// offset walks south then east from the anchor
func (l *Layout) offset(south, east float64) models.GeoLocation {
	lat, lon := DestinationPoint(l.anchor.Lat.Degrees(), l.anchor.Lng.Degrees(), BearingSouth, south)
	lat, lon = DestinationPoint(lat, lon, BearingEast, east)
	return models.GeoLocation{Latitude: lat, Longitude: lon}
}
