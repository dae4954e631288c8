package domain

import (
	"fmt"
	"math"
)

// Bounds is a rectangular lat/lon region used to filter map-visible items
type Bounds struct {
	North float64
	South float64
	East  float64
	West  float64
}

// ValidateCoordinates checks latitude is in [-90,90] and longitude in [-180,180]
func ValidateCoordinates(latitude, longitude float64) error {
	if math.IsNaN(latitude) || latitude < -90 || latitude > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrInvalidCoordinates)
	}
	if math.IsNaN(longitude) || longitude < -180 || longitude > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrInvalidCoordinates)
	}
	return nil
}

// Validate rejects inverted boxes and out of range corners
func (b Bounds) Validate() error {
	if b.North < b.South {
		return fmt.Errorf("%w: north must be greater than south", ErrInvalidBounds)
	}
	if b.East < b.West {
		return fmt.Errorf("%w: east must be greater than west", ErrInvalidBounds)
	}
	if err := ValidateCoordinates(b.North, b.East); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBounds, err)
	}
	if err := ValidateCoordinates(b.South, b.West); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBounds, err)
	}
	return nil
}
