package domain

import "strings"

// Location is a visit address with optional geocoded coordinates
type Location struct {
	Address string
	Lat     *float64
	Lng     *float64
}

// HasCoordinates returns true if the location was geocoded
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lng != nil
}

// SameAddress compares addresses ignoring surrounding whitespace
func (l Location) SameAddress(other Location) bool {
	return strings.TrimSpace(l.Address) == strings.TrimSpace(other.Address)
}
