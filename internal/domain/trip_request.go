package domain

import "time"

// TripRequest is the input to a single planning operation.
type TripRequest struct {
	CurrentLocation     string
	PickupLocation      string
	DropoffLocation     string
	CurrentCycleUsedHrs float64
	StartTime           time.Time

	// Optional pre-resolved coordinates, bypassing geocoding.
	CurrentLocationCoords *Point
	PickupLocationCoords  *Point
	DropoffLocationCoords *Point
}
