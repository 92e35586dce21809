package domain

// Coordinates are immutable geographic coordinates in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}
