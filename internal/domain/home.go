package domain

// DefaultHome is the home base pinned to both ends of every route unless
// configured otherwise.
var DefaultHome = Address{
	StreetName:  "Eemplein",
	HouseNumber: "65",
	PostalCode:  "3812EA",
	City:        "Amersfoort",
	Coordinates: &Coordinates{Lat: 52.1588444, Lon: 5.3820278},
}
