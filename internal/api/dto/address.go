package dto

import "pictoroute/internal/domain"

type CoordinatesDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type AddressDTO struct {
	StreetName  string          `json:"street_name"`
	HouseNumber string          `json:"house_number"`
	PostalCode  string          `json:"postal_code"`
	City        string          `json:"city"`
	Coordinates *CoordinatesDTO `json:"coordinates"`
	ToUpdate    bool            `json:"to_update"`
}

func AddressFromDomain(a domain.Address) AddressDTO {
	out := AddressDTO{
		StreetName:  a.StreetName,
		HouseNumber: a.HouseNumber,
		PostalCode:  a.PostalCode,
		City:        a.City,
		ToUpdate:    a.ToUpdate,
	}
	if a.Coordinates != nil {
		out.Coordinates = &CoordinatesDTO{Latitude: a.Coordinates.Lat, Longitude: a.Coordinates.Lon}
	}
	return out
}

func (a AddressDTO) ToDomain() domain.Address {
	out := domain.Address{
		StreetName:  a.StreetName,
		HouseNumber: a.HouseNumber,
		PostalCode:  a.PostalCode,
		City:        a.City,
		ToUpdate:    a.ToUpdate,
	}
	if a.Coordinates != nil {
		out.Coordinates = &domain.Coordinates{Lat: a.Coordinates.Latitude, Lon: a.Coordinates.Longitude}
	}
	return out
}

func AddressesFromDomain(in []domain.Address) []AddressDTO {
	out := make([]AddressDTO, 0, len(in))
	for _, a := range in {
		out = append(out, AddressFromDomain(a))
	}
	return out
}

func AddressesToDomain(in []AddressDTO) []domain.Address {
	out := make([]domain.Address, 0, len(in))
	for _, a := range in {
		out = append(out, a.ToDomain())
	}
	return out
}
