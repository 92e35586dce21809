package dto

import "pictoroute/internal/domain"

type ShortestPathResponse struct {
	Length     float64      `json:"length"`
	GmapsLinks []string     `json:"gmaps_links"`
	Addresses  []AddressDTO `json:"addresses"`
}

func ShortestPathFromDomain(p *domain.ShortestPath) ShortestPathResponse {
	links := p.Links
	if links == nil {
		links = []string{}
	}
	return ShortestPathResponse{
		Length:     p.Length,
		GmapsLinks: links,
		Addresses:  AddressesFromDomain(p.Addresses),
	}
}
