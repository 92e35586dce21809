package vision

import (
	"encoding/json"
	"fmt"
	"pictoroute/internal/domain"
	"strings"
)

type extractedAddress struct {
	StreetName  string `json:"street_name"`
	HouseNumber string `json:"house_number"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`
}

type extractionResult struct {
	Addresses []extractedAddress `json:"addresses"`
}

// parseAddresses decodes the model continuation of the prefilled "{".
// Anything after the last closing brace (trailing prose) is discarded.
func parseAddresses(completion string) ([]domain.Address, error) {
	text := "{" + completion
	end := strings.LastIndex(text, "}")
	if end < 0 {
		return nil, ErrNoAddresses
	}

	var res extractionResult
	if err := json.Unmarshal([]byte(text[:end+1]), &res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoAddresses, err)
	}

	out := make([]domain.Address, 0, len(res.Addresses))
	for _, a := range res.Addresses {
		addr := domain.Address{
			StreetName:  strings.TrimSpace(a.StreetName),
			HouseNumber: strings.TrimSpace(a.HouseNumber),
			PostalCode:  strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(a.PostalCode), " ", "")),
			City:        strings.TrimSpace(a.City),
		}
		if addr.StreetName == "" && addr.HouseNumber == "" && addr.PostalCode == "" && addr.City == "" {
			continue
		}
		out = append(out, addr)
	}

	return out, nil
}
