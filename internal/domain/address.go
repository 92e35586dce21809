package domain

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Represents a single Dutch postal address extracted from a photographed table.
// Coordinates stay nil until the address has been geocoded. ToUpdate marks an
// address whose fields were edited by the user and must be geocoded again.
type Address struct {
	StreetName  string
	HouseNumber string
	PostalCode  string
	City        string
	Coordinates *Coordinates
	ToUpdate    bool
}

// Text renders the address as "street house_number postal_code city".
// The postal code is cut to its first six characters (e.g. "3812EA") so
// that trailing house numbers glued to it by the extractor are dropped.
func (a Address) Text() string {
	return joinNonEmpty(a.StreetName, a.HouseNumber, truncateRunes(a.PostalCode, 6), a.City)
}

// ShortText renders the address without postal code, used as a geocoding fallback.
func (a Address) ShortText() string {
	return joinNonEmpty(a.StreetName, a.HouseNumber, a.City)
}

// Validate checks the fields required to geocode the address.
func (a Address) Validate() error {
	if strings.TrimSpace(a.StreetName) == "" {
		return errors.New("address: street_name must be non-empty")
	}
	if strings.TrimSpace(a.City) == "" {
		return errors.New("address: city must be non-empty")
	}
	return nil
}

// NormalizeKey produces a stable cache key for free-form address text:
// NFC-normalized, lower-cased, with whitespace collapsed.
func NormalizeKey(s string) string {
	s = norm.NFC.String(s)
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func truncateRunes(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
