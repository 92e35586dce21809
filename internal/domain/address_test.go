package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressText(t *testing.T) {
	tests := []struct {
		name  string
		addr  Address
		text  string
		short string
	}{
		{
			name:  "full address",
			addr:  Address{StreetName: "Eemplein", HouseNumber: "65", PostalCode: "3812EA", City: "Amersfoort"},
			text:  "Eemplein 65 3812EA Amersfoort",
			short: "Eemplein 65 Amersfoort",
		},
		{
			name:  "postal code with glued house number",
			addr:  Address{StreetName: "Langestraat", HouseNumber: "84", PostalCode: "3811AB84", City: "Amersfoort"},
			text:  "Langestraat 84 3811AB Amersfoort",
			short: "Langestraat 84 Amersfoort",
		},
		{
			name:  "missing postal code",
			addr:  Address{StreetName: "Kamp", HouseNumber: "1a", City: "Amersfoort"},
			text:  "Kamp 1a Amersfoort",
			short: "Kamp 1a Amersfoort",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.text, tt.addr.Text())
			assert.Equal(t, tt.short, tt.addr.ShortText())
		})
	}
}

func TestAddressValidate(t *testing.T) {
	assert.NoError(t, DefaultHome.Validate())
	assert.Error(t, Address{City: "Amersfoort"}.Validate())
	assert.Error(t, Address{StreetName: "Kamp"}.Validate())
}

func TestNormalizeKey(t *testing.T) {
	// "é" as a decomposed sequence must match its precomposed form.
	decomposed := "Cafe\u0301straat  1   Utrecht"
	precomposed := "caf\u00e9straat 1 utrecht"

	assert.Equal(t, precomposed, NormalizeKey(decomposed))
	assert.Equal(t, "eemplein 65 3812ea amersfoort", NormalizeKey("  Eemplein 65\t3812EA Amersfoort "))
}
