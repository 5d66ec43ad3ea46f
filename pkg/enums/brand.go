package enums

import (
	"fmt"
	"strings"
)

// Brand identifies a vehicle brand by its URL slug.
type Brand string

const (
	BrandPeugeot Brand = "peugeot"
	BrandCitroen Brand = "citroen"
)

var brandIDs = map[Brand]int64{
	BrandPeugeot: 1,
	BrandCitroen: 2,
}

// String implements fmt.Stringer.
func (b Brand) String() string {
	return string(b)
}

// IsValid reports whether the slug maps to a known brand.
func (b Brand) IsValid() bool {
	_, ok := brandIDs[b]
	return ok
}

// ID returns the catalog backend's numeric brand id.
func (b Brand) ID() int64 {
	return brandIDs[b]
}

// Code returns the uppercase brand code used by the stock endpoint.
func (b Brand) Code() string {
	return strings.ToUpper(string(b))
}

// ParseBrand converts a raw slug into a Brand.
func ParseBrand(value string) (Brand, error) {
	brand := Brand(strings.ToLower(strings.TrimSpace(value)))
	if !brand.IsValid() {
		return "", fmt.Errorf("invalid brand slug %q", value)
	}
	return brand, nil
}
