package compose

import (
	"net/url"

	"github.com/harperreed/mobiledir/models"
)

// Query encodes the non-empty trimmed fields of f as a URL query string.
// Keys are sorted, so the same filter always yields the same string.
func Query(f models.SearchFilter) string {
	f = f.Trimmed()

	v := url.Values{}
	if f.Place != "" {
		v.Set("place", f.Place)
	}
	if f.District != "" {
		v.Set("district", f.District)
	}
	if f.State != "" {
		v.Set("state", f.State)
	}
	return v.Encode()
}

// ShowAll is the query for an unfiltered listing. It is always empty.
func ShowAll() string {
	return Query(models.SearchFilter{})
}
