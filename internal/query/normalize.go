package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/osu-parks/parks-api/internal/domain"
)

// Normalized filter keys recognized for parks.
const (
	KeyName          = "name"
	KeyCity          = "city"
	KeyState         = "state"
	KeyZip           = "zip"
	KeyAmenitiesSome = "amenitiessome"
	KeyAmenitiesAll  = "amenitiesall"
)

var keyRemover = strings.NewReplacer("filter", "", "[", "", "]", "")

// NormalizeKey strips the literal substrings "filter", "[" and "]" from a
// query parameter name: filter[amenities][all] becomes amenitiesall.
func NormalizeKey(key string) string {
	return keyRemover.Replace(key)
}

// ParkFilterParams lists the query parameters ParseParkFilters reads, in the
// order they are applied.
var ParkFilterParams = []string{
	"filter[name]",
	"filter[city]",
	"filter[state]",
	"filter[zip]",
	"filter[amenities][some]",
	"filter[amenities][all]",
}

// ParseParkFilters extracts the park filters named in ParkFilterParams from
// query parameters. Other keys are ignored, even when they normalize to a
// filter name. A filter with an empty value is a *domain.MalformedRequestError.
func ParseParkFilters(values url.Values) (domain.ParkFilter, error) {
	var f domain.ParkFilter

	for _, key := range ParkFilterParams {
		vals := values[key]
		if len(vals) == 0 {
			continue
		}
		raw := vals[0]

		var err error
		switch NormalizeKey(key) {
		case KeyName:
			f.Name, err = requireValue(key, raw)
		case KeyCity:
			f.City, err = requireValue(key, raw)
		case KeyState:
			f.State, err = requireValue(key, raw)
		case KeyZip:
			f.Zip, err = zipValue(key, raw)
		case KeyAmenitiesSome:
			f.AmenitiesSome, err = splitList(key, raw)
		case KeyAmenitiesAll:
			f.AmenitiesAll, err = splitList(key, raw)
		}
		if err != nil {
			return domain.ParkFilter{}, err
		}
	}

	return f, nil
}

// zipValue canonicalizes a zip filter to the decimal form zips are stored in,
// so 02134 matches a park created with zip 2134.
func zipValue(key, raw string) (string, error) {
	v, err := requireValue(key, raw)
	if err != nil {
		return "", err
	}
	zip, err := strconv.Atoi(v)
	if err != nil || zip < 0 || zip > 99999 {
		return "", domain.NewMalformedRequest("%s must be a 5-digit zip code", key)
	}
	return strconv.Itoa(zip), nil
}

func requireValue(key, raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", domain.NewMalformedRequest("%s must not be empty", key)
	}
	return v, nil
}

func splitList(key, raw string) ([]string, error) {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, domain.NewMalformedRequest("%s must list at least one amenity", key)
	}
	return out, nil
}
