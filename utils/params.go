package utils

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	geo "github.com/nci/geometry"

	"github.com/geoglyph/spectra/index"
)

// SpectraParams contains the serialised version of the parameters
// contained in a spectra request.
type SpectraParams struct {
	Request  *string               `json:"request,omitempty"`
	Product  *string               `json:"product,omitempty"`
	Index    *string               `json:"index,omitempty"`
	Time     *time.Time            `json:"time,omitempty"`
	Until    *time.Time            `json:"until,omitempty"`
	MaxCloud *float64              `json:"maxcloud,omitempty"`
	Width    *int                  `json:"width,omitempty"`
	Height   *int                  `json:"height,omitempty"`
	Min      *float64              `json:"min,omitempty"`
	Max      *float64              `json:"max,omitempty"`
	X        *int                  `json:"x,omitempty"`
	Y        *int                  `json:"y,omitempty"`
	Palette  *string               `json:"palette,omitempty"`
	FeatCol  geo.FeatureCollection `json:"feature_collection"`
	BandExpr *index.BandExpressions
}

// SpectraRegexpMap maps request parameters to regular expressions for
// doing validation when parsing.
// --- These regexp do not avoid every case of
// --- invalid code but filter most of the malformed
// --- cases. Error free JSON deserialisation into types
// --- also validates correct values.
var SpectraRegexpMap = map[string]string{
	"request": `^GetCapabilities$|^GetMap$|^GetLegend$|^GetData$`,
	"product": `^[A-Za-z0-9_\-\/]+$`,
	"index":   `^[A-Za-z0-9_]+$`,
	"time":    `^\d{4}-(?:1[0-2]|0[1-9])-(?:3[01]|0[1-9]|[12][0-9])(T[0-2]\d:[0-5]\d:[0-5]\d(\.\d+)?Z?)?$`,
	"float":   `^-?\d+(\.?\d+)?$`,
	"int":     `^\d+$`,
	"palette": `^[a-z]+$`,
}

func CompileSpectraRegexMap() map[string]*regexp.Regexp {
	REMap := make(map[string]*regexp.Regexp)
	for key, re := range SpectraRegexpMap {
		REMap[key] = regexp.MustCompile(re)
	}

	return REMap
}

// normaliseTime expands a date or timestamp string into the ISO format
// used across the service.
func normaliseTime(value string) (string, error) {
	for _, format := range []string{ISOFormat, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(format, value); err == nil {
			return t.UTC().Format(ISOFormat), nil
		}
	}
	return "", fmt.Errorf("invalid time format: %s", value)
}

// ParseSpectraParams checks and marshals the content of the query
// parameters of a request into a SpectraParams struct.
func ParseSpectraParams(params url.Values, compREMap map[string]*regexp.Regexp) (SpectraParams, error) {
	jsonFields := []string{}

	if request, requestOK := params["request"]; requestOK {
		if !compREMap["request"].MatchString(request[0]) {
			return SpectraParams{}, fmt.Errorf("%s is not a valid request", request[0])
		}
		jsonFields = append(jsonFields, fmt.Sprintf(`"request":"%s"`, request[0]))
	} else {
		return SpectraParams{}, fmt.Errorf("'request' parameter not found")
	}

	if product, productOK := params["product"]; productOK {
		if compREMap["product"].MatchString(product[0]) {
			jsonFields = append(jsonFields, fmt.Sprintf(`"product":"%s"`, product[0]))
		}
	}

	if indexName, indexOK := params["index"]; indexOK {
		if compREMap["index"].MatchString(indexName[0]) {
			jsonFields = append(jsonFields, fmt.Sprintf(`"index":"%s"`, strings.ToLower(indexName[0])))
		}
	}

	for _, key := range []string{"time", "until"} {
		if values, ok := params[key]; ok {
			if !compREMap["time"].MatchString(values[0]) {
				return SpectraParams{}, fmt.Errorf("invalid %s parameter: %s", key, values[0])
			}
			timeStr, err := normaliseTime(values[0])
			if err != nil {
				return SpectraParams{}, err
			}
			jsonFields = append(jsonFields, fmt.Sprintf(`"%s":"%s"`, key, timeStr))
		}
	}

	for _, key := range []string{"maxcloud", "min", "max"} {
		if values, ok := params[key]; ok {
			if !compREMap["float"].MatchString(values[0]) {
				return SpectraParams{}, fmt.Errorf("invalid %s parameter: %s", key, values[0])
			}
			jsonFields = append(jsonFields, fmt.Sprintf(`"%s":%s`, key, values[0]))
		}
	}

	for _, key := range []string{"width", "height", "x", "y"} {
		if values, ok := params[key]; ok {
			if !compREMap["int"].MatchString(values[0]) {
				return SpectraParams{}, fmt.Errorf("invalid %s parameter: %s", key, values[0])
			}
			jsonFields = append(jsonFields, fmt.Sprintf(`"%s":%s`, key, values[0]))
		}
	}

	if palette, paletteOK := params["palette"]; paletteOK {
		if compREMap["palette"].MatchString(palette[0]) {
			jsonFields = append(jsonFields, fmt.Sprintf(`"palette":"%s"`, palette[0]))
		}
	}

	jsonParams := fmt.Sprintf("{%s}", strings.Join(jsonFields, ","))

	var spectraParams SpectraParams
	err := json.Unmarshal([]byte(jsonParams), &spectraParams)
	if err != nil {
		return SpectraParams{}, fmt.Errorf("error parsing request parameters: %v", err)
	}

	if geojsonStr, geojsonOK := params["geojson"]; geojsonOK {
		err := json.Unmarshal([]byte(geojsonStr[0]), &spectraParams.FeatCol)
		if err != nil {
			return SpectraParams{}, fmt.Errorf("error parsing geojson parameter: %v", err)
		}
	}

	if rangeSubsets, rangeSubsetsOK := params["rangesubset"]; rangeSubsetsOK {
		sub := strings.Join(rangeSubsets, ";")
		parts := strings.Split(sub, ";")

		var rangeSubs []string
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if len(p) < 1 {
				continue
			}

			rangeSubs = append(rangeSubs, p)
		}

		bandExpr, err := index.ParseBandExpressions(rangeSubs)
		if err != nil {
			return SpectraParams{}, fmt.Errorf("parsing error in band expressions: %v", err)
		}

		spectraParams.BandExpr = bandExpr
	}

	return spectraParams, nil
}
