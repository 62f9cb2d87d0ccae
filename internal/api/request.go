package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/nearby/internal/models"
)

// number accepts a JSON number or a string holding one, e.g. 13.35 or "13.35".
type number float64

func (n *number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))

	if strings.HasPrefix(raw, `"`) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		raw = strings.TrimSpace(text)
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%q is not a number", raw)
	}
	*n = number(value)

	return nil
}

// nearestRequest is the body of POST /nearest.
type nearestRequest struct {
	Lat     *number `json:"lat"      binding:"required"`
	Lon     *number `json:"lon"      binding:"required"`
	RadiusM *number `json:"radius_m" binding:"required"`
}

func (r nearestRequest) toQuery() (models.ProximityQuery, error) {
	return models.NewProximityQuery(float64(*r.Lat), float64(*r.Lon), float64(*r.RadiusM))
}

// indexContext is what the index view is rendered with.
type indexContext struct {
	CampusLat float64 `json:"campus_lat"`
	CampusLon float64 `json:"campus_lon"`
}
