package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	"github.com/UnknownOlympus/nearby/internal/geocoding"
	"github.com/UnknownOlympus/nearby/internal/models"
	"github.com/spf13/viper"
)

// Errors reported while reading facilities from a file or database.
var (
	ErrNoFacilities            = errors.New("source contains no facilities")
	ErrInvalidFacility         = errors.New("invalid facility")
	ErrFacilityWithoutLocation = errors.New("facility has neither coordinates nor address")
)

// fileEntry is one element of the `facilities` list in a registry file.
// Either both coordinates or an address must be present.
type fileEntry struct {
	Name    string   `mapstructure:"name"`
	Lat     *float64 `mapstructure:"lat"`
	Lon     *float64 `mapstructure:"lon"`
	Address string   `mapstructure:"address"`
}

// FileSource reads facilities from a YAML, JSON or TOML file:
//
//	facilities:
//	  - name: Main Gate
//	    lat: 13.3538
//	    lon: 74.7921
//	  - name: Library
//	    address: Central Library, MIT Manipal
type FileSource struct {
	path     string
	geocoder geocoding.Provider
	log      *slog.Logger
}

// NewFileSource creates a file source. Entries given only by address are resolved with geocoder.
func NewFileSource(path string, geocoder geocoding.Provider, log *slog.Logger) *FileSource {
	return &FileSource{path: path, geocoder: geocoder, log: log}
}

func (fs *FileSource) Facilities(ctx context.Context) ([]models.Facility, error) {
	v := viper.New()
	v.SetConfigFile(fs.path)
	if filepath.Ext(fs.path) == "" {
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read facility file %q: %w", fs.path, err)
	}

	var entries []fileEntry
	if err := v.UnmarshalKey("facilities", &entries); err != nil {
		return nil, fmt.Errorf("failed to decode facilities in %q: %w", fs.path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFacilities, fs.path)
	}

	facilities := make([]models.Facility, 0, len(entries))
	for idx, entry := range entries {
		facility, err := fs.resolve(ctx, entry)
		if err != nil {
			return nil, fmt.Errorf("facility #%d in %q: %w", idx+1, fs.path, err)
		}
		facilities = append(facilities, facility)
	}

	fs.log.InfoContext(ctx, "Facilities read from file", "path", fs.path, "count", len(facilities))

	return facilities, nil
}

func (fs *FileSource) resolve(ctx context.Context, entry fileEntry) (models.Facility, error) {
	name := strings.TrimSpace(entry.Name)
	if name == "" {
		return models.Facility{}, fmt.Errorf("%w: name is required", ErrInvalidFacility)
	}

	switch {
	case entry.Lat != nil && entry.Lon != nil:
		if !finite(*entry.Lat) || !finite(*entry.Lon) {
			return models.Facility{}, fmt.Errorf("%w: %q has non-finite coordinates", ErrInvalidFacility, name)
		}
		return models.Facility{Name: name, Latitude: *entry.Lat, Longitude: *entry.Lon}, nil
	case entry.Lat != nil || entry.Lon != nil:
		return models.Facility{}, fmt.Errorf("%w: %q needs both lat and lon", ErrInvalidFacility, name)
	case strings.TrimSpace(entry.Address) != "":
		coords, err := fs.geocoder.Geocode(ctx, strings.TrimSpace(entry.Address))
		if err != nil {
			return models.Facility{}, fmt.Errorf("failed to geocode %q: %w", name, err)
		}
		fs.log.DebugContext(ctx, "Facility geocoded", "name", name, "address", entry.Address,
			"lat", coords.Latitude, "lon", coords.Longitude)
		return models.Facility{Name: name, Latitude: coords.Latitude, Longitude: coords.Longitude}, nil
	default:
		return models.Facility{}, fmt.Errorf("%w: %q", ErrFacilityWithoutLocation, name)
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
