package registry

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/nearby/internal/geocoding"
)

// SourceType selects where the registry is loaded from.
type SourceType string

const (
	// SourceStatic serves the built-in campus list.
	SourceStatic SourceType = "static"
	// SourceFile reads a facility file.
	SourceFile SourceType = "file"
	// SourcePostgres reads the facilities table once.
	SourcePostgres SourceType = "postgres"
)

// ErrUnknownSource is returned for an unsupported SourceType.
var ErrUnknownSource = errors.New("unknown registry source")

// SourceConfig holds what each source type needs. Only the fields of the selected type are used.
type SourceConfig struct {
	Type     SourceType
	FilePath string             // SourceFile
	Geocoder geocoding.Provider // SourceFile, for address-only entries
	Database Database           // SourcePostgres
	Logger   *slog.Logger
}

// NewSource creates the facility source described by config. An empty type means SourceStatic.
func NewSource(config SourceConfig) (Source, error) {
	switch config.Type {
	case SourceStatic, "":
		return NewStaticSource(CampusFacilities), nil
	case SourceFile:
		if config.FilePath == "" {
			return nil, errors.New("file path is required for file registry source")
		}
		if config.Geocoder == nil {
			return nil, errors.New("geocoder is required for file registry source")
		}
		return NewFileSource(config.FilePath, config.Geocoder, config.Logger), nil
	case SourcePostgres:
		if config.Database == nil {
			return nil, errors.New("database is required for postgres registry source")
		}
		return NewPostgresSource(config.Database, config.Logger), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, config.Type)
	}
}
