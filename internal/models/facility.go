package models

// Facility is a named point known to the registry. Name identifies the facility by convention.
type Facility struct {
	Name      string  // Name is the human-readable facility name.
	Latitude  float64 // Latitude in decimal degrees.
	Longitude float64 // Longitude in decimal degrees.
}

// Coordinates returns the location of the facility.
func (f Facility) Coordinates() Coordinates {
	return Coordinates{Latitude: f.Latitude, Longitude: f.Longitude}
}
