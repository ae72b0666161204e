package types

// Geopoint is a sampled geographic coordinate used to seed a nearby search.
// It is produced by the geo-distribution service, consumed once, and discarded.
type Geopoint struct {
	Latitude   float64
	Longitude  float64
	Country    string
	Population *int64
}

func NewGeopoint(latitude, longitude float64, country string) Geopoint {
	return Geopoint{
		Latitude:  latitude,
		Longitude: longitude,
		Country:   country,
	}
}
