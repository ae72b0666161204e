package types

// Place is the single aggregate threaded through the pipeline. It starts
// empty, is populated by the discovery stage, and is then handed stage to
// stage with exclusive access: discovery writes identity and rating, the
// enricher writes the address and photos, the publisher writes media IDs.
type Place struct {
	Name     string
	Address  string
	Latitude float64
	// Longitude pairs with Latitude as the selected venue's own location,
	// which generally differs from the sampled Geopoint.
	Longitude float64
	PlaceID   string
	Rating    float64
	Photos    []Photo
}

// Photo is one entry of a Place's ordered photo set. The slice position ties
// a reference to its downloaded bytes, its caption, and its uploaded media ID
// through every stage.
type Photo struct {
	Reference          string
	ContentDisposition *string
	ContentType        *string
	ContentLength      *int
	Bytes              []byte
	Description        *string
	MediaID            *int64
}

// Materialized reports whether the photo's download completed: bytes present
// together with both headers the later stages depend on.
func (p *Photo) Materialized() bool {
	return len(p.Bytes) > 0 && p.ContentType != nil && p.ContentDisposition != nil
}
