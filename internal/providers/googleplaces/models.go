package googleplaces

// NearbySearchResponse is the subset of the Places nearby search response the
// pipeline consumes. Rating fields decode to zero when absent, which is
// exactly how the candidate filter treats missing values.
type NearbySearchResponse struct {
	Results []Candidate `json:"results"`
}

// Candidate is one raw nearby-search result prior to filtering.
type Candidate struct {
	Name     string `json:"name"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	PlaceID          string   `json:"place_id"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal float64  `json:"user_ratings_total"`
	Types            []string `json:"types"`
}

// DetailsResponse carries the formatted address and photo references for a
// selected place.
type DetailsResponse struct {
	Result struct {
		FormattedAddress *string `json:"formatted_address"`
		Photos           []struct {
			PhotoReference *string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"result"`
}
