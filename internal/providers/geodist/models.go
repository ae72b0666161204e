package geodist

// RandomPlaceEntry is one element of the weighted random place response.
// Fields are pointers so the discovery service can tell an absent field from
// a zero value when validating the response.
type RandomPlaceEntry struct {
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Country    *string  `json:"country"`
	Population *int64   `json:"population"`
}
