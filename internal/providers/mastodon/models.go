package mastodon

// MediaResponse is the media endpoint's answer to an upload. The ID is a
// string-encoded integer on the wire.
type MediaResponse struct {
	ID *string `json:"id"`
}

// StatusRequest is the JSON body submitted to the statuses endpoint.
type StatusRequest struct {
	Status     string  `json:"status"`
	Visibility string  `json:"visibility"`
	Language   string  `json:"language"`
	MediaIDs   []int64 `json:"media_ids"`
}
