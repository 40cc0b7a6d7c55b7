package dto

// Event types pushed to viewers over the websocket hub.
const (
	EventPoster = "poster"
	EventStats  = "stats"
	EventChart  = "chart"
	EventCamera = "camera"
)

// ViewEvent is a single update pushed to connected viewers.
type ViewEvent struct {
	Type    string `json:"type"`
	URL     string `json:"url,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Date    string `json:"date,omitempty"`
	Time    string `json:"time,omitempty"`
	Running *bool  `json:"running,omitempty"`
	Version uint64 `json:"version,omitempty"`
}
