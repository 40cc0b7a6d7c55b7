package model

// StatSample is one observation polled from the statistics endpoint.
type StatSample struct {
	NoHelmet int    `json:"no_helmet"`
	Date     string `json:"date"`
	Time     string `json:"time,omitempty"`
}
