package dto

// Status is the agent state reported by /api/status.
type Status struct {
	Running             bool   `json:"running"`
	SessionID           string `json:"sessionId,omitempty"`
	Poster              string `json:"poster"`
	Count               int    `json:"count"`
	Date                string `json:"date"`
	Time                string `json:"time"`
	History             []int  `json:"history"`
	ConsecutiveFailures int    `json:"consecutiveStatsFailures"`
	Viewers             int    `json:"viewers"`
}
