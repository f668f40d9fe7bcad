package api

// progressUpdateRequest is the wire shape for a batch of completion-update
// events. Timestamps arrive RFC 3339 encoded; an unparseable or absent
// timestamp falls back to server time.
type progressUpdateRequest struct {
	PlanID  string                `json:"planId"`
	Updates []progressUpdateEntry `json:"updates"`
}

type progressUpdateEntry struct {
	Day       int    `json:"day"`
	Completed bool   `json:"completed"`
	Feedback  string `json:"feedback,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}
