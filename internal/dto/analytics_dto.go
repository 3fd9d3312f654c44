package dto

// ActivityStatsResponse summarizes platform activity over the last 24 hours.
type ActivityStatsResponse struct {
	Signups       int64 `json:"signups"`
	Logins        int64 `json:"logins"`
	Chats         int64 `json:"chats"`
	ActiveStreams int   `json:"active_streams"`
}
