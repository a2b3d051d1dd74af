package models

import "time"

// Channels a parse attempt can come from.
const (
	ChannelAPI      = "api"
	ChannelTelegram = "telegram"
	ChannelCLI      = "cli"
)

// ParseAttempt is one logged call to the date resolver. Day, Month and Year
// are nil when the input was not recognized.
type ParseAttempt struct {
	ID         int64     `json:"id"`
	Channel    string    `json:"channel"`
	Input      string    `json:"input"`
	Recognized bool      `json:"recognized"`
	Source     string    `json:"source,omitempty"`
	Rule       string    `json:"rule,omitempty"`
	Day        *int      `json:"day,omitempty"`
	Month      *int      `json:"month,omitempty"`
	Year       *int      `json:"year,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ParseStats struct {
	Since      time.Time        `json:"since"`
	Total      int64            `json:"total"`
	Recognized int64            `json:"recognized"`
	ByChannel  map[string]int64 `json:"byChannel"`
	ByRule     map[string]int64 `json:"byRule"`
}
