package events

import "time"

// BookingEvent is published on booking lifecycle changes
type BookingEvent struct {
	BookingID       int64     `json:"booking_id"`
	Status          string    `json:"status"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// CampaignEvent is published after dispatch and reconciliation
type CampaignEvent struct {
	CampaignID int64     `json:"campaign_id"`
	Status     string    `json:"status"`
	GroupIDs   []string  `json:"group_ids"`
	Sent       int       `json:"sent"`
	Success    int       `json:"success"`
	Fail       int       `json:"fail"`
	OccurredAt time.Time `json:"occurred_at"`
}
