package models

import (
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
)

type CreateCampaignRequest struct {
	MessageText      string     `json:"messageText"`
	MessageType      string     `json:"messageType"`
	RecipientNumbers []string   `json:"recipientNumbers"`
	ImageURL         *string    `json:"imageUrl,omitempty"`
	ShortLink        *string    `json:"shortLink,omitempty"`
	ScheduledAt      *time.Time `json:"scheduledAt,omitempty"`
	Note             *string    `json:"note,omitempty"`
}

// UpdateCampaignRequest changes only the fields that are set
type UpdateCampaignRequest struct {
	MessageText      *string    `json:"messageText,omitempty"`
	MessageType      *string    `json:"messageType,omitempty"`
	RecipientNumbers *[]string  `json:"recipientNumbers,omitempty"`
	ImageURL         *string    `json:"imageUrl,omitempty"`
	ShortLink        *string    `json:"shortLink,omitempty"`
	ScheduledAt      *time.Time `json:"scheduledAt,omitempty"`
	ClearSchedule    bool       `json:"clearSchedule,omitempty"`
	Note             *string    `json:"note,omitempty"`
}

type ListCampaignsRequest struct {
	Status *string
	Limit  uint64
	Offset uint64
}

type CampaignResponse struct {
	ID               int64      `json:"id"`
	MessageText      string     `json:"messageText"`
	MessageType      string     `json:"messageType"`
	RecipientNumbers []string   `json:"recipientNumbers"`
	RecipientCount   int        `json:"recipientCount"`
	ImageURL         *string    `json:"imageUrl,omitempty"`
	ShortLink        *string    `json:"shortLink,omitempty"`
	GroupIDs         []string   `json:"groupIds"`
	Status           string     `json:"status"`
	SentCount        int        `json:"sentCount"`
	SuccessCount     int        `json:"successCount"`
	FailCount        int        `json:"failCount"`
	ScheduledAt      *time.Time `json:"scheduledAt,omitempty"`
	SentAt           *time.Time `json:"sentAt,omitempty"`
	Note             *string    `json:"note,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type CampaignListResponse struct {
	Campaigns []CampaignResponse `json:"campaigns"`
}

func FromDomainCampaign(m *domain.CampaignMessage) *CampaignResponse {
	if m == nil {
		return nil
	}
	groupIDs := m.GroupIDs
	if groupIDs == nil {
		groupIDs = []string{}
	}
	recipients := m.RecipientNumbers
	if recipients == nil {
		recipients = []string{}
	}
	return &CampaignResponse{
		ID:               m.ID,
		MessageText:      m.MessageText,
		MessageType:      string(m.MessageType),
		RecipientNumbers: recipients,
		RecipientCount:   len(recipients),
		ImageURL:         m.ImageURL,
		ShortLink:        m.ShortLink,
		GroupIDs:         groupIDs,
		Status:           string(m.Status),
		SentCount:        m.SentCount,
		SuccessCount:     m.SuccessCount,
		FailCount:        m.FailCount,
		ScheduledAt:      m.ScheduledAt,
		SentAt:           m.SentAt,
		Note:             m.Note,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func FromDomainCampaignList(list []*domain.CampaignMessage) *CampaignListResponse {
	resp := &CampaignListResponse{Campaigns: make([]CampaignResponse, 0, len(list))}
	for _, m := range list {
		resp.Campaigns = append(resp.Campaigns, *FromDomainCampaign(m))
	}
	return resp
}
