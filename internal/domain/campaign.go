package domain

import (
	"strings"
	"time"
)

// MessageType is the gateway message kind
type MessageType string

const (
	MessageSMS        MessageType = "SMS"
	MessageLMS        MessageType = "LMS"
	MessageMMS        MessageType = "MMS"
	MessageAlimtalk   MessageType = "ALIMTALK"
	MessageFriendtalk MessageType = "FRIENDTALK"

	// legacy admin value for long SMS, sent as LMS
	messageSMS300 MessageType = "SMS300"
)

// NormalizeMessageType maps legacy aliases and validates the type
func NormalizeMessageType(s string) (MessageType, bool) {
	t := MessageType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case messageSMS300:
		return MessageLMS, true
	case MessageSMS, MessageLMS, MessageMMS, MessageAlimtalk, MessageFriendtalk:
		return t, true
	default:
		return "", false
	}
}

// CampaignStatus is the lifecycle state of a campaign message
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignPartial   CampaignStatus = "partial"
	CampaignSent      CampaignStatus = "sent"
	CampaignFailed    CampaignStatus = "failed"
)

// ParseCampaignStatus validates a raw status value
func ParseCampaignStatus(s string) (CampaignStatus, bool) {
	switch CampaignStatus(s) {
	case CampaignDraft, CampaignScheduled, CampaignPartial, CampaignSent, CampaignFailed:
		return CampaignStatus(s), true
	default:
		return "", false
	}
}

// CampaignMessage is one SMS/Kakao campaign (channel_sms row)
type CampaignMessage struct {
	ID               int64
	MessageText      string
	MessageType      MessageType
	RecipientNumbers []string
	ImageURL         *string // gateway image id or http(s) URL
	ShortLink        *string
	GroupIDs         []string
	Status           CampaignStatus
	SuccessCount     int
	FailCount        int
	SentCount        int
	ScheduledAt      *time.Time
	SentAt           *time.Time
	Note             *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsEditable returns true while nothing has been handed to the gateway
func (m *CampaignMessage) IsEditable() bool {
	return len(m.GroupIDs) == 0 && (m.Status == CampaignDraft || m.Status == CampaignScheduled)
}

// IsDue reports whether a scheduled send time has passed
func (m *CampaignMessage) IsDue(now time.Time) bool {
	return m.ScheduledAt != nil && !m.ScheduledAt.After(now) &&
		(m.Status == CampaignDraft || m.Status == CampaignScheduled)
}

// HasGroup reports whether groupID is already linked
func (m *CampaignMessage) HasGroup(groupID string) bool {
	for _, g := range m.GroupIDs {
		if g == groupID {
			return true
		}
	}
	return false
}

// ComposedText returns the text actually sent: body plus short link
func (m *CampaignMessage) ComposedText() string {
	if m.ShortLink == nil || strings.TrimSpace(*m.ShortLink) == "" {
		return m.MessageText
	}
	link := strings.TrimSpace(*m.ShortLink)
	if strings.Contains(m.MessageText, link) {
		return m.MessageText
	}
	return strings.TrimRight(m.MessageText, "\n") + "\n" + link
}

// ParseGroupIDs splits the stored comma-joined value, dropping blanks and duplicates
func ParseGroupIDs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// JoinGroupIDs is the inverse of ParseGroupIDs
func JoinGroupIDs(ids []string) string {
	return strings.Join(ParseGroupIDs(strings.Join(ids, ",")), ",")
}

// AppendGroupID adds id keeping order and uniqueness
func AppendGroupID(ids []string, id string) []string {
	return ParseGroupIDs(strings.Join(append(append([]string{}, ids...), id), ","))
}

// DeliveryCounts is the gateway aggregate for one or more groups
type DeliveryCounts struct {
	Total   int
	Success int
	Fail    int
	Sending int
}

// Add sums two aggregates
func (c DeliveryCounts) Add(other DeliveryCounts) DeliveryCounts {
	return DeliveryCounts{
		Total:   c.Total + other.Total,
		Success: c.Success + other.Success,
		Fail:    c.Fail + other.Fail,
		Sending: c.Sending + other.Sending,
	}
}

// DeriveStatus maps delivery counts to a campaign status. Rules are checked in order.
func DeriveStatus(c DeliveryCounts) CampaignStatus {
	switch {
	case c.Sending > 0:
		return CampaignPartial
	case c.Total > 0 && c.Fail == c.Total:
		return CampaignFailed
	case c.Success > 0 && c.Fail == 0:
		return CampaignSent
	case c.Success > 0 && c.Fail > 0:
		return CampaignPartial
	case c.Total > 0:
		return CampaignSent
	default:
		return CampaignDraft
	}
}

// StoredCounts are the persisted count columns of a campaign
type StoredCounts struct {
	Sent    int
	Success int
	Fail    int
}

// ClampCounts projects a gateway aggregate onto stored counts so that
// success + fail <= sent <= recipients always holds.
func ClampCounts(c DeliveryCounts, recipients int) StoredCounts {
	sent := max(c.Total, 0)
	if recipients > 0 && sent > recipients {
		sent = recipients
	}
	success := min(max(c.Success, 0), sent)
	fail := min(max(c.Fail, 0), sent-success)
	return StoredCounts{Sent: sent, Success: success, Fail: fail}
}

// MessageLog records a phone number handed to the gateway for a campaign
type MessageLog struct {
	ContentID int64
	Phone     string
	GroupID   string
	SentAt    time.Time
}

// CampaignFilter filter for listing campaigns
type CampaignFilter struct {
	Statuses     []CampaignStatus
	WithGroupIDs bool
	DueBefore    *time.Time
	SentFrom     *time.Time
	SentTo       *time.Time
	Limit        uint64
	Offset       uint64
}

// SMSMaxBytes is the gateway limit for a single SMS
const SMSMaxBytes = 90

// MessageBytes counts text the way Korean gateways do: ASCII is one byte,
// every other character two (EUC-KR width).
func MessageBytes(text string) int {
	n := 0
	for _, r := range text {
		if r < 0x80 {
			n++
		} else {
			n += 2
		}
	}
	return n
}

// TruncateBytes cuts text so MessageBytes(result) <= limit, on a character boundary
func TruncateBytes(text string, limit int) string {
	n := 0
	for i, r := range text {
		w := 1
		if r >= 0x80 {
			w = 2
		}
		if n+w > limit {
			return text[:i]
		}
		n += w
	}
	return text
}
