package domain

import "time"

// EmailStatus is the delivery outcome recorded for a sent email.
type EmailStatus string

const (
	EmailSuccess EmailStatus = "success"
	EmailFailed  EmailStatus = "failed"
)

// EmailLog records one email sent from a campaign.
type EmailLog struct {
	ID             string      `json:"id"`
	RecipientEmail string      `json:"recipient_email"`
	Subject        string      `json:"subject"`
	Body           string      `json:"body,omitempty"`
	Status         EmailStatus `json:"status"`
	CampaignID     string      `json:"campaign_id,omitempty"`
	SentBy         string      `json:"sent_by,omitempty"`
	ErrorMessage   string      `json:"error_message,omitempty"`
	SentAt         time.Time   `json:"sent_at"`
}
