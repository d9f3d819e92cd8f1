package amqp

import (
	"encoding/json"
	"time"

	"clubdir/internal/core"
)

// ClubScrapedMessage carries one scraped club record from the scraper to the
// ingest worker. Amounts are integer cents so values survive the queue
// round-trip exactly.
type ClubScrapedMessage struct {
	Name               string    `json:"name"`
	State              string    `json:"state"`
	City               string    `json:"city"`
	MonthlyDuesCents   int64     `json:"monthly_dues_cents"`
	ContactPhone       string    `json:"contact_phone,omitempty"`
	Website            string    `json:"website,omitempty"`
	Address            string    `json:"address,omitempty"`
	PrestigeLevel      string    `json:"prestige_level,omitempty"`
	MembershipType     string    `json:"membership_type,omitempty"`
	InitiationFeeCents int64     `json:"initiation_fee_cents,omitempty"`
	OtherCosts         string    `json:"other_costs,omitempty"`
	Source             string    `json:"source,omitempty"`
	ScrapedAt          time.Time `json:"scraped_at"`
}

// NewClubScrapedMessage stamps a scraped record with the current time.
func NewClubScrapedMessage(name, state, city string, monthlyDues core.Money) *ClubScrapedMessage {
	return &ClubScrapedMessage{
		Name:             name,
		State:            state,
		City:             city,
		MonthlyDuesCents: monthlyDues.Cents,
		ScrapedAt:        time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ClubScrapedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ClubScrapedMessageFromJSON creates a message from JSON bytes
func ClubScrapedMessageFromJSON(data []byte) (*ClubScrapedMessage, error) {
	var msg ClubScrapedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
