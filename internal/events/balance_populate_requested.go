package events

import "time"

const BalancePopulateRequestedTopic = "hr.leave.balance.populate.requested.v1"

type BalancePopulateRequestedEvent struct {
	EventType   string    `json:"event_type"`
	Year        int       `json:"year"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
