package events

import "time"

const LeaveApplicationStatusTopic = "hr.leave.application.status.v1"

type LeaveApplicationStatusEvent struct {
	EventType         string    `json:"event_type"`
	ApplicationID     string    `json:"application_id"`
	ApplicationNumber string    `json:"application_number"`
	EmployeeID        string    `json:"employee_id"`
	LeaveTypeID       string    `json:"leave_type_id"`
	Status            string    `json:"status"`
	WorkingDays       float64   `json:"working_days"`
	ActedBy           string    `json:"acted_by"`
	OccurredAt        time.Time `json:"occurred_at"`
}
