package leavescheme

type CreateLeaveSchemeRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateLeaveSchemeRequest struct {
	Name     string `json:"name" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

type AddSchemeLeaveTypeRequest struct {
	LeaveTypeID string  `json:"leave_type_id" binding:"required,uuid"`
	DaysAllowed float64 `json:"days_allowed" binding:"gte=0"`
	IsPaid      *bool   `json:"is_paid"`
}

type UpdateSchemeLeaveTypeRequest struct {
	DaysAllowed float64 `json:"days_allowed" binding:"gte=0"`
	IsPaid      *bool   `json:"is_paid"`
}

type SchemeLeaveTypeResponse struct {
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName string  `json:"leave_type_name,omitempty"`
	LeaveTypeCode string  `json:"leave_type_code,omitempty"`
	DaysAllowed   float64 `json:"days_allowed"`
	IsPaid        bool    `json:"is_paid"`
}

type LeaveSchemeResponse struct {
	ID         string                    `json:"id"`
	Name       string                    `json:"name"`
	IsActive   bool                      `json:"is_active"`
	LeaveTypes []SchemeLeaveTypeResponse `json:"leave_types,omitempty"`
}
