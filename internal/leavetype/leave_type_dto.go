package leavetype

type CreateLeaveTypeRequest struct {
	Name    string `json:"name" binding:"required"`
	Code    string `json:"code" binding:"required"`
	MaxDays int    `json:"max_days" binding:"gte=0"`
	Color   string `json:"color"`
	IsPaid  *bool  `json:"is_paid"`
}

type UpdateLeaveTypeRequest struct {
	Name    string `json:"name" binding:"required"`
	Code    string `json:"code" binding:"required"`
	MaxDays int    `json:"max_days" binding:"gte=0"`
	Color   string `json:"color"`
	IsPaid  *bool  `json:"is_paid"`
}

type LeaveTypeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	MaxDays  int    `json:"max_days"`
	Color    string `json:"color"`
	IsPaid   bool   `json:"is_paid"`
	IsActive bool   `json:"is_active"`
}
