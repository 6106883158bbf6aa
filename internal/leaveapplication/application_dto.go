package leaveapplication

type CreateApplicationRequest struct {
	EmployeeID    string  `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID   string  `json:"leave_type_id" binding:"required,uuid"`
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       string  `json:"end_date" binding:"required"`
	DurationType  string  `json:"duration_type" binding:"required,oneof=full_day first_half second_half"`
	Reason        string  `json:"reason" binding:"required"`
	AttachmentURL *string `json:"attachment_url"`
}

type UpdateApplicationRequest struct {
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       string  `json:"end_date" binding:"required"`
	DurationType  string  `json:"duration_type" binding:"required,oneof=full_day first_half second_half"`
	Reason        string  `json:"reason" binding:"required"`
	AttachmentURL *string `json:"attachment_url"`
}

type UpdateStatusRequest struct {
	Status   string  `json:"status" binding:"required"`
	Comments *string `json:"comments"`
}

type ApplicationResponse struct {
	ID                string  `json:"id"`
	ApplicationNumber string  `json:"application_number"`
	EmployeeID        string  `json:"employee_id"`
	LeaveTypeID       string  `json:"leave_type_id"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	DurationType      string  `json:"duration_type"`
	WorkingDays       float64 `json:"working_days"`
	Reason            string  `json:"reason"`
	AttachmentURL     *string `json:"attachment_url,omitempty"`
	Comments          *string `json:"comments,omitempty"`
	Status            string  `json:"status"`
	ApprovedBy        *string `json:"approved_by,omitempty"`
	CreatedBy         string  `json:"created_by"`
	CreatedAt         string  `json:"created_at"`
}
