package leavebalance

type BalanceResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	LeaveTypeID   string  `json:"leave_type_id"`
	Year          int     `json:"year"`
	AllocatedDays float64 `json:"allocated_days"`
	UsedDays      float64 `json:"used_days"`
	RemainingDays float64 `json:"remaining_days"`
}

type PopulateRequest struct {
	Year int `json:"year" binding:"required"`
}

type PopulateResponse struct {
	Year               int `json:"year"`
	EmployeesProcessed int `json:"employees_processed"`
	EmployeesSkipped   int `json:"employees_skipped"`
	RowsUpserted       int `json:"rows_upserted"`
}
