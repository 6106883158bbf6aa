package schemeassignment

type CreateAssignmentRequest struct {
	EmployeeID    string  `json:"employee_id" binding:"required,uuid"`
	SchemeID      string  `json:"scheme_id" binding:"required,uuid"`
	EffectiveFrom string  `json:"effective_from" binding:"required"`
	EffectiveTo   *string `json:"effective_to"`
}

type UpdateAssignmentRequest struct {
	SchemeID      string  `json:"scheme_id" binding:"required,uuid"`
	EffectiveFrom string  `json:"effective_from" binding:"required"`
	EffectiveTo   *string `json:"effective_to"`
}

type AssignmentResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	SchemeID      string  `json:"scheme_id"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to,omitempty"`
}
