package approval

type UpsertApprovalSettingRequest struct {
	WorkflowType             string  `json:"workflow_type" binding:"required,oneof=leave claim overtime payment"`
	FirstApproverUserID      string  `json:"first_approver_user_id" binding:"required,uuid"`
	FirstApproverEmployeeID  *string `json:"first_approver_employee_id" binding:"omitempty,uuid"`
	SecondApproverUserID     *string `json:"second_approver_user_id" binding:"omitempty,uuid"`
	SecondApproverEmployeeID *string `json:"second_approver_employee_id" binding:"omitempty,uuid"`
	Enabled                  *bool   `json:"enabled"`
}

type ApprovalSettingResponse struct {
	ID                       string  `json:"id"`
	WorkflowType             string  `json:"workflow_type"`
	FirstApproverUserID      string  `json:"first_approver_user_id"`
	FirstApproverEmployeeID  *string `json:"first_approver_employee_id,omitempty"`
	SecondApproverUserID     *string `json:"second_approver_user_id,omitempty"`
	SecondApproverEmployeeID *string `json:"second_approver_employee_id,omitempty"`
	Enabled                  bool    `json:"enabled"`
}
