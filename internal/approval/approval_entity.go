package approval

import (
	"time"

	"github.com/google/uuid"
)

const (
	WorkflowLeave    = "leave"
	WorkflowClaim    = "claim"
	WorkflowOvertime = "overtime"
	WorkflowPayment  = "payment"
)

func IsValidWorkflow(wf string) bool {
	switch wf {
	case WorkflowLeave, WorkflowClaim, WorkflowOvertime, WorkflowPayment:
		return true
	}
	return false
}

// ApprovalSetting menetapkan pelulus peringkat pertama dan kedua untuk satu
// jenis aliran kerja. Satu baris per jenis.
type ApprovalSetting struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkflowType string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_approval_workflow"`

	FirstApproverUserID      uuid.UUID  `gorm:"type:uuid;not null"`
	FirstApproverEmployeeID  *uuid.UUID `gorm:"type:uuid"`
	SecondApproverUserID     *uuid.UUID `gorm:"type:uuid"`
	SecondApproverEmployeeID *uuid.UUID `gorm:"type:uuid"`

	Enabled   bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	LevelFirst  = "FIRST"
	LevelSecond = "SECOND"
)

// Capability adalah keupayaan pelaku terhadap satu aliran kerja, diselesaikan
// per panggilan dan tidak pernah disimpan.
type Capability struct {
	FirstLevel  bool
	SecondLevel bool
	Enabled     bool
}

// CanApproveAny reports whether the actor is a configured approver at either
// level of an enabled workflow.
func (c Capability) CanApproveAny() bool {
	return c.Enabled && (c.FirstLevel || c.SecondLevel)
}

func (c Capability) CanApprove(level string) bool {
	if !c.Enabled {
		return false
	}
	switch level {
	case LevelFirst:
		return c.FirstLevel
	case LevelSecond:
		return c.SecondLevel
	}
	return false
}

// RequiresSecondLevel reports whether the workflow has a second approver
// configured; without one, first-level approval is final.
func (s ApprovalSetting) RequiresSecondLevel() bool {
	return s.SecondApproverUserID != nil
}
