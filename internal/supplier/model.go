package supplier

import "time"

// ApprovalStatus is the back-office vetting state of a supplier application.
// New suppliers start pending and an admin moves them exactly once to approved
// or rejected.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

type Supplier struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	NameEn         string         `json:"nameEn"`
	NameAr         *string        `json:"nameAr,omitempty"`
	Description    *string        `json:"description,omitempty"`
	Phone          *string        `json:"phone,omitempty"`
	Address        *string        `json:"address,omitempty"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus"`
	RejectReason   *string        `json:"rejectReason,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type ApplyInput struct {
	UserID      string
	NameEn      string
	NameAr      *string
	Description *string
	Phone       *string
	Address     *string
}

// Filter narrows supplier listings; a nil status matches every supplier.
type Filter struct {
	Status *ApprovalStatus
}
