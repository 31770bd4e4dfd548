package models

import "time"

// LeadStatus tracks a prospect through the sales funnel.
type LeadStatus string

const (
	LeadNew         LeadStatus = "NEW"
	LeadContacted   LeadStatus = "CONTACTED"
	LeadQualified   LeadStatus = "QUALIFIED"
	LeadUnqualified LeadStatus = "UNQUALIFIED"
	LeadConverted   LeadStatus = "CONVERTED"
)

var leadTransitions = transitions[LeadStatus]{
	LeadNew:         {LeadContacted, LeadQualified, LeadUnqualified},
	LeadContacted:   {LeadQualified, LeadUnqualified},
	LeadQualified:   {LeadContacted, LeadUnqualified, LeadConverted},
	LeadUnqualified: {LeadContacted},
	LeadConverted:   {},
}

// Valid reports whether s is a known lead status.
func (s LeadStatus) Valid() bool { return leadTransitions.known(s) }

// CanTransitionTo reports whether a lead may move from s to next.
func (s LeadStatus) CanTransitionTo(next LeadStatus) bool {
	return leadTransitions.allows(s, next)
}

// Lead is a CRM prospect.
type Lead struct {
	ID                 int64      `db:"id" json:"id"`
	FullName           string     `db:"full_name" json:"fullName"`
	Email              *string    `db:"email" json:"email,omitempty"`
	Phone              *string    `db:"phone" json:"phone,omitempty"`
	Company            *string    `db:"company" json:"company,omitempty"`
	Source             *string    `db:"source" json:"source,omitempty"`
	Status             LeadStatus `db:"status" json:"status"`
	Notes              *string    `db:"notes" json:"notes,omitempty"`
	ConvertedStudentID *int64     `db:"converted_student_id" json:"convertedStudentId,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updatedAt"`
}

// LeadFilter captures list filters for leads.
type LeadFilter struct {
	PageRequest
	Status *LeadStatus
	Source string
}

// LeadRequest is the create and update payload for leads. Status is changed separately.
type LeadRequest struct {
	FullName string  `json:"fullName" validate:"required,notblank,max=200"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Company  *string `json:"company,omitempty" validate:"omitempty,max=200"`
	Source   *string `json:"source,omitempty" validate:"omitempty,max=100"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// LeadStatusRequest moves a lead to a new status.
type LeadStatusRequest struct {
	Status LeadStatus `json:"status" validate:"required,oneof=NEW CONTACTED QUALIFIED UNQUALIFIED CONVERTED"`
}

// LeadConversion is the result of converting a lead into a student.
type LeadConversion struct {
	Lead    Lead    `json:"lead"`
	Student Student `json:"student"`
}
