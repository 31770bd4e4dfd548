package models

import "time"

// Student represents a learner registered with the center.
type Student struct {
	ID          int64      `db:"id" json:"id"`
	FirstName   string     `db:"first_name" json:"firstName"`
	LastName    string     `db:"last_name" json:"lastName"`
	Email       string     `db:"email" json:"email"`
	Phone       *string    `db:"phone" json:"phone,omitempty"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"dateOfBirth,omitempty"`
	Active      bool       `db:"active" json:"active"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// FullName joins first and last name.
func (s Student) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	PageRequest
	Search string
	Active *bool
}

// StudentRequest is the create and update payload for students.
type StudentRequest struct {
	FirstName   string     `json:"firstName" validate:"required,notblank,max=100"`
	LastName    string     `json:"lastName" validate:"required,notblank,max=100"`
	Email       string     `json:"email" validate:"required,email,max=255"`
	Phone       *string    `json:"phone,omitempty" validate:"omitempty,max=30"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Active      *bool      `json:"active,omitempty"`
}

// StudentListItem is the compact list representation of a student.
type StudentListItem struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Active   bool   `json:"active"`
}

// StudentSummary aggregates a student's enrollments, grades and payments.
type StudentSummary struct {
	Student          Student            `json:"student"`
	Courses          []EnrollmentDetail `json:"courses"`
	GradeCount       int                `json:"gradeCount"`
	GPA              float64            `json:"gpa"`
	TotalPaid        float64            `json:"totalPaid"`
	TotalOutstanding float64            `json:"totalOutstanding"`
}
