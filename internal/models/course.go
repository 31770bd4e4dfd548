package models

import "time"

// CourseLevel enumerates the proficiency tiers a course targets.
type CourseLevel string

const (
	CourseLevelBeginner     CourseLevel = "BEGINNER"
	CourseLevelIntermediate CourseLevel = "INTERMEDIATE"
	CourseLevelAdvanced     CourseLevel = "ADVANCED"
	CourseLevelProfessional CourseLevel = "PROFESSIONAL"
)

// Valid reports whether l is a known level.
func (l CourseLevel) Valid() bool {
	switch l {
	case CourseLevelBeginner, CourseLevelIntermediate, CourseLevelAdvanced, CourseLevelProfessional:
		return true
	}
	return false
}

// Course represents a class offering.
type Course struct {
	ID          int64       `db:"id" json:"id"`
	Name        string      `db:"name" json:"name"`
	Code        string      `db:"code" json:"code"`
	Description *string     `db:"description" json:"description,omitempty"`
	Level       CourseLevel `db:"level" json:"level"`
	MaxCapacity int         `db:"max_capacity" json:"maxCapacity"`
	Fee         float64     `db:"fee" json:"fee"`
	Active      bool        `db:"active" json:"active"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}

// CourseWithEnrollment adds the current enrollment count.
type CourseWithEnrollment struct {
	Course
	EnrolledCount int `db:"enrolled_count" json:"enrolledCount"`
}

// CourseFilter captures list filters for courses.
type CourseFilter struct {
	PageRequest
	Search string
	Level  *CourseLevel
	Active *bool
}

// CourseRequest is the create and update payload for courses.
type CourseRequest struct {
	Name        string      `json:"name" validate:"required,notblank,max=150"`
	Code        string      `json:"code" validate:"required,notblank,max=30"`
	Description *string     `json:"description,omitempty" validate:"omitempty,max=2000"`
	Level       CourseLevel `json:"level" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED PROFESSIONAL"`
	MaxCapacity int         `json:"maxCapacity" validate:"required,gt=0,lte=500"`
	Fee         float64     `json:"fee" validate:"gte=0"`
	Active      *bool       `json:"active,omitempty"`
}
