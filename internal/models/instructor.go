package models

import "time"

// Qualification enumerates recognised teaching qualifications.
type Qualification string

const (
	QualificationBachelor  Qualification = "BACHELOR"
	QualificationMaster    Qualification = "MASTER"
	QualificationDoctorate Qualification = "DOCTORATE"
	QualificationCELTA     Qualification = "CELTA"
	QualificationDELTA     Qualification = "DELTA"
	QualificationTESOL     Qualification = "TESOL"
)

// Valid reports whether q is a known qualification.
func (q Qualification) Valid() bool {
	switch q {
	case QualificationBachelor, QualificationMaster, QualificationDoctorate, QualificationCELTA, QualificationDELTA, QualificationTESOL:
		return true
	}
	return false
}

// SalaryFrequency is the period a base salary refers to.
type SalaryFrequency string

const (
	SalaryHourly  SalaryFrequency = "HOURLY"
	SalaryWeekly  SalaryFrequency = "WEEKLY"
	SalaryMonthly SalaryFrequency = "MONTHLY"
	SalaryAnnual  SalaryFrequency = "ANNUAL"
)

// AnnualFactor converts one salary period into a yearly multiple. Hourly assumes 40h weeks.
func (f SalaryFrequency) AnnualFactor() float64 {
	switch f {
	case SalaryHourly:
		return 40 * 52
	case SalaryWeekly:
		return 52
	case SalaryMonthly:
		return 12
	default:
		return 1
	}
}

// Instructor is a member of the teaching staff.
type Instructor struct {
	ID                int64           `db:"id" json:"id"`
	FirstName         string          `db:"first_name" json:"firstName"`
	LastName          string          `db:"last_name" json:"lastName"`
	Email             string          `db:"email" json:"email"`
	Phone             *string         `db:"phone" json:"phone,omitempty"`
	Qualification     Qualification   `db:"qualification" json:"qualification"`
	YearsOfExperience int             `db:"years_of_experience" json:"yearsOfExperience"`
	BaseSalary        float64         `db:"base_salary" json:"baseSalary"`
	SalaryFrequency   SalaryFrequency `db:"salary_frequency" json:"salaryFrequency"`
	Active            bool            `db:"active" json:"active"`
	CreatedAt         time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updatedAt"`
}

// AnnualSalary normalises the base salary to a yearly figure.
func (i Instructor) AnnualSalary() float64 {
	return i.BaseSalary * i.SalaryFrequency.AnnualFactor()
}

// InstructorDetail is the detail view including annualised salary and courses.
type InstructorDetail struct {
	Instructor
	AnnualSalary float64            `json:"annualSalary"`
	Courses      []InstructorCourse `json:"courses"`
}

// InstructorFilter captures list filters for instructors.
type InstructorFilter struct {
	PageRequest
	Search        string
	Qualification *Qualification
	Active        *bool
}

// InstructorRequest is the create and update payload for instructors.
type InstructorRequest struct {
	FirstName         string          `json:"firstName" validate:"required,notblank,max=100"`
	LastName          string          `json:"lastName" validate:"required,notblank,max=100"`
	Email             string          `json:"email" validate:"required,email,max=255"`
	Phone             *string         `json:"phone,omitempty" validate:"omitempty,max=30"`
	Qualification     Qualification   `json:"qualification" validate:"required,oneof=BACHELOR MASTER DOCTORATE CELTA DELTA TESOL"`
	YearsOfExperience int             `json:"yearsOfExperience" validate:"gte=0,lte=70"`
	BaseSalary        float64         `json:"baseSalary" validate:"gte=0"`
	SalaryFrequency   SalaryFrequency `json:"salaryFrequency" validate:"required,oneof=HOURLY WEEKLY MONTHLY ANNUAL"`
	Active            *bool           `json:"active,omitempty"`
}

// InstructorCourse is an instructor to course assignment.
type InstructorCourse struct {
	ID           int64     `db:"id" json:"id"`
	InstructorID int64     `db:"instructor_id" json:"instructorId"`
	CourseID     int64     `db:"course_id" json:"courseId"`
	CourseName   string    `db:"course_name" json:"courseName,omitempty"`
	CourseCode   string    `db:"course_code" json:"courseCode,omitempty"`
	AssignedAt   time.Time `db:"assigned_at" json:"assignedAt"`
}

// AssignCourseRequest assigns a course to an instructor.
type AssignCourseRequest struct {
	CourseID int64 `json:"courseId" validate:"required,gt=0"`
}
