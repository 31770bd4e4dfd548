package models

import (
	"strings"
	"time"
)

// GradeLetter is a letter grade from A to F.
type GradeLetter string

const (
	GradeA GradeLetter = "A"
	GradeB GradeLetter = "B"
	GradeC GradeLetter = "C"
	GradeD GradeLetter = "D"
	GradeF GradeLetter = "F"
)

// GradeLetters lists letters in descending order.
var GradeLetters = []GradeLetter{GradeA, GradeB, GradeC, GradeD, GradeF}

// Valid reports whether g is one of GradeLetters.
func (g GradeLetter) Valid() bool {
	for _, l := range GradeLetters {
		if g == l {
			return true
		}
	}
	return false
}

// GradePoints maps a letter to GPA points. Unknown letters score 0.
func GradePoints(letter GradeLetter) float64 {
	switch GradeLetter(strings.ToUpper(strings.TrimSpace(string(letter)))) {
	case GradeA:
		return 4.0
	case GradeB:
		return 3.0
	case GradeC:
		return 2.0
	case GradeD:
		return 1.0
	default:
		return 0.0
	}
}

// Grade is an assessment result for a student in a course.
type Grade struct {
	ID           int64       `db:"id" json:"id"`
	StudentID    int64       `db:"student_id" json:"studentId"`
	CourseID     int64       `db:"course_id" json:"courseId"`
	Grade        GradeLetter `db:"grade" json:"grade"`
	NumericScore *float64    `db:"numeric_score" json:"numericScore,omitempty"`
	Comments     *string     `db:"comments" json:"comments,omitempty"`
	GradeDate    time.Time   `db:"grade_date" json:"gradeDate"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updatedAt"`
}

// GradeDetail joins student and course names for display.
type GradeDetail struct {
	Grade
	StudentName string `db:"student_name" json:"studentName"`
	CourseName  string `db:"course_name" json:"courseName"`
}

// GradeFilter captures list filters for grades.
type GradeFilter struct {
	PageRequest
	StudentID *int64
	CourseID  *int64
	Grade     *GradeLetter
}

// GradeRequest is the create and update payload for grades.
type GradeRequest struct {
	StudentID    int64       `json:"studentId" validate:"required,gt=0"`
	CourseID     int64       `json:"courseId" validate:"required,gt=0"`
	Grade        GradeLetter `json:"grade" validate:"required,oneof=A B C D F"`
	NumericScore *float64    `json:"numericScore,omitempty" validate:"omitempty,gte=0,lte=100"`
	Comments     *string     `json:"comments,omitempty" validate:"omitempty,max=1000"`
	GradeDate    *time.Time  `json:"gradeDate,omitempty"`
}

// StudentGPA is the GPA summary of one student.
type StudentGPA struct {
	StudentID  int64   `json:"studentId"`
	GPA        float64 `json:"gpa"`
	GradeCount int     `json:"gradeCount"`
}

// CourseGradeStats summarises grades recorded for a course.
type CourseGradeStats struct {
	CourseID      int64               `json:"courseId"`
	GradeCount    int                 `json:"gradeCount"`
	AverageScore  float64             `json:"averageScore"`
	AveragePoints float64             `json:"averagePoints"`
	PassRate      float64             `json:"passRate"`
	Distribution  map[GradeLetter]int `json:"distribution"`
}
