package models

import "time"

// Enrollment links a student to a course. Its existence means the student is enrolled.
type Enrollment struct {
	ID         int64     `db:"id" json:"id"`
	StudentID  int64     `db:"student_id" json:"studentId"`
	CourseID   int64     `db:"course_id" json:"courseId"`
	EnrolledAt time.Time `db:"enrolled_at" json:"enrolledAt"`
}

// EnrollmentDetail joins course information for student views.
type EnrollmentDetail struct {
	Enrollment
	CourseName  string      `db:"course_name" json:"courseName"`
	CourseCode  string      `db:"course_code" json:"courseCode"`
	CourseLevel CourseLevel `db:"course_level" json:"courseLevel"`
}

// EnrollRequest enrolls a student into a course.
type EnrollRequest struct {
	CourseID int64 `json:"courseId" validate:"required,gt=0"`
}
