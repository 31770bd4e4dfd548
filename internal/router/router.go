package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/lingua-center-api/internal/handler"
	"github.com/noah-isme/lingua-center-api/internal/middleware"
	"github.com/noah-isme/lingua-center-api/internal/models"
)

// Handlers bundles every HTTP handler mounted under the API prefix.
type Handlers struct {
	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Students      *handler.StudentHandler
	Courses       *handler.CourseHandler
	Instructors   *handler.InstructorHandler
	Grades        *handler.GradeHandler
	Payments      *handler.PaymentHandler
	Leads         *handler.LeadHandler
	Opportunities *handler.OpportunityHandler
	Dashboard     *handler.DashboardHandler
	Notifications *handler.NotificationHandler
	Reports       *handler.ReportHandler
	Integrations  *handler.IntegrationHandler
	Metrics       *handler.MetricsHandler
}

// Deps carries the cross-cutting collaborators the route table needs.
type Deps struct {
	Tokens middleware.TokenValidator
	Audit  middleware.AuditWriter
	Logger *zap.Logger
}

var (
	writers    = []models.UserRole{models.RoleAdmin, models.RoleStaff}
	graders    = []models.UserRole{models.RoleAdmin, models.RoleStaff, models.RoleInstructor}
	adminsOnly = []models.UserRole{models.RoleAdmin}
)

// Register mounts the API routes on api.
func Register(api *gin.RouterGroup, h Handlers, deps Deps) {
	write := middleware.RequireRoles(writers...)
	grade := middleware.RequireRoles(graders...)
	admin := middleware.RequireRoles(adminsOnly...)
	staffOnly := middleware.DenyRoles(models.RoleStudent)
	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.Audit(deps.Audit, deps.Logger, action, resource)
	}

	auth := api.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)

	// Signed tokens authorize report downloads on their own.
	api.GET("/reports/download/:token", middleware.OptionalJWT(deps.Tokens), h.Reports.Download)

	secured := api.Group("")
	secured.Use(middleware.JWT(deps.Tokens))

	secured.POST("/auth/logout", h.Auth.Logout)
	secured.GET("/auth/me", h.Auth.Me)
	secured.POST("/auth/change-password", h.Auth.ChangePassword)

	users := secured.Group("/users", admin)
	users.GET("", h.Users.List)
	users.GET("/:id", h.Users.Get)
	users.POST("", audit(models.AuditActionCreate, "user"), h.Users.Create)
	users.PUT("/:id", audit(models.AuditActionUpdate, "user"), h.Users.Update)
	users.DELETE("/:id", audit(models.AuditActionDelete, "user"), h.Users.Delete)

	students := secured.Group("/students")
	students.GET("", h.Students.List)
	students.GET("/search", h.Students.Search)
	students.GET("/:id", h.Students.Get)
	students.GET("/:id/courses", h.Students.Courses)
	students.GET("/:id/summary", h.Students.Summary)
	students.POST("", write, h.Students.Create)
	students.PUT("/:id", write, h.Students.Update)
	students.POST("/:id/courses", write, h.Students.Enroll)
	students.DELETE("/:id/courses/:courseId", write, audit("UNENROLL", "enrollment"), h.Students.Unenroll)
	students.DELETE("/:id", admin, audit(models.AuditActionDelete, "student"), h.Students.Delete)

	courses := secured.Group("/courses")
	courses.GET("", h.Courses.List)
	courses.GET("/:id", h.Courses.Get)
	courses.GET("/:id/students", h.Courses.Students)
	courses.POST("", write, h.Courses.Create)
	courses.PUT("/:id", write, h.Courses.Update)
	courses.DELETE("/:id", admin, audit(models.AuditActionDelete, "course"), h.Courses.Delete)

	instructors := secured.Group("/instructors")
	instructors.GET("", h.Instructors.List)
	instructors.GET("/search", h.Instructors.Search)
	instructors.GET("/:id", h.Instructors.Get)
	instructors.POST("", write, h.Instructors.Create)
	instructors.PUT("/:id", write, h.Instructors.Update)
	instructors.POST("/:id/courses", write, h.Instructors.AssignCourse)
	instructors.DELETE("/:id/courses/:courseId", write, h.Instructors.UnassignCourse)
	instructors.DELETE("/:id", admin, audit(models.AuditActionDelete, "instructor"), h.Instructors.Delete)

	grades := secured.Group("/grades")
	grades.GET("", h.Grades.List)
	grades.GET("/student/:studentId", h.Grades.ByStudent)
	grades.GET("/student/:studentId/gpa", h.Grades.StudentGPA)
	grades.GET("/course/:courseId/statistics", h.Grades.CourseStatistics)
	grades.GET("/:id", h.Grades.Get)
	grades.POST("", grade, h.Grades.Create)
	grades.PUT("/:id", grade, h.Grades.Update)
	grades.DELETE("/:id", admin, audit(models.AuditActionDelete, "grade"), h.Grades.Delete)

	payments := secured.Group("/payments")
	payments.GET("", h.Payments.List)
	payments.GET("/summary", h.Payments.Summary)
	payments.GET("/:id", h.Payments.Get)
	payments.POST("", write, h.Payments.Create)
	payments.PUT("/:id", write, h.Payments.Update)
	payments.PATCH("/:id/status", write, h.Payments.UpdateStatus)
	payments.POST("/:id/refund", write, audit("REFUND", "payment"), h.Payments.Refund)
	payments.POST("/:id/checkout", write, h.Payments.Checkout)
	payments.DELETE("/:id", admin, audit(models.AuditActionDelete, "payment"), h.Payments.Delete)

	leads := secured.Group("/leads", staffOnly)
	leads.GET("", h.Leads.List)
	leads.GET("/search", h.Leads.Search)
	leads.GET("/:id", h.Leads.Get)
	leads.POST("", write, h.Leads.Create)
	leads.PUT("/:id", write, h.Leads.Update)
	leads.PATCH("/:id/status", write, h.Leads.UpdateStatus)
	leads.POST("/:id/convert", write, audit("CONVERT", "lead"), h.Leads.Convert)
	leads.DELETE("/:id", admin, audit(models.AuditActionDelete, "lead"), h.Leads.Delete)

	opportunities := secured.Group("/opportunities", staffOnly)
	opportunities.GET("", h.Opportunities.List)
	opportunities.GET("/pipeline", h.Opportunities.Pipeline)
	opportunities.GET("/:id", h.Opportunities.Get)
	opportunities.POST("", write, h.Opportunities.Create)
	opportunities.PUT("/:id", write, h.Opportunities.Update)
	opportunities.PATCH("/:id/stage", write, h.Opportunities.UpdateStage)
	opportunities.DELETE("/:id", admin, audit(models.AuditActionDelete, "opportunity"), h.Opportunities.Delete)

	dashboard := secured.Group("/dashboard", staffOnly)
	dashboard.GET("/overview", h.Dashboard.Overview)
	dashboard.GET("/enrollment-trend", h.Dashboard.EnrollmentTrend)
	dashboard.GET("/revenue-trend", h.Dashboard.RevenueTrend)
	dashboard.GET("/grade-distribution", h.Dashboard.GradeDistribution)
	dashboard.GET("/popular-courses", h.Dashboard.PopularCourses)

	notifications := secured.Group("/notifications", staffOnly)
	notifications.GET("", h.Notifications.List)
	notifications.GET("/templates", h.Notifications.ListTemplates)
	notifications.GET("/templates/:id", h.Notifications.GetTemplate)
	notifications.GET("/:id", h.Notifications.Get)
	notifications.POST("/templates", write, h.Notifications.CreateTemplate)
	notifications.PUT("/templates/:id", write, h.Notifications.UpdateTemplate)
	notifications.DELETE("/templates/:id", admin, audit(models.AuditActionDelete, "notification_template"), h.Notifications.DeleteTemplate)
	notifications.POST("/send", write, h.Notifications.Send)
	notifications.POST("/schedule", write, h.Notifications.Schedule)
	notifications.DELETE("/:id", write, audit("CANCEL", "notification"), h.Notifications.Cancel)

	reports := secured.Group("/reports", write)
	reports.GET("/:type/export", h.Reports.Export)
	reports.POST("/schedule", h.Reports.Schedule)
	reports.GET("/jobs/:id", h.Reports.Status)

	integrations := secured.Group("/integrations", write)
	integrations.POST("/calendar/events", h.Integrations.CreateCalendarEvent)
	integrations.POST("/meetings", h.Integrations.CreateMeeting)
	integrations.GET("/webhooks", admin, h.Integrations.ListWebhooks)
	integrations.POST("/webhooks", admin, audit(models.AuditActionCreate, "webhook"), h.Integrations.CreateWebhook)
	integrations.DELETE("/webhooks/:id", admin, audit(models.AuditActionDelete, "webhook"), h.Integrations.DeleteWebhook)

	secured.GET("/system/metrics", staffOnly, h.Metrics.System)
}
