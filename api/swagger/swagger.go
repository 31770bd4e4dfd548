package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {"title": "Lingua Center API", "description": "Administration backend for an English training center.", "version": "1.0.0"},
    "basePath": "/",
    "schemes": ["http", "https"],
    "securityDefinitions": {"BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}},
    "tags": [
        {"name": "Auth", "description": "Login and token lifecycle"},
        {"name": "Users", "description": "Back-office accounts"},
        {"name": "Students", "description": "Student records and enrollment"},
        {"name": "Courses", "description": "Course catalogue"},
        {"name": "Instructors", "description": "Instructor roster"},
        {"name": "Grades", "description": "Grades, GPA and statistics"},
        {"name": "Payments", "description": "Tuition payments"},
        {"name": "CRM", "description": "Leads and opportunities"},
        {"name": "Dashboard", "description": "Analytics"},
        {"name": "Notifications", "description": "Email and SMS"},
        {"name": "Reports", "description": "Exports and scheduled reports"},
        {"name": "Integrations", "description": "Calendar, meetings and webhooks"},
        {"name": "System", "description": "Health and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {"tags": ["System"], "summary": "Liveness probe", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/ready": {
            "get": {"tags": ["System"], "summary": "Readiness probe (database and redis)", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/metrics": {
            "get": {"tags": ["System"], "summary": "Prometheus metrics", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/auth/login": {
            "post": {"tags": ["Auth"], "summary": "Exchange credentials for tokens", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/auth/refresh": {
            "post": {"tags": ["Auth"], "summary": "Rotate a refresh token", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/auth/logout": {
            "post": {"tags": ["Auth"], "summary": "Revoke a refresh token", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}], "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/auth/me": {
            "get": {"tags": ["Auth"], "summary": "Current user profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/auth/change-password": {
            "post": {"tags": ["Auth"], "summary": "Change own password", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangePasswordRequest"}}], "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/users": {
            "get": {"tags": ["Users"], "summary": "List users", "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "pageSize", "in": "query", "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Users"], "summary": "Create user", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UserRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/users/{id}": {
            "get": {"tags": ["Users"], "summary": "Get user", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Users"], "summary": "Update user", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UserRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Users"], "summary": "Deactivate user", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/students": {
            "get": {"tags": ["Students"], "summary": "List students", "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "pageSize", "in": "query", "type": "integer"}, {"name": "search", "in": "query", "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Students"], "summary": "Create student", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/students/search": {
            "get": {"tags": ["Students"], "summary": "Search students by name or email", "parameters": [{"name": "q", "in": "query", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/students/{id}": {
            "get": {"tags": ["Students"], "summary": "Get student", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Students"], "summary": "Update student", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Students"], "summary": "Delete student", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/students/{id}/courses": {
            "get": {"tags": ["Students"], "summary": "Courses the student is enrolled in", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Students"], "summary": "Enroll student in a course", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/students/{id}/courses/{courseId}": {
            "delete": {"tags": ["Students"], "summary": "Unenroll student", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}, {"name": "courseId", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/students/{id}/summary": {
            "get": {"tags": ["Students"], "summary": "Student profile with enrollments, grades and payments", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/courses": {
            "get": {"tags": ["Courses"], "summary": "List courses", "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "pageSize", "in": "query", "type": "integer"}, {"name": "search", "in": "query", "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Courses"], "summary": "Create course", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/courses/{id}": {
            "get": {"tags": ["Courses"], "summary": "Get course", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Courses"], "summary": "Update course", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Courses"], "summary": "Delete course", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/courses/{id}/students": {
            "get": {"tags": ["Courses"], "summary": "Students enrolled in the course", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/instructors": {
            "get": {"tags": ["Instructors"], "summary": "List instructors", "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "pageSize", "in": "query", "type": "integer"}, {"name": "search", "in": "query", "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Instructors"], "summary": "Create instructor", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InstructorRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/instructors/search": {
            "get": {"tags": ["Instructors"], "summary": "Search instructors", "parameters": [{"name": "q", "in": "query", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/instructors/{id}": {
            "get": {"tags": ["Instructors"], "summary": "Get instructor with courses", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Instructors"], "summary": "Update instructor", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InstructorRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Instructors"], "summary": "Delete instructor", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/instructors/{id}/courses": {
            "post": {"tags": ["Instructors"], "summary": "Assign course", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignCourseRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/instructors/{id}/courses/{courseId}": {
            "delete": {"tags": ["Instructors"], "summary": "Unassign course", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}, {"name": "courseId", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/grades": {
            "get": {"tags": ["Grades"], "summary": "List grades", "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "pageSize", "in": "query", "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Grades"], "summary": "Record grade", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GradeRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/grades/{id}": {
            "get": {"tags": ["Grades"], "summary": "Get grade", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Grades"], "summary": "Update grade", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GradeRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Grades"], "summary": "Delete grade", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/grades/student/{studentId}": {
            "get": {"tags": ["Grades"], "summary": "Grades of a student", "parameters": [{"name": "studentId", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/grades/student/{studentId}/gpa": {
            "get": {"tags": ["Grades"], "summary": "Student GPA", "parameters": [{"name": "studentId", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/grades/course/{courseId}/statistics": {
            "get": {"tags": ["Grades"], "summary": "Course grade statistics", "parameters": [{"name": "courseId", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/payments": {
            "get": {"tags": ["Payments"], "summary": "List payments", "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "pageSize", "in": "query", "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Payments"], "summary": "Record payment", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PaymentRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/payments/summary": {
            "get": {"tags": ["Payments"], "summary": "Revenue summary", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/payments/{id}": {
            "get": {"tags": ["Payments"], "summary": "Get payment", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Payments"], "summary": "Update payment", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PaymentRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Payments"], "summary": "Delete payment", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/payments/{id}/status": {
            "patch": {"tags": ["Payments"], "summary": "Transition payment status", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PaymentStatusRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/payments/{id}/refund": {
            "post": {"tags": ["Payments"], "summary": "Refund payment", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefundRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/payments/{id}/checkout": {
            "post": {"tags": ["Payments"], "summary": "Open a checkout session", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/leads": {
            "get": {"tags": ["CRM"], "summary": "List leads", "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "pageSize", "in": "query", "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["CRM"], "summary": "Create lead", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LeadRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/leads/search": {
            "get": {"tags": ["CRM"], "summary": "Search leads", "parameters": [{"name": "q", "in": "query", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/leads/{id}": {
            "get": {"tags": ["CRM"], "summary": "Get lead", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["CRM"], "summary": "Update lead", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LeadRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["CRM"], "summary": "Delete lead", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/leads/{id}/status": {
            "patch": {"tags": ["CRM"], "summary": "Transition lead status", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LeadStatusRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/leads/{id}/convert": {
            "post": {"tags": ["CRM"], "summary": "Convert lead into a student", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/opportunities": {
            "get": {"tags": ["CRM"], "summary": "List opportunities", "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "pageSize", "in": "query", "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["CRM"], "summary": "Create opportunity", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/OpportunityRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/opportunities/pipeline": {
            "get": {"tags": ["CRM"], "summary": "Pipeline totals per stage", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/opportunities/{id}": {
            "get": {"tags": ["CRM"], "summary": "Get opportunity", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["CRM"], "summary": "Update opportunity", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/OpportunityRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["CRM"], "summary": "Delete opportunity", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/opportunities/{id}/stage": {
            "patch": {"tags": ["CRM"], "summary": "Move opportunity to another stage", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/OpportunityStageRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/dashboard/overview": {
            "get": {"tags": ["Dashboard"], "summary": "Headline KPIs", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/dashboard/enrollment-trend": {
            "get": {"tags": ["Dashboard"], "summary": "Enrollments per month", "parameters": [{"name": "months", "in": "query", "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/dashboard/revenue-trend": {
            "get": {"tags": ["Dashboard"], "summary": "Revenue per month", "parameters": [{"name": "months", "in": "query", "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/dashboard/grade-distribution": {
            "get": {"tags": ["Dashboard"], "summary": "Grade letter distribution", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/dashboard/popular-courses": {
            "get": {"tags": ["Dashboard"], "summary": "Courses ranked by enrollment", "parameters": [{"name": "limit", "in": "query", "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/notifications": {
            "get": {"tags": ["Notifications"], "summary": "List notifications", "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "pageSize", "in": "query", "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/notifications/{id}": {
            "get": {"tags": ["Notifications"], "summary": "Get notification", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Notifications"], "summary": "Cancel a pending notification", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/notifications/send": {
            "post": {"tags": ["Notifications"], "summary": "Send now", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SendNotificationRequest"}}], "security": [{"BearerAuth": []}], "responses": {"202": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/notifications/schedule": {
            "post": {"tags": ["Notifications"], "summary": "Schedule for later", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SendNotificationRequest"}}], "security": [{"BearerAuth": []}], "responses": {"202": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/notifications/templates": {
            "get": {"tags": ["Notifications"], "summary": "List templates", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Notifications"], "summary": "Create template", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NotificationTemplateRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/notifications/templates/{id}": {
            "get": {"tags": ["Notifications"], "summary": "Get template", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "put": {"tags": ["Notifications"], "summary": "Update template", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NotificationTemplateRequest"}}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "delete": {"tags": ["Notifications"], "summary": "Delete template", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/reports/{type}/export": {
            "get": {"tags": ["Reports"], "summary": "Download a report", "parameters": [{"name": "type", "in": "path", "required": true, "type": "string", "enum": ["students", "payments", "grades", "enrollments"]}, {"name": "format", "in": "query", "type": "string", "enum": ["PDF", "EXCEL", "CSV"]}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/reports/schedule": {
            "post": {"tags": ["Reports"], "summary": "Schedule a report job", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleReportRequest"}}], "security": [{"BearerAuth": []}], "responses": {"202": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/reports/jobs/{id}": {
            "get": {"tags": ["Reports"], "summary": "Report job status", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/reports/download/{token}": {
            "get": {"tags": ["Reports"], "summary": "Download a finished report", "parameters": [{"name": "token", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/integrations/calendar/events": {
            "post": {"tags": ["Integrations"], "summary": "Create calendar event", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CalendarEventRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/integrations/meetings": {
            "post": {"tags": ["Integrations"], "summary": "Create online meeting", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MeetingRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/integrations/webhooks": {
            "get": {"tags": ["Integrations"], "summary": "List webhook subscriptions", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {"tags": ["Integrations"], "summary": "Register webhook", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/WebhookRequest"}}], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/integrations/webhooks/{id}": {
            "delete": {"tags": ["Integrations"], "summary": "Delete webhook", "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/api/v1/system/metrics": {
            "get": {"tags": ["System"], "summary": "Runtime, request and queue metrics", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        }
    },
    "definitions": {
        "AssignCourseRequest": {"type": "object"},
        "CalendarEventRequest": {"type": "object"},
        "ChangePasswordRequest": {"type": "object"},
        "CourseRequest": {"type": "object"},
        "EnrollRequest": {"type": "object"},
        "GradeRequest": {"type": "object"},
        "InstructorRequest": {"type": "object"},
        "LeadRequest": {"type": "object"},
        "LeadStatusRequest": {"type": "object"},
        "LoginRequest": {"type": "object"},
        "MeetingRequest": {"type": "object"},
        "NotificationTemplateRequest": {"type": "object"},
        "OpportunityRequest": {"type": "object"},
        "OpportunityStageRequest": {"type": "object"},
        "PaymentRequest": {"type": "object"},
        "PaymentStatusRequest": {"type": "object"},
        "RefreshTokenRequest": {"type": "object"},
        "RefundRequest": {"type": "object"},
        "ScheduleReportRequest": {"type": "object"},
        "SendNotificationRequest": {"type": "object"},
        "StudentRequest": {"type": "object"},
        "UserRequest": {"type": "object"},
        "WebhookRequest": {"type": "object"},
        "APIError": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "details": {"type": "object", "additionalProperties": {"type": "string"}}}},
        "ResponseEnvelope": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}, "data": {"type": "object"}, "error": {"$ref": "#/definitions/APIError"}, "meta": {"type": "object"}}}
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
