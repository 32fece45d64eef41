package router

import (
	"log"
	"os"
	"time"

	"github.com/campushq/lms-api/database"
	"github.com/campushq/lms-api/handlers"
	allocation_handlers "github.com/campushq/lms-api/handlers/allocation"
	alumni_handlers "github.com/campushq/lms-api/handlers/alumni"
	assessment_handlers "github.com/campushq/lms-api/handlers/assessment"
	audit_handlers "github.com/campushq/lms-api/handlers/audit"
	auth_handlers "github.com/campushq/lms-api/handlers/auth"
	class_handlers "github.com/campushq/lms-api/handlers/class"
	course_handlers "github.com/campushq/lms-api/handlers/course"
	department_handlers "github.com/campushq/lms-api/handlers/department"
	enrollment_handlers "github.com/campushq/lms-api/handlers/enrollment"
	faculty_handlers "github.com/campushq/lms-api/handlers/faculty"
	person_handlers "github.com/campushq/lms-api/handlers/person"
	program_handlers "github.com/campushq/lms-api/handlers/program"
	salary_handlers "github.com/campushq/lms-api/handlers/salary"
	semester_handlers "github.com/campushq/lms-api/handlers/semester"
	student_handlers "github.com/campushq/lms-api/handlers/student"
	"github.com/campushq/lms-api/services"
	"github.com/campushq/lms-api/utils"
	"github.com/campushq/lms-api/utils/auth"
	"github.com/campushq/lms-api/utils/cache"
	"github.com/campushq/lms-api/utils/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, store database.Storage, auditService *services.AuditService) {
	// Get JWT secret from environment
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "campushq-lms-api"
	}

	// Initialize JWT manager with config
	jwtConfig := auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        24 * time.Hour,     // Access token expires in 24 hours
		RefreshExpiry: 7 * 24 * time.Hour, // Refresh token expires in 7 days
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	db := store.GetDB()

	// Initialize Redis cache for brute force protection and program caching
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	}

	// Initialize brute force protection
	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	// Initialize auth middleware with DB for blacklist checking
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Initialize auth handler with brute force protection
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection, auditService)

	// Domain services
	personService := services.NewPersonService(db, auditService)
	departmentService := services.NewDepartmentService(db, auditService)
	programService := services.NewProgramService(db, auditService, redisCache)
	courseService := services.NewCourseService(db, auditService)
	semesterService := services.NewSemesterService(db, auditService)
	classService := services.NewClassService(db, auditService)
	facultyService := services.NewFacultyService(db, auditService, personService)
	studentService := services.NewStudentService(db, auditService, personService)
	allocationService := services.NewAllocationService(db, auditService)
	assessmentService := services.NewAssessmentService(db, auditService)
	enrollmentService := services.NewEnrollmentService(db, auditService)
	transcriptService := services.NewTranscriptService(db, auditService)
	alumniService := services.NewAlumniService(db, auditService)
	salaryService := services.NewSalaryService(db, auditService)

	// Domain handlers
	departmentHandler := department_handlers.NewDepartmentHandler(departmentService, auditService)
	programHandler := program_handlers.NewProgramHandler(programService, auditService)
	courseHandler := course_handlers.NewCourseHandler(courseService, auditService)
	semesterHandler := semester_handlers.NewSemesterHandler(semesterService, auditService)
	classHandler := class_handlers.NewClassHandler(classService, auditService)
	facultyHandler := faculty_handlers.NewFacultyHandler(facultyService, auditService)
	studentHandler := student_handlers.NewStudentHandler(studentService, auditService)
	personHandler := person_handlers.NewPersonHandler(personService, auditService)
	allocationHandler := allocation_handlers.NewAllocationHandler(allocationService, auditService)
	assessmentHandler := assessment_handlers.NewAssessmentHandler(assessmentService, auditService)
	enrollmentHandler := enrollment_handlers.NewEnrollmentHandler(enrollmentService, transcriptService, auditService)
	alumniHandler := alumni_handlers.NewAlumniHandler(alumniService, auditService)
	salaryHandler := salary_handlers.NewSalaryHandler(salaryService, auditService)
	auditHandler := audit_handlers.NewAuditHandler(auditService)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Protected auth routes
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Post("/change-password", authMiddleware.Required(), authHandler.ChangePassword)

	// Profile routes (protected)
	profileGroup := api.Group("/profile", authMiddleware.Required())
	profileGroup.Get("/", authHandler.GetProfile)
	profileGroup.Put("/", authHandler.UpdateProfile)

	// Departments
	departments := api.Group("/departments")
	departments.Get("/", departmentHandler.ListDepartments)
	departments.Get("/:id", departmentHandler.GetDepartment)
	departments.Post("/", authMiddleware.RequireAdmin(), departmentHandler.CreateDepartment)
	departments.Put("/:id", authMiddleware.RequireAdmin(), departmentHandler.UpdateDepartment)
	departments.Delete("/:id", authMiddleware.RequireAdmin(), departmentHandler.DeleteDepartment)

	// Programs
	programs := api.Group("/programs")
	programs.Get("/", programHandler.ListPrograms)
	programs.Get("/code/:code", programHandler.GetProgramByCode)
	programs.Get("/:id", programHandler.GetProgram)
	programs.Post("/", authMiddleware.RequireAdmin(), programHandler.CreateProgram)
	programs.Put("/:id", authMiddleware.RequireAdmin(), programHandler.UpdateProgram)
	programs.Delete("/:id", authMiddleware.RequireAdmin(), programHandler.DeleteProgram)

	// Courses
	courses := api.Group("/courses")
	courses.Get("/", courseHandler.ListCourses)
	courses.Get("/code/:code", courseHandler.GetCourseByCode)
	courses.Get("/:id", courseHandler.GetCourse)
	courses.Post("/", authMiddleware.RequireAdmin(), courseHandler.CreateCourse)
	courses.Put("/:id", authMiddleware.RequireAdmin(), courseHandler.UpdateCourse)
	courses.Delete("/:id", authMiddleware.RequireAdmin(), courseHandler.DeleteCourse)

	// Semesters
	semesters := api.Group("/semesters")
	semesters.Get("/", semesterHandler.ListSemesters)
	semesters.Post("/", authMiddleware.RequireAdmin(), semesterHandler.CreateSemester)
	semesters.Post("/bulk", authMiddleware.RequireAdmin(), semesterHandler.CreateRemainingSemesters)
	semesters.Post("/details", authMiddleware.RequireAdmin(), semesterHandler.CreateSemesterDetail)
	semesters.Delete("/details/:id", authMiddleware.RequireAdmin(), semesterHandler.DeleteSemesterDetail)
	semesters.Get("/:id", semesterHandler.GetSemester)
	semesters.Put("/:id", authMiddleware.RequireAdmin(), semesterHandler.UpdateSemester)
	semesters.Delete("/:id", authMiddleware.RequireAdmin(), semesterHandler.DeleteSemester)

	// Classes
	classes := api.Group("/classes")
	classes.Get("/", classHandler.ListClasses)
	classes.Get("/:id", classHandler.GetClass)
	classes.Post("/", authMiddleware.RequireAdmin(), classHandler.CreateClass)
	classes.Delete("/:id", authMiddleware.RequireAdmin(), classHandler.DeleteClass)

	// Faculty
	faculty := api.Group("/faculty", authMiddleware.Required())
	faculty.Get("/", facultyHandler.ListFaculty)
	faculty.Get("/:id", facultyHandler.GetFaculty)
	faculty.Post("/", authMiddleware.RequireAdmin(), facultyHandler.CreateFaculty)
	faculty.Put("/:id", authMiddleware.RequireAdmin(), facultyHandler.UpdateFaculty)
	faculty.Delete("/:id", authMiddleware.RequireAdmin(), facultyHandler.DeleteFaculty)

	// Students
	students := api.Group("/students", authMiddleware.Required())
	students.Get("/", studentHandler.ListStudents)
	students.Get("/:id", studentHandler.GetStudent)
	students.Post("/", authMiddleware.RequireAdmin(), studentHandler.CreateStudent)
	students.Put("/:id", authMiddleware.RequireAdmin(), studentHandler.UpdateStudent)
	students.Delete("/:id", authMiddleware.RequireAdmin(), studentHandler.DeleteStudent)

	// People (shared person records behind faculty and students)
	people := api.Group("/people", authMiddleware.Required())
	people.Get("/regno/:regno", personHandler.GetPersonByRegNo)
	people.Get("/:id", personHandler.GetPerson)
	people.Put("/:id", authMiddleware.RequireAdmin(), personHandler.UpdatePerson)
	people.Post("/:id/qualifications", authMiddleware.RequireAdmin(), personHandler.AddQualifications)
	people.Post("/:id/addresses", authMiddleware.RequireAdmin(), personHandler.AddAddress)
	people.Get("/:id/salaries", authMiddleware.RequireAdmin(), salaryHandler.ListSalaries)

	// Course allocations and lectures
	allocations := api.Group("/allocations", authMiddleware.Required())
	allocations.Get("/", allocationHandler.ListAllocations)
	allocations.Get("/:id", allocationHandler.GetAllocation)
	allocations.Post("/", authMiddleware.RequireAdmin(), allocationHandler.CreateAllocation)
	allocations.Patch("/:id/status", authMiddleware.RequireAdmin(), allocationHandler.UpdateAllocationStatus)
	allocations.Delete("/:id", authMiddleware.RequireAdmin(), allocationHandler.DeleteAllocation)
	allocations.Get("/:id/lectures", allocationHandler.ListLectures)
	allocations.Post("/:id/lectures", allocationHandler.CreateLecture)
	api.Delete("/lectures/:id", authMiddleware.Required(), allocationHandler.DeleteLecture)

	// Assessments, marking, attendance
	assessments := api.Group("/assessments", authMiddleware.Required())
	assessments.Get("/", assessmentHandler.ListAssessments)
	assessments.Post("/", assessmentHandler.CreateAssessment)
	assessments.Post("/marks", assessmentHandler.MarkSubmission)
	assessments.Put("/marks/:id", assessmentHandler.UpdateMarks)
	assessments.Delete("/:id", assessmentHandler.DeleteAssessment)

	attendance := api.Group("/attendance", authMiddleware.Required())
	attendance.Get("/", assessmentHandler.ListAttendance)
	attendance.Post("/", assessmentHandler.RecordAttendance)

	// Enrollments, results, reviews
	enrollments := api.Group("/enrollments", authMiddleware.Required())
	enrollments.Get("/", enrollmentHandler.ListEnrollments)
	enrollments.Post("/", enrollmentHandler.CreateEnrollment)
	enrollments.Post("/results", enrollmentHandler.RecordResult)
	enrollments.Get("/reviews", enrollmentHandler.ListReviews)
	enrollments.Post("/reviews", enrollmentHandler.CreateReview)
	enrollments.Get("/:id", enrollmentHandler.GetEnrollment)
	enrollments.Post("/:id/drop", enrollmentHandler.DropEnrollment)

	// Transcripts
	transcripts := api.Group("/transcripts", authMiddleware.Required())
	transcripts.Get("/", enrollmentHandler.ListTranscripts)
	transcripts.Post("/", authMiddleware.RequireAdmin(), enrollmentHandler.CreateTranscript)
	transcripts.Put("/:id", authMiddleware.RequireAdmin(), enrollmentHandler.UpdateTranscript)

	// Alumni
	alumni := api.Group("/alumni", authMiddleware.Required())
	alumni.Get("/", alumniHandler.ListAlumni)
	alumni.Get("/:id", alumniHandler.GetAlumni)
	alumni.Post("/", authMiddleware.RequireAdmin(), alumniHandler.CreateAlumni)
	alumni.Put("/:id", authMiddleware.RequireAdmin(), alumniHandler.UpdateAlumni)

	// Salaries
	salaries := api.Group("/salaries", authMiddleware.RequireAdmin())
	salaries.Post("/", salaryHandler.CreateSalary)
	salaries.Delete("/:id", salaryHandler.DeleteSalary)

	// Audit trail (admin, read-only)
	audit := api.Group("/audit", authMiddleware.RequireAdmin())
	audit.Get("/", auditHandler.ListAuditTrail)
	audit.Get("/:id", auditHandler.GetAuditRecord)
}
