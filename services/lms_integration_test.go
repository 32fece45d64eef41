package services

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/campushq/lms-api/database"
	"github.com/campushq/lms-api/utils"
	"github.com/campushq/lms-api/utils/validation"
)

// TestAcademicLifecycle walks a full term against a real database:
// department -> program -> course -> class -> faculty -> student ->
// allocation -> enrollment -> result, then verifies the audit trail.
//
// Requires a running PostgreSQL configured via the usual DB_* env vars.
func TestAcademicLifecycle(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}

	store, err := database.StartGORM()
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	auditStore, err := database.StartAuditStore()
	if err != nil {
		t.Fatalf("failed to open audit connection: %v", err)
	}
	defer auditStore.Close()

	db := store.GetDB()
	auditSvc := NewAuditService(db, auditStore, utils.NewLogger())
	people := NewPersonService(db, auditSvc)
	departments := NewDepartmentService(db, auditSvc)
	programs := NewProgramService(db, auditSvc, nil)
	courses := NewCourseService(db, auditSvc)
	classes := NewClassService(db, auditSvc)
	faculty := NewFacultyService(db, auditSvc, people)
	students := NewStudentService(db, auditSvc, people)
	allocations := NewAllocationService(db, auditSvc)
	enrollments := NewEnrollmentService(db, auditSvc)

	actor := Actor{IPAddress: "127.0.0.1", UserAgent: "integration-test"}
	stamp := time.Now().UnixNano() % 1_000_000

	dept, err := departments.Create(actor, CreateDepartmentRequest{Name: fmt.Sprintf("Integration Dept %d", stamp)})
	if err != nil {
		t.Fatalf("create department: %v", err)
	}

	prog, err := programs.Create(actor, CreateProgramRequest{
		Code:           fmt.Sprintf("IT%d", stamp%10000),
		Name:           "Integration Test Program",
		TotalSemesters: 8,
		DepartmentID:   dept.ID,
	})
	if err != nil {
		t.Fatalf("create program: %v", err)
	}

	course, err := courses.Create(actor, CreateCourseRequest{
		Code:        fmt.Sprintf("IT%03d", stamp%1000),
		Name:        "Integration Testing",
		CreditHours: 3,
	})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	class, err := classes.Create(actor, CreateClassRequest{ProgramID: prog.ID, BatchYear: time.Now().Year()})
	if err != nil {
		t.Fatalf("create class: %v", err)
	}

	fac, err := faculty.Create(actor, CreateFacultyRequest{
		Person: PersonInput{
			RegNo:              fmt.Sprintf("EMP-%d", stamp),
			Name:               "Test Lecturer",
			InstitutionalEmail: fmt.Sprintf("lecturer%d@campus.edu", stamp),
			DOB:                "1985-04-12",
		},
		Designation:  "Lecturer",
		DepartmentID: dept.ID,
		JoiningDate:  "2020-09-01",
	})
	if err != nil {
		t.Fatalf("create faculty: %v", err)
	}

	stu, err := students.Create(actor, CreateStudentRequest{
		Person: PersonInput{
			RegNo:              fmt.Sprintf("FA%d", stamp),
			Name:               "Test Student",
			InstitutionalEmail: fmt.Sprintf("student%d@campus.edu", stamp),
			DOB:                "2004-01-20",
		},
		ProgramID: prog.ID,
		ClassID:   class.ID,
	})
	if err != nil {
		t.Fatalf("create student: %v", err)
	}

	alloc, err := allocations.Create(actor, CreateAllocationRequest{
		FacultyID: fac.ID,
		CourseID:  course.ID,
		Session:   "Fall 2026",
	})
	if err != nil {
		t.Fatalf("create allocation: %v", err)
	}

	// Same faculty, course, and session again must conflict
	if _, err := allocations.Create(actor, CreateAllocationRequest{
		FacultyID: fac.ID,
		CourseID:  course.ID,
		Session:   "Fall 2026",
	}); err == nil {
		t.Error("duplicate allocation should be rejected")
	}

	enr, err := enrollments.Create(actor, CreateEnrollmentRequest{
		StudentID:    stu.ID,
		AllocationID: alloc.ID,
	})
	if err != nil {
		t.Fatalf("create enrollment: %v", err)
	}

	// Faculty with an active allocation cannot be deleted
	var restricted *RestrictedError
	if err := faculty.Delete(actor, fac.ID); !errors.As(err, &restricted) {
		t.Errorf("faculty delete should be restricted, got %v", err)
	}

	result, err := enrollments.RecordResult(actor, RecordResultRequest{
		EnrollmentID:  enr.ID,
		CourseGPA:     3.7,
		ObtainedMarks: 88,
	})
	if err != nil {
		t.Fatalf("record result: %v", err)
	}
	if result.EnrollmentID != enr.ID {
		t.Errorf("result bound to wrong enrollment: %d", result.EnrollmentID)
	}

	// Recording twice for the same enrollment must fail validation
	if _, err := enrollments.RecordResult(actor, RecordResultRequest{
		EnrollmentID:  enr.ID,
		CourseGPA:     2.0,
		ObtainedMarks: 50,
	}); err == nil {
		t.Error("second result for one enrollment should be rejected")
	} else {
		var verrs validation.Errors
		if !errors.As(err, &verrs) {
			t.Errorf("expected accumulated validation errors, got %T", err)
		}
	}

	// Every mutation above must have landed in the audit trail
	from := time.Now().Add(-5 * time.Minute)
	records, total, err := auditSvc.List(AuditListFilter{From: &from}, 100, 0)
	if err != nil {
		t.Fatalf("list audit trail: %v", err)
	}
	if total == 0 || len(records) == 0 {
		t.Fatal("expected audit records for the mutations above")
	}

	seen := map[string]bool{}
	for _, rec := range records {
		seen[string(rec.Action)+"/"+rec.EntityName] = true
	}
	for _, want := range []string{
		"CREATE/Department", "CREATE/Program", "CREATE/Course",
		"CREATE/Faculty", "CREATE/Student", "CREATE/CourseAllocation",
		"CREATE/Enrollment", "CREATE/Result",
	} {
		if !seen[want] {
			t.Errorf("missing audit record %s", want)
		}
	}

	if _, err := enrollments.Get(999999999); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing enrollment should return ErrNotFound, got %v", err)
	}
}
