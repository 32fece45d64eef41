package services

import (
	"testing"

	"github.com/campushq/lms-api/model"
)

func TestValidStudentTransition(t *testing.T) {
	allowed := []struct{ from, to model.StudentStatus }{
		{model.StudentStatusEnrolled, model.StudentStatusGraduated},
		{model.StudentStatusEnrolled, model.StudentStatusSuspended},
		{model.StudentStatusEnrolled, model.StudentStatusWithdrawn},
		{model.StudentStatusSuspended, model.StudentStatusEnrolled},
		{model.StudentStatusSuspended, model.StudentStatusWithdrawn},
	}
	for _, tr := range allowed {
		if !validStudentTransition(tr.from, tr.to) {
			t.Errorf("%s -> %s should be allowed", tr.from, tr.to)
		}
	}

	forbidden := []struct{ from, to model.StudentStatus }{
		{model.StudentStatusSuspended, model.StudentStatusGraduated},
		{model.StudentStatusGraduated, model.StudentStatusEnrolled},
		{model.StudentStatusGraduated, model.StudentStatusWithdrawn},
		{model.StudentStatusWithdrawn, model.StudentStatusEnrolled},
		{model.StudentStatusWithdrawn, model.StudentStatusGraduated},
		{model.StudentStatusEnrolled, model.StudentStatusEnrolled},
	}
	for _, tr := range forbidden {
		if validStudentTransition(tr.from, tr.to) {
			t.Errorf("%s -> %s should be rejected", tr.from, tr.to)
		}
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	for _, terminal := range []model.StudentStatus{model.StudentStatusGraduated, model.StudentStatusWithdrawn} {
		if len(studentTransitions[terminal]) != 0 {
			t.Errorf("%s is terminal and must not allow transitions, got %v", terminal, studentTransitions[terminal])
		}
	}
}
