package services

import (
	"testing"
	"time"
)

func TestBuildQualifications(t *testing.T) {
	svc := NewPersonService(nil, nil)

	t.Run("valid set", func(t *testing.T) {
		rows, errs := svc.BuildQualifications(5, []QualificationInput{
			{Degree: "BS Computer Science", Institution: "State University", PassingYear: 2018},
			{Degree: "MS Software Engineering", PassingYear: 2021},
		})
		if errs.HasErrors() {
			t.Fatalf("unexpected errors: %v", errs)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		for _, row := range rows {
			if row.PersonID != 5 {
				t.Errorf("row not bound to person: %d", row.PersonID)
			}
		}
	})

	t.Run("future passing year", func(t *testing.T) {
		_, errs := svc.BuildQualifications(5, []QualificationInput{
			{Degree: "PhD", PassingYear: time.Now().Year() + 1},
		})
		if len(errs["qualifications"]) == 0 {
			t.Errorf("expected qualifications error, got %v", errs)
		}
	})

	t.Run("missing degree", func(t *testing.T) {
		_, errs := svc.BuildQualifications(5, []QualificationInput{
			{PassingYear: 2018},
		})
		if len(errs["qualifications"]) == 0 {
			t.Errorf("expected qualifications error, got %v", errs)
		}
	})

	t.Run("errors indexed per entry", func(t *testing.T) {
		_, errs := svc.BuildQualifications(5, []QualificationInput{
			{Degree: "BS Mathematics", PassingYear: 2015},
			{Degree: "x", PassingYear: 2017},
		})
		if len(errs["qualifications"]) != 1 {
			t.Fatalf("expected exactly one message, got %v", errs)
		}
	})

	t.Run("empty set", func(t *testing.T) {
		rows, errs := svc.BuildQualifications(5, nil)
		if errs.HasErrors() {
			t.Errorf("empty input should be valid, got %v", errs)
		}
		if len(rows) != 0 {
			t.Errorf("expected no rows, got %d", len(rows))
		}
	})
}
