package validation

import (
	"strings"
	"testing"
)

func TestErrorsAccumulation(t *testing.T) {
	errs := NewErrors()
	if errs.HasErrors() {
		t.Fatal("new accumulator should be empty")
	}
	if errs.AsError() != nil {
		t.Fatal("empty accumulator should produce nil error")
	}

	errs.Add("name", "Name is required")
	errs.Add("name", "Name must be at least %d characters", 3)
	errs.AddNonField("Program not found")

	if !errs.HasErrors() {
		t.Fatal("expected accumulated errors")
	}
	if len(errs["name"]) != 2 {
		t.Errorf("expected 2 messages on name, got %d", len(errs["name"]))
	}
	if len(errs[NonFieldKey]) != 1 {
		t.Errorf("expected 1 non-field message, got %d", len(errs[NonFieldKey]))
	}
	if errs["name"][1] != "Name must be at least 3 characters" {
		t.Errorf("format args not applied: %q", errs["name"][1])
	}
	if errs.AsError() == nil {
		t.Fatal("non-empty accumulator should produce an error")
	}
}

func TestErrorsMerge(t *testing.T) {
	a := NewErrors()
	a.Add("code", "Code is required")

	b := NewErrors()
	b.Add("code", "Code is too long")
	b.Add("name", "Name is required")

	a.Merge(b)

	if len(a["code"]) != 2 {
		t.Errorf("expected merged code messages, got %d", len(a["code"]))
	}
	if len(a["name"]) != 1 {
		t.Errorf("expected merged name message, got %d", len(a["name"]))
	}
}

func TestErrorsStringIsStable(t *testing.T) {
	errs := NewErrors()
	errs.Add("zeta", "last field")
	errs.Add("alpha", "first field")

	got := errs.Error()
	if !strings.HasPrefix(got, "alpha:") {
		t.Errorf("fields should be sorted, got %q", got)
	}
	if errs.Error() != got {
		t.Error("summary should be deterministic across calls")
	}
}

func TestFromStruct(t *testing.T) {
	type input struct {
		Email string `json:"email" validate:"required,email"`
		Name  string `json:"name" validate:"required,min=2"`
		Year  int    `json:"year" validate:"gte=2000"`
	}

	v := NewValidator()

	errs := FromStruct(v.ValidateStruct(input{Email: "not-an-email", Name: "x", Year: 1990}))
	if !errs.HasErrors() {
		t.Fatal("expected validation errors")
	}
	for _, field := range []string{"email", "name", "year"} {
		if len(errs[field]) == 0 {
			t.Errorf("expected message for %s, got none: %v", field, errs)
		}
	}

	errs = FromStruct(v.ValidateStruct(input{Email: "a@b.com", Name: "ok", Year: 2024}))
	if errs.HasErrors() {
		t.Errorf("valid input should produce no errors, got %v", errs)
	}

	if FromStruct(nil).HasErrors() {
		t.Error("nil error should produce empty accumulator")
	}
}

func TestFromStructUsesJSONFieldNames(t *testing.T) {
	type input struct {
		TotalSemesters int  `json:"total_semesters" validate:"max=12"`
		ProgramID      uint `json:"program_id" validate:"required"`
	}

	v := NewValidator()

	errs := FromStruct(v.ValidateStruct(input{TotalSemesters: 15}))
	if len(errs["total_semesters"]) == 0 {
		t.Errorf("expected message under total_semesters, got keys: %v", errs)
	}
	if len(errs["program_id"]) == 0 {
		t.Errorf("expected message under program_id, got keys: %v", errs)
	}
	if len(errs["totalsemesters"]) != 0 {
		t.Errorf("lowercased Go field name leaked into the error keys: %v", errs)
	}
}
