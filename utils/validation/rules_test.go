package validation

import (
	"testing"
	"time"
)

func TestNormalizeCode(t *testing.T) {
	cases := map[string]string{
		" cs101 ":  "CS101",
		"cs-bs":    "CS-BS",
		"FA24-001": "FA24-001",
	}
	for in, want := range cases {
		if got := NormalizeCode(in); got != want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidProgramCode(t *testing.T) {
	valid := []string{"CS-BS", "MBA", "SE-MS", "BBA2"}
	for _, code := range valid {
		if !ValidProgramCode(code) {
			t.Errorf("expected %q to be a valid program code", code)
		}
	}

	invalid := []string{"", "cs-bs", "CS BS", "-CS", "CS-", "TOOLONGCODE1"}
	for _, code := range invalid {
		if ValidProgramCode(code) {
			t.Errorf("expected %q to be rejected", code)
		}
	}
}

func TestValidCourseCode(t *testing.T) {
	valid := []string{"CS101", "MATH1001", "SE305"}
	for _, code := range valid {
		if !ValidCourseCode(code) {
			t.Errorf("expected %q to be a valid course code", code)
		}
	}

	invalid := []string{"", "C101", "CS10", "COURSE101", "101CS", "cs101"}
	for _, code := range invalid {
		if ValidCourseCode(code) {
			t.Errorf("expected %q to be rejected", code)
		}
	}
}

func TestValidRegNo(t *testing.T) {
	valid := []string{"FA24-001", "SP23-BCS-042", "2024001"}
	for _, regNo := range valid {
		if !ValidRegNo(regNo) {
			t.Errorf("expected %q to be a valid registration number", regNo)
		}
	}

	invalid := []string{"", "fa24-001", "FA24 001", "-FA24", "FA24-001-EXTRA-LONG-X"}
	for _, regNo := range invalid {
		if ValidRegNo(regNo) {
			t.Errorf("expected %q to be rejected", regNo)
		}
	}
}

func TestValidBatchYear(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	if !ValidBatchYear(2024, now) {
		t.Error("recent past year should be valid")
	}
	if !ValidBatchYear(now.Year()+MaxBatchYearAhead, now) {
		t.Error("year at the upper bound should be valid")
	}
	if ValidBatchYear(1999, now) {
		t.Error("year before 2000 should be rejected")
	}
	if ValidBatchYear(now.Year()+MaxBatchYearAhead+1, now) {
		t.Error("year past the upper bound should be rejected")
	}
}

func TestAgeAt(t *testing.T) {
	dob := time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC)

	if got := AgeAt(dob, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)); got != 26 {
		t.Errorf("age on birthday = %d, want 26", got)
	}
	if got := AgeAt(dob, time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)); got != 25 {
		t.Errorf("age the day before birthday = %d, want 25", got)
	}
	if got := AgeAt(dob, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)); got != 26 {
		t.Errorf("age after birthday = %d, want 26", got)
	}
}

func TestCheckLectureWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("valid window", func(t *testing.T) {
		errs := NewErrors()
		start := now.Add(1 * time.Hour)
		CheckLectureWindow(start, start.Add(90*time.Minute), now, errs)
		if errs.HasErrors() {
			t.Errorf("expected no errors, got %v", errs)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		errs := NewErrors()
		start := now.Add(1 * time.Hour)
		CheckLectureWindow(start, start.Add(-10*time.Minute), now, errs)
		if len(errs["end_time"]) == 0 {
			t.Errorf("expected end_time error, got %v", errs)
		}
	})

	t.Run("too long", func(t *testing.T) {
		errs := NewErrors()
		start := now.Add(1 * time.Hour)
		CheckLectureWindow(start, start.Add(MaxLectureDuration+time.Minute), now, errs)
		if len(errs["end_time"]) == 0 {
			t.Errorf("expected end_time error, got %v", errs)
		}
	})

	t.Run("too far in the past", func(t *testing.T) {
		errs := NewErrors()
		start := now.Add(-MaxLectureBackdate - time.Hour)
		CheckLectureWindow(start, start.Add(time.Hour), now, errs)
		if len(errs["start_time"]) == 0 {
			t.Errorf("expected start_time error, got %v", errs)
		}
	})
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello\x00world  "); got != "helloworld" {
		t.Errorf("SanitizeString = %q", got)
	}
}
