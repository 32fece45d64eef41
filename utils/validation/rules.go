package validation

import (
	"regexp"
	"strings"
	"time"
)

var (
	// ProgramCodeRegex allows alphanumeric characters and hyphens (e.g., "CS-BS")
	ProgramCodeRegex = regexp.MustCompile(`^[A-Z0-9]+(-[A-Z0-9]+)*$`)

	// CourseCodeRegex requires 2-4 letters followed by 3-4 digits (e.g., "CS101")
	CourseCodeRegex = regexp.MustCompile(`^[A-Z]{2,4}[0-9]{3,4}$`)

	// RegNoRegex allows alphanumeric characters and hyphens (e.g., "FA24-001")
	RegNoRegex = regexp.MustCompile(`^[A-Z0-9]+(-[A-Z0-9]+)*$`)
)

const (
	ProgramCodeMaxLen = 10
	CourseCodeMaxLen  = 20
	RegNoMaxLen       = 20

	MinTotalSemesters = 1
	MaxTotalSemesters = 12

	MinCreditHours = 1
	MaxCreditHours = 6

	MinBatchYear = 2000
	// MaxBatchYearAhead bounds batch years relative to the current year
	MaxBatchYearAhead = 5

	MinFacultyAge = 18
	MinStudentAge = 16

	// MaxLectureDuration is the longest allowed single lecture
	MaxLectureDuration = 4 * time.Hour
	// MaxLectureBackdate is how far in the past a lecture may start
	MaxLectureBackdate = 24 * time.Hour

	// MaxAlumniAge bounds how far back a graduation date may lie
	MaxAlumniAge = 10 * 365 * 24 * time.Hour
)

// NormalizeCode upper-cases and trims a natural-key code (program code,
// course code, registration number) so that checks, storage, and lookups
// agree on one canonical form.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidProgramCode checks a normalized program code
func ValidProgramCode(code string) bool {
	return code != "" && len(code) <= ProgramCodeMaxLen && ProgramCodeRegex.MatchString(code)
}

// ValidCourseCode checks a normalized course code
func ValidCourseCode(code string) bool {
	return code != "" && len(code) <= CourseCodeMaxLen && CourseCodeRegex.MatchString(code)
}

// ValidRegNo checks a normalized registration number
func ValidRegNo(regNo string) bool {
	return regNo != "" && len(regNo) <= RegNoMaxLen && RegNoRegex.MatchString(regNo)
}

// MaxBatchYear returns the latest allowed batch year as of now
func MaxBatchYear(now time.Time) int {
	return now.Year() + MaxBatchYearAhead
}

// ValidBatchYear checks a class intake year against the allowed window
func ValidBatchYear(year int, now time.Time) bool {
	return year >= MinBatchYear && year <= MaxBatchYear(now)
}

// AgeAt returns full years elapsed between dob and the reference date
func AgeAt(dob, at time.Time) int {
	years := at.Year() - dob.Year()
	if at.YearDay() < dob.YearDay() {
		years--
	}
	return years
}

// CheckLectureWindow validates a lecture's time window: end after start,
// duration within the allowed maximum, and start not too far in the past.
// Messages are accumulated on the given fields.
func CheckLectureWindow(start, end time.Time, now time.Time, errs Errors) {
	if !end.After(start) {
		errs.Add("end_time", "End time must be after start time")
		return
	}
	if end.Sub(start) > MaxLectureDuration {
		errs.Add("end_time", "Lecture duration must not exceed %d hours", int(MaxLectureDuration.Hours()))
	}
	if start.Before(now.Add(-MaxLectureBackdate)) {
		errs.Add("start_time", "Lecture start must not be more than 1 day in the past")
	}
}

// SanitizeString removes potentially dangerous characters
func SanitizeString(s string) string {
	// Remove null bytes
	s = strings.ReplaceAll(s, "\x00", "")
	// Trim whitespace
	s = strings.TrimSpace(s)
	return s
}
