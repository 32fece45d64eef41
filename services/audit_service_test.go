package services

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/campushq/lms-api/model"
	"github.com/campushq/lms-api/utils"
)

// fakeSink captures inserted audit rows in memory
type fakeSink struct {
	records []model.AuditTrail
	err     error
}

func (f *fakeSink) Insert(rec model.AuditTrail) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

func TestRecordCapturesActorAndDetail(t *testing.T) {
	sink := &fakeSink{}
	svc := NewAuditService(nil, sink, utils.NewLogger())

	personID := uint(42)
	actor := Actor{PersonID: &personID, IPAddress: "10.0.0.7", UserAgent: "curl/8.0"}

	svc.Record(actor, model.AuditActionCreate, "Course", map[string]interface{}{"id": 7, "code": "CS101"})

	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	rec := sink.records[0]

	if rec.ActorID == nil || *rec.ActorID != 42 {
		t.Errorf("actor id not captured: %v", rec.ActorID)
	}
	if rec.Action != model.AuditActionCreate {
		t.Errorf("action = %s, want CREATE", rec.Action)
	}
	if rec.EntityName != "Course" {
		t.Errorf("entity = %s, want Course", rec.EntityName)
	}
	if rec.OccurredAt.IsZero() {
		t.Error("occurred_at must be set")
	}
	if rec.IPAddress != "10.0.0.7" || rec.UserAgent != "curl/8.0" {
		t.Errorf("client metadata not captured: %s / %s", rec.IPAddress, rec.UserAgent)
	}

	var detail map[string]interface{}
	if err := json.Unmarshal(rec.Detail, &detail); err != nil {
		t.Fatalf("detail is not valid JSON: %v", err)
	}
	if detail["code"] != "CS101" {
		t.Errorf("detail code = %v, want CS101", detail["code"])
	}
}

func TestRecordAbsentActor(t *testing.T) {
	sink := &fakeSink{}
	svc := NewAuditService(nil, sink, utils.NewLogger())

	svc.Record(Actor{IPAddress: "10.0.0.9"}, model.AuditActionLogin, "User", nil)

	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	if sink.records[0].ActorID != nil {
		t.Error("anonymous actor must be recorded with no actor id")
	}
	if len(sink.records[0].Detail) != 0 {
		t.Errorf("nil detail should stay empty, got %s", sink.records[0].Detail)
	}
}

func TestRecordTruncatesClientMetadata(t *testing.T) {
	sink := &fakeSink{}
	svc := NewAuditService(nil, sink, utils.NewLogger())

	longIP := strings.Repeat("f", 100)
	longUA := strings.Repeat("x", 500)
	svc.Record(Actor{IPAddress: longIP, UserAgent: longUA}, model.AuditActionUpdate, "Student", nil)

	rec := sink.records[0]
	if len(rec.IPAddress) != 45 {
		t.Errorf("ip address should be truncated to 45, got %d", len(rec.IPAddress))
	}
	if len(rec.UserAgent) != 255 {
		t.Errorf("user agent should be truncated to 255, got %d", len(rec.UserAgent))
	}
}

func TestRecordTruncatesAtRuneBoundary(t *testing.T) {
	sink := &fakeSink{}
	svc := NewAuditService(nil, sink, utils.NewLogger())

	// 253 ASCII bytes followed by multi-byte runes; a byte slice at 255
	// would land in the middle of the first 3-byte rune.
	ua := strings.Repeat("x", 253) + strings.Repeat("中", 5)
	svc.Record(Actor{UserAgent: ua}, model.AuditActionUpdate, "Student", nil)

	rec := sink.records[0]
	if len(rec.UserAgent) > 255 {
		t.Errorf("user agent exceeds 255 bytes: %d", len(rec.UserAgent))
	}
	if !utf8.ValidString(rec.UserAgent) {
		t.Errorf("truncated user agent is not valid UTF-8: %q", rec.UserAgent)
	}
	if !strings.HasPrefix(ua, rec.UserAgent) {
		t.Errorf("truncated user agent is not a prefix of the original: %q", rec.UserAgent)
	}
}

func TestRecordSwallowsSinkFailure(t *testing.T) {
	sink := &fakeSink{err: errors.New("connection refused")}
	svc := NewAuditService(nil, sink, utils.NewLogger())

	// Must not panic or propagate: the business mutation already committed.
	svc.Record(Actor{}, model.AuditActionDelete, "Program", map[string]interface{}{"id": 3})

	if len(sink.records) != 0 {
		t.Errorf("failed insert should not record anything, got %d", len(sink.records))
	}
}
