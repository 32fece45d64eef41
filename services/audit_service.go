package services

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/campushq/lms-api/model"
	"github.com/campushq/lms-api/utils"
	"gorm.io/gorm"
)

// AuditSink appends audit records. Satisfied by database.AuditStore in
// production and by fakes in tests.
type AuditSink interface {
	Insert(rec model.AuditTrail) error
}

// Actor carries the identity and client metadata of the request performing a
// mutation. It is passed explicitly into every mutation entry point; there is
// no ambient request context. A nil PersonID records the event with actor
// absent (system actions, accounts with no Person record).
type Actor struct {
	PersonID  *uint
	IPAddress string
	UserAgent string
}

// AuditService is the capture pipeline for the append-only audit trail.
// Writes go through the dedicated sink; audit-write failure is logged and
// swallowed, never failing the triggering business operation.
type AuditService struct {
	db     *gorm.DB
	sink   AuditSink
	logger *utils.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(db *gorm.DB, sink AuditSink, logger *utils.Logger) *AuditService {
	return &AuditService{
		db:     db,
		sink:   sink,
		logger: logger,
	}
}

// Record appends one audit row for a completed mutation or auth event.
// Fire-and-forget from the caller's perspective: errors never propagate.
func (s *AuditService) Record(actor Actor, action model.AuditAction, entityName string, detail interface{}) {
	rec := model.AuditTrail{
		ActorID:    actor.PersonID,
		Action:     action,
		EntityName: entityName,
		OccurredAt: time.Now().UTC(),
		IPAddress:  truncate(actor.IPAddress, 45),
		UserAgent:  truncate(actor.UserAgent, 255),
	}

	if detail != nil {
		if b, err := json.Marshal(detail); err == nil {
			rec.Detail = b
		}
	}

	if err := s.sink.Insert(rec); err != nil {
		// Availability over completeness: the business mutation already
		// committed, so log the miss and move on.
		s.logger.Log(fmt.Sprintf("audit write failed: action=%s entity=%s err=%v", action, entityName, err))
	}
}

// ResolveActor maps an authenticated login account to its Person record for
// actor attribution. Accounts without a linked Person produce an absent actor
// rather than an error.
func (s *AuditService) ResolveActor(userID uint, ip, userAgent string) Actor {
	actor := Actor{IPAddress: ip, UserAgent: userAgent}

	var person model.Person
	if err := s.db.Where("user_id = ?", userID).First(&person).Error; err == nil {
		actor.PersonID = &person.ID
	}

	return actor
}

// AuditListFilter narrows audit trail queries
type AuditListFilter struct {
	ActorID    *uint
	Action     model.AuditAction
	EntityName string
	From       *time.Time
	To         *time.Time
}

// List returns audit rows matching the filter, newest first
func (s *AuditService) List(filter AuditListFilter, limit, offset int) ([]model.AuditTrail, int64, error) {
	query := s.db.Model(&model.AuditTrail{})

	if filter.ActorID != nil {
		query = query.Where("actor_id = ?", *filter.ActorID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.EntityName != "" {
		query = query.Where("entity_name = ?", filter.EntityName)
	}
	if filter.From != nil {
		query = query.Where("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("occurred_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []model.AuditTrail
	err := query.Preload("Actor").
		Order("occurred_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error

	return records, total, err
}

// Get returns one audit row by id
func (s *AuditService) Get(id uint) (*model.AuditTrail, error) {
	var rec model.AuditTrail
	if err := s.db.Preload("Actor").First(&rec, id).Error; err != nil {
		return nil, translateStoreError("audit record", err)
	}
	return &rec, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// back off to a rune boundary so a multi-byte sequence is not split
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
