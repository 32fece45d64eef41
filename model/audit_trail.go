package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditAction is the kind of event an audit record captures
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
	AuditActionLogin  AuditAction = "LOGIN"
	AuditActionLogout AuditAction = "LOGOUT"
)

// AuditTrail is an append-only record of who changed what and when.
// Rows are never updated or deleted by the system; there is no DeletedAt.
type AuditTrail struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	ActorID    *uint          `gorm:"index" json:"actor_id,omitempty"` // NULL for unauthenticated/system actions
	Action     AuditAction    `gorm:"type:varchar(10);not null;index" json:"action"`
	EntityName string         `gorm:"type:varchar(50);not null;index" json:"entity_name"`
	OccurredAt time.Time      `gorm:"not null;index" json:"occurred_at"` // UTC
	IPAddress  string         `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent  string         `gorm:"type:varchar(255)" json:"user_agent"`
	Detail     datatypes.JSON `gorm:"type:jsonb" json:"detail,omitempty"` // Optional entity snapshot or key fields

	// Relationships
	Actor *Person `gorm:"foreignKey:ActorID;constraint:OnDelete:SET NULL" json:"actor,omitempty"`
}

// TableName specifies the table name for AuditTrail
func (AuditTrail) TableName() string {
	return "audit_trail"
}
