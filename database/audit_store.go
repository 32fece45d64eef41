package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/campushq/lms-api/config"
	"github.com/campushq/lms-api/model"
	_ "github.com/lib/pq"
)

// AuditStore appends audit rows over its own connection, outside the request
// transaction. A failed audit write can never roll back a business mutation,
// and an aborted business transaction never loses a login/logout record.
type AuditStore struct {
	db *sql.DB
}

// StartAuditStore opens a dedicated PostgreSQL connection for the audit trail
func StartAuditStore() (*AuditStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	connectStr := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		getEnv.DB_HOST,
		getEnv.DB_USER_NAME,
		getEnv.DB_PASSWORD,
		getEnv.DB_NAME,
		getEnv.DB_PORT,
		getEnv.DB_SSL_MODE,
	)

	db, err := sql.Open("postgres", connectStr)
	if err != nil {
		log.Println("Unable to open audit trail connection:", err)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		log.Println("Unable to reach PostgreSQL for audit trail:", err)
		return nil, err
	}

	// The audit sink is low traffic; keep the pool small.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	return &AuditStore{db: db}, nil
}

// Insert appends one audit record. The table is append-only; there is no
// update or delete counterpart.
func (s *AuditStore) Insert(rec model.AuditTrail) error {
	query := `
		INSERT INTO audit_trail(actor_id, action, entity_name, occurred_at, ip_address, user_agent, detail)
		VALUES($1, $2, $3, $4, $5, $6, $7);
	`

	var detail interface{}
	if len(rec.Detail) > 0 {
		detail = []byte(rec.Detail)
	}

	_, err := s.db.Exec(query,
		rec.ActorID,
		string(rec.Action),
		rec.EntityName,
		rec.OccurredAt,
		rec.IPAddress,
		rec.UserAgent,
		detail,
	)
	return err
}

// Close closes the audit trail connection
func (s *AuditStore) Close() error {
	return s.db.Close()
}
