package cron

import (
	"strings"
	"sync"
	"testing"

	"github.com/campushq/lms-api/model"
	"gorm.io/gorm/schema"
)

func TestAuditSummaryFilterMatchesSchema(t *testing.T) {
	sch, err := schema.Parse(&model.AuditTrail{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("failed to parse audit trail schema: %v", err)
	}

	column := strings.Fields(auditSummaryFilter)[0]
	if _, ok := sch.FieldsByDBName[column]; !ok {
		t.Fatalf("summary filter column %q is not a column of %s", column, sch.Table)
	}

	// The trail has no gorm bookkeeping columns; a filter on created_at
	// would be rejected by the server.
	if _, ok := sch.FieldsByDBName["created_at"]; ok {
		t.Errorf("audit trail unexpectedly has a created_at column")
	}
}
