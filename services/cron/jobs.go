package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/campushq/lms-api/model"
)

// CleanupTokenBlacklist removes blacklist entries for tokens that have
// already expired on their own. Runs hourly.
func (m *CronManager) CleanupTokenBlacklist() {
	jobName := "cleanup_token_blacklist"

	result := m.db.Unscoped().
		Where("expires_at < ?", time.Now()).
		Delete(&model.JWTTokenBlacklist{})
	if result.Error != nil {
		m.logJobError(jobName, fmt.Errorf("failed to delete expired blacklist entries: %w", result.Error))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d expired blacklist entries", result.RowsAffected))
}

// CleanupPasswordResets removes password reset tokens that expired or were
// used more than 24 hours ago. Runs every 30 minutes.
func (m *CronManager) CleanupPasswordResets() {
	jobName := "cleanup_password_resets"

	cutoff := time.Now().Add(-24 * time.Hour)
	result := m.db.Unscoped().
		Where("expires_at < ? OR used_at < ?", time.Now(), cutoff).
		Delete(&model.PasswordResetToken{})
	if result.Error != nil {
		m.logJobError(jobName, fmt.Errorf("failed to delete stale reset tokens: %w", result.Error))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d stale reset tokens", result.RowsAffected))
}

// CloseCompletedSessions marks ongoing course allocations as completed when
// every semester carrying their session has been completed. Runs daily.
func (m *CronManager) CloseCompletedSessions() {
	jobName := "close_completed_sessions"

	// Sessions where at least one semester is completed and none remain active
	var sessions []string
	err := m.db.Model(&model.Semester{}).
		Where("session != ''").
		Group("session").
		Having("COUNT(*) FILTER (WHERE status != ?) = 0", model.SemesterStatusCompleted).
		Pluck("session", &sessions).Error
	if err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to find completed sessions: %w", err))
		return
	}

	if len(sessions) == 0 {
		m.logJobComplete(jobName, "No completed sessions with open allocations")
		return
	}

	closed := int64(0)
	for _, session := range sessions {
		result := m.db.Model(&model.CourseAllocation{}).
			Where("session = ? AND status = ?", session, model.AllocationStatusOngoing).
			Update("status", model.AllocationStatusCompleted)
		if result.Error != nil {
			log.Printf("[CRON] Failed to close allocations for session %s: %v", session, result.Error)
			continue
		}
		closed += result.RowsAffected
	}

	m.logJobComplete(jobName, fmt.Sprintf("Closed %d allocations across %d sessions", closed, len(sessions)))
}

// auditSummaryFilter scopes the daily summary to the trail's own timestamp.
// AuditTrail carries no gorm bookkeeping columns, so occurred_at is the only
// time column the table has.
const auditSummaryFilter = "occurred_at >= ?"

// AuditDailySummary counts the previous day's audit trail activity per
// action and records the breakdown. Runs daily.
func (m *CronManager) AuditDailySummary() {
	jobName := "audit_daily_summary"

	since := time.Now().Add(-24 * time.Hour)

	type actionCount struct {
		Action string
		Count  int64
	}
	var counts []actionCount
	err := m.db.Model(&model.AuditTrail{}).
		Select("action, COUNT(*) as count").
		Where(auditSummaryFilter, since).
		Group("action").
		Order("count DESC").
		Scan(&counts).Error
	if err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to summarize audit trail: %w", err))
		return
	}

	if len(counts) == 0 {
		m.logJobComplete(jobName, "No audit activity in the last 24 hours")
		return
	}

	total := int64(0)
	summary := ""
	for _, c := range counts {
		total += c.Count
		if summary != "" {
			summary += ", "
		}
		summary += fmt.Sprintf("%s=%d", c.Action, c.Count)
	}

	m.logJobComplete(jobName, fmt.Sprintf("%d audit entries in the last 24h (%s)", total, summary))
}
