// Package audit records catalog mutations as retention-bounded events.
// Logging is best-effort: a failed audit write never fails the operation it
// describes.
package audit

import (
	"log"

	auditdb "github.com/mrlokans/bookreviews/internal/database/audit"
	"github.com/mrlokans/bookreviews/internal/entities"
)

type Service struct {
	repo *auditdb.Repository
}

func NewService(repo *auditdb.Repository) *Service {
	return &Service{repo: repo}
}

// Record logs a successful mutation.
func (s *Service) Record(userID string, eventType entities.AuditEventType, action, description string, entityID uint) {
	s.log(&entities.AuditEvent{
		UserID:      userID,
		EventType:   eventType,
		Action:      action,
		Description: description,
		EntityID:    entityIDPtr(entityID),
		Status:      entities.AuditStatusSuccess,
	})
}

// RecordFailure logs a rejected or failed mutation attempt.
func (s *Service) RecordFailure(userID string, eventType entities.AuditEventType, action, errorMsg string) {
	s.log(&entities.AuditEvent{
		UserID:    userID,
		EventType: eventType,
		Action:    action,
		Status:    entities.AuditStatusFailed,
		ErrorMsg:  errorMsg,
	})
}

func (s *Service) log(event *entities.AuditEvent) {
	if s == nil || s.repo == nil {
		return
	}
	if err := s.repo.LogEvent(event); err != nil {
		log.Printf("WARNING: failed to write audit event %s: %v", event.Action, err)
	}
}

func entityIDPtr(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}
