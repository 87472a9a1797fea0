package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"watertracker/internal/model"
	"watertracker/internal/repository"

	"github.com/google/uuid"
)

type AuditLogResponse struct {
	ID         string  `json:"id"`
	UserID     *string `json:"user_id"`
	Username   string  `json:"username,omitempty"`
	Action     string  `json:"action"`
	EntityID   string  `json:"entity_id"`
	EntityName string  `json:"entity_name,omitempty"`
	Details    string  `json:"details"`
	CreatedAt  string  `json:"created_at"`
}

type AuditService interface {
	List(ctx context.Context, filter repository.AuditFilter, page, limit int) ([]AuditLogResponse, int64, error)
	// Log records an audit row. Failures are logged and swallowed; audit
	// writes never fail the underlying operation.
	Log(ctx context.Context, userID, action, entityID, entityName string, details map[string]interface{})
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) List(ctx context.Context, filter repository.AuditFilter, page, limit int) ([]AuditLogResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	logs, total, err := s.repo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		resp := AuditLogResponse{
			ID:         l.ID.String(),
			Action:     l.Action,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt.Format(time.RFC3339),
		}
		if l.UserID != nil {
			id := l.UserID.String()
			resp.UserID = &id
		}
		if l.User != nil {
			resp.Username = l.User.Username
		}
		result = append(result, resp)
	}
	return result, total, nil
}

func (s *auditService) Log(ctx context.Context, userID, action, entityID, entityName string, details map[string]interface{}) {
	var userUUID *uuid.UUID
	if userID != "" {
		if parsed, err := uuid.Parse(userID); err == nil {
			userUUID = &parsed
		}
	}

	payload, _ := json.Marshal(details)
	entry := &model.AuditLog{
		UserID:     userUUID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		log.Printf("audit: failed to record %s for %s: %v", action, entityID, err)
	}
}
