package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/restaurant-pos/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	SessionStatusOpen   = "open"
	SessionStatusClosed = "closed"
)

// SessionFilter narrows ListSessions. Zero values mean no filter.
type SessionFilter struct {
	TableID *uint
	Status  string
}

type SessionService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{DB: db, Now: utcNow}
}

// OpenSession starts a new session on a table. Only the most recently opened
// session of the table decides whether it is still occupied.
func (s *SessionService) OpenSession(ctx context.Context, tableID uint) (*models.TableSession, error) {
	var session models.TableSession
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.Select("id").First(&table, tableID).Error; err != nil {
			return lookupError(err, "table", tableID)
		}

		latest, err := latestSession(tx, tableID)
		if err != nil {
			return err
		}
		if latest != nil && latest.IsOpen() {
			return newError(ErrConflict, "table %d already has open session %d", tableID, latest.ID)
		}

		marker := tableID
		session = models.TableSession{
			TableID:     tableID,
			OpenedAt:    s.Now(),
			OpenTableID: &marker,
		}
		if err := tx.Create(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return newError(ErrConflict, "table %d already has an open session", tableID)
			}
			return fmt.Errorf("create table session: %w", err)
		}
		return logActivity(tx, models.EntityTableSession, session.ID, models.ActionOpen, &session.ID, session.OpenedAt)
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// CloseSession moves an open session to closed. Closing twice is a conflict.
func (s *SessionService) CloseSession(ctx context.Context, sessionID uint) (*models.TableSession, error) {
	var session models.TableSession
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&session, sessionID).Error; err != nil {
			return lookupError(err, "table session", sessionID)
		}
		if !session.IsOpen() {
			return newError(ErrConflict, "table session %d is already closed", sessionID)
		}

		now := s.Now()
		res := tx.Model(&models.TableSession{}).
			Where("id = ? AND closed_at IS NULL", sessionID).
			Updates(map[string]interface{}{"closed_at": now, "open_table_id": nil})
		if res.Error != nil {
			return fmt.Errorf("close table session %d: %w", sessionID, res.Error)
		}
		if res.RowsAffected == 0 {
			return newError(ErrConflict, "table session %d is already closed", sessionID)
		}

		session.ClosedAt = &now
		session.OpenTableID = nil
		return logActivity(tx, models.EntityTableSession, session.ID, models.ActionClose, &session.ID, now)
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessions returns sessions ordered by closed_at ascending. Open sessions
// have no closed_at and are always listed first.
func (s *SessionService) ListSessions(ctx context.Context, filter SessionFilter) ([]models.TableSession, error) {
	q := s.DB.WithContext(ctx).Model(&models.TableSession{})
	if filter.TableID != nil {
		q = q.Where("table_id = ?", *filter.TableID)
	}
	switch filter.Status {
	case "":
	case SessionStatusOpen:
		q = q.Where("closed_at IS NULL")
	case SessionStatusClosed:
		q = q.Where("closed_at IS NOT NULL")
	default:
		return nil, newError(ErrValidation, "unknown session status %q", filter.Status)
	}

	sessions := []models.TableSession{}
	err := q.Order("CASE WHEN closed_at IS NULL THEN 0 ELSE 1 END").
		Order("closed_at ASC").
		Order("id ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("list table sessions: %w", err)
	}
	return sessions, nil
}

func (s *SessionService) GetSession(ctx context.Context, sessionID uint) (*models.TableSession, error) {
	var session models.TableSession
	if err := s.DB.WithContext(ctx).First(&session, sessionID).Error; err != nil {
		return nil, lookupError(err, "table session", sessionID)
	}
	return &session, nil
}

// OpenSessionForTable returns the session currently occupying a table.
func (s *SessionService) OpenSessionForTable(ctx context.Context, tableID uint) (*models.TableSession, error) {
	var session *models.TableSession
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.Select("id").First(&table, tableID).Error; err != nil {
			return lookupError(err, "table", tableID)
		}
		latest, err := latestSession(tx, tableID)
		if err != nil {
			return err
		}
		if latest == nil || !latest.IsOpen() {
			return newError(ErrNotFound, "table %d has no open session", tableID)
		}
		session = latest
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Activity lists the activity entries recorded for a session, oldest first.
func (s *SessionService) Activity(ctx context.Context, sessionID uint) ([]models.ActivityLog, error) {
	entries := []models.ActivityLog{}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session models.TableSession
		if err := tx.Select("id").First(&session, sessionID).Error; err != nil {
			return lookupError(err, "table session", sessionID)
		}
		if err := tx.Where("table_session_id = ?", sessionID).Order("id ASC").Find(&entries).Error; err != nil {
			return fmt.Errorf("list activity for table session %d: %w", sessionID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// latestSession returns the most recently opened session of a table, or nil.
func latestSession(tx *gorm.DB, tableID uint) (*models.TableSession, error) {
	var session models.TableSession
	err := tx.Where("table_id = ?", tableID).
		Order("opened_at DESC").
		Order("id DESC").
		Take(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load latest session of table %d: %w", tableID, err)
	}
	return &session, nil
}
