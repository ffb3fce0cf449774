package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/domain"
	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/ports"
)

// DefaultSessionTTL provides the fallback TTL when none is configured.
const DefaultSessionTTL = 24 * time.Hour

// SessionStore persists exercise sessions in PostgreSQL. The full exercise is
// stored as JSON next to a few queryable columns.
type SessionStore struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewSessionStore wires a PostgreSQL-backed session store. Caller owns DB lifecycle.
func NewSessionStore(db *gorm.DB, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{db: db, ttl: ttl, now: time.Now}
}

type sessionRecord struct {
	ID          string           `gorm:"primaryKey;column:id;size:64"`
	Step        string           `gorm:"column:step;type:varchar(16);index"`
	OfferID     string           `gorm:"column:offer_id;size:32"`
	OrderNumber string           `gorm:"column:order_number;size:32"`
	ItemRefs    pq.StringArray   `gorm:"column:item_refs;type:text[]"`
	State       *domain.Exercise `gorm:"column:state;type:jsonb;serializer:json"`
	ExpiresAt   *time.Time       `gorm:"column:expires_at;index"`
	CreatedAt   time.Time        `gorm:"column:created_at;index"`
	UpdatedAt   time.Time        `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "exercise_sessions" }

// Save upserts the session and pushes its expiry forward by the TTL.
func (s *SessionStore) Save(ctx context.Context, exercise *domain.Exercise) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if exercise == nil || strings.TrimSpace(exercise.ID) == "" {
		return errors.New("exercise with an id is required")
	}
	rec := toRecord(exercise, s.now().Add(s.ttl))
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"step", "offer_id", "order_number", "item_refs", "state", "expires_at", "updated_at"}),
		}).
		Create(&rec).Error
}

// Get loads a live session. Expired rows are reported as missing even before purge.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Exercise, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var rec sessionRecord
	err := s.db.WithContext(ctx).
		Where("id = ? AND (expires_at IS NULL OR expires_at > ?)", strings.TrimSpace(id), s.now()).
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if rec.State == nil {
		return nil, errors.New("exercise session has no stored state")
	}
	return rec.State, nil
}

// Delete removes a session by id.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&sessionRecord{}, "id = ?", id).Error
}

// PurgeExpired removes all expired sessions. Use for housekeeping or cron.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", s.now()).
		Delete(&sessionRecord{})
	return result.RowsAffected, result.Error
}

func (s *SessionStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres session store not configured")
	}
	return nil
}

func toRecord(exercise *domain.Exercise, expiresAt time.Time) sessionRecord {
	rec := sessionRecord{
		ID:        exercise.ID,
		Step:      string(exercise.Step),
		State:     exercise.Clone(),
		ItemRefs:  pq.StringArray{},
		ExpiresAt: &expiresAt,
		CreatedAt: exercise.CreatedAt,
		UpdatedAt: exercise.UpdatedAt,
	}
	if exercise.Offer != nil {
		rec.OfferID = exercise.Offer.ID
	}
	if exercise.Order != nil {
		rec.OrderNumber = exercise.Order.Number
		for _, line := range exercise.Order.Items {
			rec.ItemRefs = append(rec.ItemRefs, line.Item.Reference)
		}
	}
	return rec
}

var _ ports.SessionStore = (*SessionStore)(nil)
