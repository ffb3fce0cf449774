package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the exercise session store.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&exerciseSessionRecord{})
}

// Exercise session schema mirrors the exercise Postgres adapter.
type exerciseSessionRecord struct {
	ID          string         `gorm:"primaryKey;column:id;size:64"`
	Step        string         `gorm:"column:step;type:varchar(16);index"`
	OfferID     string         `gorm:"column:offer_id;size:32"`
	OrderNumber string         `gorm:"column:order_number;size:32"`
	ItemRefs    pq.StringArray `gorm:"column:item_refs;type:text[]"`
	State       []byte         `gorm:"column:state;type:jsonb"`
	ExpiresAt   *time.Time     `gorm:"column:expires_at;index"`
	CreatedAt   time.Time      `gorm:"column:created_at;index"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (exerciseSessionRecord) TableName() string { return "exercise_sessions" }
