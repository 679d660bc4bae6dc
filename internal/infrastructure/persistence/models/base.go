package models

import (
	"time"

	"github.com/storefront/backend/internal/domain/shared"
)

// AggregateModel holds the columns shared by every storefront table.
// Version backs the optimistic lock checked on update. The timestamps are
// written from the aggregate as-is; GORM does not stamp them.
type AggregateModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Version   int       `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (m *AggregateModel) root() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		Version:    m.Version,
	}
}

func (m *AggregateModel) fillFrom(a *shared.BaseAggregateRoot) {
	m.ID = a.ID
	m.Version = a.Version
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
}
