package shared

import "time"

// Entity is anything with a storage-assigned identifier
type Entity interface {
	GetID() int64
	IsNew() bool
}

// BaseEntity holds the identifier and audit timestamps.
// ID stays zero until the record is first saved.
type BaseEntity struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBaseEntity() BaseEntity {
	now := Now()
	return BaseEntity{CreatedAt: now, UpdatedAt: now}
}

// Now is the timestamp stamped on entities: UTC at the microsecond precision
// the database keeps, so a saved record reads back unchanged.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (e *BaseEntity) GetID() int64 { return e.ID }

// IsNew reports whether the entity has never been saved
func (e *BaseEntity) IsNew() bool { return e.ID == 0 }

// Touch sets UpdatedAt to now
func (e *BaseEntity) Touch() {
	e.UpdatedAt = Now()
}
