package shared

// AggregateRoot is an entity that records domain events and carries a
// version for optimistic locking.
type AggregateRoot interface {
	Entity
	AddDomainEvent(event DomainEvent)
	PendingEvents() []DomainEvent
	PullEvents() []DomainEvent
}

// BaseAggregateRoot is embedded by the storefront aggregates
type BaseAggregateRoot struct {
	BaseEntity
	Version int
	pending []DomainEvent
}

// NewBaseAggregateRoot returns an unsaved aggregate at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

// MarkChanged stamps the update time and bumps the version.
// The storage layer compares against the version the record was loaded with.
func (a *BaseAggregateRoot) MarkChanged() {
	a.Touch()
	a.Version++
}

// AddDomainEvent records an event to be published after the next save
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.pending = append(a.pending, event)
}

// PendingEvents returns the recorded events without clearing them
func (a *BaseAggregateRoot) PendingEvents() []DomainEvent {
	return a.pending
}

// PullEvents hands over the recorded events and clears them. Events raised
// before the first save get the identifier the storage layer assigned.
func (a *BaseAggregateRoot) PullEvents() []DomainEvent {
	events := a.pending
	a.pending = nil
	for _, e := range events {
		if b, ok := e.(aggregateIDBinder); ok {
			b.BindAggregateID(a.ID)
		}
	}
	return events
}

type aggregateIDBinder interface {
	BindAggregateID(id int64)
}
