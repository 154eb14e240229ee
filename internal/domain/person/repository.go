package person

import (
	"context"
	"time"
)

// Collection is a lazily evaluated people listing.
type Collection interface {
	Count(ctx context.Context) (int, error)
	Slice(ctx context.Context, offset, limit int) ([]*Person, error)
	All(ctx context.Context) ([]*Person, error)
}

type Repository interface {
	FetchPersonByID(ctx context.Context, id ID) (*Person, error)
	FetchPersonByUsername(ctx context.Context, username string) (*Person, error)
	QueryPeople(filter Filter) Collection
	CreatePerson(ctx context.Context, p Person) (*Person, error)
	UpdatePerson(ctx context.Context, p Person) (*Person, error)
	UpdateLastLogin(ctx context.Context, id ID, at time.Time) error
	DeletePerson(ctx context.Context, id ID) (bool, error)
}
