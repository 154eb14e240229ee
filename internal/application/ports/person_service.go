package ports

import (
	"context"

	"person-manager-api/internal/domain/person"
)

type PersonService interface {
	FindPersonByID(ctx context.Context, id person.ID) (*person.Person, error)
	QueryPeople(filter person.Filter) person.Collection
	CreatePerson(ctx context.Context, in person.Changes) (*person.Person, error)
	UpdatePerson(ctx context.Context, id person.ID, in person.Changes) (*person.Person, error)
	DeletePerson(ctx context.Context, id person.ID) error
}
