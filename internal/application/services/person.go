package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"person-manager-api/internal/application/ports"
	domain "person-manager-api/internal/domain/person"
	"person-manager-api/internal/domain/role"
	"person-manager-api/internal/infrastructure/metrics"
	"person-manager-api/internal/infrastructure/mq"
	dto "person-manager-api/internal/interface/api/rest/dto/person"
)

type PersonService struct {
	personRepository domain.Repository
	roleRepository   role.Repository
	events           ports.EventPublisher
	mCounter         *prometheus.CounterVec
}

func NewPersonService(
	personRepository domain.Repository,
	roleRepository role.Repository,
	events ports.EventPublisher,
	mCounter *prometheus.CounterVec,
) ports.PersonService {
	return &PersonService{
		personRepository: personRepository,
		roleRepository:   roleRepository,
		events:           events,
		mCounter:         mCounter,
	}
}

func (ps *PersonService) FindPersonByID(ctx context.Context, id domain.ID) (*domain.Person, error) {
	p, err := ps.personRepository.FetchPersonByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPersonNotFound
	}

	return p, nil
}

func (ps *PersonService) QueryPeople(filter domain.Filter) domain.Collection {
	return ps.personRepository.QueryPeople(filter)
}

func (ps *PersonService) CreatePerson(ctx context.Context, in domain.Changes) (*domain.Person, error) {
	p := domain.Person{IsActive: true}
	if err := ps.apply(ctx, &p, in); err != nil {
		return nil, err
	}

	pRet, err := ps.personRepository.CreatePerson(ctx, p)
	if err != nil {
		return nil, err
	}

	ps.publish(http.MethodPost, pRet)
	ps.mCounter.WithLabelValues(metrics.PersonCreated).Inc()

	return pRet, nil
}

// UpdatePerson applies in on top of the stored record. Full and partial
// updates differ only in how the request was validated.
func (ps *PersonService) UpdatePerson(ctx context.Context, id domain.ID, in domain.Changes) (*domain.Person, error) {
	p, err := ps.FindPersonByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = ps.apply(ctx, p, in); err != nil {
		return nil, err
	}

	pRet, err := ps.personRepository.UpdatePerson(ctx, *p)
	if err != nil {
		return nil, err
	}
	if pRet == nil {
		return nil, domain.ErrPersonNotFound
	}

	ps.publish(http.MethodPut, pRet)
	ps.mCounter.WithLabelValues(metrics.PersonUpdated).Inc()

	return pRet, nil
}

func (ps *PersonService) DeletePerson(ctx context.Context, id domain.ID) error {
	p, err := ps.FindPersonByID(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := ps.personRepository.DeletePerson(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrPersonNotFound
	}

	ps.publish(http.MethodDelete, p)
	ps.mCounter.WithLabelValues(metrics.PersonDeleted).Inc()

	return nil
}

func (ps *PersonService) apply(ctx context.Context, p *domain.Person, in domain.Changes) error {
	in.Apply(p)

	if in.Password != nil {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return err
		}
		p.PasswordHash = hash
	}

	if in.Role != nil {
		r, err := ps.roleRepository.GetOrCreateRole(ctx, *in.Role, role.DefaultDescription(*in.Role))
		if err != nil {
			return err
		}
		p.Role = r
	}

	return nil
}

func (ps *PersonService) publish(method string, p *domain.Person) {
	ps.events.Publish(mq.NewEvent(method, uint64(p.ID), dto.ToMap(p)))
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hash), nil
}
