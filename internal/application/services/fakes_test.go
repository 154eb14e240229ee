package services

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"person-manager-api/internal/domain/person"
	"person-manager-api/internal/domain/role"
	"person-manager-api/internal/domain/session"
	"person-manager-api/internal/infrastructure/metrics"
	"person-manager-api/internal/infrastructure/mq"
)

func ptr[T any](v T) *T { return &v }

func newTestCounter() *prometheus.CounterVec {
	return metrics.NewCounterWith(prometheus.NewRegistry())
}

// memPeople is an in-memory person.Repository that mimics the database
// defaults: sequential ids, guest role when none is set, age on save.
type memPeople struct {
	mu      sync.Mutex
	nextID  person.ID
	people  map[person.ID]person.Person
	roles   *memRoles
	logins  map[person.ID]time.Time
	fetchFn func(id person.ID) (*person.Person, error)
}

func newMemPeople(roles *memRoles) *memPeople {
	return &memPeople{
		nextID: 1,
		people: map[person.ID]person.Person{},
		roles:  roles,
		logins: map[person.ID]time.Time{},
	}
}

func (m *memPeople) FetchPersonByID(_ context.Context, id person.ID) (*person.Person, error) {
	if m.fetchFn != nil {
		return m.fetchFn(id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.people[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memPeople) FetchPersonByUsername(_ context.Context, username string) (*person.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.people {
		if p.Username == username {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (m *memPeople) QueryPeople(person.Filter) person.Collection { return nil }

func (m *memPeople) save(p person.Person) person.Person {
	p.PrepareForSave(time.Now())
	if p.Role == nil {
		p.Role, _ = m.roles.GetOrCreateRole(context.Background(), role.Guest, role.DefaultDescription(role.Guest))
	}
	m.people[p.ID] = p
	return p
}

func (m *memPeople) CreatePerson(_ context.Context, p person.Person) (*person.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.people {
		if other.Username == p.Username {
			return nil, person.ErrUsernameTaken
		}
	}
	p.ID = m.nextID
	m.nextID++
	out := m.save(p)
	return &out, nil
}

func (m *memPeople) UpdatePerson(_ context.Context, p person.Person) (*person.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.people[p.ID]; !ok {
		return nil, nil
	}
	out := m.save(p)
	return &out, nil
}

func (m *memPeople) UpdateLastLogin(_ context.Context, id person.ID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logins[id] = at
	return nil
}

func (m *memPeople) DeletePerson(_ context.Context, id person.ID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.people[id]; !ok {
		return false, nil
	}
	delete(m.people, id)
	return true, nil
}

type memRoles struct {
	mu     sync.Mutex
	nextID role.ID
	roles  map[role.Name]*role.Role
}

func newMemRoles() *memRoles {
	return &memRoles{nextID: 1, roles: map[role.Name]*role.Role{}}
}

func (m *memRoles) FetchRoles(context.Context) (role.Roles, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out role.Roles
	for _, r := range m.roles {
		out = append(out, r)
	}
	return out, nil
}

func (m *memRoles) FetchRoleByID(_ context.Context, id role.ID) (*role.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.roles {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memRoles) GetOrCreateRole(_ context.Context, name role.Name, description string) (*role.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.roles[name]; ok {
		return r, nil
	}
	r := &role.Role{ID: m.nextID, Name: name, Description: &description}
	m.nextID++
	m.roles[name] = r
	return r, nil
}

func (m *memRoles) DeleteRole(_ context.Context, id role.ID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for n, r := range m.roles {
		if r.ID == id {
			delete(m.roles, n)
			return true, nil
		}
	}
	return false, nil
}

type memSessions struct {
	mu       sync.Mutex
	sessions map[session.ID]session.Session
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: map[session.ID]session.Session{}}
}

func (m *memSessions) CreateSession(_ context.Context, s session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memSessions) FetchSession(_ context.Context, id session.ID) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memSessions) DeleteSession(_ context.Context, id session.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

type recordingPublisher struct {
	events []mq.Event
}

func (r *recordingPublisher) Publish(e mq.Event) { r.events = append(r.events, e) }
