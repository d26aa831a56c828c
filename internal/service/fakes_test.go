package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/domain"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/repository"
)

// In-memory repository fakes. They return pgx.ErrNoRows for missing rows so
// the services' error mapping is exercised the same way as against postgres.

type fakeTicketRepo struct {
	mu      sync.Mutex
	seq     int
	tickets map[string]*domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*domain.Ticket)}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	ticket.SetID(fmt.Sprintf("ticket-%d", r.seq))
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	copied.ClearDomainEvents()
	return &copied, nil
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Ticket
	for _, ticket := range r.tickets {
		if filter.RequesterID != nil && ticket.RequesterID != *filter.RequesterID {
			continue
		}
		if filter.AreaID != nil && ticket.AreaID != *filter.AreaID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, ticket.Status) {
			continue
		}
		if filter.SearchTerm != nil && !strings.Contains(ticket.Title, *filter.SearchTerm) {
			continue
		}
		copied := *ticket
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeTicketRepo) ListOpenByArea(_ context.Context, areaID string) ([]*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Ticket
	for _, ticket := range r.tickets {
		if ticket.AreaID == areaID && !ticket.Status.IsClosed() {
			copied := *ticket
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeTicketRepo) ListResolvedByAreaAndPriority(_ context.Context, areaID string, priority domain.Priority) ([]*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Ticket
	for _, ticket := range r.tickets {
		if ticket.AreaID == areaID && ticket.Priority == priority && ticket.ResolutionTime != nil {
			copied := *ticket
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	return nil
}

func containsStatus(statuses []domain.Status, status domain.Status) bool {
	for _, candidate := range statuses {
		if candidate == status {
			return true
		}
	}
	return false
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ListByArea(_ context.Context, areaID string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.User
	for _, user := range r.users {
		if user.AreaID != nil && *user.AreaID == areaID {
			result = append(result, user)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = passwordHash
	return nil
}

type fakeAreaRepo struct {
	mu    sync.Mutex
	areas map[string]*domain.Area
}

func newFakeAreaRepo(areas ...*domain.Area) *fakeAreaRepo {
	repo := &fakeAreaRepo{areas: make(map[string]*domain.Area)}
	for _, area := range areas {
		repo.areas[area.ID] = area
	}
	return repo
}

func (r *fakeAreaRepo) Create(_ context.Context, area *domain.Area) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if area.ID == "" {
		area.ID = fmt.Sprintf("area-%d", len(r.areas)+1)
	}
	r.areas[area.ID] = area
	return nil
}

func (r *fakeAreaRepo) Update(_ context.Context, area *domain.Area) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.areas[area.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.areas[area.ID] = area
	return nil
}

func (r *fakeAreaRepo) GetByID(_ context.Context, id string) (*domain.Area, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	area, ok := r.areas[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return area, nil
}

func (r *fakeAreaRepo) GetByName(_ context.Context, name string) (*domain.Area, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, area := range r.areas {
		if strings.EqualFold(area.Name, name) {
			return area, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAreaRepo) ListAll(_ context.Context) ([]*domain.Area, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Area
	for _, area := range r.areas {
		result = append(result, area)
	}
	return result, nil
}

func (r *fakeAreaRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.areas[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.areas, id)
	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	seq      int
	comments map[string]*domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*domain.Comment)}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	comment.ID = fmt.Sprintf("comment-%d", r.seq)
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id string) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment, ok := r.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return comment, nil
}

func (r *fakeCommentRepo) ListByTicket(_ context.Context, ticketID string) ([]*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Comment
	for i := 1; i <= r.seq; i++ {
		comment, ok := r.comments[fmt.Sprintf("comment-%d", i)]
		if ok && comment.TicketID == ticketID {
			result = append(result, comment)
		}
	}
	return result, nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.comments, id)
	return nil
}

type fakeSLARepo struct {
	mu   sync.Mutex
	seq  int
	slas map[string]*domain.SLA
}

func newFakeSLARepo() *fakeSLARepo {
	return &fakeSLARepo{slas: make(map[string]*domain.SLA)}
}

func (r *fakeSLARepo) Create(_ context.Context, sla *domain.SLA) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	sla.ID = fmt.Sprintf("sla-%d", r.seq)
	r.slas[sla.ID] = sla
	return nil
}

func (r *fakeSLARepo) Update(_ context.Context, sla *domain.SLA) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.slas[sla.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.slas[sla.ID] = sla
	return nil
}

func (r *fakeSLARepo) GetByID(_ context.Context, id string) (*domain.SLA, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sla, ok := r.slas[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return sla, nil
}

func (r *fakeSLARepo) GetByAreaAndPriority(_ context.Context, areaID string, priority domain.Priority) (*domain.SLA, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sla := range r.slas {
		if sla.AreaID == areaID && sla.Priority == priority && sla.IsActive {
			return sla, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeSLARepo) ListByArea(_ context.Context, areaID string) ([]*domain.SLA, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.SLA
	for _, sla := range r.slas {
		if sla.AreaID == areaID {
			result = append(result, sla)
		}
	}
	return result, nil
}

func (r *fakeSLARepo) ListAll(_ context.Context) ([]*domain.SLA, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.SLA
	for _, sla := range r.slas {
		result = append(result, sla)
	}
	return result, nil
}

func (r *fakeSLARepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.slas[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.slas, id)
	return nil
}
