package service

import (
	"context"
	"sort"
	"sync"

	"afisha-backend/internal/model"
	"afisha-backend/internal/repository"
)

// fakeDB is an in-memory stand-in for the postgres-backed stores. WithinTx
// holds one big lock for the whole transaction, which models the row-lock
// serialization the real store provides per event, and restores a snapshot
// on error so failed operations leave no partial state, matching the
// all-or-nothing behavior a rolled-back transaction gives.
//
// Store methods themselves do not lock; they are either called inside
// WithinTx or from single-goroutine test code.
type fakeDB struct {
	mu       sync.Mutex
	users    map[string]model.User
	events   map[string]model.Event
	requests map[string]model.ParticipationRequest
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:    make(map[string]model.User),
		events:   make(map[string]model.Event),
		requests: make(map[string]model.ParticipationRequest),
	}
}

func (d *fakeDB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	snapEvents := cloneMap(d.events)
	snapRequests := cloneMap(d.requests)
	snapUsers := cloneMap(d.users)
	if err := fn(ctx); err != nil {
		d.events = snapEvents
		d.requests = snapRequests
		d.users = snapUsers
		return err
	}
	return nil
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// EventStore methods.

func (d *fakeDB) Create(ctx context.Context, e *model.Event) error {
	d.events[e.ID] = *e
	return nil
}

func (d *fakeDB) GetByID(ctx context.Context, id string) (*model.Event, error) {
	e, ok := d.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := e
	return &cp, nil
}

func (d *fakeDB) AcquireForUpdate(ctx context.Context, id string) (*model.Event, error) {
	return d.GetByID(ctx, id)
}

func (d *fakeDB) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, ok := d.events[id]
	return ok, nil
}

func (d *fakeDB) Update(ctx context.Context, e *model.Event) error {
	if _, ok := d.events[e.ID]; !ok {
		return repository.ErrNotFound
	}
	d.events[e.ID] = *e
	return nil
}

func (d *fakeDB) SaveConfirmedCount(ctx context.Context, e *model.Event) error {
	stored, ok := d.events[e.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.ConfirmedRequests = e.ConfirmedRequests
	d.events[e.ID] = stored
	return nil
}

func (d *fakeDB) ListByInitiator(ctx context.Context, initiatorID string, page model.Page) ([]model.Event, error) {
	var out []model.Event
	for _, e := range d.events {
		if e.InitiatorID == initiatorID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return pageSlice(out, page), nil
}

func (d *fakeDB) GetByIDs(ctx context.Context, ids []string) ([]model.Event, error) {
	var out []model.Event
	for _, id := range ids {
		if e, ok := d.events[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (d *fakeDB) List(ctx context.Context, filter model.EventFilter, page model.Page) ([]model.Event, error) {
	var out []model.Event
	for _, e := range d.events {
		if len(filter.States) > 0 && !containsState(filter.States, e.State) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return pageSlice(out, page), nil
}

func containsState(states []model.EventState, s model.EventState) bool {
	for _, st := range states {
		if st == s {
			return true
		}
	}
	return false
}

func pageSlice[T any](s []T, page model.Page) []T {
	if page.Size == 0 {
		page = model.DefaultPage
	}
	if page.From >= len(s) {
		return nil
	}
	end := page.From + page.Size
	if end > len(s) {
		end = len(s)
	}
	return s[page.From:end]
}

// UserStore methods.
//
// The user methods live on a thin view so the method sets of the different
// store interfaces do not collide on the same receiver.

type fakeUsers struct{ db *fakeDB }

func (f fakeUsers) Create(ctx context.Context, u *model.User) error {
	f.db.users[u.ID] = *u
	return nil
}

func (f fakeUsers) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, ok := f.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (f fakeUsers) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, ok := f.db.users[id]
	return ok, nil
}

func (f fakeUsers) List(ctx context.Context, ids []string, page model.Page) ([]model.User, error) {
	var out []model.User
	for _, u := range f.db.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return pageSlice(out, page), nil
}

func (f fakeUsers) Delete(ctx context.Context, id string) error {
	if _, ok := f.db.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.db.users, id)
	return nil
}

// RequestStore methods.

type fakeRequests struct{ db *fakeDB }

func (f fakeRequests) Create(ctx context.Context, req *model.ParticipationRequest) error {
	for _, existing := range f.db.requests {
		if existing.EventID == req.EventID &&
			existing.RequesterID == req.RequesterID &&
			existing.Status != model.RequestStatusCanceled {
			return repository.ErrAlreadyExists
		}
	}
	f.db.requests[req.ID] = *req
	return nil
}

func (f fakeRequests) GetByID(ctx context.Context, id string) (*model.ParticipationRequest, error) {
	req, ok := f.db.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := req
	return &cp, nil
}

func (f fakeRequests) ExistsActive(ctx context.Context, requesterID, eventID string) (bool, error) {
	for _, req := range f.db.requests {
		if req.RequesterID == requesterID && req.EventID == eventID &&
			req.Status != model.RequestStatusCanceled {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeRequests) FindByIDs(ctx context.Context, ids []string) ([]model.ParticipationRequest, error) {
	var out []model.ParticipationRequest
	for _, id := range ids {
		if req, ok := f.db.requests[id]; ok {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f fakeRequests) UpdateStatus(ctx context.Context, id string, status model.RequestStatus) error {
	req, ok := f.db.requests[id]
	if !ok {
		return repository.ErrNotFound
	}
	req.Status = status
	f.db.requests[id] = req
	return nil
}

func (f fakeRequests) UpdateStatuses(ctx context.Context, ids []string, status model.RequestStatus) error {
	for _, id := range ids {
		if err := f.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
	}
	return nil
}

func (f fakeRequests) ListByRequester(ctx context.Context, requesterID string) ([]model.ParticipationRequest, error) {
	var out []model.ParticipationRequest
	for _, req := range f.db.requests {
		if req.RequesterID == requesterID {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeRequests) ListByEvent(ctx context.Context, eventID string) ([]model.ParticipationRequest, error) {
	var out []model.ParticipationRequest
	for _, req := range f.db.requests {
		if req.EventID == eventID {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CategoryStore methods.

type fakeCategories struct {
	cats map[string]model.Category
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{cats: make(map[string]model.Category)}
}

func (f *fakeCategories) Create(ctx context.Context, c *model.Category) error {
	for _, existing := range f.cats {
		if existing.Name == c.Name {
			return repository.ErrAlreadyExists
		}
	}
	f.cats[c.ID] = *c
	return nil
}

func (f *fakeCategories) Update(ctx context.Context, c *model.Category) error {
	if _, ok := f.cats[c.ID]; !ok {
		return repository.ErrNotFound
	}
	f.cats[c.ID] = *c
	return nil
}

func (f *fakeCategories) GetByID(ctx context.Context, id string) (*model.Category, error) {
	c, ok := f.cats[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (f *fakeCategories) List(ctx context.Context, page model.Page) ([]model.Category, error) {
	var out []model.Category
	for _, c := range f.cats {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return pageSlice(out, page), nil
}

func (f *fakeCategories) Delete(ctx context.Context, id string) error {
	if _, ok := f.cats[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.cats, id)
	return nil
}
