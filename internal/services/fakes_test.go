package services

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"travelguide/internal/models/db_models"
	"travelguide/pkg/utils"
)

type fakeLLM struct {
	mu       sync.Mutex
	replies  []string
	err      error
	requests []utils.ChatRequest
	block    chan struct{}
	panics   bool
}

func (f *fakeLLM) Complete(ctx context.Context, req utils.ChatRequest) (string, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.panics {
		panic("llm client exploded")
	}
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", utils.ErrUpstreamEmptyResponse
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

func (f *fakeLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type fakeTripRepo struct {
	mu    sync.Mutex
	trips map[uuid.UUID]*db_models.Trip
	err   error
}

func newFakeTripRepo(trips ...*db_models.Trip) *fakeTripRepo {
	r := &fakeTripRepo{trips: make(map[uuid.UUID]*db_models.Trip)}
	for _, t := range trips {
		r.trips[t.ID] = t
	}
	return r
}

func (r *fakeTripRepo) Insert(_ context.Context, trip *db_models.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	trip.CreatedAt = int64(len(r.trips) + 1)
	cp := *trip
	r.trips[trip.ID] = &cp
	return nil
}

func (r *fakeTripRepo) FindByIdAndUser(_ context.Context, id, userID uuid.UUID) (*db_models.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.trips[id]
	if !ok || t.UserID != userID {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTripRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]db_models.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.Trip
	for _, t := range r.trips {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (r *fakeTripRepo) Save(_ context.Context, trip *db_models.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *trip
	r.trips[trip.ID] = &cp
	return nil
}

func (r *fakeTripRepo) DeleteWithItineraries(_ context.Context, id, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[id]
	if !ok || t.UserID != userID {
		return false, nil
	}
	delete(r.trips, id)
	return true, nil
}

type fakeItineraryRepo struct {
	mu           sync.Mutex
	byTrip       map[uuid.UUID][]*db_models.Itinerary
	onFindLatest func()
}

func newFakeItineraryRepo() *fakeItineraryRepo {
	return &fakeItineraryRepo{byTrip: make(map[uuid.UUID][]*db_models.Itinerary)}
}

func (r *fakeItineraryRepo) CreateNextVersion(_ context.Context, it *db_models.Itinerary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	it.Version = len(r.byTrip[it.TripID]) + 1
	cp := *it
	r.byTrip[it.TripID] = append(r.byTrip[it.TripID], &cp)
	return nil
}

func (r *fakeItineraryRepo) FindLatestByTrip(_ context.Context, tripID uuid.UUID) (*db_models.Itinerary, error) {
	if r.onFindLatest != nil {
		r.onFindLatest()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.byTrip[tripID]
	if len(list) == 0 {
		return nil, nil
	}
	cp := *list[len(list)-1]
	cp.Items = append([]db_models.ItineraryItem(nil), cp.Items...)
	return &cp, nil
}

func (r *fakeItineraryRepo) Save(_ context.Context, it *db_models.Itinerary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.byTrip[it.TripID]
	for i, existing := range list {
		if existing.ID == it.ID {
			cp := *it
			list[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeItineraryRepo) count(tripID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byTrip[tripID])
}

type fakeAccountRepo struct {
	mu    sync.Mutex
	users map[string]*db_models.User
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{users: make(map[string]*db_models.User)}
}

func (r *fakeAccountRepo) InsertTx(user *db_models.User, _ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	r.users[user.Email] = &cp
	return nil
}

func (r *fakeAccountRepo) FindById(_ context.Context, id string) (*db_models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID.String() == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

type fakeQueue struct {
	mu   sync.Mutex
	jobs []GenerationJob
	err  error
}

func (q *fakeQueue) Enqueue(job GenerationJob) (<-chan GenerationResult, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return nil, q.err
	}
	q.jobs = append(q.jobs, job)
	ch := make(chan GenerationResult, 1)
	ch <- GenerationResult{TripID: job.TripID}
	return ch, nil
}
