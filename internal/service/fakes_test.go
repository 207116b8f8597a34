package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"app/internal/model"
	"app/internal/repository"
)

// In-memory fakes for the repository interfaces. Each method can be failed
// by setting the matching error field.

type fakeUsageRepo struct {
	mu      sync.Mutex
	records []model.Usage
	nextID  int

	createErr     error
	listErr       error
	countErr      error
	countByModErr error
	recentErr     error
}

func (f *fakeUsageRepo) seed(userID string, module model.Module, ts time.Time) model.Usage {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u := model.Usage{
		ID:        fmt.Sprintf("usage-%d", f.nextID),
		UserID:    userID,
		Module:    module,
		Timestamp: ts,
	}
	f.records = append(f.records, u)
	return u
}

func (f *fakeUsageRepo) Create(_ context.Context, userID string, module model.Module) (*model.Usage, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u := f.seed(userID, module, time.Now().UTC())
	return &u, nil
}

func (f *fakeUsageRepo) ListByUser(_ context.Context, userID string) ([]model.Usage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Usage
	for _, u := range f.records {
		if u.UserID == userID {
			out = append(out, u)
		}
	}
	sortUsagesDesc(out)
	return out, nil
}

func (f *fakeUsageRepo) ListByUserAndModule(_ context.Context, userID string, module model.Module) ([]model.Usage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Usage
	for _, u := range f.records {
		if u.UserID == userID && u.Module == module {
			out = append(out, u)
		}
	}
	sortUsagesDesc(out)
	return out, nil
}

func (f *fakeUsageRepo) Count(_ context.Context) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records), nil
}

func (f *fakeUsageRepo) CountByModule(_ context.Context) ([]model.ModuleCount, error) {
	if f.countByModErr != nil {
		return nil, f.countByModErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[model.Module]int{}
	var order []model.Module
	for _, u := range f.records {
		if _, seen := counts[u.Module]; !seen {
			order = append(order, u.Module)
		}
		counts[u.Module]++
	}
	var out []model.ModuleCount
	for _, m := range order {
		out = append(out, model.ModuleCount{Module: m, Count: counts[m]})
	}
	return out, nil
}

func (f *fakeUsageRepo) ListRecent(_ context.Context, limit int) ([]model.Usage, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Usage, len(f.records))
	copy(out, f.records)
	sortUsagesDesc(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortUsagesDesc(usages []model.Usage) {
	sort.SliceStable(usages, func(i, j int) bool {
		return usages[i].Timestamp.After(usages[j].Timestamp)
	})
}

type fakeScoreRepo struct {
	mu      sync.Mutex
	records []model.Score
	nextID  int

	createErr error
	listErr   error
	avgErr    error
}

func (f *fakeScoreRepo) seed(userID string, module model.Module, score float64, ts time.Time) model.Score {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	s := model.Score{
		ID:        fmt.Sprintf("score-%d", f.nextID),
		UserID:    userID,
		Module:    module,
		Score:     score,
		Timestamp: ts,
	}
	f.records = append(f.records, s)
	return s
}

func (f *fakeScoreRepo) Create(_ context.Context, userID string, module model.Module, score float64) (*model.Score, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	s := f.seed(userID, module, score, time.Now().UTC())
	return &s, nil
}

func (f *fakeScoreRepo) ListByUser(_ context.Context, userID string) ([]model.Score, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Score
	for _, s := range f.records {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (f *fakeScoreRepo) ListByUserAndModule(_ context.Context, userID string, module model.Module) ([]model.Score, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	all, _ := f.ListByUser(context.Background(), userID)
	var out []model.Score
	for _, s := range all {
		if s.Module == module {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScoreRepo) AverageByModule(_ context.Context) ([]repository.ModuleScoreAggregate, error) {
	if f.avgErr != nil {
		return nil, f.avgErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	type acc struct {
		total float64
		count int
	}
	sums := map[model.Module]*acc{}
	var order []model.Module
	for _, s := range f.records {
		a, seen := sums[s.Module]
		if !seen {
			a = &acc{}
			sums[s.Module] = a
			order = append(order, s.Module)
		}
		a.total += s.Score
		a.count++
	}
	var out []repository.ModuleScoreAggregate
	for _, m := range order {
		out = append(out, repository.ModuleScoreAggregate{
			Module:  m,
			Average: sums[m].total / float64(sums[m].count),
			Count:   sums[m].count,
		})
	}
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User

	createErr    error
	getErr       error
	lastLoginErr error
	countErr     error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.LastLogin = now
	stored := *u
	f.users[u.UID] = &stored
	return nil
}

func (f *fakeUserRepo) GetUserByUID(_ context.Context, uid string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[uid]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, uid string, displayName, photoURL *string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[uid]
	if !ok {
		return nil, nil
	}
	if displayName != nil {
		u.DisplayName = displayName
	}
	if photoURL != nil {
		u.PhotoURL = photoURL
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, uid string, at time.Time) error {
	if f.lastLoginErr != nil {
		return f.lastLoginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[uid]; ok {
		u.LastLogin = at
	}
	return nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, uid)
	return nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users), nil
}

type fakePublisher struct {
	mu       sync.Mutex
	messages [][]byte
	topics   []string
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, topic string, payload []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, topic)
	f.messages = append(f.messages, payload)
	return fmt.Sprintf("msg-%d", len(f.messages)), nil
}
