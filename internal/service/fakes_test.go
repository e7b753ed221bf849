package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/galexandre/showtrack/internal/domain"
	"github.com/galexandre/showtrack/internal/dto"
	"github.com/galexandre/showtrack/internal/mailer"
	"github.com/galexandre/showtrack/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository that enforces the email
// uniqueness constraint the way the Postgres implementation does.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with email %s already exists: %w", user.Email, repository.ErrDuplicateEmail)
		}
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user with email %s not found: %w", email, repository.ErrNotFound)
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with id %s not found: %w", id, repository.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		users = append(users, &cp)
	}
	return users, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user with id %s not found: %w", user.ID, repository.ErrNotFound)
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return fmt.Errorf("user with email %s already exists: %w", user.Email, repository.ErrDuplicateEmail)
		}
	}

	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user with id %s not found: %w", id, repository.ErrNotFound)
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make(map[string]*domain.User)
	return nil
}

// fakeResetRepo is an in-memory PasswordResetRepository
type fakeResetRepo struct {
	mu    sync.Mutex
	codes map[string]*domain.PasswordResetCode
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{codes: make(map[string]*domain.PasswordResetCode)}
}

func (r *fakeResetRepo) Create(ctx context.Context, code *domain.PasswordResetCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if code.ID == "" {
		code.ID = uuid.New().String()
	}
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now()
	}

	cp := *code
	r.codes[code.ID] = &cp
	return nil
}

func (r *fakeResetRepo) FindValidByCode(ctx context.Context, code string, now time.Time) (*domain.PasswordResetCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var newest *domain.PasswordResetCode
	for _, rec := range r.codes {
		if rec.Code != code || !rec.ExpiresAt.After(now) {
			continue
		}
		if newest == nil || rec.CreatedAt.After(newest.CreatedAt) {
			newest = rec
		}
	}
	if newest == nil {
		return nil, fmt.Errorf("valid reset code not found: %w", repository.ErrNotFound)
	}
	cp := *newest
	return &cp, nil
}

func (r *fakeResetRepo) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.codes[id]; !ok {
		return fmt.Errorf("reset code with id %s not found: %w", id, repository.ErrNotFound)
	}
	delete(r.codes, id)
	return nil
}

func (r *fakeResetRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for id, rec := range r.codes {
		if rec.ExpiresAt.Before(now) {
			delete(r.codes, id)
			count++
		}
	}
	return count, nil
}

// fakeFavoriteRepo is an in-memory FavoriteRepository keyed by
// (userID, titleID)
type fakeFavoriteRepo struct {
	mu        sync.Mutex
	favorites []*domain.Favorite
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{}
}

func (r *fakeFavoriteRepo) Create(ctx context.Context, fav *domain.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range r.favorites {
		if f.UserID == fav.UserID && f.TitleID == fav.TitleID {
			return fmt.Errorf("favorite for title %d already exists: %w", fav.TitleID, repository.ErrDuplicateEntry)
		}
	}

	if fav.ID == "" {
		fav.ID = uuid.New().String()
	}
	if fav.CreatedAt.IsZero() {
		fav.CreatedAt = time.Now()
	}

	cp := *fav
	r.favorites = append(r.favorites, &cp)
	return nil
}

func (r *fakeFavoriteRepo) GetByKey(ctx context.Context, userID string, titleID int64) (*domain.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range r.favorites {
		if f.UserID == userID && f.TitleID == titleID {
			cp := *f
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("favorite for title %d not found: %w", titleID, repository.ErrNotFound)
}

func (r *fakeFavoriteRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var favorites []*domain.Favorite
	for _, f := range r.favorites {
		if f.UserID == userID {
			cp := *f
			favorites = append(favorites, &cp)
		}
	}
	return favorites, nil
}

func (r *fakeFavoriteRepo) DeleteByKey(ctx context.Context, userID string, titleID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, f := range r.favorites {
		if f.UserID == userID && f.TitleID == titleID {
			r.favorites = append(r.favorites[:i], r.favorites[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("favorite for title %d not found: %w", titleID, repository.ErrNotFound)
}

// fakeCompletedRepo is an in-memory CompletedSeriesRepository
type fakeCompletedRepo struct {
	mu     sync.Mutex
	series []*domain.CompletedSeries
}

func newFakeCompletedRepo() *fakeCompletedRepo {
	return &fakeCompletedRepo{}
}

func (r *fakeCompletedRepo) Create(ctx context.Context, cs *domain.CompletedSeries) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.series {
		if s.UserID == cs.UserID && s.TitleID == cs.TitleID {
			return fmt.Errorf("series %d already marked completed: %w", cs.TitleID, repository.ErrDuplicateEntry)
		}
	}

	if cs.ID == "" {
		cs.ID = uuid.New().String()
	}
	if cs.CreatedAt.IsZero() {
		cs.CreatedAt = time.Now()
	}

	cp := *cs
	r.series = append(r.series, &cp)
	return nil
}

func (r *fakeCompletedRepo) GetByKey(ctx context.Context, userID string, titleID int64) (*domain.CompletedSeries, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.series {
		if s.UserID == userID && s.TitleID == titleID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("completed series %d not found: %w", titleID, repository.ErrNotFound)
}

func (r *fakeCompletedRepo) ListByUser(ctx context.Context, userID string) ([]*domain.CompletedSeries, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var series []*domain.CompletedSeries
	for _, s := range r.series {
		if s.UserID == userID {
			cp := *s
			series = append(series, &cp)
		}
	}
	return series, nil
}

func (r *fakeCompletedRepo) DeleteByKey(ctx context.Context, userID string, titleID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.series {
		if s.UserID == userID && s.TitleID == titleID {
			r.series = append(r.series[:i], r.series[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("completed series %d not found: %w", titleID, repository.ErrNotFound)
}

// fakeWatchedRepo is an in-memory WatchedEpisodeRepository
type fakeWatchedRepo struct {
	mu       sync.Mutex
	episodes []*domain.WatchedEpisode
}

func newFakeWatchedRepo() *fakeWatchedRepo {
	return &fakeWatchedRepo{}
}

func matchesKey(we *domain.WatchedEpisode, userID string, key domain.EpisodeKey) bool {
	return we.UserID == userID && we.TitleID == key.TitleID && we.Season == key.Season && we.Episode == key.Episode
}

func (r *fakeWatchedRepo) Create(ctx context.Context, we *domain.WatchedEpisode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := domain.EpisodeKey{TitleID: we.TitleID, Season: we.Season, Episode: we.Episode}
	for _, e := range r.episodes {
		if matchesKey(e, we.UserID, key) {
			return fmt.Errorf("episode already watched: %w", repository.ErrDuplicateEntry)
		}
	}

	if we.ID == "" {
		we.ID = uuid.New().String()
	}
	if we.CreatedAt.IsZero() {
		we.CreatedAt = time.Now()
	}

	cp := *we
	r.episodes = append(r.episodes, &cp)
	return nil
}

func (r *fakeWatchedRepo) GetByKey(ctx context.Context, userID string, key domain.EpisodeKey) (*domain.WatchedEpisode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.episodes {
		if matchesKey(e, userID, key) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("watched episode not found: %w", repository.ErrNotFound)
}

func (r *fakeWatchedRepo) ListByUser(ctx context.Context, userID string) ([]*domain.WatchedEpisode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var episodes []*domain.WatchedEpisode
	for _, e := range r.episodes {
		if e.UserID == userID {
			cp := *e
			episodes = append(episodes, &cp)
		}
	}
	return episodes, nil
}

func (r *fakeWatchedRepo) DeleteByKey(ctx context.Context, userID string, key domain.EpisodeKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.episodes {
		if matchesKey(e, userID, key) {
			r.episodes = append(r.episodes[:i], r.episodes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("watched episode not found: %w", repository.ErrNotFound)
}

// fakeMailer records sent messages
type fakeMailer struct {
	mu       sync.Mutex
	messages []mailer.Message
	sendErr  error
}

func (m *fakeMailer) Send(ctx context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sendErr != nil {
		return m.sendErr
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *fakeMailer) sent() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]mailer.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// fakeProfileCache is an in-memory ProfileCache
type fakeProfileCache struct {
	mu       sync.Mutex
	profiles map[string]*dto.UserProfile
}

func newFakeProfileCache() *fakeProfileCache {
	return &fakeProfileCache{profiles: make(map[string]*dto.UserProfile)}
}

func (c *fakeProfileCache) Get(ctx context.Context, userID string) (*dto.UserProfile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.profiles[userID], nil
}

func (c *fakeProfileCache) Set(ctx context.Context, userID string, profile *dto.UserProfile) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.profiles[userID] = profile
	return nil
}

func (c *fakeProfileCache) Invalidate(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.profiles, userID)
	return nil
}
