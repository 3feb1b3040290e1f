package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"inkwell/internal/models"
)

var validContent = strings.Repeat("A patient look at soil, seeds and water. ", 8)

// memoryAuthors is an in-memory repository.AuthorRepository. It does not
// enforce name uniqueness so tests observe the service's own guarantees.
type memoryAuthors struct {
	mu          sync.Mutex
	byID        map[uint]models.Author
	nextID      uint
	lookupDelay time.Duration
	lookups     int
	createErr   error
}

func newMemoryAuthors() *memoryAuthors {
	return &memoryAuthors{byID: make(map[uint]models.Author)}
}

func (m *memoryAuthors) FindIDByName(_ context.Context, name string) (uint, bool, error) {
	if m.lookupDelay > 0 {
		time.Sleep(m.lookupDelay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	for id, a := range m.byID {
		if a.Name == name {
			return id, true, nil
		}
	}
	return 0, false, nil
}

func (m *memoryAuthors) Create(_ context.Context, author *models.Author) error {
	if err := author.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	author.ID = m.nextID
	author.CreatedAt = time.Now()
	m.byID[author.ID] = *author
	return nil
}

func (m *memoryAuthors) GetByID(_ context.Context, id uint) (*models.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return nil, models.NewNotFoundError("Author", id)
	}
	return &a, nil
}

func (m *memoryAuthors) GetByName(_ context.Context, name string) (*models.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byID {
		if a.Name == name {
			return &a, nil
		}
	}
	return nil, models.NewNotFoundError("Author", name)
}

func (m *memoryAuthors) GetWithPosts(ctx context.Context, id uint) (*models.Author, error) {
	return m.GetByID(ctx, id)
}

func (m *memoryAuthors) Update(_ context.Context, author *models.Author) error {
	if err := author.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[author.ID]; !ok {
		return models.NewNotFoundError("Author", author.ID)
	}
	now := time.Now()
	author.UpdatedAt = &now
	m.byID[author.ID] = *author
	return nil
}

func (m *memoryAuthors) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return models.NewNotFoundError("Author", id)
	}
	delete(m.byID, id)
	return nil
}

func (m *memoryAuthors) List(_ context.Context, _, _ int) ([]models.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Author, 0, len(m.byID))
	for _, a := range m.byID {
		out = append(out, a)
	}
	return out, nil
}

func (m *memoryAuthors) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	getByIDFn      func(context.Context, uint) (*models.Post, error)
	updateFn       func(context.Context, *models.Post) error
	deleteFn       func(context.Context, uint) error
	listByAuthorFn func(context.Context, uint, int, int) ([]models.Post, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Post, error) {
	return s.listByAuthorFn(ctx, authorID, limit, offset)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			p.ID = 1
			return nil
		},
		getByIDFn:      func(_ context.Context, id uint) (*models.Post, error) { return nil, models.NewNotFoundError("Post", id) },
		updateFn:       func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:       func(_ context.Context, _ uint) error { return nil },
		listByAuthorFn: func(_ context.Context, _ uint, _, _ int) ([]models.Post, error) { return nil, nil },
	}
}
