package controller_test

import (
	"context"
	"sync"
	"time"

	"obrafoto/models"
	"obrafoto/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// memImageStore implements repository.ImageStore in memory for handler
// tests, with the same invariants as the mongo implementation.
type memImageStore struct {
	mu   sync.Mutex
	byID map[string]*models.Image
}

func newMemImageStore() *memImageStore {
	return &memImageStore{byID: make(map[string]*models.Image)}
}

func (s *memImageStore) Put(_ context.Context, img *models.Image) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if img.HasPayload() && img.Img.ContentType == "" {
		return "", repository.ErrPayloadWithoutType
	}
	if img.CreatedAt.IsZero() {
		img.CreatedAt = time.Now()
	}
	img.ID = bson.NewObjectID()

	stored := *img
	s.byID[img.ID.Hex()] = &stored
	return img.ID.Hex(), nil
}

func (s *memImageStore) Get(_ context.Context, id string) (*models.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	img, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *img
	return &copied, nil
}

func (s *memImageStore) ListByFolder(_ context.Context, folder string) ([]models.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var images []models.Image
	for _, img := range s.byID {
		if img.Folder == folder {
			images = append(images, *img)
		}
	}
	return images, nil
}

func (s *memImageStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *memImageStore) Folders(_ context.Context) ([]repository.FolderSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	latest := make(map[string]time.Time)
	for _, img := range s.byID {
		if img.Folder == "" {
			continue
		}
		if ts, ok := latest[img.Folder]; !ok || img.CreatedAt.After(ts) {
			latest[img.Folder] = img.CreatedAt
		}
	}

	folders := make([]repository.FolderSummary, 0, len(latest))
	for name, ts := range latest {
		folders = append(folders, repository.FolderSummary{Name: name, LastActivity: ts})
	}
	return folders, nil
}

func (s *memImageStore) LatestInFolder(_ context.Context, folder string) (*models.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var newest *models.Image
	for _, img := range s.byID {
		if img.Folder != folder {
			continue
		}
		if newest == nil || img.CreatedAt.After(newest.CreatedAt) {
			newest = img
		}
	}
	if newest == nil {
		return nil, repository.ErrNotFound
	}
	copied := *newest
	return &copied, nil
}

func (s *memImageStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// memUserStore implements repository.UserStore in memory.
type memUserStore struct {
	mu   sync.Mutex
	byID map[string]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byID: make(map[string]*models.User)}
}

func (s *memUserStore) List(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []models.User
	for _, user := range s.byID {
		users = append(users, *user)
	}
	return users, nil
}

func (s *memUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memUserStore) Create(_ context.Context, user *models.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	user.ID = bson.NewObjectID()

	stored := *user
	s.byID[user.ID.Hex()] = &stored
	return user.ID.Hex(), nil
}

func (s *memUserStore) Patch(_ context.Context, id string, patch map[string]any) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for field, value := range patch {
		switch field {
		case "email":
			user.Email = value.(string)
		case "cpfHash":
			user.CpfHash = value.(string)
		case "isAdmin":
			user.IsAdmin = value.(bool)
		case "active":
			user.Active = value.(bool)
		}
	}
	copied := *user
	return &copied, nil
}

func (s *memUserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}
