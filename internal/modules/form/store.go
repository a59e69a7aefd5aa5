package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mx-space/formcraft/internal/models"
	"github.com/mx-space/formcraft/internal/pkg/blob"
	"go.uber.org/zap"
)

// Store is the persistent collection of forms.
type Store interface {
	List(ctx context.Context) ([]models.Form, error)
	Get(ctx context.Context, id string) (*models.Form, error)
	Create(ctx context.Context, title string) (*models.Form, error)
	Update(ctx context.Context, form *models.Form) error
	Delete(ctx context.Context, id string) error
}

// BlobStore keeps the whole collection as one JSON array in blob storage.
// Every mutation rewrites the array in a single Write.
type BlobStore struct {
	mu      sync.Mutex
	storage blob.Storage
	logger  *zap.Logger
}

func NewBlobStore(storage blob.Storage, logger *zap.Logger) *BlobStore {
	return &BlobStore{storage: storage, logger: logger.Named("form.store")}
}

func (s *BlobStore) List(ctx context.Context) ([]models.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *BlobStore) Get(ctx context.Context, id string) (*models.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	forms, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range forms {
		if forms[i].ID == id {
			return &forms[i], nil
		}
	}
	return nil, nil
}

// Create appends a fresh form. An empty title keeps the default one.
func (s *BlobStore) Create(ctx context.Context, title string) (*models.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	forms, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	form := models.NewForm()
	if strings.TrimSpace(title) != "" {
		form.Title = title
	}
	if err := s.save(ctx, append(forms, *form)); err != nil {
		return nil, err
	}
	s.logger.Info("form created", zap.String("id", form.ID), zap.String("title", form.Title))
	return form.Clone(), nil
}

// Update replaces the stored form with the same id. Unknown ids are ignored.
func (s *BlobStore) Update(ctx context.Context, form *models.Form) error {
	if form == nil {
		return fmt.Errorf("%w: nil form", models.ErrInvalidFormData)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	forms, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i := range forms {
		if forms[i].ID == form.ID {
			forms[i] = *form.Clone()
			return s.save(ctx, forms)
		}
	}
	s.logger.Debug("update of unknown form ignored", zap.String("id", form.ID))
	return nil
}

func (s *BlobStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	forms, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := forms[:0]
	for _, f := range forms {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(forms) {
		return nil
	}
	if err := s.save(ctx, kept); err != nil {
		return err
	}
	s.logger.Info("form deleted", zap.String("id", id))
	return nil
}

func (s *BlobStore) Close() error {
	return s.storage.Close()
}

// load must be called with s.mu held.
func (s *BlobStore) load(ctx context.Context) ([]models.Form, error) {
	raw, err := s.storage.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read forms: %w", err)
	}
	forms, invalid, err := models.DecodeForms(raw)
	if err != nil {
		if errors.Is(err, models.ErrDecode) {
			s.logger.Warn("stored form collection is unreadable, treating as empty", zap.Error(err))
			return []models.Form{}, nil
		}
		return nil, err
	}
	for _, e := range invalid {
		s.logger.Warn("dropping invalid form record", zap.Error(e))
	}
	return forms, nil
}

func (s *BlobStore) save(ctx context.Context, forms []models.Form) error {
	raw, err := models.EncodeForms(forms)
	if err != nil {
		return fmt.Errorf("encode forms: %w", err)
	}
	if err := s.storage.Write(ctx, raw); err != nil {
		return fmt.Errorf("write forms: %w", err)
	}
	return nil
}
