package category

import (
	"context"
	"strings"
	"time"

	"github.com/DhimiMohamed/stock-management/internal/core/id"
	"github.com/DhimiMohamed/stock-management/pkg/logger"
)

// Repository persists categories.
type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, categoryID id.ID) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, categoryID id.ID) error
}

// Service implements category catalog use cases.
type Service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log.WithComponent("category.service")}
}

func (s *Service) Create(ctx context.Context, name, description, color string) (*Category, error) {
	now := time.Now()
	c := &Category{
		ID:          id.New(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Color:       strings.TrimSpace(color),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.WithContext(ctx).Infow("category created", "category_id", c.ID, "name", c.Name)
	return c, nil
}

func (s *Service) Get(ctx context.Context, categoryID id.ID) (*Category, error) {
	return s.repo.GetByID(ctx, categoryID)
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, categoryID id.ID, name, description, color string) (*Category, error) {
	c, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(name)
	c.Description = strings.TrimSpace(description)
	c.Color = strings.TrimSpace(color)
	c.UpdatedAt = time.Now()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, categoryID id.ID) error {
	if _, err := s.repo.GetByID(ctx, categoryID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, categoryID); err != nil {
		return err
	}
	s.log.WithContext(ctx).Infow("category deleted", "category_id", categoryID)
	return nil
}
