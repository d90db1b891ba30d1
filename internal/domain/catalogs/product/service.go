package product

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DhimiMohamed/stock-management/internal/core/id"
	"github.com/DhimiMohamed/stock-management/internal/domain/ledger"
	"github.com/DhimiMohamed/stock-management/pkg/logger"
)

// Repository persists products.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, productID id.ID) (*Product, error)
	List(ctx context.Context, filter Filter) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, productID id.ID) error
}

// OpeningWriter records the opening stock movement for a new product.
// Satisfied by the ledger service.
type OpeningWriter interface {
	RecordMovement(ctx context.Context, productID id.ID, day any, in, out int, notes string) (*ledger.WeekLedger, error)
}

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CreateInput gathers the fields of a new product.
type CreateInput struct {
	CategoryID   *id.ID
	Name         string
	Description  string
	Unit         string
	UnitPrice    decimal.Decimal
	MinStock     int
	InitialStock int
}

// Service implements product catalog use cases.
type Service struct {
	repo   Repository
	ledger OpeningWriter
	tx     TxRunner
	log    *logger.Logger
}

func NewService(repo Repository, ledger OpeningWriter, tx TxRunner, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		ledger: ledger,
		tx:     tx,
		log:    log.WithComponent("product.service"),
	}
}

// Create adds a product. A positive initial stock also writes the
// opening ledger entry dated today, in the same transaction. The
// product row starts at zero so the opening movement is the only
// source of that quantity; ledger propagation then raises the
// baseline to it.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Product, error) {
	if in.InitialStock < 0 {
		in.InitialStock = 0
	}
	now := time.Now()
	p := &Product{
		ID:          id.New(),
		CategoryID:  in.CategoryID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Unit:        strings.TrimSpace(in.Unit),
		UnitPrice:   in.UnitPrice,
		MinStock:    in.MinStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, p); err != nil {
			return err
		}
		if in.InitialStock > 0 {
			_, err := s.ledger.RecordMovement(ctx, p.ID, now, in.InitialStock, 0, "opening stock")
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.ActualStock = in.InitialStock
	s.log.WithContext(ctx).Infow("product created",
		"product_id", p.ID, "name", p.Name, "initial_stock", in.InitialStock)
	return p, nil
}

func (s *Service) Get(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Product, error) {
	return s.repo.List(ctx, filter)
}

// LowStock returns products whose baseline has reached the alert level.
func (s *Service) LowStock(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx, Filter{LowOnly: true})
}

// UpdateInput carries the editable product fields. ActualStock is not
// editable here; it moves only through the ledger.
type UpdateInput struct {
	CategoryID  *id.ID
	Name        string
	Description string
	Unit        string
	UnitPrice   decimal.Decimal
	MinStock    int
}

func (s *Service) Update(ctx context.Context, productID id.ID, in UpdateInput) (*Product, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	p.CategoryID = in.CategoryID
	p.Name = strings.TrimSpace(in.Name)
	p.Description = strings.TrimSpace(in.Description)
	p.Unit = strings.TrimSpace(in.Unit)
	p.UnitPrice = in.UnitPrice
	p.MinStock = in.MinStock
	p.UpdatedAt = time.Now()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a product and, through the schema's cascade, its
// stock entries.
func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return err
	}
	s.log.WithContext(ctx).Infow("product deleted", "product_id", productID)
	return nil
}
