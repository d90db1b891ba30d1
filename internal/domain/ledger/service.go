package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/DhimiMohamed/stock-management/internal/core/apperror"
	"github.com/DhimiMohamed/stock-management/internal/core/calendar"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
	"github.com/DhimiMohamed/stock-management/pkg/logger"
)

// Auditor records entry mutations for the audit trail. Implementations
// must not fail the business operation; errors are logged and dropped.
type Auditor interface {
	RecordEntryChange(ctx context.Context, action string, entry *StockEntry) error
}

// Service drives the weekly ledger use cases: viewing a week,
// editing cells, quick adjustments and raw movement entries.
type Service struct {
	repo     Repository
	products ProductStore
	tx       TxRunner
	cache    *Cache
	auditor  Auditor
	loc      *time.Location
	log      *logger.Logger
}

// NewService wires the ledger service. auditor may be nil.
func NewService(repo Repository, products ProductStore, tx TxRunner, cache *Cache, auditor Auditor, loc *time.Location, log *logger.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	if cache == nil {
		cache = NewCache(0)
	}
	return &Service{
		repo:     repo,
		products: products,
		tx:       tx,
		cache:    cache,
		auditor:  auditor,
		loc:      loc,
		log:      log.WithComponent("ledger.service"),
	}
}

// Week reconstructs the seven-day view containing the anchor date.
// An empty anchor means today.
func (s *Service) Week(ctx context.Context, productID id.ID, anchor string) (*WeekLedger, error) {
	day, err := s.anchorDay(anchor)
	if err != nil {
		return nil, err
	}
	window := calendar.WeekOfKey(day)

	entries, err := s.loadEntries(ctx, productID)
	if err != nil {
		return nil, err
	}
	baseline, err := s.products.BaselineStock(ctx, productID)
	if err != nil {
		return nil, err
	}
	return Reconstruct(productID, window, entries, baseline), nil
}

// EditCell sets one field of one day and persists the result. The
// returned ledger is reloaded from storage after the commit.
func (s *Service) EditCell(ctx context.Context, productID id.ID, rawDay any, field Field, quantity int, notes string) (*WeekLedger, error) {
	return s.mutate(ctx, productID, rawDay, func(led *WeekLedger, day calendar.DayKey) (PersistOp, error) {
		return ApplyEdit(led, day, field, quantity, notes)
	})
}

// QuickAdjust adds an inbound or outbound amount to one day.
func (s *Service) QuickAdjust(ctx context.Context, productID id.ID, rawDay any, dir Direction, amount int) (*WeekLedger, error) {
	return s.mutate(ctx, productID, rawDay, func(led *WeekLedger, day calendar.DayKey) (PersistOp, error) {
		return ApplyQuickAction(led, day, dir, amount)
	})
}

// RecordMovement replaces both quantities of one day, as the movement
// entry form does.
func (s *Service) RecordMovement(ctx context.Context, productID id.ID, rawDay any, in, out int, notes string) (*WeekLedger, error) {
	return s.mutate(ctx, productID, rawDay, func(led *WeekLedger, day calendar.DayKey) (PersistOp, error) {
		return ApplyMovement(led, day, in, out, notes)
	})
}

// DeleteEntry removes a persisted entry row. Later days keep their
// stored snapshots untouched.
func (s *Service) DeleteEntry(ctx context.Context, entryID id.ID) error {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, entryID); err != nil {
			return err
		}
		s.audit(ctx, "delete", entry)
		return nil
	})
	if err != nil {
		return err
	}
	s.cache.Invalidate(entry.ProductID)
	return nil
}

// RecentMovements returns the newest entries, optionally scoped to
// one product.
func (s *Service) RecentMovements(ctx context.Context, productID *id.ID, limit int) ([]StockEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListRecent(ctx, productID, limit)
}

// mutate runs the common edit flow: reload entries inside the
// transaction, reconstruct, apply, persist, propagate the baseline
// when no later snapshot exists, then invalidate and reload.
func (s *Service) mutate(ctx context.Context, productID id.ID, rawDay any, apply func(*WeekLedger, calendar.DayKey) (PersistOp, error)) (*WeekLedger, error) {
	day, err := calendar.Normalize(rawDay, s.loc)
	if err != nil {
		return nil, err
	}
	window := calendar.WeekOfKey(day)

	var result *WeekLedger
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		entries, err := s.repo.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		baseline, err := s.products.BaselineStock(ctx, productID)
		if err != nil {
			return err
		}
		led := Reconstruct(productID, window, entries, baseline)

		op, err := apply(led, day)
		if err != nil {
			return err
		}
		entry, err := s.persist(ctx, op)
		if err != nil {
			return err
		}
		if ShouldPropagate(led, op) {
			if err := s.products.SetBaselineStock(ctx, productID, op.RunningStock); err != nil {
				return err
			}
		}
		s.audit(ctx, string(op.Kind), entry)

		fresh, err := s.repo.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		result = Reconstruct(productID, window, fresh, baseline)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(productID)
	return result, nil
}

// persist turns a PersistOp into an insert or update and returns the
// persisted entry.
func (s *Service) persist(ctx context.Context, op PersistOp) (*StockEntry, error) {
	now := time.Now()
	entry := &StockEntry{
		ID:           op.EntryID,
		ProductID:    op.ProductID,
		Date:         op.Date,
		QuantityIn:   op.QuantityIn,
		QuantityOut:  op.QuantityOut,
		CurrentStock: op.RunningStock,
		Notes:        op.Notes,
		UpdatedAt:    now,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	switch op.Kind {
	case OpInsert:
		entry.ID = id.New()
		entry.CreatedAt = now
		if err := s.repo.Insert(ctx, entry); err != nil {
			return nil, err
		}
	case OpUpdate:
		if err := s.repo.Update(ctx, entry); err != nil {
			return nil, err
		}
	default:
		return nil, apperror.NewInternal(fmt.Errorf("unknown persist op kind %q", op.Kind))
	}
	return entry, nil
}

func (s *Service) loadEntries(ctx context.Context, productID id.ID) ([]StockEntry, error) {
	if entries, ok := s.cache.Get(productID); ok {
		return entries, nil
	}
	entries, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	s.cache.Put(productID, entries)
	return entries, nil
}

func (s *Service) anchorDay(anchor string) (calendar.DayKey, error) {
	if anchor == "" {
		return calendar.Today(s.loc), nil
	}
	return calendar.Normalize(anchor, s.loc)
}

func (s *Service) audit(ctx context.Context, action string, entry *StockEntry) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.RecordEntryChange(ctx, action, entry); err != nil {
		s.log.Warnw("audit record failed", "error", err, "entry_id", entry.ID)
	}
}
