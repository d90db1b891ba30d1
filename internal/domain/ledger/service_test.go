package ledger

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhimiMohamed/stock-management/internal/core/apperror"
	"github.com/DhimiMohamed/stock-management/internal/core/calendar"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
	"github.com/DhimiMohamed/stock-management/pkg/logger"
)

// fakeRepo is an in-memory Repository keyed by (product, date).
type fakeRepo struct {
	entries map[id.ID]*StockEntry
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{entries: make(map[id.ID]*StockEntry)}
}

func (r *fakeRepo) ListByProduct(_ context.Context, productID id.ID) ([]StockEntry, error) {
	var out []StockEntry
	for _, e := range r.entries {
		if e.ProductID == productID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeRepo) ListByProductRange(ctx context.Context, productID id.ID, from, to calendar.DayKey) ([]StockEntry, error) {
	all, _ := r.ListByProduct(ctx, productID)
	var out []StockEntry
	for _, e := range all {
		if !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetByID(_ context.Context, entryID id.ID) (*StockEntry, error) {
	e, ok := r.entries[entryID]
	if !ok {
		return nil, apperror.NewNotFound("stock entry", entryID.String())
	}
	cp := *e
	return &cp, nil
}

func (r *fakeRepo) Insert(_ context.Context, entry *StockEntry) error {
	for _, e := range r.entries {
		if e.ProductID == entry.ProductID && e.Date == entry.Date {
			return apperror.NewDuplicate("stock entry", "date", string(entry.Date))
		}
	}
	cp := *entry
	r.entries[entry.ID] = &cp
	return nil
}

func (r *fakeRepo) Update(_ context.Context, entry *StockEntry) error {
	if _, ok := r.entries[entry.ID]; !ok {
		return apperror.NewNotFound("stock entry", entry.ID.String())
	}
	cp := *entry
	r.entries[entry.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, entryID id.ID) error {
	if _, ok := r.entries[entryID]; !ok {
		return apperror.NewNotFound("stock entry", entryID.String())
	}
	delete(r.entries, entryID)
	return nil
}

func (r *fakeRepo) ListRecent(_ context.Context, productID *id.ID, limit int) ([]StockEntry, error) {
	var out []StockEntry
	for _, e := range r.entries {
		if productID != nil && e.ProductID != *productID {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeProducts tracks baseline stock per product.
type fakeProducts struct {
	baselines map[id.ID]int
}

func (p *fakeProducts) BaselineStock(_ context.Context, productID id.ID) (int, error) {
	b, ok := p.baselines[productID]
	if !ok {
		return 0, apperror.NewNotFound("product", productID.String())
	}
	return b, nil
}

func (p *fakeProducts) SetBaselineStock(_ context.Context, productID id.ID, stock int) error {
	p.baselines[productID] = stock
	return nil
}

// passthroughTx runs the function without a real transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAuditor struct {
	actions []string
}

func (a *fakeAuditor) RecordEntryChange(_ context.Context, action string, _ *StockEntry) error {
	a.actions = append(a.actions, action)
	return nil
}

func newTestService(t *testing.T, baseline int) (*Service, *fakeRepo, *fakeProducts, *fakeAuditor, id.ID) {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error"})
	require.NoError(t, err)

	productID := id.New()
	repo := newFakeRepo()
	products := &fakeProducts{baselines: map[id.ID]int{productID: baseline}}
	auditor := &fakeAuditor{}
	svc := NewService(repo, products, passthroughTx{}, NewCache(time.Minute), auditor, time.UTC, log)
	return svc, repo, products, auditor, productID
}

func TestServiceWeekEmptyProduct(t *testing.T) {
	svc, _, _, _, productID := newTestService(t, 0)

	led, err := svc.Week(context.Background(), productID, "2024-06-03")
	require.NoError(t, err)

	assert.Equal(t, calendar.DayKey("2024-06-03"), led.Window.Start())
	for _, line := range led.Days {
		assert.Equal(t, 0, line.QuantityIn)
		assert.Equal(t, 0, line.QuantityOut)
		assert.Equal(t, 0, line.RunningStock)
	}
}

func TestServiceWeekRejectsBadAnchor(t *testing.T) {
	svc, _, _, _, productID := newTestService(t, 0)

	_, err := svc.Week(context.Background(), productID, "soon")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidDate, appErr.Code)
}

func TestServiceEditInsertsThenUpdates(t *testing.T) {
	svc, repo, _, auditor, productID := newTestService(t, 0)
	ctx := context.Background()

	led, err := svc.EditCell(ctx, productID, "2024-06-05", FieldQuantityIn, 10, "")
	require.NoError(t, err)

	wed := led.Line("2024-06-05")
	require.NotNil(t, wed)
	require.True(t, wed.HasEntry())
	assert.Equal(t, 10, wed.RunningStock)
	assert.Len(t, repo.entries, 1)
	firstID := *wed.EntryID

	// A second edit to the same day must rewrite the same row.
	led, err = svc.EditCell(ctx, productID, "2024-06-05", FieldQuantityIn, 12, "")
	require.NoError(t, err)

	wed = led.Line("2024-06-05")
	require.True(t, wed.HasEntry())
	assert.Equal(t, firstID, *wed.EntryID)
	assert.Equal(t, 12, wed.RunningStock)
	assert.Len(t, repo.entries, 1)

	assert.Equal(t, []string{"insert", "update"}, auditor.actions)
}

func TestServiceEditPropagatesBaseline(t *testing.T) {
	svc, _, products, _, productID := newTestService(t, 0)
	ctx := context.Background()

	_, err := svc.EditCell(ctx, productID, "2024-06-05", FieldQuantityIn, 10, "")
	require.NoError(t, err)
	assert.Equal(t, 10, products.baselines[productID])

	// Thursday has no entry; Wednesday carries 10. An outbound edit of
	// 4 lands at 6 and becomes the new baseline.
	led, err := svc.EditCell(ctx, productID, "2024-06-06", FieldQuantityOut, 4, "")
	require.NoError(t, err)
	assert.Equal(t, 6, led.Line("2024-06-06").RunningStock)
	assert.Equal(t, 6, products.baselines[productID])

	// Re-editing Wednesday now must not touch the baseline: Thursday
	// holds a later snapshot.
	_, err = svc.EditCell(ctx, productID, "2024-06-05", FieldQuantityIn, 20, "")
	require.NoError(t, err)
	assert.Equal(t, 6, products.baselines[productID])
}

// Once an edit has propagated the baseline, the week view must keep
// showing the days before the edited entry at their pre-entry balance.
func TestServiceWeekAfterPropagation(t *testing.T) {
	svc, _, products, _, productID := newTestService(t, 0)
	ctx := context.Background()

	_, err := svc.EditCell(ctx, productID, "2024-06-05", FieldQuantityIn, 10, "")
	require.NoError(t, err)
	require.Equal(t, 10, products.baselines[productID])

	led, err := svc.Week(ctx, productID, "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, 0, led.StartingStock)
	assert.Equal(t, 0, led.Days[0].RunningStock)
	assert.Equal(t, 0, led.Days[1].RunningStock)
	assert.Equal(t, 10, led.Line("2024-06-05").RunningStock)
	assert.Equal(t, 10, led.Days[6].RunningStock)
}

func TestServiceQuickAdjust(t *testing.T) {
	svc, _, _, _, productID := newTestService(t, 5)
	ctx := context.Background()

	led, err := svc.QuickAdjust(ctx, productID, "2024-06-03", DirectionOut, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, led.Line("2024-06-03").RunningStock)

	led, err = svc.QuickAdjust(ctx, productID, "2024-06-03", DirectionOut, 99)
	require.NoError(t, err)
	assert.Equal(t, 0, led.Line("2024-06-03").RunningStock)
}

func TestServiceRecordMovement(t *testing.T) {
	svc, _, _, _, productID := newTestService(t, 0)
	ctx := context.Background()

	led, err := svc.RecordMovement(ctx, productID, "2024-06-04", 15, 3, "delivery minus breakage")
	require.NoError(t, err)

	tue := led.Line("2024-06-04")
	require.True(t, tue.HasEntry())
	assert.Equal(t, 15, tue.QuantityIn)
	assert.Equal(t, 3, tue.QuantityOut)
	assert.Equal(t, 12, tue.RunningStock)
	assert.Equal(t, "delivery minus breakage", tue.Notes)
}

func TestServiceDeleteEntry(t *testing.T) {
	svc, repo, _, auditor, productID := newTestService(t, 0)
	ctx := context.Background()

	led, err := svc.EditCell(ctx, productID, "2024-06-05", FieldQuantityIn, 10, "")
	require.NoError(t, err)
	entryID := *led.Line("2024-06-05").EntryID

	require.NoError(t, svc.DeleteEntry(ctx, entryID))
	assert.Empty(t, repo.entries)
	assert.Contains(t, auditor.actions, "delete")

	err = svc.DeleteEntry(ctx, entryID)
	assert.True(t, apperror.IsNotFound(err))
}

// The cache must not serve stale entries after a mutation.
func TestServiceCacheInvalidation(t *testing.T) {
	svc, _, _, _, productID := newTestService(t, 0)
	ctx := context.Background()

	led, err := svc.Week(ctx, productID, "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, 0, led.Line("2024-06-05").RunningStock)

	_, err = svc.EditCell(ctx, productID, "2024-06-05", FieldQuantityIn, 10, "")
	require.NoError(t, err)

	led, err = svc.Week(ctx, productID, "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, 10, led.Line("2024-06-05").RunningStock)
}
