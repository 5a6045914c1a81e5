package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/vendops/inventory-admin/internal/core/domain"
	"github.com/vendops/inventory-admin/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory machine repository
// ---------------------------------------------------------------------------

type stubMachineRepo struct {
	machines map[string]*domain.Machine
	nextID   int
	listErr  error
	resetErr error
}

func newStubMachineRepo(machines ...domain.Machine) *stubMachineRepo {
	r := &stubMachineRepo{machines: make(map[string]*domain.Machine)}
	for _, m := range machines {
		_, _ = r.Create(context.Background(), &m)
	}
	return r
}

func cloneMachine(m *domain.Machine) domain.Machine {
	clone := *m
	clone.Ingredients = append([]domain.Ingredient(nil), m.Ingredients...)
	return clone
}

func (r *stubMachineRepo) List(_ context.Context, f ports.MachineFilter) ([]domain.Machine, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []domain.Machine{}
	for _, m := range r.machines {
		if f.SelectedOnly && !m.IsSelected {
			continue
		}
		out = append(out, cloneMachine(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *stubMachineRepo) FindByID(_ context.Context, id string) (*domain.Machine, error) {
	m, ok := r.machines[id]
	if !ok {
		return nil, domain.ErrMachineNotFound
	}
	clone := cloneMachine(m)
	return &clone, nil
}

func (r *stubMachineRepo) Create(_ context.Context, m *domain.Machine) (*domain.Machine, error) {
	r.nextID++
	clone := cloneMachine(m)
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("m%d", r.nextID)
	}
	r.machines[clone.ID] = &clone
	out := cloneMachine(&clone)
	return &out, nil
}

func (r *stubMachineRepo) InsertMany(ctx context.Context, machines []domain.Machine) (int, error) {
	for i := range machines {
		if _, err := r.Create(ctx, &machines[i]); err != nil {
			return i, err
		}
	}
	return len(machines), nil
}

func (r *stubMachineRepo) UpdateDetails(_ context.Context, id string, d ports.MachineDetails) error {
	m, ok := r.machines[id]
	if !ok {
		return domain.ErrMachineNotFound
	}
	m.Code, m.Model, m.Location = d.Code, d.Model, d.Location
	return nil
}

func (r *stubMachineRepo) UpdateIngredients(_ context.Context, id string, ings []domain.Ingredient) error {
	m, ok := r.machines[id]
	if !ok {
		return domain.ErrMachineNotFound
	}
	m.Ingredients = append([]domain.Ingredient(nil), ings...)
	return nil
}

func (r *stubMachineRepo) ToggleSelected(_ context.Context, id string) (bool, error) {
	m, ok := r.machines[id]
	if !ok {
		return false, domain.ErrMachineNotFound
	}
	m.IsSelected = !m.IsSelected
	return m.IsSelected, nil
}

func (r *stubMachineRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.machines[id]; !ok {
		return domain.ErrMachineNotFound
	}
	delete(r.machines, id)
	return nil
}

func (r *stubMachineRepo) UnselectAll(_ context.Context) (int64, error) {
	if r.resetErr != nil {
		return 0, r.resetErr
	}
	var n int64
	for _, m := range r.machines {
		if m.IsSelected {
			m.IsSelected = false
			n++
		}
	}
	return n, nil
}

func (r *stubMachineRepo) ZeroQuantities(_ context.Context) (int64, error) {
	if r.resetErr != nil {
		return 0, r.resetErr
	}
	for _, m := range r.machines {
		for i := range m.Ingredients {
			m.Ingredients[i].Quantity = 0
		}
	}
	return int64(len(r.machines)), nil
}

// ---------------------------------------------------------------------------
// In-memory record repository
// ---------------------------------------------------------------------------

type stubRecordRepo struct {
	byDate    map[string]*domain.Record
	upsertErr error
}

func newStubRecordRepo(dates ...string) *stubRecordRepo {
	r := &stubRecordRepo{byDate: make(map[string]*domain.Record)}
	for _, d := range dates {
		r.byDate[d] = &domain.Record{ID: "r-" + d, Date: d, Totals: domain.Totals{"Milk": 1}}
	}
	return r
}

func cloneRecord(rec *domain.Record) domain.Record {
	clone := *rec
	clone.Totals = make(domain.Totals, len(rec.Totals))
	for k, v := range rec.Totals {
		clone.Totals[k] = v
	}
	return clone
}

func (r *stubRecordRepo) Upsert(_ context.Context, date string, totals domain.Totals) (*domain.Record, error) {
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	rec := &domain.Record{ID: "r-" + date, Date: date, Totals: totals}
	r.byDate[date] = rec
	out := cloneRecord(rec)
	return &out, nil
}

func (r *stubRecordRepo) FindByDate(_ context.Context, date string) (*domain.Record, error) {
	rec, ok := r.byDate[date]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	out := cloneRecord(rec)
	return &out, nil
}

func (r *stubRecordRepo) FindByID(_ context.Context, id string) (*domain.Record, error) {
	for _, rec := range r.byDate {
		if rec.ID == id {
			out := cloneRecord(rec)
			return &out, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r *stubRecordRepo) ListAll(_ context.Context) ([]domain.Record, error) {
	out := []domain.Record{}
	for _, rec := range r.byDate {
		out = append(out, cloneRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *stubRecordRepo) Delete(_ context.Context, id string) error {
	for date, rec := range r.byDate {
		if rec.ID == id {
			delete(r.byDate, date)
			return nil
		}
	}
	return domain.ErrRecordNotFound
}

// ---------------------------------------------------------------------------
// Transactor, revoker and renderer stubs
// ---------------------------------------------------------------------------

type stubTx struct {
	calls int
}

func (t *stubTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type stubRevoker struct {
	revoked map[string]time.Duration
	err     error
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Duration)}
}

func (r *stubRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if r.err != nil {
		return r.err
	}
	r.revoked[tokenID] = ttl
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.revoked[tokenID]
	return ok, nil
}

type stubRenderer struct {
	ext      string
	rendered []domain.Record
}

func (r *stubRenderer) ContentType() string { return "text/plain" }
func (r *stubRenderer) Extension() string   { return r.ext }

func (r *stubRenderer) Render(w io.Writer, records []domain.Record) error {
	r.rendered = records
	for _, rec := range records {
		if _, err := fmt.Fprintln(w, rec.Date); err != nil {
			return err
		}
	}
	return nil
}
