package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cafepos-api/internal/domain/entity"
	"github.com/sangkips/cafepos-api/internal/domain/enum"
	"github.com/sangkips/cafepos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// memoryStore is an in-memory backing store shared by the fake repositories.
// Transactions snapshot the whole store and restore it on rollback, which is
// enough to verify that services keep multi-row writes atomic.
type memoryStore struct {
	mu sync.Mutex

	stores     map[uuid.UUID]entity.Store
	terminals  map[uuid.UUID]entity.Terminal
	users      map[uuid.UUID]entity.User
	categories map[uuid.UUID]entity.MenuCategory
	items      map[uuid.UUID]entity.MenuItem
	prices     map[uuid.UUID]entity.MenuItemPrice
	taxes      map[uuid.UUID]entity.TaxCategory
	groups     map[uuid.UUID]entity.ModifierGroup
	options    map[uuid.UUID]entity.ModifierOption
	orders     map[uuid.UUID]entity.Order
	lines      map[uuid.UUID]entity.OrderLine
	modifiers  map[uuid.UUID]entity.OrderLineModifier
	payments   []entity.Payment
	methods    map[uuid.UUID]entity.PaymentMethod
	shifts     map[uuid.UUID]entity.Shift
	events     []entity.CashDrawerEvent
	sequences  map[string]int

	failOrderUpdate bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		stores:     make(map[uuid.UUID]entity.Store),
		terminals:  make(map[uuid.UUID]entity.Terminal),
		users:      make(map[uuid.UUID]entity.User),
		categories: make(map[uuid.UUID]entity.MenuCategory),
		items:      make(map[uuid.UUID]entity.MenuItem),
		prices:     make(map[uuid.UUID]entity.MenuItemPrice),
		taxes:      make(map[uuid.UUID]entity.TaxCategory),
		groups:     make(map[uuid.UUID]entity.ModifierGroup),
		options:    make(map[uuid.UUID]entity.ModifierOption),
		orders:     make(map[uuid.UUID]entity.Order),
		lines:      make(map[uuid.UUID]entity.OrderLine),
		modifiers:  make(map[uuid.UUID]entity.OrderLineModifier),
		methods:    make(map[uuid.UUID]entity.PaymentMethod),
		shifts:     make(map[uuid.UUID]entity.Shift),
		sequences:  make(map[string]int),
	}
}

func (m *memoryStore) snapshot() *memoryStore {
	s := newMemoryStore()
	for k, v := range m.stores {
		s.stores[k] = v
	}
	for k, v := range m.terminals {
		s.terminals[k] = v
	}
	for k, v := range m.users {
		s.users[k] = v
	}
	for k, v := range m.categories {
		s.categories[k] = v
	}
	for k, v := range m.items {
		s.items[k] = v
	}
	for k, v := range m.prices {
		s.prices[k] = v
	}
	for k, v := range m.taxes {
		s.taxes[k] = v
	}
	for k, v := range m.groups {
		s.groups[k] = v
	}
	for k, v := range m.options {
		s.options[k] = v
	}
	for k, v := range m.orders {
		s.orders[k] = v
	}
	for k, v := range m.lines {
		s.lines[k] = v
	}
	for k, v := range m.modifiers {
		s.modifiers[k] = v
	}
	s.payments = append([]entity.Payment(nil), m.payments...)
	for k, v := range m.methods {
		s.methods[k] = v
	}
	for k, v := range m.shifts {
		s.shifts[k] = v
	}
	s.events = append([]entity.CashDrawerEvent(nil), m.events...)
	for k, v := range m.sequences {
		s.sequences[k] = v
	}
	return s
}

func (m *memoryStore) restore(s *memoryStore) {
	m.stores = s.stores
	m.terminals = s.terminals
	m.users = s.users
	m.categories = s.categories
	m.items = s.items
	m.prices = s.prices
	m.taxes = s.taxes
	m.groups = s.groups
	m.options = s.options
	m.orders = s.orders
	m.lines = s.lines
	m.modifiers = s.modifiers
	m.payments = s.payments
	m.methods = s.methods
	m.shifts = s.shifts
	m.events = s.events
	m.sequences = s.sequences
}

// fakeTxManager snapshots the store before fn and restores it when fn fails
type fakeTxManager struct {
	store *memoryStore
}

func (t *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.mu.Lock()
	snap := t.store.snapshot()
	t.store.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.store.mu.Lock()
		t.store.restore(snap)
		t.store.mu.Unlock()
		return err
	}
	return nil
}

// fakeClock returns a fixed instant, advanceable by tests
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) UTCNow() time.Time   { return c.now.UTC() }
func (c *fakeClock) LocalNow() time.Time { return c.now }
func (c *fakeClock) BusinessDate() time.Time {
	return time.Date(c.now.Year(), c.now.Month(), c.now.Day(), 0, 0, 0, 0, c.now.Location())
}

// fakePrinter records print calls and optionally fails
type fakePrinter struct {
	mu    sync.Mutex
	calls []uuid.UUID
	fail  bool
}

func (p *fakePrinter) PrintOrderReceipt(ctx context.Context, orderID uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, orderID)
	if p.fail {
		return errors.New("printer offline")
	}
	return nil
}

// --- order repositories ---

type fakeOrderRepo struct{ store *memoryStore }

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *fakeOrderRepo) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	for _, l := range r.store.lines {
		if l.OrderID == id {
			for _, m := range r.store.modifiers {
				if m.OrderLineID == l.ID {
					l.Modifiers = append(l.Modifiers, m)
				}
			}
			o.Lines = append(o.Lines, l)
		}
	}
	sort.Slice(o.Lines, func(i, j int) bool { return o.Lines[i].CreatedAt.Before(o.Lines[j].CreatedAt) })
	return &o, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failOrderUpdate {
		return errors.New("storage failure")
	}
	stored := *order
	stored.Lines = nil
	r.store.orders[order.ID] = stored
	return nil
}

func (r *fakeOrderRepo) ListHeld(ctx context.Context, terminalID uuid.UUID) ([]entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Order
	for _, o := range r.store.orders {
		if o.TerminalID == terminalID && o.Status == enum.OrderStatusHeld {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Order
	for _, o := range r.store.orders {
		if params.Status != nil && o.Status != *params.Status {
			continue
		}
		if params.TerminalID != nil && o.TerminalID != *params.TerminalID {
			continue
		}
		if params.Search != "" && !strings.Contains(o.ReceiptNumber, params.Search) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

type fakeLineRepo struct{ store *memoryStore }

func (r *fakeLineRepo) Create(ctx context.Context, line *entity.OrderLine) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored := *line
	stored.Modifiers = nil
	r.store.lines[line.ID] = stored
	for _, m := range line.Modifiers {
		r.store.modifiers[m.ID] = m
	}
	return nil
}

func (r *fakeLineRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderLine, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	l, ok := r.store.lines[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *fakeLineRepo) GetWithModifiers(ctx context.Context, id uuid.UUID) (*entity.OrderLine, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	l, ok := r.store.lines[id]
	if !ok {
		return nil, nil
	}
	for _, m := range r.store.modifiers {
		if m.OrderLineID == id {
			l.Modifiers = append(l.Modifiers, m)
		}
	}
	return &l, nil
}

func (r *fakeLineRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderLine, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.OrderLine
	for _, l := range r.store.lines {
		if l.OrderID == orderID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeLineRepo) Update(ctx context.Context, line *entity.OrderLine) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored := *line
	stored.Modifiers = nil
	r.store.lines[line.ID] = stored
	return nil
}

func (r *fakeLineRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.lines, id)
	for mid, m := range r.store.modifiers {
		if m.OrderLineID == id {
			delete(r.store.modifiers, mid)
		}
	}
	return nil
}

// --- catalog repository ---

type fakeMenuRepo struct{ store *memoryStore }

func (r *fakeMenuRepo) ListCategories(ctx context.Context, storeID uuid.UUID, activeOnly bool) ([]entity.MenuCategory, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.MenuCategory
	for _, c := range r.store.categories {
		if c.StoreID != storeID || (activeOnly && !c.IsActive) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (r *fakeMenuRepo) ListItems(ctx context.Context, storeID uuid.UUID, activeOnly bool) ([]entity.MenuItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.MenuItem
	for _, it := range r.store.items {
		if it.StoreID != storeID || (activeOnly && !it.IsActive) {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (r *fakeMenuRepo) ListPricesForItems(ctx context.Context, itemIDs []uuid.UUID, activeOnly bool) ([]entity.MenuItemPrice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	want := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		want[id] = true
	}
	var out []entity.MenuItemPrice
	for _, p := range r.store.prices {
		if !want[p.ItemID] || (activeOnly && !p.IsActive) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (r *fakeMenuRepo) GetActivePrice(ctx context.Context, priceID uuid.UUID) (*entity.MenuItemPrice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.prices[priceID]
	if !ok || !p.IsActive {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeMenuRepo) GetActiveItem(ctx context.Context, itemID uuid.UUID) (*entity.MenuItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	it, ok := r.store.items[itemID]
	if !ok || !it.IsActive {
		return nil, nil
	}
	return &it, nil
}

func (r *fakeMenuRepo) GetActiveTaxCategory(ctx context.Context, taxCategoryID uuid.UUID) (*entity.TaxCategory, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.taxes[taxCategoryID]
	if !ok || !t.IsActive {
		return nil, nil
	}
	return &t, nil
}

func (r *fakeMenuRepo) GetActiveModifierOptions(ctx context.Context, optionIDs []uuid.UUID) ([]entity.ModifierOption, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.ModifierOption
	for _, id := range optionIDs {
		if o, ok := r.store.options[id]; ok && o.IsActive {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeMenuRepo) CreateCategory(ctx context.Context, category *entity.MenuCategory) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.categories[category.ID] = *category
	return nil
}

func (r *fakeMenuRepo) CreateItem(ctx context.Context, item *entity.MenuItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored := *item
	stored.Prices = nil
	r.store.items[item.ID] = stored
	return nil
}

func (r *fakeMenuRepo) CreatePrice(ctx context.Context, price *entity.MenuItemPrice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.prices[price.ID] = *price
	return nil
}

func (r *fakeMenuRepo) CreateTaxCategory(ctx context.Context, taxCategory *entity.TaxCategory) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.taxes[taxCategory.ID] = *taxCategory
	return nil
}

func (r *fakeMenuRepo) CreateModifierGroup(ctx context.Context, group *entity.ModifierGroup) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.groups[group.ID] = *group
	return nil
}

func (r *fakeMenuRepo) CreateModifierOption(ctx context.Context, option *entity.ModifierOption) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.options[option.ID] = *option
	return nil
}

func (r *fakeMenuRepo) ListTaxCategories(ctx context.Context, storeID uuid.UUID) ([]entity.TaxCategory, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.TaxCategory
	for _, t := range r.store.taxes {
		if t.StoreID == storeID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeMenuRepo) ListModifierGroups(ctx context.Context, storeID uuid.UUID) ([]entity.ModifierGroup, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.ModifierGroup
	for _, g := range r.store.groups {
		if g.StoreID != storeID || !g.IsActive {
			continue
		}
		for _, o := range r.store.options {
			if o.ModifierGroupID == g.ID && o.IsActive {
				g.Options = append(g.Options, o)
			}
		}
		sort.Slice(g.Options, func(i, j int) bool { return g.Options[i].DisplayOrder < g.Options[j].DisplayOrder })
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (r *fakeMenuRepo) CategoryNamesForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make(map[uuid.UUID]string)
	for _, id := range itemIDs {
		it, ok := r.store.items[id]
		if !ok {
			continue
		}
		if c, ok := r.store.categories[it.CategoryID]; ok {
			out[id] = c.Name
		}
	}
	return out, nil
}

// --- shift repository ---

type fakeShiftRepo struct{ store *memoryStore }

func (r *fakeShiftRepo) Create(ctx context.Context, shift *entity.Shift) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.shifts[shift.ID] = *shift
	return nil
}

func (r *fakeShiftRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.shifts[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeShiftRepo) FindOpenByTerminal(ctx context.Context, terminalID uuid.UUID) (*entity.Shift, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.shifts {
		if s.TerminalID == terminalID && s.Status == enum.ShiftStatusOpen {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeShiftRepo) Update(ctx context.Context, shift *entity.Shift) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.shifts[shift.ID] = *shift
	return nil
}

func (r *fakeShiftRepo) CreateEvent(ctx context.Context, event *entity.CashDrawerEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.events = append(r.store.events, *event)
	return nil
}

func (r *fakeShiftRepo) EventsByShift(ctx context.Context, shiftID uuid.UUID) ([]entity.CashDrawerEvent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.CashDrawerEvent
	for _, e := range r.store.events {
		if e.ShiftID == shiftID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeShiftRepo) OrdersByShift(ctx context.Context, shiftID uuid.UUID) ([]entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Order
	for _, o := range r.store.orders {
		if o.ShiftID != nil && *o.ShiftID == shiftID {
			out = append(out, o)
		}
	}
	return out, nil
}

// --- payment repository ---

type fakePaymentRepo struct{ store *memoryStore }

func (r *fakePaymentRepo) CreateBatch(ctx context.Context, payments []entity.Payment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.payments = append(r.store.payments, payments...)
	return nil
}

func (r *fakePaymentRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Payment
	for _, p := range r.store.payments {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) GetByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]entity.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	want := make(map[uuid.UUID]bool, len(orderIDs))
	for _, id := range orderIDs {
		want[id] = true
	}
	var out []entity.Payment
	for _, p := range r.store.payments {
		if want[p.OrderID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) ListActiveMethods(ctx context.Context, storeID uuid.UUID) ([]entity.PaymentMethod, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.PaymentMethod
	for _, m := range r.store.methods {
		if m.StoreID == storeID && m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) GetMethodsByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.PaymentMethod, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.PaymentMethod
	for _, id := range ids {
		if m, ok := r.store.methods[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// --- sequence, store, user, report repositories ---

type fakeSequenceRepo struct{ store *memoryStore }

func (r *fakeSequenceRepo) Next(ctx context.Context, storeID, terminalID uuid.UUID, businessDate time.Time) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := fmt.Sprintf("%s|%s|%s", storeID, terminalID, businessDate.Format("20060102"))
	r.store.sequences[key]++
	return r.store.sequences[key], nil
}

type fakeStoreRepo struct{ store *memoryStore }

func (r *fakeStoreRepo) GetStore(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.stores[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeStoreRepo) GetDefaultStore(ctx context.Context) (*entity.Store, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.stores {
		out := s
		return &out, nil
	}
	return nil, nil
}

func (r *fakeStoreRepo) GetTerminal(ctx context.Context, id uuid.UUID) (*entity.Terminal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.terminals[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *fakeStoreRepo) ListTerminals(ctx context.Context, storeID uuid.UUID) ([]entity.Terminal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Terminal
	for _, t := range r.store.terminals {
		if t.StoreID == storeID {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeUserRepo struct{ store *memoryStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

type fakeReportRepo struct{ store *memoryStore }

func (r *fakeReportRepo) CompletedOrdersBetween(ctx context.Context, start, end time.Time) ([]entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Order
	for _, o := range r.store.orders {
		if o.Status != enum.OrderStatusCompleted && o.Status != enum.OrderStatusRefunded {
			continue
		}
		if o.CompletedAt == nil || o.CompletedAt.Before(start) || o.CompletedAt.After(end) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeReportRepo) VoidedOrdersBetween(ctx context.Context, start, end time.Time) ([]entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Order
	for _, o := range r.store.orders {
		if o.Status != enum.OrderStatusVoided {
			continue
		}
		if o.CompletedAt == nil || o.CompletedAt.Before(start) || o.CompletedAt.After(end) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeReportRepo) LinesForOrders(ctx context.Context, orderIDs []uuid.UUID) ([]entity.OrderLine, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	want := make(map[uuid.UUID]bool, len(orderIDs))
	for _, id := range orderIDs {
		want[id] = true
	}
	var out []entity.OrderLine
	for _, l := range r.store.lines {
		if want[l.OrderID] {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeReportRepo) PaymentsForOrders(ctx context.Context, orderIDs []uuid.UUID) ([]entity.Payment, error) {
	return (&fakePaymentRepo{store: r.store}).GetByOrderIDs(ctx, orderIDs)
}

// --- test fixture ---

// fixture wires every service against one shared memory store
type fixture struct {
	store    *memoryStore
	clock    *fakeClock
	printer  *fakePrinter
	orders   *OrderService
	shifts   *ShiftService
	reports  *ReportService
	receipts *ReceiptNumberService
	menus    *MenuService
	payments *PaymentService

	storeID    uuid.UUID
	terminalID uuid.UUID
	userID     uuid.UUID
	cashID     uuid.UUID
	cardID     uuid.UUID
}

func newFixture() *fixture {
	store := newMemoryStore()
	clk := newFakeClock()
	prn := &fakePrinter{}
	tx := &fakeTxManager{store: store}

	orderRepo := &fakeOrderRepo{store: store}
	lineRepo := &fakeLineRepo{store: store}
	menuRepo := &fakeMenuRepo{store: store}
	shiftRepo := &fakeShiftRepo{store: store}
	paymentRepo := &fakePaymentRepo{store: store}
	seqRepo := &fakeSequenceRepo{store: store}
	storeRepo := &fakeStoreRepo{store: store}
	reportRepo := &fakeReportRepo{store: store}

	f := &fixture{
		store:      store,
		clock:      clk,
		printer:    prn,
		storeID:    uuid.New(),
		terminalID: uuid.New(),
		userID:     uuid.New(),
		cashID:     uuid.New(),
		cardID:     uuid.New(),
	}

	store.stores[f.storeID] = entity.Store{ID: f.storeID, Name: "Corner Cafe", IsActive: true}
	store.terminals[f.terminalID] = entity.Terminal{ID: f.terminalID, StoreID: f.storeID, Name: "Front", ReceiptPrefix: "T1", IsActive: true}
	store.users[f.userID] = entity.User{ID: f.userID, Username: "jo", DisplayName: "Jo", Role: "cashier", IsActive: true}
	store.methods[f.cashID] = entity.PaymentMethod{ID: f.cashID, StoreID: f.storeID, Name: "Cash", Type: enum.PaymentMethodTypeCash, IsActive: true}
	store.methods[f.cardID] = entity.PaymentMethod{ID: f.cardID, StoreID: f.storeID, Name: "Card", Type: enum.PaymentMethodTypeExternal, IsActive: true}

	f.receipts = NewReceiptNumberService(seqRepo, storeRepo)
	f.orders = NewOrderService(orderRepo, lineRepo, menuRepo, shiftRepo, paymentRepo, f.receipts, tx, clk, prn)
	f.shifts = NewShiftService(shiftRepo, paymentRepo, lineRepo, tx, clk)
	f.reports = NewReportService(reportRepo, menuRepo, paymentRepo)
	f.menus = NewMenuService(menuRepo)
	f.payments = NewPaymentService(paymentRepo)
	return f
}

// seedItem creates a category, item, and price, returning the price ID
func (f *fixture) seedItem(name, price string, taxRate string, inclusive bool) uuid.UUID {
	catID := uuid.New()
	f.store.categories[catID] = entity.MenuCategory{ID: catID, StoreID: f.storeID, Name: "Drinks", IsActive: true}

	var taxID *uuid.UUID
	if taxRate != "" {
		id := uuid.New()
		f.store.taxes[id] = entity.TaxCategory{
			ID: id, StoreID: f.storeID, Name: "Std",
			Rate: decimal.RequireFromString(taxRate), IsInclusive: inclusive, IsActive: true,
		}
		taxID = &id
	}

	itemID := uuid.New()
	f.store.items[itemID] = entity.MenuItem{ID: itemID, StoreID: f.storeID, CategoryID: catID, Name: name, IsActive: true, IsAvailable: true}

	priceID := uuid.New()
	f.store.prices[priceID] = entity.MenuItemPrice{
		ID: priceID, ItemID: itemID,
		Price: decimal.RequireFromString(price), TaxCategoryID: taxID, IsActive: true,
	}
	return priceID
}

// seedOption creates an active modifier option with a price delta
func (f *fixture) seedOption(name, delta string) uuid.UUID {
	id := uuid.New()
	f.store.options[id] = entity.ModifierOption{
		ID: id, ModifierGroupID: uuid.New(), Name: name,
		PriceDelta: decimal.RequireFromString(delta), IsActive: true,
		ModifierGroup: entity.ModifierGroup{Name: "Extras"},
	}
	return id
}

func (f *fixture) openShift(float string) *entity.Shift {
	shift, err := f.shifts.OpenShift(context.Background(), f.storeID, f.terminalID, f.userID, decimal.RequireFromString(float))
	if err != nil {
		panic(err)
	}
	return shift
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
