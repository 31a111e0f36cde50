package services

import (
	"time"

	"gestion_backend/internal/models"
	"gestion_backend/internal/repositories"
)

// fakeTxManager runs the closure directly without a real transaction.
type fakeTxManager struct{}

func (fakeTxManager) WithinTx(fn func(executor repositories.SQLExecutor) error) error {
	return fn(nil)
}

// --- inventory ---

type fakeInventoryRepo struct {
	items  map[int64]*models.InventoryItem
	nextID int64
}

func newFakeInventoryRepo(items ...models.InventoryItem) *fakeInventoryRepo {
	r := &fakeInventoryRepo{items: make(map[int64]*models.InventoryItem)}
	for i := range items {
		it := items[i]
		if it.ID == 0 {
			r.nextID++
			it.ID = r.nextID
		} else if it.ID > r.nextID {
			r.nextID = it.ID
		}
		r.items[it.ID] = &it
	}
	return r
}

func (r *fakeInventoryRepo) CreateItem(_ repositories.SQLExecutor, item *models.InventoryItem) (int64, error) {
	r.nextID++
	stored := *item
	stored.ID = r.nextID
	r.items[stored.ID] = &stored
	return stored.ID, nil
}

func (r *fakeInventoryRepo) GetItemByID(id int64) (*models.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cloned := *item
	return &cloned, nil
}

func (r *fakeInventoryRepo) GetItems(_ *string, _, _ int) ([]models.InventoryItem, int, error) {
	out := make([]models.InventoryItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, *it)
	}
	return out, len(out), nil
}

func (r *fakeInventoryRepo) UpdateItem(_ repositories.SQLExecutor, item *models.InventoryItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *item
	r.items[item.ID] = &stored
	return nil
}

func (r *fakeInventoryRepo) DeleteItem(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.items[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeInventoryRepo) DecrementStock(_ repositories.SQLExecutor, itemID int64, quantity int) (int64, error) {
	item, ok := r.items[itemID]
	if !ok || item.Quantity < quantity {
		return 0, nil
	}
	item.Quantity -= quantity
	return 1, nil
}

func (r *fakeInventoryRepo) IncrementStock(_ repositories.SQLExecutor, itemID int64, quantity int) error {
	item, ok := r.items[itemID]
	if !ok {
		return repositories.ErrNotFound
	}
	item.Quantity += quantity
	return nil
}

func (r *fakeInventoryRepo) CountItems() (int, int, error) {
	outOfStock := 0
	for _, it := range r.items {
		if it.Quantity == 0 {
			outOfStock++
		}
	}
	return len(r.items), outOfStock, nil
}

func (r *fakeInventoryRepo) GetLowStockItems(threshold, limit int) ([]models.InventoryItem, error) {
	out := []models.InventoryItem{}
	for _, it := range r.items {
		if it.Quantity <= threshold && len(out) < limit {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) quantityOf(id int64) int {
	if item, ok := r.items[id]; ok {
		return item.Quantity
	}
	return -1
}

// --- stock movements ---

type fakeMovementRepo struct {
	movements []models.StockMovement
}

func (r *fakeMovementRepo) CreateMovement(_ repositories.SQLExecutor, movement *models.StockMovement) (int64, error) {
	movement.ID = int64(len(r.movements) + 1)
	r.movements = append(r.movements, *movement)
	return movement.ID, nil
}

func (r *fakeMovementRepo) GetMovements(_ models.MovementFilters) ([]models.StockMovement, int, error) {
	return r.movements, len(r.movements), nil
}

func (r *fakeMovementRepo) byType(movementType string) []models.StockMovement {
	out := []models.StockMovement{}
	for _, m := range r.movements {
		if m.MovementType == movementType {
			out = append(out, m)
		}
	}
	return out
}

// --- orders ---

type fakeOrderRepo struct {
	orders     map[int64]*models.Order
	orderItems map[int64][]models.OrderItem
	nextID     int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:     make(map[int64]*models.Order),
		orderItems: make(map[int64][]models.OrderItem),
	}
}

func (r *fakeOrderRepo) CreateOrder(_ repositories.SQLExecutor, order *models.Order) (int64, error) {
	r.nextID++
	stored := *order
	stored.ID = r.nextID
	r.orders[stored.ID] = &stored
	return stored.ID, nil
}

func (r *fakeOrderRepo) GetOrderByID(orderID int64) (*models.Order, error) {
	order, ok := r.orders[orderID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cloned := *order
	return &cloned, nil
}

func (r *fakeOrderRepo) GetOrders(_ models.OrderFilters) ([]models.Order, int, error) {
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, len(out), nil
}

func (r *fakeOrderRepo) UpdateOrder(_ repositories.SQLExecutor, order *models.Order) error {
	if _, ok := r.orders[order.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *order
	r.orders[order.ID] = &stored
	return nil
}

func (r *fakeOrderRepo) DeleteOrder(_ repositories.SQLExecutor, orderID int64) (int64, error) {
	if _, ok := r.orders[orderID]; !ok {
		return 0, repositories.ErrNotFound
	}
	delete(r.orders, orderID)
	return 1, nil
}

func (r *fakeOrderRepo) CreateOrderItem(_ repositories.SQLExecutor, item *models.OrderItem) (int64, error) {
	r.nextID++
	stored := *item
	stored.ID = r.nextID
	r.orderItems[stored.OrderID] = append(r.orderItems[stored.OrderID], stored)
	return stored.ID, nil
}

func (r *fakeOrderRepo) GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error) {
	return append([]models.OrderItem{}, r.orderItems[orderID]...), nil
}

func (r *fakeOrderRepo) DeleteOrderItemsByOrderID(_ repositories.SQLExecutor, orderID int64) (int64, error) {
	count := int64(len(r.orderItems[orderID]))
	delete(r.orderItems, orderID)
	return count, nil
}

func (r *fakeOrderRepo) CountByStatus(statuses ...string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, o := range r.orders {
		for _, status := range statuses {
			if o.Status == status {
				counts[status]++
			}
		}
	}
	return counts, nil
}

// --- sellable products ---

type fakeProductRepo struct {
	products   map[int64]*models.SellableProduct
	components map[int64][]models.ProductComponent
	nextID     int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products:   make(map[int64]*models.SellableProduct),
		components: make(map[int64][]models.ProductComponent),
	}
}

func (r *fakeProductRepo) CreateProduct(_ repositories.SQLExecutor, product *models.SellableProduct) (int64, error) {
	r.nextID++
	stored := *product
	stored.ID = r.nextID
	r.products[stored.ID] = &stored
	return stored.ID, nil
}

func (r *fakeProductRepo) CreateComponent(_ repositories.SQLExecutor, component *models.ProductComponent) (int64, error) {
	r.nextID++
	stored := *component
	stored.ID = r.nextID
	r.components[stored.ProductID] = append(r.components[stored.ProductID], stored)
	return stored.ID, nil
}

func (r *fakeProductRepo) GetProductByID(id int64) (*models.SellableProduct, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cloned := *product
	return &cloned, nil
}

func (r *fakeProductRepo) GetProducts(_, _ int) ([]models.SellableProduct, int, error) {
	out := make([]models.SellableProduct, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (r *fakeProductRepo) GetComponentsByProductID(productID int64) ([]models.ProductComponent, error) {
	return append([]models.ProductComponent{}, r.components[productID]...), nil
}

func (r *fakeProductRepo) UpdateProduct(_ repositories.SQLExecutor, product *models.SellableProduct) error {
	if _, ok := r.products[product.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *product
	r.products[product.ID] = &stored
	return nil
}

func (r *fakeProductRepo) DeleteComponentsByProductID(_ repositories.SQLExecutor, productID int64) (int64, error) {
	count := int64(len(r.components[productID]))
	delete(r.components, productID)
	return count, nil
}

func (r *fakeProductRepo) DeleteProduct(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// --- ledger ---

type fakeLedgerRepo struct {
	entries map[int64]*models.LedgerEntry
	nextID  int64
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{entries: make(map[int64]*models.LedgerEntry)}
}

func (r *fakeLedgerRepo) CreateEntry(_ repositories.SQLExecutor, entry *models.LedgerEntry) (int64, error) {
	r.nextID++
	stored := *entry
	stored.ID = r.nextID
	if stored.EntryDate.IsZero() {
		stored.EntryDate = time.Now()
	}
	r.entries[stored.ID] = &stored
	return stored.ID, nil
}

func (r *fakeLedgerRepo) GetEntryByID(id int64) (*models.LedgerEntry, error) {
	entry, ok := r.entries[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cloned := *entry
	return &cloned, nil
}

func (r *fakeLedgerRepo) GetEntries(filters models.LedgerFilters) ([]models.LedgerEntry, int, error) {
	out := []models.LedgerEntry{}
	for _, e := range r.entries {
		if filters.EntryType != nil && e.EntryType != *filters.EntryType {
			continue
		}
		out = append(out, *e)
	}
	return out, len(out), nil
}

func (r *fakeLedgerRepo) UpdateEntry(_ repositories.SQLExecutor, entry *models.LedgerEntry) error {
	if _, ok := r.entries[entry.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *entry
	r.entries[entry.ID] = &stored
	return nil
}

func (r *fakeLedgerRepo) DeleteEntry(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.entries[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *fakeLedgerRepo) SumByType(from, to time.Time) (map[string]int64, error) {
	sums := make(map[string]int64)
	for _, e := range r.entries {
		if e.EntryDate.Before(from) || !e.EntryDate.Before(to) {
			continue
		}
		sums[e.EntryType] += e.Amount
	}
	return sums, nil
}
