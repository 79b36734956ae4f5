package inventory_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmastock/backend/internal/application/inventory"
	"github.com/farmastock/backend/internal/domain"
	"github.com/farmastock/backend/internal/domain/entity"
	"github.com/farmastock/backend/internal/domain/repository"
)

// memStore guarda el estado compartido de los repositorios en memoria usados por
// los tests de casos de uso. Los repositorios son vistas delgadas sobre este estado
// y copian los valores al entrar y salir, para que el snapshot del memTxRunner
// refleje la semántica de rollback de una transacción real.
type memStore struct {
	items         map[string]*entity.StockItem
	movements     []*entity.Movement
	shipments     map[string]*entity.Shipment
	records       []*entity.DispensingRecord
	notifications []*entity.Notification
	branches      map[string]*entity.Branch
	patients      map[string]*entity.Patient
	employees     map[string]*entity.Employee
	categories    map[string]*entity.Category

	notifErr error // fuerza fallos en la creación de avisos
}

func newMemStore() *memStore {
	return &memStore{
		items:      make(map[string]*entity.StockItem),
		shipments:  make(map[string]*entity.Shipment),
		branches:   make(map[string]*entity.Branch),
		patients:   make(map[string]*entity.Patient),
		employees:  make(map[string]*entity.Employee),
		categories: make(map[string]*entity.Category),
	}
}

func (m *memStore) stockRepo() repository.StockItemRepository          { return &memStockRepo{m} }
func (m *memStore) movementRepo() repository.MovementRepository        { return &memMovementRepo{m} }
func (m *memStore) shipmentRepo() repository.ShipmentRepository        { return &memShipmentRepo{m} }
func (m *memStore) dispensingRepo() repository.DispensingRepository    { return &memDispensingRepo{m} }
func (m *memStore) notificationRepo() repository.NotificationRepository { return &memNotificationRepo{m} }
func (m *memStore) branchRepo() repository.BranchRepository            { return &memBranchRepo{m} }
func (m *memStore) patientRepo() repository.PatientRepository          { return &memPatientRepo{m} }
func (m *memStore) employeeRepo() repository.EmployeeRepository        { return &memEmployeeRepo{m} }
func (m *memStore) categoryRepo() repository.CategoryRepository        { return &memCategoryRepo{m} }

func copyItem(s *entity.StockItem) *entity.StockItem {
	c := *s
	if s.BranchID != nil {
		b := *s.BranchID
		c.BranchID = &b
	}
	if s.CatalogItemID != nil {
		id := *s.CatalogItemID
		c.CatalogItemID = &id
	}
	return &c
}

func copyShipment(s *entity.Shipment) *entity.Shipment {
	c := *s
	if s.AcceptedAt != nil {
		t := *s.AcceptedAt
		c.AcceptedAt = &t
	}
	c.Items = append([]entity.ShipmentItem(nil), s.Items...)
	// Como en la BD real, las líneas se leen ordenadas por position.
	sort.SliceStable(c.Items, func(i, j int) bool { return c.Items[i].Position < c.Items[j].Position })
	return &c
}

func (m *memStore) clone() *memStore {
	c := newMemStore()
	for id, item := range m.items {
		c.items[id] = copyItem(item)
	}
	for _, mov := range m.movements {
		mc := *mov
		c.movements = append(c.movements, &mc)
	}
	for id, s := range m.shipments {
		c.shipments[id] = copyShipment(s)
	}
	for _, r := range m.records {
		rc := *r
		c.records = append(c.records, &rc)
	}
	for _, n := range m.notifications {
		nc := *n
		c.notifications = append(c.notifications, &nc)
	}
	c.branches = m.branches
	c.patients = m.patients
	c.employees = m.employees
	c.categories = m.categories
	c.notifErr = m.notifErr
	return c
}

// memTxRunner emula la transacción con copy-on-begin: si fn falla, el estado
// previo se restaura completo.
type memTxRunner struct {
	store *memStore
}

var _ inventory.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockItemRepository,
	movRepo repository.MovementRepository,
	shipmentRepo repository.ShipmentRepository,
	dispensingRepo repository.DispensingRepository,
) error) error {
	snapshot := r.store.clone()
	err := fn(r.store.stockRepo(), r.store.movementRepo(), r.store.shipmentRepo(), r.store.dispensingRepo())
	if err != nil {
		*r.store = *snapshot
		return err
	}
	return nil
}

// --- StockItemRepository ---

type memStockRepo struct{ s *memStore }

func (r *memStockRepo) Create(item *entity.StockItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.s.items[item.ID] = copyItem(item)
	return nil
}

func (r *memStockRepo) GetByID(id string) (*entity.StockItem, error) {
	item, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return copyItem(item), nil
}

func (r *memStockRepo) GetQuantity(itemID string, branchID *string) (int64, error) {
	if branchID == nil {
		if item, ok := r.s.items[itemID]; ok && item.BranchID == nil {
			return item.Quantity, nil
		}
		return 0, nil
	}
	for _, item := range r.s.items {
		if item.BranchID == nil || *item.BranchID != *branchID {
			continue
		}
		if item.ID == itemID || (item.CatalogItemID != nil && *item.CatalogItemID == itemID) {
			return item.Quantity, nil
		}
	}
	return 0, nil
}

func (r *memStockRepo) ListByLocation(branchID *string, kind string) ([]*entity.StockItem, error) {
	var list []*entity.StockItem
	for _, item := range r.s.items {
		if branchID == nil && item.BranchID != nil {
			continue
		}
		if branchID != nil && (item.BranchID == nil || *item.BranchID != *branchID) {
			continue
		}
		if kind != "" && item.Kind != kind {
			continue
		}
		list = append(list, copyItem(item))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *memStockRepo) GetWarehouseForUpdate(itemID string) (*entity.StockItem, error) {
	item, ok := r.s.items[itemID]
	if !ok || item.BranchID != nil {
		return nil, nil
	}
	return copyItem(item), nil
}

func (r *memStockRepo) GetAtBranchForUpdate(itemID, branchID string) (*entity.StockItem, error) {
	item, ok := r.s.items[itemID]
	if !ok || item.BranchID == nil || *item.BranchID != branchID {
		return nil, nil
	}
	return copyItem(item), nil
}

func (r *memStockRepo) AdjustQuantity(itemID string, delta int64) (int64, error) {
	item, ok := r.s.items[itemID]
	if !ok || item.Quantity+delta < 0 {
		return 0, domain.ErrInsufficientStock
	}
	item.Quantity += delta
	item.UpdatedAt = time.Now()
	return item.Quantity, nil
}

func (r *memStockRepo) UpsertBranchCopy(catalog *entity.StockItem, branchID string, quantity int64) (*entity.StockItem, error) {
	for _, item := range r.s.items {
		if item.CatalogItemID != nil && *item.CatalogItemID == catalog.ID &&
			item.BranchID != nil && *item.BranchID == branchID {
			item.Quantity += quantity
			item.UpdatedAt = time.Now()
			return copyItem(item), nil
		}
	}
	branchCopy := &entity.StockItem{
		ID:            uuid.New().String(),
		Name:          catalog.Name,
		Kind:          catalog.Kind,
		CategoryID:    catalog.CategoryID,
		PurchasePrice: catalog.PurchasePrice,
		SellPrice:     catalog.SellPrice,
		Quantity:      quantity,
		BranchID:      &branchID,
		CatalogItemID: &catalog.ID,
	}
	r.s.items[branchCopy.ID] = branchCopy
	return copyItem(branchCopy), nil
}

func (r *memStockRepo) UpdateArrivalPrices(itemID string, purchasePrice decimal.Decimal, sellPrice *decimal.Decimal) error {
	item, ok := r.s.items[itemID]
	if !ok {
		return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, itemID)
	}
	item.PurchasePrice = purchasePrice
	if sellPrice != nil {
		item.SellPrice = *sellPrice
	}
	return nil
}

// --- MovementRepository ---

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(movement *entity.Movement) error {
	mc := *movement
	r.s.movements = append(r.s.movements, &mc)
	return nil
}

func (r *memMovementRepo) ListByKind(kinds []string, branchID string, limit, offset int) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		mov := r.s.movements[i]
		match := false
		for _, k := range kinds {
			if mov.Kind == k {
				match = true
			}
		}
		if !match {
			continue
		}
		if branchID != "" && mov.ToBranchID != branchID {
			continue
		}
		mc := *mov
		list = append(list, &mc)
	}
	return page(list, limit, offset), nil
}

func (r *memMovementRepo) ListByRecord(recordID string) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, mov := range r.s.movements {
		if mov.RecordID == recordID {
			mc := *mov
			list = append(list, &mc)
		}
	}
	return list, nil
}

// --- ShipmentRepository ---

type memShipmentRepo struct{ s *memStore }

func (r *memShipmentRepo) Create(shipment *entity.Shipment) error {
	if shipment.ID == "" {
		shipment.ID = uuid.New().String()
	}
	r.s.shipments[shipment.ID] = copyShipment(shipment)
	return nil
}

func (r *memShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	s, ok := r.s.shipments[id]
	if !ok {
		return nil, nil
	}
	return copyShipment(s), nil
}

func (r *memShipmentRepo) GetForUpdate(id string) (*entity.Shipment, error) {
	return r.GetByID(id)
}

func (r *memShipmentRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Shipment, error) {
	var list []*entity.Shipment
	for _, s := range r.s.shipments {
		if branchID != "" && s.ToBranchID != branchID {
			continue
		}
		list = append(list, copyShipment(s))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, limit, offset), nil
}

func (r *memShipmentRepo) MarkAccepted(id string, acceptedAt time.Time) error {
	s, ok := r.s.shipments[id]
	if !ok || !s.IsPending() {
		return domain.ErrConflict
	}
	s.Status = entity.ShipmentStatusAccepted
	s.AcceptedAt = &acceptedAt
	return nil
}

func (r *memShipmentRepo) MarkRejected(id, reason string) error {
	s, ok := r.s.shipments[id]
	if !ok || !s.IsPending() {
		return domain.ErrConflict
	}
	s.Status = entity.ShipmentStatusRejected
	s.RejectionReason = reason
	return nil
}

func (r *memShipmentRepo) SetStatus(id, status string) error {
	s, ok := r.s.shipments[id]
	if !ok {
		return fmt.Errorf("%w: envío %s", domain.ErrNotFound, id)
	}
	s.Status = status
	return nil
}

func (r *memShipmentRepo) GetLastReceipt(branchID, itemID string) (*repository.LastReceipt, error) {
	var last *repository.LastReceipt
	var lastAt time.Time
	for _, s := range r.s.shipments {
		if s.ToBranchID != branchID || s.Status != entity.ShipmentStatusAccepted {
			continue
		}
		for _, item := range s.Items {
			if item.ItemID == itemID && (last == nil || s.CreatedAt.After(lastAt)) {
				last = &repository.LastReceipt{Quantity: item.Quantity, Time: s.CreatedAt}
				lastAt = s.CreatedAt
			}
		}
	}
	return last, nil
}

// --- DispensingRepository ---

type memDispensingRepo struct{ s *memStore }

func (r *memDispensingRepo) Create(record *entity.DispensingRecord) error {
	rc := *record
	r.s.records = append(r.s.records, &rc)
	return nil
}

func (r *memDispensingRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.DispensingRecord, error) {
	var list []*entity.DispensingRecord
	for i := len(r.s.records) - 1; i >= 0; i-- {
		rec := r.s.records[i]
		if branchID != "" && rec.BranchID != branchID {
			continue
		}
		rc := *rec
		list = append(list, &rc)
	}
	return page(list, limit, offset), nil
}

// --- NotificationRepository ---

type memNotificationRepo struct{ s *memStore }

func (r *memNotificationRepo) Create(notification *entity.Notification) error {
	if r.s.notifErr != nil {
		return r.s.notifErr
	}
	nc := *notification
	r.s.notifications = append(r.s.notifications, &nc)
	return nil
}

func (r *memNotificationRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Notification, error) {
	var list []*entity.Notification
	for i := len(r.s.notifications) - 1; i >= 0; i-- {
		n := r.s.notifications[i]
		if branchID != "" && n.BranchID != branchID {
			continue
		}
		nc := *n
		list = append(list, &nc)
	}
	return page(list, limit, offset), nil
}

func (r *memNotificationRepo) MarkRead(id string) error {
	for _, n := range r.s.notifications {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return fmt.Errorf("%w: aviso %s", domain.ErrNotFound, id)
}

// --- Repositorios de referencia ---

type memBranchRepo struct{ s *memStore }

func (r *memBranchRepo) GetByID(id string) (*entity.Branch, error) {
	b, ok := r.s.branches[id]
	if !ok {
		return nil, nil
	}
	return b, nil
}

type memPatientRepo struct{ s *memStore }

func (r *memPatientRepo) GetByID(id string) (*entity.Patient, error) {
	p, ok := r.s.patients[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

type memEmployeeRepo struct{ s *memStore }

func (r *memEmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	e, ok := r.s.employees[id]
	if !ok {
		return nil, nil
	}
	return e, nil
}

type memCategoryRepo struct{ s *memStore }

func (r *memCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// --- Helpers de datos ---

func seedWarehouseItem(s *memStore, name, kind string, quantity int64) *entity.StockItem {
	item := &entity.StockItem{
		ID:            uuid.New().String(),
		Name:          name,
		Kind:          kind,
		CategoryID:    "cat-" + kind,
		PurchasePrice: decimal.NewFromInt(10),
		SellPrice:     decimal.NewFromInt(15),
		Quantity:      quantity,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	s.items[item.ID] = item
	return item
}

func seedBranch(s *memStore, id, name string) {
	s.branches[id] = &entity.Branch{ID: id, Name: name, CreatedAt: time.Now()}
}

func seedPatient(s *memStore, id, firstName, lastName string) {
	s.patients[id] = &entity.Patient{ID: id, FirstName: firstName, LastName: lastName}
}

func seedEmployee(s *memStore, id, firstName, lastName string) {
	s.employees[id] = &entity.Employee{ID: id, FirstName: firstName, LastName: lastName}
}

func seedCategory(s *memStore, id, name, kind string) {
	s.categories[id] = &entity.Category{ID: id, Name: name, Type: kind}
}

// branchQuantity devuelve la cantidad de la copia de sucursal de un artículo de
// catálogo, 0 si no existe.
func branchQuantity(s *memStore, catalogID, branchID string) int64 {
	qty, _ := s.stockRepo().GetQuantity(catalogID, &branchID)
	return qty
}
