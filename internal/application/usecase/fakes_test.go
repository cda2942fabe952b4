package usecase_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pedidos-pro/internal/domain/entity"
	"github.com/tu-usuario/pedidos-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia y notificación. Replican el
// contrato de los adaptadores reales: lecturas solo sobre filas vivas, nil
// sin error cuando la fila no existe, Create siembra número de orden,
// historial y tracking URL.
// ──────────────────────────────────────────────────────────────────────────────

type statusCall struct {
	orderNumber string
	previous    entity.OrderStatus
}

type fakeNotifier struct {
	fail          bool
	confirmations []string
	statusCalls   []statusCall
}

func (n *fakeNotifier) SendOrderConfirmation(_ context.Context, o *entity.Order) bool {
	n.confirmations = append(n.confirmations, o.OrderNumber)
	return !n.fail
}

func (n *fakeNotifier) SendStatusUpdate(_ context.Context, o *entity.Order, previous entity.OrderStatus) bool {
	n.statusCalls = append(n.statusCalls, statusCall{orderNumber: o.OrderNumber, previous: previous})
	return !n.fail
}

type fakeOrderRepo struct {
	orders map[int64]*entity.Order
	nextID int64
	seq    int
	now    time.Time
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: make(map[int64]*entity.Order),
		now:    time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC),
	}
}

func (r *fakeOrderRepo) live(id int64) *entity.Order {
	o := r.orders[id]
	if o == nil || o.DeletedAt != nil {
		return nil
	}
	return o
}

func (r *fakeOrderRepo) FindAll(_ context.Context, filters ...repository.Field) ([]*entity.Order, error) {
	var list []*entity.Order
	for _, o := range r.orders {
		if o.DeletedAt != nil || !orderMatches(o, filters) {
			continue
		}
		list = append(list, o)
	}
	return list, nil
}

func orderMatches(o *entity.Order, filters []repository.Field) bool {
	for _, f := range filters {
		switch f.Column {
		case "status":
			if o.Status != f.Value.(entity.OrderStatus) {
				return false
			}
		case "customer_id":
			if o.CustomerID == nil || *o.CustomerID != f.Value.(int64) {
				return false
			}
		}
	}
	return true
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id int64) (*entity.Order, error) {
	return r.live(id), nil
}

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) (*entity.Order, error) {
	r.nextID++
	r.seq++
	o.ID = r.nextID
	o.CreatedAt = r.now
	o.UpdatedAt = r.now
	o.OrderNumber = entity.FormatOrderNumber(r.now, r.seq)
	o.Status = entity.OrderPending
	o.TrackingURL = "http://test.local/track/" + o.OrderNumber
	o.StatusHistory = []entity.StatusChange{{
		Status:    entity.OrderPending,
		Timestamp: r.now,
		Notes:     "Orden creada",
	}}
	r.orders[o.ID] = o
	return o, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, id int64, patch []repository.Field) (*entity.Order, error) {
	o := r.live(id)
	if o == nil {
		return nil, nil
	}
	for _, f := range patch {
		switch f.Column {
		case "customer_name":
			o.CustomerName = f.Value.(string)
		case "customer_email":
			o.CustomerEmail = f.Value.(string)
		case "customer_phone":
			o.CustomerPhone = f.Value.(string)
		case "items":
			o.Items = f.Value.([]entity.OrderItem)
		case "total":
			o.Total = f.Value.(decimal.Decimal)
		case "notes":
			o.Notes = f.Value.(string)
		}
	}
	o.UpdatedAt = r.now
	return o, nil
}

func (r *fakeOrderRepo) SoftDelete(_ context.Context, id int64) (bool, error) {
	o := r.live(id)
	if o == nil {
		return false, nil
	}
	now := r.now
	o.DeletedAt = &now
	return true, nil
}

func (r *fakeOrderRepo) HardDelete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.orders[id]; !ok {
		return false, nil
	}
	delete(r.orders, id)
	return true, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id int64, status entity.OrderStatus, notes string) (*entity.Order, error) {
	o := r.live(id)
	if o == nil {
		return nil, nil
	}
	o.StatusHistory = append(o.StatusHistory, entity.StatusChange{
		Status:    status,
		Timestamp: r.now,
		Notes:     notes,
	})
	o.Status = status
	o.UpdatedAt = r.now
	return o, nil
}

func (r *fakeOrderRepo) AddAttachment(_ context.Context, id int64, fileURL string) (*entity.Order, error) {
	o := r.live(id)
	if o == nil {
		return nil, nil
	}
	o.Attachments = append(o.Attachments, fileURL)
	o.UpdatedAt = r.now
	return o, nil
}

func (r *fakeOrderRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*entity.Order, error) {
	for _, o := range r.orders {
		if o.DeletedAt == nil && o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) FindByCustomer(ctx context.Context, customerID int64) ([]*entity.Order, error) {
	return r.FindAll(ctx, repository.F("customer_id", customerID))
}

func (r *fakeOrderRepo) FindByStatus(ctx context.Context, status entity.OrderStatus) ([]*entity.Order, error) {
	return r.FindAll(ctx, repository.F("status", status))
}

type fakeCustomerRepo struct {
	customers map[int64]*entity.Customer
	nextID    int64
	now       time.Time
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		customers: make(map[int64]*entity.Customer),
		now:       time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (r *fakeCustomerRepo) live(id int64) *entity.Customer {
	c := r.customers[id]
	if c == nil || c.DeletedAt != nil {
		return nil
	}
	return c
}

func (r *fakeCustomerRepo) FindAll(_ context.Context, filters ...repository.Field) ([]*entity.Customer, error) {
	var list []*entity.Customer
	for _, c := range r.customers {
		if c.DeletedAt != nil {
			continue
		}
		match := true
		for _, f := range filters {
			switch f.Column {
			case "type":
				if string(c.Type) != f.Value.(string) {
					match = false
				}
			case "status":
				if string(c.Status) != f.Value.(string) {
					match = false
				}
			}
		}
		if match {
			list = append(list, c)
		}
	}
	return list, nil
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id int64) (*entity.Customer, error) {
	return r.live(id), nil
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) (*entity.Customer, error) {
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = r.now
	c.UpdatedAt = r.now
	r.customers[c.ID] = c
	return c, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, id int64, patch []repository.Field) (*entity.Customer, error) {
	c := r.live(id)
	if c == nil {
		return nil, nil
	}
	for _, f := range patch {
		switch f.Column {
		case "name":
			c.Name = f.Value.(string)
		case "email":
			c.Email = f.Value.(string)
		case "phone":
			c.Phone = f.Value.(string)
		case "address":
			c.Address = f.Value.(string)
		case "type":
			c.Type = f.Value.(entity.CustomerType)
		case "tax_id":
			c.TaxID = f.Value.(string)
		case "status":
			c.Status = f.Value.(entity.CustomerStatus)
		}
	}
	c.UpdatedAt = r.now
	return c, nil
}

func (r *fakeCustomerRepo) SoftDelete(_ context.Context, id int64) (bool, error) {
	c := r.live(id)
	if c == nil {
		return false, nil
	}
	now := r.now
	c.DeletedAt = &now
	return true, nil
}

func (r *fakeCustomerRepo) HardDelete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.customers[id]; !ok {
		return false, nil
	}
	delete(r.customers, id)
	return true, nil
}

func (r *fakeCustomerRepo) FindByEmail(_ context.Context, email string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.DeletedAt == nil && c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) FindByType(ctx context.Context, t entity.CustomerType) ([]*entity.Customer, error) {
	return r.FindAll(ctx, repository.F("type", string(t)))
}

func (r *fakeCustomerRepo) SearchByName(_ context.Context, term string) ([]*entity.Customer, error) {
	var list []*entity.Customer
	for _, c := range r.customers {
		if c.DeletedAt == nil {
			list = append(list, c)
		}
	}
	return list, nil
}

func (r *fakeCustomerRepo) Statistics(_ context.Context) (*entity.CustomerStats, error) {
	stats := &entity.CustomerStats{}
	for _, c := range r.customers {
		if c.DeletedAt != nil {
			continue
		}
		stats.Total++
		if c.Status == entity.CustomerActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
		if c.Type == entity.CustomerBusiness {
			stats.Business++
		} else {
			stats.Individual++
		}
	}
	return stats, nil
}

type fakeProductRepo struct {
	products map[int64]*entity.Product
	nextID   int64
	now      time.Time
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: make(map[int64]*entity.Product),
		now:      time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (r *fakeProductRepo) live(id int64) *entity.Product {
	p := r.products[id]
	if p == nil || p.DeletedAt != nil {
		return nil
	}
	return p
}

func (r *fakeProductRepo) FindAll(_ context.Context, filters ...repository.Field) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.products {
		if p.DeletedAt != nil {
			continue
		}
		match := true
		for _, f := range filters {
			if f.Column == "category" && p.Category != f.Value.(string) {
				match = false
			}
		}
		if match {
			list = append(list, p)
		}
	}
	return list, nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id int64) (*entity.Product, error) {
	return r.live(id), nil
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) (*entity.Product, error) {
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = r.now
	p.UpdatedAt = r.now
	r.products[p.ID] = p
	return p, nil
}

func (r *fakeProductRepo) Update(_ context.Context, id int64, patch []repository.Field) (*entity.Product, error) {
	p := r.live(id)
	if p == nil {
		return nil, nil
	}
	for _, f := range patch {
		switch f.Column {
		case "name":
			p.Name = f.Value.(string)
		case "description":
			p.Description = f.Value.(string)
		case "price":
			p.Price = f.Value.(decimal.Decimal)
		case "stock":
			p.Stock = f.Value.(int)
		case "category":
			p.Category = f.Value.(string)
		}
	}
	p.UpdatedAt = r.now
	return p, nil
}

func (r *fakeProductRepo) SoftDelete(_ context.Context, id int64) (bool, error) {
	p := r.live(id)
	if p == nil {
		return false, nil
	}
	now := r.now
	p.DeletedAt = &now
	return true, nil
}

func (r *fakeProductRepo) HardDelete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.products[id]; !ok {
		return false, nil
	}
	delete(r.products, id)
	return true, nil
}

func (r *fakeProductRepo) FindByCategory(ctx context.Context, category string) ([]*entity.Product, error) {
	return r.FindAll(ctx, repository.F("category", category))
}

func (r *fakeProductRepo) AdjustStock(_ context.Context, id int64, delta int) (*entity.Product, error) {
	p := r.live(id)
	if p == nil {
		return nil, nil
	}
	p.Stock += delta
	p.UpdatedAt = r.now
	return p, nil
}
