package warehouse

import (
	"errors"
	"sync"

	"moyo/models"
)

var (
	ErrPersonNotFound    = errors.New("delivery person not found")
	ErrPersonUnavailable = errors.New("delivery person unavailable")
	ErrAtCapacity        = errors.New("delivery person at capacity")
	ErrNotDeliverable    = errors.New("order is not packed or dispatched")
	ErrAlreadyAssigned   = errors.New("order already assigned")
)

// Roster is the in-memory delivery-personnel list. Nothing here is
// persisted; the sample roster is reseeded on restart, as in the app's
// warehouse view.
type Roster struct {
	mu          sync.Mutex
	people      map[string]*models.DeliveryPerson
	order       []string
	assignments map[int]string // order id -> person id
}

func NewRoster(seed []models.DeliveryPerson) *Roster {
	r := &Roster{
		people:      make(map[string]*models.DeliveryPerson, len(seed)),
		assignments: make(map[int]string),
	}
	for i := range seed {
		p := seed[i]
		r.people[p.ID] = &p
		r.order = append(r.order, p.ID)
	}
	return r
}

// SeedRoster is the demo personnel list used when no roster source is
// configured.
func SeedRoster() []models.DeliveryPerson {
	return []models.DeliveryPerson{
		{ID: "dp-1", Name: "Rajesh Kumar", Phone: "+91 98765 43210", Location: "Andheri West", Vehicle: "bike", Capacity: 10, CurrentOrders: 3, Rating: 4.8, Available: true},
		{ID: "dp-2", Name: "Amit Sharma", Phone: "+91 98765 43211", Location: "Bandra East", Vehicle: "van", Capacity: 25, CurrentOrders: 8, Rating: 4.5, Available: true},
		{ID: "dp-3", Name: "Priya Patel", Phone: "+91 98765 43212", Location: "Juhu", Vehicle: "bike", Capacity: 10, CurrentOrders: 10, Rating: 4.9, Available: false},
	}
}

// People returns the roster in seed order.
func (r *Roster) People() []models.DeliveryPerson {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.DeliveryPerson, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.people[id])
	}
	return out
}

// Available returns the people who can take another order.
func (r *Roster) Available() []models.DeliveryPerson {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.DeliveryPerson
	for _, id := range r.order {
		p := r.people[id]
		if p.Available && p.CurrentOrders < p.Capacity {
			out = append(out, *p)
		}
	}
	return out
}

// AssignedTo reports the person holding an order, if any.
func (r *Roster) AssignedTo(orderID int) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.assignments[orderID]
	return id, ok
}

// Assign gives an order in status packed or dispatched to a delivery
// person. The person must be available with spare capacity. There is no
// unassignment path.
func (r *Roster) Assign(orderID int, status Status, personID string) error {
	if status != StatusPacked && status != StatusDispatched {
		return ErrNotDeliverable
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.assignments[orderID]; taken {
		return ErrAlreadyAssigned
	}
	p, ok := r.people[personID]
	if !ok {
		return ErrPersonNotFound
	}
	if !p.Available {
		return ErrPersonUnavailable
	}
	if p.CurrentOrders >= p.Capacity {
		return ErrAtCapacity
	}

	r.assignments[orderID] = personID
	p.CurrentOrders++
	return nil
}

// rollback reverses an assignment whose upstream dispatch was refused. It
// is internal cleanup, not an operator-facing unassignment path.
func (r *Roster) rollback(orderID int, personID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.assignments[orderID] != personID {
		return
	}
	delete(r.assignments, orderID)
	if p, ok := r.people[personID]; ok && p.CurrentOrders > 0 {
		p.CurrentOrders--
	}
}
