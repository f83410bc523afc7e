package inventory

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/vbonduro/homelist/internal/domain"
)

// Observer receives the full property list every time the inventory changes.
type Observer interface {
	Update(properties []domain.Property) error
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(properties []domain.Property) error

func (f ObserverFunc) Update(properties []domain.Property) error {
	return f(properties)
}

// Subscription identifies one AddObserver registration.
type Subscription uuid.UUID

func (s Subscription) String() string {
	return uuid.UUID(s).String()
}

type registration struct {
	sub Subscription
	obs Observer
}

// Inventory is an ordered set of properties keyed by ID that notifies its
// observers, in registration order, with a snapshot after each change.
type Inventory struct {
	// notifyMu serializes deliveries so observers see snapshots in the
	// order they were taken. Acquire it before mu, never after.
	notifyMu     sync.Mutex
	mu           sync.Mutex
	properties   []domain.Property
	observers    []registration
	legacyRemove bool
	logger       *slog.Logger
}

type Option func(*Inventory)

// WithLegacyRemoveNotify makes RemoveProperty notify even when nothing
// was removed.
func WithLegacyRemoveNotify() Option {
	return func(inv *Inventory) { inv.legacyRemove = true }
}

func WithLogger(logger *slog.Logger) Option {
	return func(inv *Inventory) { inv.logger = logger }
}

// New builds an inventory holding initial. Later duplicates of an ID are
// dropped, the same as AddProperty would.
func New(initial []domain.Property, opts ...Option) *Inventory {
	inv := &Inventory{logger: slog.Default()}
	for _, opt := range opts {
		opt(inv)
	}
	for _, p := range initial {
		if inv.indexOf(p.ID) < 0 {
			inv.properties = append(inv.properties, p)
		}
	}
	return inv
}

// AddObserver registers obs and immediately sends it the current list.
// The returned error is obs's own failure on that first delivery; the
// registration stands either way.
func (inv *Inventory) AddObserver(obs Observer) (Subscription, error) {
	sub := Subscription(uuid.New())

	inv.notifyMu.Lock()
	defer inv.notifyMu.Unlock()

	inv.mu.Lock()
	inv.observers = append(inv.observers, registration{sub: sub, obs: obs})
	snapshot := inv.snapshot()
	inv.mu.Unlock()

	return sub, inv.deliver(registration{sub: sub, obs: obs}, snapshot)
}

// RemoveObserver drops the registration. Unknown subscriptions are ignored.
func (inv *Inventory) RemoveObserver(sub Subscription) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.observers = slices.DeleteFunc(inv.observers, func(r registration) bool {
		return r.sub == sub
	})
}

// AddProperty appends p and notifies observers. If p.ID is already present
// nothing changes, nobody is notified, and domain.ErrDuplicateKey is returned.
func (inv *Inventory) AddProperty(p domain.Property) error {
	inv.mu.Lock()
	if inv.indexOf(p.ID) >= 0 {
		inv.mu.Unlock()
		return fmt.Errorf("property %q: %w", p.ID, domain.ErrDuplicateKey)
	}
	inv.properties = append(inv.properties, p)
	inv.mu.Unlock()

	inv.logger.Info("property added", "property_id", p.ID)
	return inv.NotifyObservers()
}

// RemoveProperty removes every entry with the given ID. Observers are
// notified only when something was removed, unless the inventory was built
// WithLegacyRemoveNotify.
func (inv *Inventory) RemoveProperty(id string) error {
	inv.mu.Lock()
	before := len(inv.properties)
	inv.properties = slices.DeleteFunc(inv.properties, func(p domain.Property) bool {
		return p.ID == id
	})
	removed := before - len(inv.properties)
	notify := removed > 0 || inv.legacyRemove
	inv.mu.Unlock()

	if removed > 0 {
		inv.logger.Info("property removed", "property_id", id)
	}
	if !notify {
		return nil
	}
	return inv.NotifyObservers()
}

// NotifyObservers pushes the current list to every observer in
// registration order. One observer failing, by error or panic, does not
// stop the others; all failures are joined into the returned error.
// Observers must not mutate the inventory from Update.
func (inv *Inventory) NotifyObservers() error {
	inv.notifyMu.Lock()
	defer inv.notifyMu.Unlock()

	inv.mu.Lock()
	snapshot := inv.snapshot()
	observers := slices.Clone(inv.observers)
	inv.mu.Unlock()

	var errs []error
	for _, r := range observers {
		if err := inv.deliver(r, slices.Clone(snapshot)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (inv *Inventory) deliver(r registration, snapshot []domain.Property) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("observer %s panicked: %v", r.sub, rec)
		}
		if err != nil {
			inv.logger.Error("observer update failed", "subscription", r.sub.String(), "error", err)
		}
	}()

	if err := r.obs.Update(snapshot); err != nil {
		return fmt.Errorf("observer %s: %w", r.sub, err)
	}
	return nil
}

// All returns a copy of the current list in insertion order.
func (inv *Inventory) All() []domain.Property {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.snapshot()
}

func (inv *Inventory) GetByID(id string) (domain.Property, bool) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if i := inv.indexOf(id); i >= 0 {
		return inv.properties[i], true
	}
	return domain.Property{}, false
}

func (inv *Inventory) Len() int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return len(inv.properties)
}

// snapshot must be called with mu held. It never returns nil.
func (inv *Inventory) snapshot() []domain.Property {
	out := make([]domain.Property, len(inv.properties))
	copy(out, inv.properties)
	return out
}

// indexOf must be called with mu held.
func (inv *Inventory) indexOf(id string) int {
	return slices.IndexFunc(inv.properties, func(p domain.Property) bool {
		return p.ID == id
	})
}
