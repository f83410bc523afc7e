package inventory

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/homelist/internal/domain"
)

// recorder captures every list it is sent.
type recorder struct {
	calls [][]string
}

func (r *recorder) Update(props []domain.Property) error {
	r.calls = append(r.calls, ids(props))
	return nil
}

func ids(props []domain.Property) []string {
	out := make([]string, 0, len(props))
	for _, p := range props {
		out = append(out, p.ID)
	}
	return out
}

func prop(id string) domain.Property {
	return domain.Property{ID: id, Title: "Property " + id}
}

func TestAddObserver_DeliversCurrentState(t *testing.T) {
	inv := New([]domain.Property{prop("A"), prop("B")})
	rec := &recorder{}

	_, err := inv.AddObserver(rec)
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"A", "B"}}, rec.calls)
}

func TestAddObserver_OnlyNewObserverIsSynced(t *testing.T) {
	inv := New([]domain.Property{prop("A")})
	first, second := &recorder{}, &recorder{}

	_, err := inv.AddObserver(first)
	require.NoError(t, err)
	_, err = inv.AddObserver(second)
	require.NoError(t, err)

	assert.Len(t, first.calls, 1)
	assert.Len(t, second.calls, 1)
}

func TestAddProperty_NotifiesAllInOrder(t *testing.T) {
	inv := New(nil)
	var order []string

	_, err := inv.AddObserver(ObserverFunc(func([]domain.Property) error {
		order = append(order, "first")
		return nil
	}))
	require.NoError(t, err)
	_, err = inv.AddObserver(ObserverFunc(func([]domain.Property) error {
		order = append(order, "second")
		return nil
	}))
	require.NoError(t, err)
	order = nil

	require.NoError(t, inv.AddProperty(prop("A")))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestAddProperty_IdempotentOnID(t *testing.T) {
	inv := New(nil)
	rec := &recorder{}
	_, err := inv.AddObserver(rec)
	require.NoError(t, err)

	require.NoError(t, inv.AddProperty(prop("A")))

	dup := prop("A")
	dup.Title = "different"
	err = inv.AddProperty(dup)
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	assert.Equal(t, []string{"A"}, ids(inv.All()))
	got, ok := inv.GetByID("A")
	require.True(t, ok)
	assert.Equal(t, "Property A", got.Title)

	// Initial sync plus the first add only.
	assert.Equal(t, [][]string{{}, {"A"}}, rec.calls)
}

func TestRemoveProperty(t *testing.T) {
	inv := New([]domain.Property{prop("A"), prop("B")})
	rec := &recorder{}
	_, err := inv.AddObserver(rec)
	require.NoError(t, err)

	require.NoError(t, inv.RemoveProperty("A"))

	_, ok := inv.GetByID("A")
	assert.False(t, ok)
	assert.Equal(t, [][]string{{"A", "B"}, {"B"}}, rec.calls)
}

func TestRemoveProperty_AbsentDoesNotNotify(t *testing.T) {
	inv := New([]domain.Property{prop("A")})
	rec := &recorder{}
	_, err := inv.AddObserver(rec)
	require.NoError(t, err)

	require.NoError(t, inv.RemoveProperty("missing"))

	assert.Len(t, rec.calls, 1)
	assert.Equal(t, 1, inv.Len())
}

func TestRemoveProperty_LegacyNotify(t *testing.T) {
	inv := New([]domain.Property{prop("A")}, WithLegacyRemoveNotify())
	rec := &recorder{}
	_, err := inv.AddObserver(rec)
	require.NoError(t, err)

	require.NoError(t, inv.RemoveProperty("missing"))

	assert.Equal(t, [][]string{{"A"}, {"A"}}, rec.calls)
}

func TestRemoveObserver(t *testing.T) {
	inv := New(nil)
	kept, dropped := &recorder{}, &recorder{}

	_, err := inv.AddObserver(kept)
	require.NoError(t, err)
	sub, err := inv.AddObserver(dropped)
	require.NoError(t, err)

	inv.RemoveObserver(sub)
	require.NoError(t, inv.AddProperty(prop("A")))

	assert.Len(t, kept.calls, 2)
	assert.Len(t, dropped.calls, 1)

	// Unknown subscriptions are a no-op.
	inv.RemoveObserver(sub)
}

func TestNotifyObservers_FailureDoesNotStopOthers(t *testing.T) {
	inv := New(nil)
	boom := errors.New("render failed")
	rec := &recorder{}

	_, err := inv.AddObserver(ObserverFunc(func(props []domain.Property) error {
		if len(props) > 0 {
			return boom
		}
		return nil
	}))
	require.NoError(t, err)
	_, err = inv.AddObserver(ObserverFunc(func(props []domain.Property) error {
		if len(props) > 0 {
			panic("observer bug")
		}
		return nil
	}))
	require.NoError(t, err)
	_, err = inv.AddObserver(rec)
	require.NoError(t, err)

	err = inv.AddProperty(prop("A"))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "panicked")

	// The state change stands and later observers still ran.
	assert.Equal(t, 1, inv.Len())
	assert.Equal(t, [][]string{{}, {"A"}}, rec.calls)
}

func TestObserversReceiveCopies(t *testing.T) {
	inv := New([]domain.Property{prop("A")})

	_, err := inv.AddObserver(ObserverFunc(func(props []domain.Property) error {
		props[0].Title = "mutated"
		return nil
	}))
	require.NoError(t, err)

	got, ok := inv.GetByID("A")
	require.True(t, ok)
	assert.Equal(t, "Property A", got.Title)
}

func TestUniqueIDsAfterMutations(t *testing.T) {
	inv := New([]domain.Property{prop("A"), prop("A"), prop("B")})
	assert.Equal(t, []string{"A", "B"}, ids(inv.All()))

	_ = inv.AddProperty(prop("C"))
	_ = inv.AddProperty(prop("B"))
	_ = inv.RemoveProperty("A")
	_ = inv.AddProperty(prop("A"))
	_ = inv.AddProperty(prop("C"))

	seen := map[string]bool{}
	for _, p := range inv.All() {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
	assert.Equal(t, []string{"B", "C", "A"}, ids(inv.All()))
}

func TestConcurrentChanges_ObserverEndsOnLatestState(t *testing.T) {
	inv := New(nil)
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	var mu sync.Mutex
	var last []string
	_, err := inv.AddObserver(ObserverFunc(func(props []domain.Property) error {
		if len(props) > 0 {
			once.Do(func() {
				close(entered)
				<-release
			})
		}
		mu.Lock()
		defer mu.Unlock()
		last = ids(props)
		return nil
	}))
	require.NoError(t, err)

	added := make(chan error, 1)
	go func() { added <- inv.AddProperty(prop("x")) }()
	<-entered

	removed := make(chan error, 1)
	go func() { removed <- inv.RemoveProperty("x") }()
	assert.Eventually(t, func() bool { return inv.Len() == 0 }, time.Second, time.Millisecond)

	close(release)
	require.NoError(t, <-added)
	require.NoError(t, <-removed)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, ids(inv.All()), last)
	assert.Empty(t, last)
}
