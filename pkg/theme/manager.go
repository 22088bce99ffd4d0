package theme

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	perrors "github.com/pandalearn/pandalearn/pkg/errors"
	"github.com/pandalearn/pandalearn/pkg/observability"
)

// Storage is the durable key-value store the preference is written to.
// store.Store satisfies it.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// Presenter receives the dark-mode flag for the presentation surface.
type Presenter interface {
	SetDark(dark bool)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(dark bool)

func (f PresenterFunc) SetDark(dark bool) { f(dark) }

// Observer is called synchronously with every new resolved value.
type Observer func(Preference)

// Options configures a Manager. Every field is optional.
type Options struct {
	// Storage persists the preference. Nil means session-only.
	Storage Storage

	// Signal reports the OS preference. Nil means no OS signal.
	Signal Signal

	// Presenter receives the dark-mode flag on every change.
	Presenter Presenter

	// Key overrides the storage key. Defaults to Key.
	Key string

	// TTL is passed to Storage.Set. Zero keeps the value forever.
	TTL time.Duration

	// PinUserChoice makes OS changes ignored once Set or Toggle was called.
	PinUserChoice bool

	Logger *log.Logger
}

// Manager is the single source of the active theme for one session.
//
// Operations are serialised: the effects and observer fan-out of one event
// complete before the next event is processed. Observers run while the
// manager is locked and must not call back into it.
type Manager struct {
	mu        sync.Mutex
	value     Preference
	pinned    bool
	observers []subscription
	nextID    int

	storage   Storage
	signal    Signal
	presenter Presenter
	key       string
	ttl       time.Duration
	pin       bool
	logger    *log.Logger
}

type subscription struct {
	id int
	fn Observer
}

// NewManager creates an Unset manager.
func NewManager(opts Options) *Manager {
	key := opts.Key
	if key == "" {
		key = Key
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		storage:   opts.Storage,
		signal:    opts.Signal,
		presenter: opts.Presenter,
		key:       key,
		ttl:       opts.TTL,
		pin:       opts.PinUserChoice,
		logger:    logger,
	}
}

// Initialize resolves the preference if it is still Unset and returns the
// current value. It is a no-op for a manager with neither storage nor a
// signal attached, which is how non-interactive renders stay Unset.
func (m *Manager) Initialize(ctx context.Context) Preference {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.value != Unset || (m.storage == nil && m.signal == nil) {
		return m.value
	}

	value, source := m.resolve(ctx)
	m.transition(ctx, value, "")
	observability.Theme().OnResolved(ctx, value.String(), source)
	m.logger.Debug("theme resolved", "value", value, "source", source)
	return value
}

// Current returns the current value, which is Unset before resolution.
func (m *Manager) Current() Preference {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

// Subscribe registers fn for every future change. If the manager is already
// resolved fn is called immediately with the current value. The returned
// function removes the subscription.
func (m *Manager) Subscribe(fn Observer) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	m.observers = append(m.observers, subscription{id: id, fn: fn})
	if m.value.Resolved() {
		fn(m.value)
	}

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, s := range m.observers {
			if s.id == id {
				m.observers = append(m.observers[:i], m.observers[i+1:]...)
				return
			}
		}
	}
}

// Set records an explicit user choice. Setting the current value again
// re-applies its effects without notifying observers.
func (m *Manager) Set(ctx context.Context, p Preference) error {
	if !p.Resolved() {
		return perrors.Wrap(perrors.ErrCodeInvalidTheme, ErrInvalidPreference, "cannot set %s", p)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.pinned = true
	if m.value == p {
		m.applyEffects(ctx, p)
		return nil
	}
	m.transition(ctx, p, observability.CauseUser)
	return nil
}

// Toggle flips between Light and Dark and returns the new value. An Unset
// manager is resolved first.
func (m *Manager) Toggle(ctx context.Context) Preference {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.value
	if current == Unset {
		current, _ = m.resolve(ctx)
	}
	next := current.Opposite()
	m.pinned = true
	m.transition(ctx, next, observability.CauseUser)
	return next
}

// OnSystemPreferenceChanged applies an OS preference notification. Resolved
// values always follow the OS unless PinUserChoice is set and the user has
// made a choice this session.
func (m *Manager) OnSystemPreferenceChanged(ctx context.Context, isDark bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := FromDark(isDark)
	if m.pin && m.pinned {
		m.logger.Debug("ignoring system theme change", "system", next, "pinned", m.value)
		return
	}
	if m.value == Unset {
		m.transition(ctx, next, "")
		observability.Theme().OnResolved(ctx, next.String(), observability.SourceSystem)
		return
	}
	m.transition(ctx, next, observability.CauseSystem)
}

// Reset forgets the persisted choice and resolves again from the OS signal.
// Storage without a Delete method is overwritten by the new resolution.
func (m *Manager) Reset(ctx context.Context) Preference {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d, ok := m.storage.(interface {
		Delete(ctx context.Context, key string) error
	}); ok {
		if err := d.Delete(ctx, m.key); err != nil {
			m.degraded(ctx, "storage", err)
		}
	}
	m.pinned = false

	value, source := m.resolveSignal(ctx)
	if m.value == value {
		m.applyEffects(ctx, value)
	} else {
		m.transition(ctx, value, observability.CauseSystem)
	}
	observability.Theme().OnResolved(ctx, value.String(), source)
	return value
}

// Pin records that the user already made an explicit choice, for a manager
// rebuilt from an earlier request. It only matters with PinUserChoice.
func (m *Manager) Pin() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pinned = true
}

// Pinned reports whether an explicit choice was made this session.
func (m *Manager) Pinned() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pinned
}

// resolve computes the first concrete value. Failures fall through to the
// next source.
func (m *Manager) resolve(ctx context.Context) (Preference, string) {
	if m.storage != nil {
		data, ok, err := m.storage.Get(ctx, m.key)
		switch {
		case err != nil:
			m.degraded(ctx, "storage", err)
		case ok:
			if p, ok := parseStored(data); ok {
				return p, observability.SourceStorage
			}
			m.logger.Debug("ignoring malformed stored theme", "key", m.key, "value", string(data))
		}
	}
	return m.resolveSignal(ctx)
}

func (m *Manager) resolveSignal(ctx context.Context) (Preference, string) {
	if m.signal != nil {
		dark, err := m.signal.PrefersDark(ctx)
		if err == nil {
			return FromDark(dark), observability.SourceSystem
		}
		if !errors.Is(err, ErrSignalUnavailable) {
			m.degraded(ctx, "signal", err)
		}
	}
	return Light, observability.SourceDefault
}

// transition moves to a resolved value, applies its effects and notifies
// observers. cause is empty for the initial resolution.
func (m *Manager) transition(ctx context.Context, to Preference, cause string) {
	from := m.value
	if from == to {
		return
	}
	m.value = to
	m.applyEffects(ctx, to)

	if cause != "" && from != Unset {
		observability.Theme().OnChanged(ctx, from.String(), to.String(), cause)
		m.logger.Debug("theme changed", "from", from, "to", to, "cause", cause)
	}
	for _, s := range m.observers {
		s.fn(to)
	}
}

func (m *Manager) applyEffects(ctx context.Context, p Preference) {
	if !p.Resolved() {
		return
	}
	if m.presenter != nil {
		m.presenter.SetDark(p.IsDark())
	}
	if m.storage != nil {
		if err := m.storage.Set(ctx, m.key, []byte(p), m.ttl); err != nil {
			m.degraded(ctx, "storage", err)
		}
	}
}

func (m *Manager) degraded(ctx context.Context, component string, err error) {
	m.logger.Debug("theme "+component+" unavailable", "err", err)
	observability.Theme().OnDegraded(ctx, component, err)
}
