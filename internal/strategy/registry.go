package strategy

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ariefrahman95/Axelrod/internal/game"
)

var (
	ErrStrategyExists   = errors.New("strategy already registered")
	ErrStrategyNotFound = errors.New("strategy not found")
)

// Factory builds a fresh player instance. The seed only matters for
// stochastic strategies; deterministic ones ignore it.
type Factory func(seed int64) game.Player

// Registry maps canonical strategy names to factories so populations can be
// assembled from configuration.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("strategy name is required")
	}
	if factory == nil {
		return fmt.Errorf("strategy factory is required for %s", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", ErrStrategyExists, name)
	}
	r.factories[name] = factory
	return nil
}

func (r *Registry) New(name string, seed int64) (game.Player, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStrategyNotFound, name)
	}
	return factory(seed), nil
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry preloaded with the built-in roster.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	builtins := map[string]Factory{
		"cooperator":          func(int64) game.Player { return NewCooperator() },
		"defector":            func(int64) game.Player { return NewDefector() },
		"tit_for_tat":         func(int64) game.Player { return NewTitForTat() },
		"tit_for_two_tats":    func(int64) game.Player { return NewTitFor2Tats() },
		"grudger":             func(int64) game.Player { return NewGrudger() },
		"win_stay_lose_shift": func(int64) game.Player { return NewWinStayLoseShift() },
		"detective":           func(int64) game.Player { return NewDetective() },
		"random":              func(seed int64) game.Player { return NewRandom(seed) },
	}
	for name, factory := range builtins {
		_ = r.Register(name, factory)
	}
	return r
}
