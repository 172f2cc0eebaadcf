package types

import (
	"time"

	"github.com/renato0307/fluxtree/internal/cli"
	"github.com/renato0307/fluxtree/internal/k8s"
	"github.com/renato0307/fluxtree/internal/keyboard"
	"github.com/renato0307/fluxtree/internal/kubeconfig"
	"github.com/renato0307/fluxtree/internal/ui"
	"github.com/renato0307/fluxtree/internal/views"
)

// ActionObserver records the outcome of Flux actions run from the UI
type ActionObserver interface {
	ActionCompleted(action string, ok bool)
}

// AppContext holds app-wide configuration and dependencies
type AppContext struct {
	Theme        *ui.Theme
	Keys         *keyboard.Keys
	Config       *kubeconfig.Controller
	Pool         *k8s.ClientPool
	Flux         *cli.Flux
	Dispatcher   *views.Dispatcher
	Actions      ActionObserver
	PollInterval time.Duration
	WithIcons    bool
}

// NewAppContext creates a new application context
func NewAppContext(
	theme *ui.Theme,
	config *kubeconfig.Controller,
	pool *k8s.ClientPool,
	flux *cli.Flux,
	dispatcher *views.Dispatcher,
) *AppContext {
	return &AppContext{
		Theme:        theme,
		Keys:         keyboard.Default(),
		Config:       config,
		Pool:         pool,
		Flux:         flux,
		Dispatcher:   dispatcher,
		PollInterval: 30 * time.Second,
		WithIcons:    true,
	}
}
