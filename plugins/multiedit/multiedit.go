// Package multiedit tracks the selection history of every view and offers
// commands to restore earlier selections and reshape multi-region selections.
package multiedit

import (
	"fmt"
	"sync"

	"github.com/bethropolis/medit/internal/event"
	"github.com/bethropolis/medit/internal/logger"
	"github.com/bethropolis/medit/internal/plugin"
)

// Ensure MultiEdit implements plugin.Plugin
var _ plugin.Plugin = (*MultiEdit)(nil)

const (
	pluginName            = "multiedit"
	defaultSplitSeparator = ","
)

// MultiEdit is the selection history plugin. Its store is per instance.
type MultiEdit struct {
	api   plugin.EditorAPI
	store *Store

	mu  sync.RWMutex
	sep string
}

// New creates the plugin with an unbounded history.
func New() *MultiEdit {
	return &MultiEdit{
		store: NewStore(0),
		sep:   defaultSplitSeparator,
	}
}

func (p *MultiEdit) Name() string {
	return pluginName
}

// Store exposes the per-view history.
func (p *MultiEdit) Store() *Store {
	return p.store
}

// Initialize reads configuration, subscribes the observer and registers the commands.
func (p *MultiEdit) Initialize(api plugin.EditorAPI) error {
	p.api = api
	p.readConfig()

	api.SubscribeEvent(event.TypeSelectionModified, p.onSelectionModified)
	api.SubscribeEvent(event.TypeViewClosed, p.onViewClosed)

	for name, fn := range p.commands() {
		if err := api.RegisterCommand(name, fn); err != nil {
			return fmt.Errorf("failed to register '%s' command: %w", name, err)
		}
	}

	logger.Infof("%s initialized. Separator: %q, max history: %d", pluginName, p.separator(), p.store.MaxHistory())
	return nil
}

func (p *MultiEdit) readConfig() {
	if v, ok := p.api.GetPluginConfigValue(pluginName, "split_separator"); ok {
		if s, isStr := v.(string); isStr {
			p.mu.Lock()
			p.sep = s
			p.mu.Unlock()
		} else {
			logger.Warnf("%s: Invalid type for 'split_separator' config (%T), using default", pluginName, v)
		}
	}

	if v, ok := p.api.GetPluginConfigValue(pluginName, "max_history"); ok {
		switch n := v.(type) {
		case int:
			p.store.SetMaxHistory(n)
		case int64:
			p.store.SetMaxHistory(int(n))
		default:
			logger.Warnf("%s: Invalid type for 'max_history' config (%T), using default", pluginName, v)
		}
	}
}

func (p *MultiEdit) separator() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sep
}

// Shutdown drops all history.
func (p *MultiEdit) Shutdown() error {
	logger.DebugTagf("multiedit", "shutting down with %d tracked views", p.store.Len())
	p.store.Reset()
	return nil
}
