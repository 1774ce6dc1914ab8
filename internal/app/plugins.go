package app

import (
	"fmt"

	"github.com/bethropolis/medit/internal/logger"
	"github.com/bethropolis/medit/internal/plugin"
	"github.com/bethropolis/medit/plugins/autosave"
	"github.com/bethropolis/medit/plugins/multiedit"
	"github.com/bethropolis/medit/plugins/wordcount"
)

// registerPlugins registers all built-in plugins with the manager.
func registerPlugins(pm *plugin.Manager) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	// Adding a new plugin means adding its constructor here.
	pluginConstructors := []func() plugin.Plugin{
		func() plugin.Plugin { return multiedit.New() },
		func() plugin.Plugin { return wordcount.New() },
		func() plugin.Plugin { return autosave.New() },
	}

	var finalErr error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		logger.Debugf("Registering plugin: %s", p.Name())
		if err := pm.Register(p); err != nil {
			wrappedErr := fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err)
			logger.Errorf("%v", wrappedErr)
			if finalErr == nil {
				finalErr = wrappedErr
			}
		}
	}
	return finalErr
}
