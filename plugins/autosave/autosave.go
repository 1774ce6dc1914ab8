package autosave

import (
	"sync"
	"time"

	"github.com/bethropolis/medit/internal/logger"
	"github.com/bethropolis/medit/internal/plugin"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

const (
	pluginName      = "autosave"
	defaultEnabled  = false
	defaultInterval = 1 * time.Minute
)

// AutoSave periodically saves every modified view that has a file.
type AutoSave struct {
	api plugin.EditorAPI

	mutex    sync.RWMutex // protects the config fields
	enabled  bool
	interval time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
}

func New() *AutoSave {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

func (p *AutoSave) Name() string {
	return pluginName
}

// Initialize reads configuration and starts the saver loop if enabled.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api

	p.mutex.Lock()
	if v, ok := api.GetPluginConfigValue(pluginName, "enabled"); ok {
		if b, isBool := v.(bool); isBool {
			p.enabled = b
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, v, p.enabled)
		}
	}
	if v, ok := api.GetPluginConfigValue(pluginName, "interval"); ok {
		p.interval = parseInterval(v, p.interval)
	}
	enabled, interval := p.enabled, p.interval
	p.mutex.Unlock()

	logger.Infof("%s initialized. Enabled: %v, Interval: %v", pluginName, enabled, interval)

	if enabled {
		p.stopChan = make(chan struct{})
		p.wg.Add(1)
		go p.saverLoop(interval)
	}
	return nil
}

func parseInterval(v interface{}, fallback time.Duration) time.Duration {
	s, ok := v.(string)
	if !ok {
		logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", pluginName, v, fallback)
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		logger.Warnf("%s: Invalid format for 'interval' config ('%s'): %v. Using default (%v)", pluginName, s, err, fallback)
		return fallback
	}
	if d <= 0 {
		logger.Warnf("%s: 'interval' config must be positive ('%s'). Using default (%v)", pluginName, s, fallback)
		return fallback
	}
	return d
}

// Enabled reports whether the saver loop was started.
func (p *AutoSave) Enabled() bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.enabled
}

func (p *AutoSave) Interval() time.Duration {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.interval
}

// Shutdown stops the saver goroutine and waits for it.
func (p *AutoSave) Shutdown() error {
	if p.stopChan != nil {
		close(p.stopChan)
		p.wg.Wait()
		p.stopChan = nil
		logger.Debugf("%s: Saver goroutine stopped.", pluginName)
	}
	return nil
}

func (p *AutoSave) saverLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.api.Schedule(p.saveModified)
		case <-p.stopChan:
			return
		}
	}
}

// saveModified runs on the event goroutine.
func (p *AutoSave) saveModified() {
	for _, v := range p.api.Views() {
		if !v.IsModified() {
			continue
		}
		if v.FilePath() == "" {
			logger.Debugf("%s: view %d is modified but has no file, skipping.", pluginName, v.ID())
			continue
		}
		if err := p.api.SaveView(v.ID()); err != nil {
			logger.Errorf("%s: Auto-save failed for '%s': %v", pluginName, v.FilePath(), err)
			continue
		}
		logger.Infof("%s: saved '%s'", pluginName, v.FilePath())
	}
}
