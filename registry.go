package dwaplatform

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Registry holds one Configuration and the single CardClient built from it.
//
// Initialize binds the configuration; the first successful bind wins and
// later calls are ignored. Client builds the CardClient on first use and
// returns the same instance to every caller afterwards, including callers
// racing on the first call. Once built, Client costs one atomic load.
//
// Most hosts use the process-wide registry through the package-level
// Initialize and GetCardClient. Hosts that prefer explicit wiring create
// their own with NewRegistry and pass it, or the client, to call sites.
type Registry struct {
	cfg    *clientConfig
	logger *slog.Logger

	mu     sync.Mutex
	config *Configuration // guarded by mu

	client atomic.Pointer[CardClient]
}

// NewRegistry creates an empty registry. opts apply to the client it builds.
func NewRegistry(opts ...Option) *Registry {
	cfg := newClientConfig(opts)
	return &Registry{
		cfg:    cfg,
		logger: cfg.logger.With(slog.String("component", "registry")),
	}
}

// Initialize binds cfg. It fails only when cfg is invalid; once a
// configuration is bound, further calls are no-ops.
func (r *Registry) Initialize(cfg Configuration) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.config != nil {
		if *r.config != cfg {
			r.logger.Warn("registry already initialized; ignoring configuration",
				slog.String("bound_host", r.config.HostName),
				slog.String("ignored_host", cfg.HostName))
		}
		return nil
	}

	bound := cfg
	r.config = &bound
	r.logger.Info("configuration bound",
		slog.String("host", cfg.HostName),
		slog.Bool("sandbox", cfg.Sandbox))
	return nil
}

// Configuration returns the bound configuration and whether one is bound.
func (r *Registry) Configuration() (Configuration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.config == nil {
		return Configuration{}, false
	}
	return *r.config, true
}

// Client returns the registry's CardClient, building it on first call.
// It returns ErrConfigurationMissing, and builds nothing, when Initialize
// has not bound a configuration.
func (r *Registry) Client() (*CardClient, error) {
	if c := r.client.Load(); c != nil {
		return c, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if c := r.client.Load(); c != nil {
		return c, nil
	}
	if r.config == nil {
		return nil, ErrConfigurationMissing
	}

	c, err := newCardClient(*r.config, r.cfg)
	if err != nil {
		return nil, err
	}
	r.client.Store(c)

	r.logger.Debug("card client constructed")
	return c, nil
}

// MustClient is like Client but panics on error.
func (r *Registry) MustClient() *CardClient {
	c, err := r.Client()
	if err != nil {
		panic(err)
	}
	return c
}

// Reset unbinds the configuration and drops the cached client, so the
// registry can be initialized again. Clients handed out earlier keep
// working with their original configuration.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.config = nil
	r.client.Store(nil)
	r.logger.Debug("registry reset")
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by Initialize and
// GetCardClient.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Initialize binds cfg on the process-wide registry. It must be called
// before GetCardClient.
func Initialize(cfg Configuration) error {
	return defaultRegistry.Initialize(cfg)
}

// GetCardClient returns the process-wide CardClient, or
// ErrConfigurationMissing when Initialize has not been called.
func GetCardClient() (*CardClient, error) {
	return defaultRegistry.Client()
}

// MustGetCardClient is like GetCardClient but panics on error.
func MustGetCardClient() *CardClient {
	return defaultRegistry.MustClient()
}
