package agents

import (
	"github.com/samber/do/v2"

	"github.com/vinayprograms/serviceagents/errors"
	"github.com/vinayprograms/serviceagents/httpclient"
	"github.com/vinayprograms/serviceagents/registry"
	"github.com/vinayprograms/serviceagents/settings"
)

// SettingsName is the container name of the registered settings snapshot.
const SettingsName = "serviceagents.settings"

// ClientName returns the container name of a service's client factory.
func ClientName(service string) string {
	return "serviceagents.client." + service
}

// Register declares a client factory and an agent for every service in cfg.
//
// All services are resolved against catalog first; a missing or ambiguous
// agent fails the call before the container is modified. A service that an
// earlier call already registered fails with ALREADY_REGISTERED; services
// declared before such a failure stay registered. cfg is copied, filled
// from WithCredentials, normalized and validated; later changes to it have
// no effect.
func Register(i do.Injector, cfg *settings.ServiceAgentSettings, catalog *registry.Catalog, opts ...Option) error {
	if i == nil {
		return errors.InvalidArgument("injector")
	}
	if cfg == nil {
		return errors.InvalidArgument("settings")
	}
	if catalog == nil {
		return errors.InvalidArgument("catalog")
	}
	o := buildOptions(opts)
	cfg = cfg.Clone()
	cfg.ApplyCredentials(o.credentials)
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		o.logger.RegistrationFailed("", err)
		return err
	}
	return register(i, cfg, catalog, o)
}

// RegisterAll loads settings and registers every configured service.
//
// fileSetup names the settings file; an empty name falls back to
// settings.LocationFromEnv. override, if given, edits the loaded settings
// before validation and wins over file entries with the same name.
func RegisterAll(i do.Injector, fileSetup func(*settings.File), override func(*settings.ServiceAgentSettings), catalog *registry.Catalog, opts ...Option) error {
	if fileSetup == nil {
		return errors.InvalidArgument("fileSetup")
	}
	if i == nil {
		return errors.InvalidArgument("injector")
	}
	if catalog == nil {
		return errors.InvalidArgument("catalog")
	}
	o := buildOptions(opts)

	file := &settings.File{}
	fileSetup(file)
	if file.Name == "" {
		file.Name = settings.LocationFromEnv()
	}

	edit := override
	if o.credentials != nil {
		edit = func(cfg *settings.ServiceAgentSettings) {
			if override != nil {
				override(cfg)
			}
			cfg.ApplyCredentials(o.credentials)
		}
	}

	cfg, err := settings.Load(file, edit)
	if err != nil {
		o.logger.RegistrationFailed("", err)
		return err
	}
	o.logger.SettingsLoaded(file.Name, cfg.Names())
	return register(i, cfg, catalog, o)
}

// RegisterSingle registers one agent under its entry name, with settings
// built entirely by setup.
func RegisterSingle(i do.Injector, entry registry.Entry, setup func(*settings.ServiceSettings), opts ...Option) error {
	if setup == nil {
		return errors.InvalidArgument("settingsSetup")
	}
	if i == nil {
		return errors.InvalidArgument("injector")
	}
	catalog, err := registry.NewCatalog(entry)
	if err != nil {
		return err
	}
	o := buildOptions(opts)
	cfg, err := settings.Load(nil, func(cfg *settings.ServiceAgentSettings) {
		s := &settings.ServiceSettings{}
		setup(s)
		cfg.Add(entry.Name, s)
		cfg.ApplyCredentials(o.credentials)
	})
	if err != nil {
		return err
	}
	return register(i, cfg, catalog, o)
}

type binding struct {
	service  string
	entry    registry.Entry
	settings *settings.ServiceSettings
}

func register(i do.Injector, cfg *settings.ServiceAgentSettings, catalog *registry.Catalog, o *options) error {
	previous := Settings(i)

	bindings := make([]binding, 0, cfg.Len())
	for _, service := range cfg.Names() {
		if previous != nil && previous.Has(service) {
			err := errors.AlreadyRegistered(service)
			o.logger.RegistrationFailed(service, err)
			return err
		}
		entry, err := catalog.Resolve(service)
		if err != nil {
			o.logger.RegistrationFailed(service, err)
			return err
		}
		s, err := cfg.Get(service)
		if err != nil {
			return err
		}
		bindings = append(bindings, binding{service: service, entry: entry, settings: s})
	}

	declared := settings.New()
	declared.Global = cfg.Global
	var err error
	for _, b := range bindings {
		if err = declare(i, b, o); err != nil {
			o.logger.RegistrationFailed(b.service, err)
			break
		}
		declared.Add(b.service, b.settings)
		o.logger.AgentRegistered(b.service, b.entry.Name, b.settings.URL, b.entry.Kind == registry.KindAliased)
	}

	// services declared before a failure stay resolvable
	if declared.Len() > 0 {
		snapshot := settings.New()
		snapshot.Merge(previous)
		snapshot.Merge(declared)
		do.OverrideNamedValue(i, SettingsName, snapshot)
	}
	return err
}

// declare registers the client factory and agent of one binding. The
// container panics on duplicate names; the panic is returned as an error.
func declare(i do.Injector, b binding, o *options) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.AlreadyRegistered(b.service, errors.WithCause(errors.RecoverPanic(r)))
		}
	}()

	clientName := ClientName(b.service)
	factory := clientFactory(b.service, b.settings, o)
	if o.lifetime == registry.Singleton {
		do.ProvideNamed(i, clientName, factory)
	} else {
		do.ProvideNamedTransient(i, clientName, factory)
	}

	resolve := func(i do.Injector) (*httpclient.Client, error) {
		return do.InvokeNamed[*httpclient.Client](i, clientName)
	}
	return b.entry.Provide(i, b.service, resolve, o.lifetime)
}

func clientFactory(service string, s *settings.ServiceSettings, o *options) do.Provider[*httpclient.Client] {
	return func(i do.Injector) (*httpclient.Client, error) {
		c := httpclient.New(service, o.transport)
		if err := o.headers.InitializeHeaders(c, s); err != nil {
			return nil, err
		}
		if o.clientCreated != nil {
			if err := o.clientCreated(i, c); err != nil {
				return nil, errors.Wrap(err, "client created hook failed", errors.WithService(service))
			}
		}
		o.logger.ClientCreated(service, c.BaseURL.String())
		return c, nil
	}
}
