package agents

import (
	"github.com/samber/do/v2"

	"github.com/vinayprograms/serviceagents/errors"
	"github.com/vinayprograms/serviceagents/httpclient"
	"github.com/vinayprograms/serviceagents/settings"
)

// Client resolves the client of a registered service.
func Client(i do.Injector, service string) (*httpclient.Client, error) {
	c, err := do.InvokeNamed[*httpclient.Client](i, ClientName(service))
	if err != nil {
		return nil, lookupError(i, service, err)
	}
	return c, nil
}

// Invoke resolves the agent registered for service. T must be the agent
// type; aliased agents are also reachable with do.Invoke[I].
func Invoke[T any](i do.Injector, service string) (T, error) {
	agent, err := do.InvokeNamed[T](i, service)
	if err != nil {
		var zero T
		return zero, lookupError(i, service, err)
	}
	return agent, nil
}

// Settings returns the settings snapshot of every registered service, or
// nil when nothing has been registered.
func Settings(i do.Injector) *settings.ServiceAgentSettings {
	s, err := do.InvokeNamed[*settings.ServiceAgentSettings](i, SettingsName)
	if err != nil {
		return nil
	}
	return s
}

func lookupError(i do.Injector, service string, err error) error {
	if s := Settings(i); s == nil || !s.Has(service) {
		return errors.AgentNotFound(service, errors.WithCause(err))
	}
	return errors.Wrap(err, "cannot resolve service agent", errors.WithService(service))
}
