package registry

import (
	"github.com/samber/do/v2"

	"github.com/vinayprograms/serviceagents/errors"
	"github.com/vinayprograms/serviceagents/httpclient"
)

// Kind selects how an agent is exposed in the container.
type Kind int

const (
	// KindConcrete registers the agent type under its service name.
	KindConcrete Kind = iota
	// KindAliased also registers an interface alias for the agent.
	KindAliased
)

func (k Kind) String() string {
	switch k {
	case KindConcrete:
		return "concrete"
	case KindAliased:
		return "aliased"
	default:
		return "unknown"
	}
}

// Lifetime controls how often the container builds an agent and its client.
type Lifetime int

const (
	// Transient builds a new client and agent on every resolution.
	Transient Lifetime = iota
	// Singleton builds them once, on first resolution.
	Singleton
)

func (l Lifetime) String() string {
	if l == Singleton {
		return "singleton"
	}
	return "transient"
}

// Constructor builds an agent around its service client.
type Constructor[T any] func(c *httpclient.Client) (T, error)

// ClientResolver returns the client for the service being resolved.
type ClientResolver func(i do.Injector) (*httpclient.Client, error)

// Entry is one candidate agent in a Catalog.
type Entry struct {
	// Name is matched against logical service names by prefix.
	Name string
	Kind Kind

	// TypeName is the container name of the agent type.
	TypeName string
	// AliasName is the container name of the interface, for KindAliased.
	AliasName string

	provide func(i do.Injector, service string, client ClientResolver, lifetime Lifetime) error
}

// Agent creates a concrete entry for agents of type T.
func Agent[T any](name string, ctor Constructor[T]) Entry {
	e := Entry{
		Name:     name,
		Kind:     KindConcrete,
		TypeName: do.NameOf[T](),
	}
	if ctor != nil {
		e.provide = provider(ctor)
	}
	return e
}

// AgentAs creates an entry for agents of type T that are also exposed as
// the interface I. T must implement I.
func AgentAs[T any, I any](name string, ctor Constructor[T]) Entry {
	e := Entry{
		Name:      name,
		Kind:      KindAliased,
		TypeName:  do.NameOf[T](),
		AliasName: do.NameOf[I](),
	}
	if ctor == nil {
		return e
	}
	concrete := provider(ctor)
	e.provide = func(i do.Injector, service string, client ClientResolver, lifetime Lifetime) error {
		if err := concrete(i, service, client, lifetime); err != nil {
			return err
		}
		if err := do.AsNamed[T, I](i, service, e.AliasName); err != nil {
			return errors.Wrap(err, "cannot register interface alias",
				errors.WithService(service), errors.WithMetadata("alias", e.AliasName))
		}
		return nil
	}
	return e
}

// Provide registers the agent under the service name. The agent's provider
// obtains its client through client on every construction.
func (e Entry) Provide(i do.Injector, service string, client ClientResolver, lifetime Lifetime) error {
	if e.provide == nil {
		return errors.InvalidArgument("constructor", errors.WithService(e.Name))
	}
	if i == nil {
		return errors.InvalidArgument("injector", errors.WithService(service))
	}
	if client == nil {
		return errors.InvalidArgument("client resolver", errors.WithService(service))
	}
	return e.provide(i, service, client, lifetime)
}

func provider[T any](ctor Constructor[T]) func(do.Injector, string, ClientResolver, Lifetime) error {
	return func(i do.Injector, service string, client ClientResolver, lifetime Lifetime) error {
		p := func(i do.Injector) (T, error) {
			var zero T
			c, err := client(i)
			if err != nil {
				return zero, err
			}
			agent, err := ctor(c)
			if err != nil {
				return zero, errors.Wrap(err, "cannot construct service agent", errors.WithService(service))
			}
			return agent, nil
		}

		if lifetime == Singleton {
			do.ProvideNamed[T](i, service, p)
		} else {
			do.ProvideNamedTransient[T](i, service, p)
		}
		return nil
	}
}
