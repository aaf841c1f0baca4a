// Package agents registers service agents and their HTTP clients in a
// samber/do container.
//
// # Overview
//
// For every service in a settings snapshot, Register resolves the agent
// from a registry.Catalog and declares two services:
//
//   - a client factory named ClientName(service), which builds an
//     *httpclient.Client, runs the header initializer and then the
//     optional client-created hook
//   - the agent itself, named after the service, built around that client
//
// Agents created with registry.AgentAs are also reachable through their
// interface. Every name is resolved before anything is declared, so a
// service without an agent fails registration without touching the
// container.
//
// # Usage
//
//	injector := do.New()
//	catalog, _ := registry.NewCatalog(registry.Agent("OrderAgent", NewOrderAgent))
//
//	err := agents.RegisterAll(injector,
//	    func(f *settings.File) { f.Name = "serviceagents.json" },
//	    nil,
//	    catalog,
//	    agents.WithLogger(logger),
//	)
//
//	orders, err := agents.Invoke[*OrderAgent](injector, "OrderAgent")
//
// A single agent can be registered without a settings file:
//
//	err := agents.RegisterSingle(injector,
//	    registry.Agent("OrderAgent", NewOrderAgent),
//	    func(s *settings.ServiceSettings) { s.URL = "https://orders.example/api" },
//	)
//
// # Lifetime
//
// Clients and agents are transient by default: each resolution builds an
// independent client from the read-only settings snapshot. WithLifetime
// switches both to singletons.
package agents
