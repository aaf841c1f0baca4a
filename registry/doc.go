// Package registry resolves logical service names to the agents that serve
// them.
//
// # Overview
//
// A Catalog is an explicit table of agent constructors supplied by the
// caller. Each Entry carries a candidate name and a typed constructor that
// receives the service's *httpclient.Client. A logical service name from
// the settings matches every candidate whose name begins with it:
//
//	catalog, err := registry.NewCatalog(
//	    registry.Agent("OrderAgent", NewOrderAgent),
//	    registry.AgentAs[*BillingAgentImpl, BillingAgent]("BillingAgentImpl", NewBillingAgent),
//	)
//
//	entry, err := catalog.Resolve("Billing") // BillingAgentImpl
//
// Exactly one candidate must match. Zero matches is an AGENT_NOT_FOUND
// error and more than one is AMBIGUOUS_AGENT, even when one of them is an
// exact match.
//
// # Kinds
//
// Agent registers the concrete type only. AgentAs additionally registers
// the interface I as an alias of the agent, so consumers can depend on the
// capability instead of the implementation:
//
//	billing, err := do.Invoke[BillingAgent](injector)
//
// Registration itself is done by the agents package.
package registry
