// Package adapters provides ready-made service agents built on SDK clients.
//
// Each constructor has the registry.Constructor shape and receives the
// registered *httpclient.Client: the SDK is pointed at the client's base
// URL and sends through the client's transport, so default headers,
// correlation ids and OAuth tokens apply to SDK traffic too.
//
//	catalog, _ := registry.NewCatalog(
//	    registry.AgentAs[*adapters.KongAdmin, adapters.Gateway]("KongAdmin", adapters.NewKongAdmin),
//	    registry.Agent("Anthropic", adapters.NewAnthropic),
//	    registry.Agent("Gemini", adapters.NewGemini),
//	)
package adapters
