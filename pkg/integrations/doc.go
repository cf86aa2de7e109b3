// Package integrations provides HTTP clients for the upstream APIs.
//
// # Overview
//
// Each upstream has its own subpackage:
//
//   - [pokeapi]: species metadata (name, flavor text, habitat, legendary flag)
//   - [funtranslations]: dialect translation of free text
//
// # Client Pattern
//
// Upstream clients follow a consistent pattern:
//
//	client := pokeapi.NewClient(pokeapi.DefaultBaseURL, 10*time.Second)
//	info, err := client.FetchSpecies(ctx, "mewtwo")
//
// Clients handle:
//   - HTTP requests over a shared, pooled transport with a per-call timeout
//   - API-specific parsing and normalization
//   - Mapping failures into the client's own error type
//
// Clients do not retry and do not cache.
//
// # Shared Infrastructure
//
// The [Client] type provides the shared GET/decode path and status
// classification. [Classify] reduces its sentinel errors to a [Kind].
//
// [pokeapi]: github.com/matzehuels/pokespeare/pkg/integrations/pokeapi
// [funtranslations]: github.com/matzehuels/pokespeare/pkg/integrations/funtranslations
package integrations
