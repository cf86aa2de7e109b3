// Package pkg provides the core libraries for the pokespeare service.
//
// # Overview
//
// Pokespeare looks up Pokémon species metadata and can rewrite the species
// description in a fun dialect. The pkg directory is organized into:
//
//  1. [integrations] - Upstream API clients (PokeAPI, FunTranslations)
//  2. [pokedex] - Lookup orchestration and dialect selection
//  3. [errors] - The uniform API error and its mapping from client errors
//  4. [api] - The HTTP surface
//  5. [config], [observability], [buildinfo] - Supporting infrastructure
//
// # Architecture
//
// The data flow for a translated lookup:
//
//	GET /pokemon/translated/{name}
//	         ↓
//	    [api] router
//	         ↓
//	    [pokedex.Service] ── species ──→ [integrations/pokeapi]
//	         ↓
//	    [pokedex.SelectDialect]
//	         ↓
//	    [pokedex.Service] ── translate ──→ [integrations/funtranslations]
//	         ↓
//	    JSON response, or [errors.From] on failure
//
// # Quick Start
//
//	species := pokeapi.NewClient(pokeapi.DefaultBaseURL, 10*time.Second)
//	translator := funtranslations.NewClient(funtranslations.DefaultBaseURL, 10*time.Second)
//	svc := pokedex.NewService(species, translator, nil)
//
//	info, err := svc.TranslatedInfo(ctx, "mewtwo")
//	if err != nil {
//	    apiErr := errors.From(err)
//	    // apiErr.Status, apiErr.Code, apiErr.Message
//	}
package pkg
