// Package pokeapi provides an HTTP client for the PokeAPI species endpoint.
//
// # Usage
//
//	client := pokeapi.NewClient(pokeapi.DefaultBaseURL, 10*time.Second)
//	info, err := client.FetchSpecies(ctx, "mewtwo")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(info.Name, info.Habitat, info.IsLegendary)
//
// # SpeciesInfo
//
// [Client.FetchSpecies] returns a [SpeciesInfo] built from
// GET {base}/pokemon-species/{name}:
//
//   - Name: the species name
//   - Description: the first flavor text entry tagged "en", with every line
//     break replaced by a single space
//   - Habitat: habitat.name
//   - IsLegendary: is_legendary
//
// All four are required. A payload missing any of them, or with no English
// flavor text, fails with an internal [Error]; there is no fallback language.
//
// # Errors
//
// A 404 maps to [integrations.KindNotFound]. Everything else (other
// statuses, malformed JSON, timeouts) maps to [integrations.KindInternal].
package pokeapi
