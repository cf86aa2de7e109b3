// Package pokedex aggregates species metadata with dialect translations.
//
// A [Service] answers two questions about a species: its plain metadata
// ([Service.Info]) and the same metadata with the description rewritten in
// a dialect chosen from the species itself ([Service.TranslatedInfo]).
//
// The translated lookup is a short sequential pipeline:
//
//  1. Fetch species metadata
//  2. Pick a dialect with [SelectDialect]
//  3. Translate the description
//  4. Replace the description
//
// Steps 3 and 4 depend on step 1's output, so the two upstream calls are
// never issued concurrently. Any failure ends the lookup; there are no
// partial results and no untranslated fallback.
//
// Errors from the upstream clients are returned unchanged. Callers map them
// with [github.com/matzehuels/pokespeare/pkg/errors.From].
package pokedex

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pokespeare/pkg/integrations/funtranslations"
	"github.com/matzehuels/pokespeare/pkg/integrations/pokeapi"
	"github.com/matzehuels/pokespeare/pkg/observability"
)

// Dialects requested from the translation upstream.
const (
	DialectYoda        = "yoda"
	DialectShakespeare = "shakespeare"
)

// caveHabitat is the habitat that selects the yoda dialect.
const caveHabitat = "cave"

// SpeciesFetcher fetches species metadata. Implemented by *pokeapi.Client.
type SpeciesFetcher interface {
	FetchSpecies(ctx context.Context, name string) (*pokeapi.SpeciesInfo, error)
}

// Translator translates text into a dialect. Implemented by *funtranslations.Client.
type Translator interface {
	Translate(ctx context.Context, dialect, text string) (*funtranslations.Translation, error)
}

// Service orchestrates the species and translation clients.
//
// A Service holds no per-request state; a single instance is shared by all
// concurrent requests.
type Service struct {
	species    SpeciesFetcher
	translator Translator
	logger     *log.Logger
}

// NewService creates a Service. If logger is nil, log.Default() is used.
func NewService(species SpeciesFetcher, translator Translator, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		species:    species,
		translator: translator,
		logger:     logger,
	}
}

// Info returns the species metadata for name as fetched.
func (s *Service) Info(ctx context.Context, name string) (*pokeapi.SpeciesInfo, error) {
	hooks := observability.Lookup()
	hooks.OnLookupStart(ctx, name, false)
	start := time.Now()

	info, err := s.species.FetchSpecies(ctx, name)
	hooks.OnLookupComplete(ctx, name, false, "", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// TranslatedInfo returns the species metadata for name with its description
// translated into the dialect picked by [SelectDialect]. The translation
// upstream is not called if the species lookup fails.
func (s *Service) TranslatedInfo(ctx context.Context, name string) (*pokeapi.SpeciesInfo, error) {
	hooks := observability.Lookup()
	hooks.OnLookupStart(ctx, name, true)
	start := time.Now()

	info, dialect, err := s.translatedInfo(ctx, name)
	hooks.OnLookupComplete(ctx, name, true, dialect, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (s *Service) translatedInfo(ctx context.Context, name string) (*pokeapi.SpeciesInfo, string, error) {
	info, err := s.species.FetchSpecies(ctx, name)
	if err != nil {
		return nil, "", err
	}

	dialect := SelectDialect(info)
	s.logger.Debug("selected dialect", "name", info.Name, "dialect", dialect,
		"habitat", info.Habitat, "legendary", info.IsLegendary)

	tr, err := s.translator.Translate(ctx, dialect, info.Description)
	if err != nil {
		return nil, dialect, err
	}

	translated := *info
	translated.Description = tr.Translated
	return &translated, dialect, nil
}

// SelectDialect picks the translation dialect for a species: yoda for cave
// dwellers and legendaries, shakespeare for everything else.
func SelectDialect(info *pokeapi.SpeciesInfo) string {
	if info.Habitat == caveHabitat || info.IsLegendary {
		return DialectYoda
	}
	return DialectShakespeare
}
