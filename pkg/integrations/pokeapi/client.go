package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/pokespeare/pkg/buildinfo"
	"github.com/matzehuels/pokespeare/pkg/integrations"
)

// DefaultBaseURL is the public PokeAPI v2 endpoint.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// descriptionLanguage is the only flavor text language used.
const descriptionLanguage = "en"

// SpeciesInfo holds the species metadata republished by the service.
//
// Description never contains a raw line break. This struct is safe for
// concurrent reads after construction.
type SpeciesInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Habitat     string `json:"habitat"`
	IsLegendary bool   `json:"is_legendary"`
}

// Client provides access to the PokeAPI species endpoint.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a PokeAPI client rooted at baseURL whose calls are
// bounded by timeout. A trailing slash on baseURL is ignored.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		Client: integrations.NewClient(timeout, map[string]string{
			"Accept":     "application/json",
			"User-Agent": buildinfo.UserAgent(),
		}),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// FetchSpecies retrieves species metadata for name.
//
// The name is forwarded as-is (only path-escaped); the upstream decides
// whether it exists.
//
// Returns:
//   - SpeciesInfo on success; the pointer is never nil if err is nil
//   - *[Error] with [integrations.KindNotFound] if the upstream answers 404
//   - *[Error] with [integrations.KindInternal] for any other failure,
//     including timeouts and payloads missing a required field
func (c *Client) FetchSpecies(ctx context.Context, name string) (*SpeciesInfo, error) {
	url := fmt.Sprintf("%s/pokemon-species/%s", c.baseURL, integrations.PathEscape(name))

	var data speciesResponse
	if err := c.Get(ctx, url, &data); err != nil {
		return nil, wrap(integrations.Classify(err), fmt.Errorf("pokeapi species %q: %w", name, err))
	}

	info, err := data.speciesInfo()
	if err != nil {
		return nil, internal(fmt.Errorf("pokeapi species %q: %w", name, err))
	}
	return info, nil
}

// speciesResponse mirrors the subset of the species document we read.
// Pointers distinguish absent fields from zero values. Flavor text entries
// stay raw until one is selected, so a malformed entry in another language
// cannot fail the lookup.
type speciesResponse struct {
	Name              *string           `json:"name"`
	FlavorTextEntries []json.RawMessage `json:"flavor_text_entries"`
	Habitat           *namedResource    `json:"habitat"`
	IsLegendary       *bool             `json:"is_legendary"`
}

type flavorTextEntry struct {
	FlavorText json.RawMessage `json:"flavor_text"`
	Language   json.RawMessage `json:"language"`
}

type namedResource struct {
	Name *string `json:"name"`
}

func (r *speciesResponse) speciesInfo() (*SpeciesInfo, error) {
	description, ok := r.description()
	switch {
	case r.Name == nil:
		return nil, fmt.Errorf("%w: name", errMissingField)
	case !ok:
		return nil, fmt.Errorf("%w: %s flavor text", errMissingField, descriptionLanguage)
	case r.Habitat == nil || r.Habitat.Name == nil:
		return nil, fmt.Errorf("%w: habitat.name", errMissingField)
	case r.IsLegendary == nil:
		return nil, fmt.Errorf("%w: is_legendary", errMissingField)
	}

	return &SpeciesInfo{
		Name:        *r.Name,
		Description: foldLineBreaks(description),
		Habitat:     *r.Habitat.Name,
		IsLegendary: *r.IsLegendary,
	}, nil
}

// description returns the flavor text of the first English entry.
// An English entry without usable flavor text counts as no description.
func (r *speciesResponse) description() (string, bool) {
	for _, raw := range r.FlavorTextEntries {
		var e flavorTextEntry
		if json.Unmarshal(raw, &e) != nil || !isLanguage(e.Language, descriptionLanguage) {
			continue
		}
		var text *string
		if json.Unmarshal(e.FlavorText, &text) != nil || text == nil {
			return "", false
		}
		return *text, true
	}
	return "", false
}

func isLanguage(raw json.RawMessage, want string) bool {
	var lang namedResource
	if json.Unmarshal(raw, &lang) != nil || lang.Name == nil {
		return false
	}
	return *lang.Name == want
}

var lineBreakReplacer = strings.NewReplacer(
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
	"\f", " ",
)

// foldLineBreaks replaces every line break with a single space.
func foldLineBreaks(s string) string {
	return lineBreakReplacer.Replace(s)
}
