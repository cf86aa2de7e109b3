package funtranslations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/pokespeare/pkg/buildinfo"
	"github.com/matzehuels/pokespeare/pkg/integrations"
)

// DefaultBaseURL is the public FunTranslations endpoint.
const DefaultBaseURL = "https://api.funtranslations.com"

var (
	errNoTranslation = errors.New("upstream reported no translation")
	errMissingField  = errors.New("missing or mistyped field")
)

// Translation is a single translated text.
type Translation struct {
	// Dialect is the translation persona reported by the upstream.
	Dialect string `json:"dialect"`
	// Original is the input text as the upstream saw it.
	Original string `json:"original"`
	// Translated is the output text.
	Translated string `json:"translated"`
}

// Client provides access to the FunTranslations API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a FunTranslations client rooted at baseURL whose calls
// are bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		Client: integrations.NewClient(timeout, map[string]string{
			"Accept":     "application/json",
			"User-Agent": buildinfo.UserAgent(),
		}),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Translate renders text in dialect via GET {base}/translate/{dialect}.json?text=...
//
// A 200 response reporting zero successful translations is a failure, not
// a passthrough. Repeated (dialect, text) pairs are not cached.
//
// Returns:
//   - Translation on success; the pointer is never nil if err is nil
//   - *[Error] with [integrations.KindNotFound] if the upstream answers 404
//   - *[Error] with [integrations.KindInternal] for any other failure
func (c *Client) Translate(ctx context.Context, dialect, text string) (*Translation, error) {
	url := fmt.Sprintf("%s/translate/%s.json?text=%s",
		c.baseURL, integrations.PathEscape(dialect), integrations.URLEncode(text))

	var data translateResponse
	if err := c.Get(ctx, url, &data); err != nil {
		return nil, wrap(integrations.Classify(err), fmt.Errorf("funtranslations %s: %w", dialect, err))
	}

	tr, err := data.translation()
	if err != nil {
		return nil, internal(fmt.Errorf("funtranslations %s: %w", dialect, err))
	}
	return tr, nil
}

type translateResponse struct {
	Success *struct {
		Total *int `json:"total"`
	} `json:"success"`
	Contents *struct {
		Translated  *string `json:"translated"`
		Text        *string `json:"text"`
		Translation *string `json:"translation"`
	} `json:"contents"`
}

func (r *translateResponse) translation() (*Translation, error) {
	if r.Success == nil || r.Success.Total == nil || *r.Success.Total <= 0 {
		return nil, errNoTranslation
	}
	c := r.Contents
	if c == nil || c.Translated == nil || c.Text == nil || c.Translation == nil {
		return nil, fmt.Errorf("%w: contents", errMissingField)
	}
	return &Translation{
		Dialect:    *c.Translation,
		Original:   *c.Text,
		Translated: *c.Translated,
	}, nil
}
