package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/CTAG07/Sashizume/pkg/title"
)

// ResultResponse is the API representation of a generated or hydrated result.
type ResultResponse struct {
	Full      string        `json:"full" doc:"Title with its emoji"`
	Palette   title.Palette `json:"palette" doc:"Card gradient"`
	Caption   string        `json:"caption" doc:"Share caption"`
	Tags      []string      `json:"tags" doc:"Hashtags"`
	Keyword   string        `json:"keyword" doc:"Keyword the title was generated from"`
	Variant   int           `json:"variant" doc:"Variant the title was generated with"`
	Category  string        `json:"category" doc:"Emoji category of the keyword"`
	Permalink string        `json:"permalink" doc:"Shareable link that restores this result"`
	IntentURL string        `json:"intent_url" doc:"X (Twitter) post intent"`
	ShareText string        `json:"share_text" doc:"Text for a native share sheet"`
	CopyText  string        `json:"copy_text" doc:"Text copied by copy result"`
}

// --- Create Result ---

type CreateResultInput struct {
	Body struct {
		Keyword string `json:"keyword" required:"true" maxLength:"200" doc:"Keyword; empty generates for the default keyword"`
		Variant int    `json:"variant,omitempty" doc:"Variant to generate; negative values generate variant 0"`
		Random  bool   `json:"random,omitempty" doc:"Ignore variant and pick a random one"`
	}
}

type ResultOutput struct {
	Body ResultResponse
}

// --- Get Result ---

type GetResultInput struct {
	Keyword string `query:"k" maxLength:"200" doc:"Keyword; empty generates for the default keyword"`
	Variant int    `query:"v" doc:"Variant to generate; negative values generate variant 0"`
	Random  bool   `query:"random" doc:"Ignore v and pick a random variant"`
}

// --- Hydrate Reference ---

type GetReferenceInput struct {
	Title   string `query:"t" doc:"Encoded title from a permalink; required"`
	Keyword string `query:"k" doc:"Encoded keyword from a permalink"`
	Variant string `query:"v" doc:"Variant from a permalink; malformed values read as 0"`
}

// --- Category ---

type GetCategoryInput struct {
	Keyword string `query:"k" maxLength:"200" doc:"Keyword to classify"`
}

type CategoryOutput struct {
	Body struct {
		Keyword  string   `json:"keyword"`
		Category string   `json:"category"`
		Emojis   []string `json:"emojis" doc:"The category's emoji bank"`
	}
}

// ResultsAPI serves generation and hydration.
type ResultsAPI struct {
	gen     title.Generator
	baseURL func() string
	logger  *slog.Logger
}

// NewResultsAPI creates a new instance of the ResultsAPI. baseURL is read per
// request, so permalink changes apply without re-registering.
func NewResultsAPI(gen title.Generator, baseURL func() string, logger *slog.Logger) *ResultsAPI {
	return &ResultsAPI{gen: gen, baseURL: baseURL, logger: logger}
}

// Register adds all result API routes to the Huma API.
func (a *ResultsAPI) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-result",
		Method:      http.MethodPost,
		Path:        "/api/v1/results",
		Summary:     "Generate a title",
		Tags:        []string{"Results"},
	}, func(ctx context.Context, input *CreateResultInput) (*ResultOutput, error) {
		return a.generate(ctx, input.Body.Keyword, input.Body.Variant, input.Body.Random)
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-result",
		Method:      http.MethodGet,
		Path:        "/api/v1/results",
		Summary:     "Generate a title from query parameters",
		Tags:        []string{"Results"},
	}, func(ctx context.Context, input *GetResultInput) (*ResultOutput, error) {
		return a.generate(ctx, input.Keyword, input.Variant, input.Random)
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-reference",
		Method:      http.MethodGet,
		Path:        "/api/v1/references",
		Summary:     "Restore a result from permalink parameters",
		Tags:        []string{"Results"},
	}, func(_ context.Context, input *GetReferenceInput) (*ResultOutput, error) {
		ref, ok := title.ParseReference(url.Values{
			"t": {input.Title},
			"k": {input.Keyword},
			"v": {input.Variant},
		})
		if !ok {
			return nil, huma.Error400BadRequest("t must not be empty")
		}
		resp, err := a.respond(title.Hydrate(ref), ref.Keyword)
		if err != nil {
			return nil, err
		}
		return &ResultOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-category",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "Classify a keyword",
		Tags:        []string{"Results"},
	}, func(_ context.Context, input *GetCategoryInput) (*CategoryOutput, error) {
		category := title.Classify(input.Keyword)
		out := &CategoryOutput{}
		out.Body.Keyword = input.Keyword
		out.Body.Category = string(category)
		out.Body.Emojis = title.Emojis(category)
		return out, nil
	})
}

// generate builds the result for keyword as typed. An empty keyword generates
// for title.DefaultKeyword but is shared as typed.
func (a *ResultsAPI) generate(ctx context.Context, keyword string, variant int, random bool) (*ResultOutput, error) {
	if random {
		variant = title.RandomVariant()
	}

	r, err := generateFor(ctx, a.gen, keyword, variant)
	if err != nil {
		a.logger.Error("Failed to generate result", "keyword", keyword, "variant", variant, "error", err)
		return nil, toHumaError(err)
	}
	resp, err := a.respond(r, keyword)
	if err != nil {
		return nil, err
	}
	return &ResultOutput{Body: resp}, nil
}

func (a *ResultsAPI) respond(r title.Result, keyword string) (ResultResponse, error) {
	ref := title.ReferenceOf(r)
	ref.Keyword = keyword
	link, err := title.Permalink(a.baseURL(), ref)
	if err != nil {
		a.logger.Error("Failed to build permalink", "base_url", a.baseURL(), "error", err)
		return ResultResponse{}, huma.Error500InternalServerError("invalid base url", err)
	}
	return ResultResponse{
		Full:      r.Full,
		Palette:   r.Palette,
		Caption:   r.Caption,
		Tags:      r.Tags,
		Keyword:   r.Keyword,
		Variant:   r.Variant,
		Category:  string(r.Category),
		Permalink: link,
		IntentURL: title.IntentURL(r, link),
		ShareText: title.ShareText(r),
		CopyText:  title.CopyText(r, link),
	}, nil
}

// toHumaError maps generation errors to HTTP errors.
func toHumaError(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return huma.Error503ServiceUnavailable("request cancelled", err)
	default:
		return huma.Error500InternalServerError("generation failed", err)
	}
}
