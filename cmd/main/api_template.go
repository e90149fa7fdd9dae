package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/CTAG07/Sashizume/pkg/card"
	"github.com/CTAG07/Sashizume/pkg/title"
)

type ListTemplatesOutput struct {
	Body []string
}

type PreviewTemplateInput struct {
	Name    string `path:"name" doc:"Template name, e.g. card.tmpl.html"`
	Keyword string `query:"k" maxLength:"200" doc:"Keyword to preview with"`
	Variant int    `query:"v" doc:"Variant to preview with"`
}

type PreviewTemplateOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// TemplateAPI holds the dependencies for the template API handlers.
type TemplateAPI struct {
	cards  *card.Manager
	gen    title.Generator
	logger *slog.Logger
}

// NewTemplateAPI creates a new instance of the TemplateAPI.
func NewTemplateAPI(cards *card.Manager, gen title.Generator, logger *slog.Logger) *TemplateAPI {
	return &TemplateAPI{
		cards:  cards,
		gen:    gen,
		logger: logger,
	}
}

// Register adds the /api/v1/templates endpoints to the Huma API. Templates
// are read-only over HTTP; overrides are edited on disk and picked up by a
// refresh.
func (t *TemplateAPI) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-templates",
		Method:      http.MethodGet,
		Path:        "/api/v1/templates",
		Summary:     "List loaded templates",
		Tags:        []string{"Templates"},
	}, func(_ context.Context, _ *struct{}) (*ListTemplatesOutput, error) {
		return &ListTemplatesOutput{Body: t.cards.TemplateNames()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "refresh-templates",
		Method:        http.MethodPost,
		Path:          "/api/v1/templates/refresh",
		Summary:       "Reparse the embedded templates and overrides",
		Tags:          []string{"Templates"},
		DefaultStatus: http.StatusNoContent,
	}, func(_ context.Context, _ *struct{}) (*struct{}, error) {
		if err := t.cards.Refresh(); err != nil {
			t.logger.Error("API triggered refresh failed", "error", err)
			return nil, huma.Error500InternalServerError("failed to refresh templates", err)
		}
		t.logger.Info("Templates refreshed via API")
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "preview-template",
		Method:      http.MethodGet,
		Path:        "/api/v1/templates/{name}/preview",
		Summary:     "Render a template for a keyword and variant",
		Tags:        []string{"Templates"},
	}, t.handlePreview)
}

// handlePreview renders one template against a freshly generated result.
func (t *TemplateAPI) handlePreview(ctx context.Context, input *PreviewTemplateInput) (*PreviewTemplateOutput, error) {
	r, err := generateFor(ctx, t.gen, input.Keyword, input.Variant)
	if err != nil {
		return nil, toHumaError(err)
	}
	page, err := card.NewPage(t.cards.Config().BaseURL, r, input.Keyword)
	if err != nil {
		return nil, huma.Error500InternalServerError("invalid base url", err)
	}

	var buf bytes.Buffer
	if err = t.cards.Execute(&buf, input.Name, page); err != nil {
		if errors.Is(err, card.ErrTemplateNotFound) {
			return nil, huma.Error404NotFound("template '" + input.Name + "' not found")
		}
		t.logger.Error("Failed to render preview", "template", input.Name, "error", err)
		return nil, huma.Error500InternalServerError("failed to render preview", err)
	}
	return &PreviewTemplateOutput{ContentType: "text/html; charset=utf-8", Body: buf.Bytes()}, nil
}
