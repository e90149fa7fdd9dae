package main

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

const (
	actionShutdown = "shutdown"
	actionRestart  = "restart"
)

// VersionInfo defines the structure for build/version information.
type VersionInfo struct {
	Version   string `json:"version" doc:"Release version"`
	Commit    string `json:"commit" doc:"Source commit"`
	BuildDate string `json:"build_date" doc:"Build timestamp"`
}

type HealthOutput struct {
	Body struct {
		Status string `json:"status" example:"ok" doc:"Always ok while the server is accepting requests"`
	}
}

type VersionOutput struct {
	Body VersionInfo
}

// RegisterServerAPI adds the health and version endpoints to api.
func RegisterServerAPI(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health check",
		Tags:        []string{"Server"},
	}, func(_ context.Context, _ *struct{}) (*HealthOutput, error) {
		out := &HealthOutput{}
		out.Body.Status = "ok"
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-version",
		Method:      http.MethodGet,
		Path:        "/api/version",
		Summary:     "Build information",
		Tags:        []string{"Server"},
	}, func(_ context.Context, _ *struct{}) (*VersionOutput, error) {
		return &VersionOutput{Body: VersionInfo{
			Version:   Version,
			Commit:    Commit,
			BuildDate: BuildDate,
		}}, nil
	})
}
