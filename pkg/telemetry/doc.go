// Package telemetry sets up OpenTelemetry providers and instruments title generation.
package telemetry
