// Copyright 2026 NetApp, Inc. All Rights Reserved.

package logging

const (
	ContextKeyRunID    ContextKey = "runID"
	ContextKeySource   ContextKey = "runSource"
	ContextKeyPhase    ContextKey = "phase"
	ContextKeySimulate ContextKey = "simulate"
	contextKeyLogEntry ContextKey = "logEntry"
)

const (
	ContextSourceCLI     = "CLI"
	ContextSourceLibrary = "Library"

	TextFormat = "text"
	JSONFormat = "json"
)

// ContextKey is used for context.Context value. The value requires a key that is not primitive type.
type ContextKey string

// Phase names one step of the cutover sequence; it is attached to every log entry made during the step.
type Phase string

func (p Phase) String() string {
	return string(p)
}
