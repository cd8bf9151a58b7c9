// Copyright 2026 NetApp, Inc. All Rights Reserved.

package logging

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const defaultTimestampFormat = time.RFC3339

// NewLogger builds a logger for one run. The debug flag takes precedence if set,
// otherwise the logLevel (debug, info, warn, error) is used.
func NewLogger(out io.Writer, debug bool, logLevel, logFormat string) (*log.Logger, error) {
	logger := log.New()
	logger.SetOutput(out)

	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return nil, err
		}
		logger.SetLevel(level)
	}

	switch logFormat {
	case TextFormat, "":
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true, TimestampFormat: defaultTimestampFormat})
	case JSONFormat:
		logger.SetFormatter(&log.JSONFormatter{TimestampFormat: defaultTimestampFormat})
	default:
		return nil, fmt.Errorf("unknown log format: %s", logFormat)
	}

	return logger, nil
}

// WithLogger returns a context that carries the supplied logger. Logc uses it for every entry.
func WithLogger(ctx context.Context, logger log.FieldLogger) context.Context {
	var entry *log.Entry
	switch l := logger.(type) {
	case *log.Entry:
		entry = l
	case *log.Logger:
		entry = log.NewEntry(l)
	default:
		entry = log.WithFields(log.Fields{})
	}
	return context.WithValue(ctx, contextKeyLogEntry, entry)
}

// Logc returns a log entry decorated with the run and phase found in the context.
func Logc(ctx context.Context) *log.Entry {
	entry, ok := ctx.Value(contextKeyLogEntry).(*log.Entry)
	if !ok || entry == nil {
		entry = log.NewEntry(log.StandardLogger())
	}

	fields := log.Fields{
		string(ContextKeyRunID):  ctx.Value(ContextKeyRunID),
		string(ContextKeySource): ctx.Value(ContextKeySource),
	}
	if phase := ctx.Value(ContextKeyPhase); phase != nil {
		fields[string(ContextKeyPhase)] = phase
	}
	if simulate, ok := ctx.Value(ContextKeySimulate).(bool); ok && simulate {
		fields[string(ContextKeySimulate)] = true
	}

	return entry.WithFields(fields)
}

// GenerateRunContext stamps a context with a run id and source, keeping any that are already present.
func GenerateRunContext(ctx context.Context, runID, runSource string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	} else {
		if v := ctx.Value(ContextKeyRunID); v != nil {
			runID = fmt.Sprint(v)
		}
		if v := ctx.Value(ContextKeySource); v != nil {
			runSource = fmt.Sprint(v)
		}
	}
	if runID == "" {
		runID = uuid.New().String()
	}
	if runSource == "" {
		runSource = ContextSourceLibrary
	}
	ctx = context.WithValue(ctx, ContextKeyRunID, runID)
	ctx = context.WithValue(ctx, ContextKeySource, runSource)
	return ctx
}

// RunID returns the run id stored in the context, if any.
func RunID(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyRunID).(string); ok {
		return v
	}
	return ""
}

func WithPhase(ctx context.Context, phase Phase) context.Context {
	return context.WithValue(ctx, ContextKeyPhase, phase)
}

func WithSimulate(ctx context.Context, simulate bool) context.Context {
	return context.WithValue(ctx, ContextKeySimulate, simulate)
}
