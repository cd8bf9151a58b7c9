// Copyright 2026 NetApp, Inc. All Rights Reserved.

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		level     string
		format    string
		wantLevel log.Level
		wantErr   bool
	}{
		{name: "info text", level: "info", format: TextFormat, wantLevel: log.InfoLevel},
		{name: "debug overrides level", debug: true, level: "error", format: JSONFormat, wantLevel: log.DebugLevel},
		{name: "default format", level: "warn", format: "", wantLevel: log.WarnLevel},
		{name: "bad level", level: "loud", format: TextFormat, wantErr: true},
		{name: "bad format", level: "info", format: "xml", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			logger, err := NewLogger(&bytes.Buffer{}, test.debug, test.level, test.format)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.wantLevel, logger.GetLevel())
		})
	}
}

func TestLogcCarriesRunFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewLogger(buf, false, "info", JSONFormat)
	require.NoError(t, err)

	ctx := GenerateRunContext(context.Background(), "run-1", ContextSourceCLI)
	ctx = WithLogger(ctx, logger)
	ctx = WithPhase(ctx, Phase("replication"))
	ctx = WithSimulate(ctx, true)

	Logc(ctx).WithField("relationship", "svm2:vol1").Info("would break relationship")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "run-1", line["runID"])
	assert.Equal(t, ContextSourceCLI, line["runSource"])
	assert.Equal(t, "replication", line["phase"])
	assert.Equal(t, true, line["simulate"])
	assert.Equal(t, "svm2:vol1", line["relationship"])
	assert.Equal(t, "would break relationship", line["msg"])
}

func TestGenerateRunContext(t *testing.T) {
	ctx := GenerateRunContext(context.Background(), "", "")
	assert.NotEmpty(t, RunID(ctx), "a run id should be generated")
	assert.Equal(t, ContextSourceLibrary, ctx.Value(ContextKeySource))

	again := GenerateRunContext(ctx, "other", ContextSourceCLI)
	assert.Equal(t, RunID(ctx), RunID(again), "existing run id should be kept")
	assert.Equal(t, ContextSourceLibrary, again.Value(ContextKeySource))

	assert.Equal(t, "", RunID(context.Background()))
}

func TestLogcWithoutLogger(t *testing.T) {
	entry := Logc(context.Background())
	assert.Equal(t, log.StandardLogger(), entry.Logger)
}
