package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"metaharvest/internal/iso639"
	"metaharvest/internal/record"
)

func mustRecord(t *testing.T, src string) *record.Record {
	t.Helper()
	rec, err := record.ParseObject([]byte(src))
	require.NoError(t, err)
	return rec
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func defaultTable(t *testing.T) iso639.Table {
	t.Helper()
	idx, err := iso639.Default()
	require.NoError(t, err)
	return idx
}
