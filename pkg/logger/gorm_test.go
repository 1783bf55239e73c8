package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func observed(level string) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level), logs
}

func sqlFn() (string, int64) { return "SELECT 1", 1 }

func TestGormLogger_Trace(t *testing.T) {
	ctx := context.Background()

	l, logs := observed("warn")
	l.Trace(ctx, time.Now(), sqlFn, errors.New("boom"))
	l.Trace(ctx, time.Now(), sqlFn, gorm.ErrRecordNotFound)
	l.Trace(ctx, time.Now().Add(-time.Second), sqlFn, nil)
	l.Trace(ctx, time.Now(), sqlFn, nil)

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "gorm error", entries[0].Message)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.Equal(t, "gorm slow query", entries[1].Message)
	}
}

func TestGormLogger_LogMode(t *testing.T) {
	l, logs := observed("info")

	silent := l.LogMode(gormlogger.Silent)
	silent.Trace(context.Background(), time.Now(), sqlFn, errors.New("boom"))
	assert.Zero(t, logs.Len())

	l.Trace(context.Background(), time.Now(), sqlFn, nil)
	assert.Equal(t, 1, logs.FilterMessage("gorm query").Len())
	assert.Equal(t, gormlogger.Info, l.LogLevel)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("nonsense"))
	assert.Equal(t, gormlogger.Error, parseGormLevel("error"))
	assert.Equal(t, gormlogger.Info, parseGormLevel(""))
}
