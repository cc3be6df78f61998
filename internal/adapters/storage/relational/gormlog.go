package relational

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pet-adoption-platform/internal/platform/logger"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormLog manda los eventos de GORM al logger de la app. Por defecto solo
// errores de SQL y queries lentas; el SQL completo queda en debug.
type gormLog struct {
	log   logger.Logger
	level gormlogger.LogLevel
	slow  time.Duration
}

func newGormLog(log logger.Logger) *gormLog {
	return &gormLog{
		log:   log.With(map[string]any{"component": "gorm"}),
		level: gormlogger.Info,
		slow:  slowQueryThreshold,
	}
}

func (g *gormLog) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *g
	cp.level = level
	return &cp
}

func (g *gormLog) Info(ctx context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Info {
		g.log.Info(fmt.Sprintf(msg, args...), nil)
	}
}

func (g *gormLog) Warn(ctx context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Warn {
		g.log.Warn(fmt.Sprintf(msg, args...), nil)
	}
}

func (g *gormLog) Error(ctx context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Error {
		g.log.Error(fmt.Sprintf(msg, args...), nil)
	}
}

// Trace: not-found no es error para los repos (se traduce a ErrNotFound del dominio).
func (g *gormLog) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	fields := func() map[string]any {
		sql, rows := fc()
		return map[string]any{"sql": sql, "rows": rows, "elapsed_ms": elapsed.Milliseconds()}
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && g.level >= gormlogger.Error:
		f := fields()
		f["error"] = err.Error()
		g.log.Error("query failed", f)
	case g.slow > 0 && elapsed > g.slow && g.level >= gormlogger.Warn:
		f := fields()
		f["threshold_ms"] = g.slow.Milliseconds()
		g.log.Warn("slow query", f)
	case g.level >= gormlogger.Info:
		g.log.Debug("query", fields())
	}
}
