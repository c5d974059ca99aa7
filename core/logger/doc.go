// Package logger builds slog loggers and provides attribute helpers used
// across the module.
//
// Create a logger with options or from environment configuration:
//
//	log := logger.New(logger.WithDevelopment("api"))
//
//	var cfg logger.Config // LOG_LEVEL, LOG_FORMAT
//	config.MustLoad(&cfg)
//	log := logger.NewFromConfig(cfg, logger.WithAttr(logger.Version(response.Version)))
//
// Attribute helpers give keys a single spelling across packages. Helpers for
// optional values return an empty slog.Attr, which handlers drop:
//
//	log.LogAttrs(ctx, slog.LevelError, "response body write failed",
//		logger.Error(err),           // dropped when err is nil
//		logger.StatusCode(resp.StatusCode()),
//		logger.BytesOut(written),
//	)
//
// Nop returns a logger that discards everything; components use it when no
// logger is configured.
package logger
