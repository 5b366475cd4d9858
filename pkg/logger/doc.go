// Package logger builds *slog.Logger values with a small set of functional
// options and provides attribute helpers so field names stay consistent
// across the codec packages, the HTTP layer and the commands.
//
// # Architecture
//
// New picks slog.NewJSONHandler or slog.NewTextHandler, applies static
// attributes and wraps the result in a context handler. The context handler
// runs every registered ContextExtractor when a record is handled, which is
// how request ids stored by the HTTP middleware reach each log line.
//
// # Usage
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatText),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithService("qrserver"),
//		logger.WithContextExtractors(requestid.LogExtractor),
//	)
//
//	log.InfoContext(ctx, "encoded", logger.OutputFormat("svg"), logger.Duration(elapsed))
//
// Configuration can also come from the environment through Config
// (LOG_LEVEL, LOG_FORMAT, SERVICE_NAME) and NewFromConfig.
//
// # Error Handling
//
// Error, RequestID and ErrorKind return an empty slog.Attr for zero input, so
// they can be passed unconditionally:
//
//	log.Debug("decode finished", logger.Error(err))
package logger
