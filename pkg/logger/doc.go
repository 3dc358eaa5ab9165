// Package logger builds *slog.Logger instances with functional options and
// injects request-scoped values from context into every record.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// handler with a decorator that runs ContextExtractor callbacks on each
// Handle call. Attribute helpers in attr.go keep key names consistent across
// packages:
//
//	log := logger.New(
//		logger.WithEnvironment("development", "uploader"),
//		logger.WithContextExtractors(logger.ChiRequestID()),
//	)
//	log.WarnContext(ctx, "upload rejected", logger.Field("avatar"), logger.Error(err))
//
// Config mirrors the options for environment-driven setup and is loaded with
// package config.
package logger
