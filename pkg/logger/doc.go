// Package logger provides a slog factory with automatic context
// attribute injection. The handler decorator pulls request-scoped
// values — effective tenant id, principal id — out of the context on
// every log call, so tenant-scoped work is attributable without call
// sites repeating the ids.
//
//	log := logger.New(
//		logger.WithProduction("dinekit"),
//		logger.WithContextExtractors(
//			tenancy.LoggerExtractor(),
//			tenancy.PrincipalLoggerExtractor(),
//		),
//	)
package logger
