// Package logging provides structured logging for cardwallet.
//
// The package wraps a global zap logger. It is silent until Initialize is
// called with a level (or CARDWALLET_LOG_LEVEL is set), so library code can
// log freely without producing output in tests or one-shot commands.
//
// # Output
//
// The interactive UI owns the terminal, so the application points the logger
// at a file under the XDG state directory. Non-interactive commands pass an
// empty path and log to stderr.
//
//	logging.Info("cards loaded",
//	    zap.Int("own", 3),
//	    zap.Int("others", 5),
//	)
package logging
