// Package log provides the leveled logging interface used by goalgraph.
//
// Planner, workflow and catalog components accept a Logger. When none is
// given they write to the package-level logger, which defaults to a
// DefaultLogger at LogLevelInfo on stderr.
//
//	log.SetLogLevel(log.LogLevelDebug)
//
// To route logs through github.com/kataras/golog:
//
//	glogger := golog.New()
//	glogger.SetPrefix("[planner] ")
//	logger := log.NewGologLogger(glogger)
//	logger.SetLevel(log.LogLevelDebug)
//	log.SetDefaultLogger(logger)
//
// Messages use fmt.Printf formatting. NoOpLogger silences a component.
package log
