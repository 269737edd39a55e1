// Package errors provides coded, actionable errors for the liveview CLI
// and configuration loader.
//
// Each error has a code that maps to a registered template:
//
//	E1xx  configuration (loading, parsing, validating liveview.yaml)
//	E2xx  server (listening, serving, shutdown)
//	E3xx  command line (arguments, rendering)
//
// Usage:
//
//	err := errors.New("E102").
//	    WithLocation("liveview.yaml", 4, 0).
//	    WithSuggestion("Durations are written like 30s or 2m").
//	    Wrap(cause)
//
//	errors.PrintError(err)
//	// ERROR E102: Invalid configuration file
//	//
//	//   liveview.yaml:4
//	//
//	//       3 │ server:
//	//   →   4 │   read_timeout: soon
//	//       5 │ actor:
//	//
//	//   Hint: Durations are written like 30s or 2m
package errors
