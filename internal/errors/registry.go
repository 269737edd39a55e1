package errors

import "sort"

// Template describes a registered error code.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

var registry = map[string]Template{
	// Configuration (E100-E199)

	"E101": {
		Category: CategoryConfig,
		Message:  "Configuration file not readable",
		Detail:   "The configuration file exists but could not be read.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file is not valid YAML or has a value of the wrong type.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range.",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Invalid environment override",
		Detail:   "A LIVEVIEW_* environment variable could not be parsed.",
	},
	"E105": {
		Category: CategoryConfig,
		Message:  "Environment file not readable",
		Detail:   "The .env file exists but could not be parsed.",
	},
	"E106": {
		Category: CategoryConfig,
		Message:  "Configuration not written",
		Detail:   "The configuration could not be saved.",
	},

	// Server (E200-E299)

	"E201": {
		Category: CategoryServer,
		Message:  "Address unavailable",
		Detail:   "The server could not listen on the configured address. Another process may be using the port.",
	},
	"E202": {
		Category: CategoryServer,
		Message:  "Server stopped unexpectedly",
		Detail:   "The HTTP server returned an error while serving.",
	},

	// CLI (E300-E399)

	"E301": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
	},
	"E302": {
		Category: CategoryCLI,
		Message:  "Page not rendered",
		Detail:   "The path did not produce a page. It may not match any route or the handler may have failed.",
	},
	"E303": {
		Category: CategoryCLI,
		Message:  "Invalid log level",
		Detail:   "Valid levels are debug, info, warn and error.",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns every registered code in ascending order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
