package errors

import "sort"

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://dragkit.dev/docs/errors/"

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Runtime Errors (D001-D019)
	// ============================================

	"D001": {
		Category: CategoryRuntime,
		Message:  "Drag context missing",
		Detail:   "UseDraggable was called in a scope with no drag context provider above it.",
		DocURL:   docBase + "D001",
	},
	"D002": {
		Category: CategoryRuntime,
		Message:  "Duplicate draggable id",
		Detail:   "Two mounted draggables share an id. The later registration replaces the earlier one.",
		DocURL:   docBase + "D002",
	},
	"D003": {
		Category: CategoryRuntime,
		Message:  "Unknown draggable",
		Detail:   "No draggable is registered under this id.",
		DocURL:   docBase + "D003",
	},
	"D004": {
		Category: CategoryRuntime,
		Message:  "Effects did not settle",
		Detail:   "An effect kept invalidating itself and the flush was aborted.",
		DocURL:   docBase + "D004",
	},

	// ============================================
	// Protocol Errors (D060-D079)
	// ============================================

	"D060": {
		Category: CategoryProtocol,
		Message:  "WebSocket upgrade failed",
		Detail:   "The HTTP request could not be upgraded to a WebSocket connection.",
		DocURL:   docBase + "D060",
	},
	"D061": {
		Category: CategoryProtocol,
		Message:  "Invalid frame",
		Detail:   "The received frame is not a valid JSON event frame.",
		DocURL:   docBase + "D061",
	},
	"D062": {
		Category: CategoryProtocol,
		Message:  "Unknown event type",
		Detail:   "The event type is not one the server dispatches.",
		DocURL:   docBase + "D062",
	},
	"D063": {
		Category: CategoryProtocol,
		Message:  "Unknown target",
		Detail:   "The event names an element that does not exist in the session.",
		DocURL:   docBase + "D063",
	},
	"D064": {
		Category: CategoryProtocol,
		Message:  "Event queue full",
		Detail:   "The session is receiving events faster than it can handle them.",
		DocURL:   docBase + "D064",
	},

	// ============================================
	// Config Errors (D120-D139)
	// ============================================

	"D120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be read or parsed.",
		DocURL:   docBase + "D120",
	},
	"D121": {
		Category: CategoryConfig,
		Message:  "Invalid server port",
		Detail:   "server.port must be between 1 and 65535.",
		DocURL:   docBase + "D121",
	},
	"D122": {
		Category: CategoryConfig,
		Message:  "Invalid timeout",
		Detail:   "Server timeouts must be positive durations.",
		DocURL:   docBase + "D122",
	},
	"D123": {
		Category: CategoryConfig,
		Message:  "Invalid activation distance",
		Detail:   "drag.activationDistance must not be negative.",
		DocURL:   docBase + "D123",
	},
	"D124": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
		Detail:   "log.level must be one of debug, info, warn or error.",
		DocURL:   docBase + "D124",
	},
	"D125": {
		Category: CategoryConfig,
		Message:  "Invalid metrics path",
		Detail:   "metrics.path must start with a slash.",
		DocURL:   docBase + "D125",
	},
	"D126": {
		Category: CategoryConfig,
		Message:  "Invalid event queue size",
		Detail:   "server.maxEventQueue must be positive.",
		DocURL:   docBase + "D126",
	},

	// ============================================
	// CLI Errors (D140-D159)
	// ============================================

	"D140": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The demo server stopped with an error.",
		DocURL:   docBase + "D140",
	},
	"D141": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
		Detail:   "The command was called with arguments it does not accept.",
		DocURL:   docBase + "D141",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template Template) {
	registry[code] = template
}
