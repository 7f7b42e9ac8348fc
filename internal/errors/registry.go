package errors

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Configuration Errors (E100-E199)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Configuration file could not be parsed",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Unknown renderer",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Unknown transition",
	},

	// ============================================
	// Source Errors (E200-E299)
	// ============================================

	"E200": {
		Category: CategorySource,
		Message:  "Page fetch failed",
	},
	"E201": {
		Category: CategorySource,
		Message:  "Unsupported page source",
	},
	"E202": {
		Category: CategorySource,
		Message:  "Unexpected response status",
	},

	// ============================================
	// Navigation Errors (E300-E399)
	// ============================================

	"E300": {
		Category: CategoryNavigation,
		Message:  "View not found",
	},
	"E301": {
		Category: CategoryNavigation,
		Message:  "Swap failed",
	},
}
