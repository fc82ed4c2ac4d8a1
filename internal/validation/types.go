package validation

import "github.com/alexisbeaulieu97/rigup/internal/config"

// Result captures the outcome of executing a single post-run check.
type Result struct {
	Validation config.Validation
	Passed     bool
	Message    string
	Error      error
}
