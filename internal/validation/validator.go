// Package validation runs the document's post-run checks: lightweight
// assertions about the machine after reconciliation, independent of any
// declaration's own verification.
package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/rigup/internal/config"
	rigerrors "github.com/alexisbeaulieu97/rigup/pkg/errors"
)

// Run executes the provided checks and returns their results. Failures are
// aggregated: every check runs, then one combined error reports the failed
// ones.
func Run(ctx context.Context, validations []config.Validation) ([]Result, error) {
	results := make([]Result, 0, len(validations))
	var failed []string

	for _, val := range validations {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := Result{Validation: val}

		var err error
		switch val.Type {
		case "command_exists":
			err = CheckCommandExists(val.Command)
		case "file_exists":
			err = CheckFileExists(val.Path)
		case "path_contains":
			err = CheckPathContains(val.File, val.Text)
		default:
			err = rigerrors.NewValidationError("type", fmt.Sprintf("unknown validation type %q", val.Type), nil)
		}

		if err != nil {
			result.Message = err.Error()
			result.Error = err
			failed = append(failed, err.Error())
		} else {
			result.Passed = true
			result.Message = "passed"
		}

		results = append(results, result)
	}

	if len(failed) > 0 {
		return results, fmt.Errorf("validations failed: %s", strings.Join(failed, "; "))
	}

	return results, nil
}
