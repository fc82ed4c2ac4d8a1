package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	riguperrors "github.com/alexisbeaulieu97/rigup/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	declIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_:-]*$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("decl_id", func(fl validator.FieldLevel) bool {
			return declIDPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// ValidateConfig performs schema and cross-field validation on the document.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return riguperrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	declIndex := make(map[string]int, len(cfg.Declarations))

	for i, decl := range cfg.Declarations {
		if _, exists := declIndex[decl.ID]; exists {
			return riguperrors.NewValidationError(fieldForDecl(i, "id"), fmt.Sprintf("duplicate declaration id %q", decl.ID), nil)
		}

		if err := ValidateDeclaration(decl); err != nil {
			return err
		}

		declIndex[decl.ID] = i
	}

	// value_from must point at an earlier declaration: dependent values are
	// threaded forward through the run report, never backwards.
	for i, decl := range cfg.Declarations {
		if decl.ConfigKey == nil || decl.ConfigKey.ValueFrom == "" {
			continue
		}
		source, ok := declIndex[decl.ConfigKey.ValueFrom]
		if !ok {
			return riguperrors.NewValidationError(fieldForDecl(i, "value_from"), fmt.Sprintf("references unknown declaration %q", decl.ConfigKey.ValueFrom), nil)
		}
		if source >= i {
			return riguperrors.NewValidationError(fieldForDecl(i, "value_from"), fmt.Sprintf("must reference a declaration before %q", decl.ID), nil)
		}
	}

	for i, validation := range cfg.Validations {
		if err := validateValidation(validation, i); err != nil {
			return err
		}
	}

	return nil
}

// ValidateDeclaration validates a single declaration independent of document
// level properties.
func ValidateDeclaration(decl Declaration) error {
	v := validatorInstance()
	if err := v.Struct(decl); err != nil {
		return convertValidationError(err)
	}

	payload := map[string]any{
		KindManager:      declPayload(decl.Manager),
		KindFormula:      declPayload(decl.Formula),
		KindCask:         declPayload(decl.Cask),
		KindService:      declPayload(decl.Service),
		KindFileBlock:    declPayload(decl.FileBlock),
		KindConfigKey:    declPayload(decl.ConfigKey),
		KindShellDefault: declPayload(decl.ShellDefault),
		KindCLIShim:      declPayload(decl.CLIShim),
	}

	body, known := payload[decl.Kind]
	if !known {
		return riguperrors.NewValidationError(decl.ID, fmt.Sprintf("unknown declaration kind %q", decl.Kind), nil)
	}
	if body == nil {
		return riguperrors.NewValidationError(decl.ID, fmt.Sprintf("%s configuration is required", decl.Kind), nil)
	}
	if err := v.Struct(body); err != nil {
		return convertValidationError(err)
	}

	if decl.Kind == KindConfigKey {
		cfg := decl.ConfigKey
		if cfg.Store == "defaults" && cfg.Domain == "" {
			return riguperrors.NewValidationError(decl.ID, "defaults store requires a domain", nil)
		}
		if cfg.Value == "" && cfg.ValueFrom == "" && !cfg.Prompt {
			return riguperrors.NewValidationError(decl.ID, "config_key requires one of value, value_from or prompt", nil)
		}
	}

	return nil
}

// declPayload normalises a typed nil pointer into an untyped nil.
func declPayload[T any](p *T) any {
	if p == nil {
		return nil
	}
	return p
}

func validateValidation(val Validation, index int) error {
	v := validatorInstance()
	if err := v.Struct(val); err != nil {
		return convertValidationError(err)
	}

	switch val.Type {
	case "command_exists":
		if val.Command == "" {
			return riguperrors.NewValidationError(fieldForValidation(index, "command"), "command is required", nil)
		}
	case "file_exists":
		if val.Path == "" {
			return riguperrors.NewValidationError(fieldForValidation(index, "path"), "path is required", nil)
		}
	case "path_contains":
		if val.File == "" || val.Text == "" {
			return riguperrors.NewValidationError(fieldForValidation(index, "file"), "file and text are required", nil)
		}
	}

	return nil
}

func convertValidationError(err error) error {
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return riguperrors.NewValidationError("config", invalid.Error(), err)
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		field := strings.ToLower(first.Namespace())
		message := fmt.Sprintf("failed %q validation", first.Tag())
		return riguperrors.NewValidationError(field, message, err)
	}

	return riguperrors.NewValidationError("config", err.Error(), err)
}

func fieldForDecl(index int, field string) string {
	return fmt.Sprintf("declarations[%d].%s", index, field)
}

func fieldForValidation(index int, field string) string {
	return fmt.Sprintf("validations[%d].%s", index, field)
}
