package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/sysstock/backend/internal/domain/ledger"
)

// SetupValidator configures gin's validator with custom tags
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// Use JSON tag names for field names in errors
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})

		_ = v.RegisterValidation("movementkind", validateMovementKind)
	}
}

// validateMovementKind accepts any spelling ParseMovementKind understands
func validateMovementKind(fl validator.FieldLevel) bool {
	_, err := ledger.ParseMovementKind(fl.Field().String())
	return err == nil
}
