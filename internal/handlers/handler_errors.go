package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/settleworks/closing_cost_engine/internal/apperrors"
)

// Binding violations use the JSON field names so they share one vocabulary
// with the domain-level violations.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	}
}

// bindingFieldName strips the root struct segment from the error namespace,
// leaving the dotted JSON path (e.g. "property.state").
func bindingFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// respondBindingError converts a gin binding failure into the same
// field-violation shape domain validation uses. Non-validator errors (bad
// JSON and the like) keep the raw message.
func respondBindingError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		violations := make([]apperrors.FieldViolation, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			violations = append(violations, apperrors.FieldViolation{
				Field:   bindingFieldName(fe),
				Message: "failed validation on '" + fe.Tag() + "'",
			})
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Deal validation failed",
			"violations": violations,
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}
