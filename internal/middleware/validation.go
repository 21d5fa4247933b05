package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// HandleBindingError responds to a failed request binding. Field-level
// validation failures get a readable message naming the field; anything else
// falls back to the caller's generic message.
func HandleBindingError(c *gin.Context, err error, fallback string) {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(fieldErrors[0])})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": fallback})
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return e.Field() + " must be a valid email address"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " failed validation: " + e.Tag()
	}
}
