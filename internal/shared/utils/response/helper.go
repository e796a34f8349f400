package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondBindError answers 400 for a request gin could not bind. Validation
// failures are listed per field; anything else (bad JSON) is passed through.
func RespondBindError(c *gin.Context, err error) {
	RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, BindErrors(err))
}

// BindErrors flattens binding errors to "field: rule" strings
func BindErrors(err error) interface{} {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields = append(fields, field+": "+rule)
	}
	return fields
}
