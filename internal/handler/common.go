package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// invalidRequestMessage is the error of every 400 caused by the request body.
const invalidRequestMessage = "Invalid request format"

func init() {
	// report json field names in validation errors
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// BindJson binds the request body and answers 400 itself on failure.
func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   invalidRequestMessage,
			"details": bindingDetails(err),
		})
		return err
	}
	return nil
}

// ParamID reads an integer path parameter and answers 400 itself on failure.
func ParamID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return 0, false
	}
	return id, true
}

func bindingDetails(err error) []string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", fe.Field()))
			case "max":
				if fe.Kind() == reflect.String {
					details = append(details, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
				} else {
					details = append(details, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
				}
			case "min":
				details = append(details, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
			default:
				details = append(details, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
			}
		}
		return details
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []string{fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type)}
	}
	if errors.Is(err, io.EOF) {
		return []string{"request body is empty"}
	}
	return []string{err.Error()}
}
