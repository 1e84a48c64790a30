package service

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"books/docs"
)

const (
	REQUEST_ID_HEADER = "X-Request-Id"
	INTERNAL_ERROR    = "An internal server error occurred"

	requestIdKey = "books/request_id"
	paramsKey    = "books/params"
	bodyKey      = "books/body"
)

// payloadJSON matches keys exactly, so {"Title": ...} is an unknown field
// rather than the title.
var payloadJSON = jsoniter.Config{
	CaseSensitive:         true,
	DisallowUnknownFields: true,
}.Froze()

// failure is the error body shape shared by every non-2xx JSON response.
func failure(status int, message string) gin.H {
	return gin.H{
		"statusCode": status,
		"error":      http.StatusText(status),
		"message":    message,
	}
}

func RequestId(c *gin.Context) {
	id := c.GetHeader(REQUEST_ID_HEADER)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	c.Set(requestIdKey, id)
	c.Header(REQUEST_ID_HEADER, id)
	c.Next()
}

func requestId(c *gin.Context) string {
	return c.GetString(requestIdKey)
}

func requestLogger(c *gin.Context) *slog.Logger {
	return slog.Default().With(slog.String("request_id", requestId(c)))
}

func RequestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	status := c.Writer.Status()
	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	requestLogger(c).Log(c.Request.Context(), level, "request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", status),
		slog.Duration("latency", time.Since(start)),
	)
}

func Recovery(c *gin.Context, recovered any) {
	requestLogger(c).Error("handler panicked", slog.Any("panic", recovered))
	c.AbortWithStatusJSON(http.StatusInternalServerError, failure(http.StatusInternalServerError, INTERNAL_ERROR))
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, failure(http.StatusNotFound, http.StatusText(http.StatusNotFound)))
}

// BindRequest validates the path and body of a request against the schema
// types declared on the endpoint. Handlers only run for valid input and read
// it back with boundParams and boundBody.
func BindRequest(endpoint docs.Endpoint) gin.HandlerFunc {
	paramsType := schemaType(endpoint.Params)
	bodyType := schemaType(endpoint.Body)

	return func(c *gin.Context) {
		if paramsType != nil {
			params := reflect.New(paramsType).Interface()
			if err := c.ShouldBindUri(params); err != nil {
				rejectRequest(c, "params", err)
				return
			}
			c.Set(paramsKey, params)
		}

		if bodyType != nil {
			body := reflect.New(bodyType).Interface()
			if err := bindPayload(c, body); err != nil {
				rejectRequest(c, "payload", err)
				return
			}
			c.Set(bodyKey, body)
		}

		c.Next()
	}
}

func bindPayload(c *gin.Context, body any) error {
	if c.Request.Body == nil {
		return errors.New("missing request body")
	}
	raw, err := c.GetRawData()
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return errors.New("empty request body")
	}
	if err := payloadJSON.Unmarshal(raw, body); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(body)
}

func schemaType(schema any) reflect.Type {
	if schema == nil {
		return nil
	}
	t := reflect.TypeOf(schema)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func boundParams[T any](c *gin.Context) *T {
	return c.MustGet(paramsKey).(*T)
}

func boundBody[T any](c *gin.Context) *T {
	return c.MustGet(bodyKey).(*T)
}

// rejectRequest answers 400 with a generic body; the details only go to the debug log.
func rejectRequest(c *gin.Context, source string, err error) {
	attrs := []any{
		slog.String("source", source),
		slog.String("path", c.Request.URL.Path),
		slog.String("error", err.Error()),
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]string, len(validationErrors))
		for i, fieldError := range validationErrors {
			fields[i] = fieldError.Field() + ":" + fieldError.Tag()
		}
		attrs = append(attrs, slog.Any("fields", fields))
	}

	requestLogger(c).Debug("request rejected", attrs...)
	c.AbortWithStatusJSON(http.StatusBadRequest, failure(http.StatusBadRequest, "Invalid request "+source+" input"))
}

// respond writes value only if it satisfies its response schema.
func respond(c *gin.Context, status int, value any) {
	if err := binding.Validator.ValidateStruct(value); err != nil {
		requestLogger(c).Error("response failed its schema", slog.String("error", err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, failure(http.StatusInternalServerError, INTERNAL_ERROR))
		return
	}

	c.JSON(status, value)
}
