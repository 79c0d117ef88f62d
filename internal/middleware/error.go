package middleware

import (
	"fmt"
	"go-mini-sites/internal/logger"
	"go-mini-sites/internal/view"
	"net/http"
)

// AppError represents a custom error type for the application.
type AppError struct {
	Error   error
	Message string
	Code    int
}

// AppHandler is a custom handler function type that returns an AppError.
type AppHandler func(http.ResponseWriter, *http.Request) *AppError

// NotFound builds the 404 AppError for a missing record.
func NotFound(err error, message string) *AppError {
	return &AppError{Error: err, Message: message, Code: http.StatusNotFound}
}

// BadRequest builds the 400 AppError for malformed input.
func BadRequest(err error, message string) *AppError {
	return &AppError{Error: err, Message: message, Code: http.StatusBadRequest}
}

// Internal builds the 500 AppError for anything unexpected.
func Internal(err error) *AppError {
	return &AppError{Error: err, Message: "Internal Server Error", Code: http.StatusInternalServerError}
}

// Error is a middleware that converts handler errors into user-friendly error pages.
func Error(log logger.Logger, v *view.View) func(AppHandler) http.Handler {
	render := func(w http.ResponseWriter, code int, text string) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(code)
		data := map[string]interface{}{
			"StatusCode": code,
			"StatusText": text,
		}
		if err := v.Render(w, "error.html", data); err != nil {
			log.Error(err, "Failed to render error page")
		}
	}

	return func(next AppHandler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					log.Error(err, "Panic recovered")
					render(w, http.StatusInternalServerError, "Internal Server Error")
				}
			}()

			appErr := next(w, r)
			if appErr == nil {
				return
			}
			fields := log.With(map[string]interface{}{"path": r.URL.Path, "status": appErr.Code})
			if appErr.Code >= http.StatusInternalServerError {
				fields.Error(appErr.Error, appErr.Message)
			} else {
				fields.Warn(appErr.Message)
			}
			render(w, appErr.Code, appErr.Message)
		})
	}
}
