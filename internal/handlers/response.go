package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/dto"
	"github.com/SscSPs/shop_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// statusForKind maps an apperrors kind onto the HTTP status it answers with.
func statusForKind(kind string) int {
	switch kind {
	case "NotFound":
		return http.StatusNotFound
	case "ValidationFailed":
		return http.StatusBadRequest
	case "InsufficientStock", "Duplicate":
		return http.StatusConflict
	case "OverPayment", "NoOutstandingBalance":
		return http.StatusUnprocessableEntity
	case "Unauthorized":
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respondOK(c *gin.Context, status int, data any, msg string) {
	c.JSON(status, dto.APIResponse{Success: true, Data: data, Msg: msg})
}

// respondError logs err and writes the envelope. Unkinded errors never leak
// their text to the client; fallback is shown instead.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	kind := apperrors.Kind(err)
	status := statusForKind(kind)

	msg := apperrors.Message(err)
	if kind == "Internal" {
		msg = fallback
	}

	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("kind", kind), slog.String("error", err.Error()))
	} else {
		logger.Warn(fallback, slog.String("kind", kind), slog.String("error", err.Error()))
	}
	c.JSON(status, dto.APIResponse{Success: false, Error: kind, Msg: msg})
}

// respondBindError answers a request whose body or query failed to bind.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.APIResponse{Success: false, Error: "ValidationFailed", Msg: bindMessage(err)})
}

// bindMessage turns validator field errors into one readable line.
func bindMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "Invalid request format: " + err.Error()
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf("%s is required", fe.Field()))
		case "min", "max":
			problems = append(problems, fmt.Sprintf("%s must be %s %s", fe.Field(), boundWord(fe.Tag()), fe.Param()))
		case "oneof":
			problems = append(problems, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		default:
			problems = append(problems, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(problems, ", ")
}

func boundWord(tag string) string {
	if tag == "min" {
		return "at least"
	}
	return "at most"
}

// currentUser returns the operator id put in the context by the auth middleware.
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.APIResponse{Success: false, Error: "Unauthorized", Msg: "Unauthorized"})
	}
	return userID, ok
}
