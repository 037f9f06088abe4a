package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/truelife/learningapp/internal/app/models/dto"
	"github.com/truelife/learningapp/internal/pkg/apperrors"
	"github.com/truelife/learningapp/internal/pkg/logger"
)

// HandleAPIError maps application errors onto HTTP responses with the
// standard error envelope
func HandleAPIError(c *gin.Context, err error) {
	var statusCode int
	var errorDetail *dto.ErrorDetail

	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		err = customErr.Unwrap()
		if err == nil {
			err = customErr
		}
	}

	switch {
	case errors.Is(err, apperrors.ErrEnrollListEmpty):
		statusCode = http.StatusBadRequest
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeValidationFailed,
			"Enroll Students shouldn't be empty").WithField("enroll_students")

	case errors.Is(err, apperrors.ErrValidationFailed):
		statusCode = http.StatusBadRequest
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeValidationFailed, messageOf(err, "Validation failed"))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid email or password")

	case errors.Is(err, apperrors.ErrTokenExpired):
		statusCode = http.StatusUnauthorized
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token has expired")

	case errors.Is(err, apperrors.ErrTokenInvalid):
		statusCode = http.StatusUnauthorized
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")

	case errors.Is(err, apperrors.ErrInvalidPasswordResetToken):
		statusCode = http.StatusBadRequest
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeInvalidToken,
			"Password reset token is invalid or has expired").WithField("token")

	case errors.Is(err, apperrors.ErrPasswordResetTokenUsed):
		statusCode = http.StatusBadRequest
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeInvalidToken,
			"Password reset token has already been used").WithField("token")

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		statusCode = http.StatusConflict
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists,
			"An account with this email already exists").WithField("email")

	case errors.Is(err, apperrors.ErrAlreadyRatedCourse):
		statusCode = http.StatusConflict
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists,
			"You have already rated this course")

	case errors.Is(err, apperrors.ErrCourseNotFound):
		statusCode = http.StatusNotFound
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Course not found")

	case errors.Is(err, apperrors.ErrStudentNotFound):
		statusCode = http.StatusNotFound
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found")

	case errors.Is(err, apperrors.ErrCategoryNotFound),
		errors.Is(err, apperrors.ErrDiscountNotFound),
		errors.Is(err, apperrors.ErrSliderNotFound),
		errors.Is(err, apperrors.ErrReviewNotFound),
		errors.Is(err, apperrors.ErrSubSectionNotFound),
		errors.Is(err, apperrors.ErrEnrollmentNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		statusCode = http.StatusNotFound
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, messageOf(err, "Resource not found"))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		statusCode = http.StatusForbidden
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")

	default:
		statusCode = http.StatusInternalServerError
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeInternalServer, "An unexpected error occurred")
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
	}

	c.JSON(statusCode, dto.NewErrorResponse(errorDetail))
}

// messageOf prefers a wrapped message over the fallback when one exists
func messageOf(err error, fallback string) string {
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
