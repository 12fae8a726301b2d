package controller

import (
	"errors"

	"workmesh-backend/models"
	"workmesh-backend/repository"
	"workmesh-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondOK writes the success envelope
func respondOK(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, models.APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// respondError writes the error envelope
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, models.APIResponse{
		Success:    false,
		Message:    message,
		StatusCode: status,
	})
}

// respondValidationError maps gin binding failures to a field -> problem
// map so the frontend can attach messages to inputs.
func respondValidationError(c *gin.Context, err error) {
	fieldErrors := map[string]string{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				fieldErrors[fe.Field()] = "is required"
			case "email":
				fieldErrors[fe.Field()] = "must be a valid email address"
			case "min":
				fieldErrors[fe.Field()] = "is too short (minimum " + fe.Param() + ")"
			default:
				fieldErrors[fe.Field()] = "is invalid"
			}
		}
	}

	c.JSON(400, models.APIResponse{
		Success:    false,
		Message:    "Validation failed",
		StatusCode: 400,
		Errors:     fieldErrors,
	})
}

// statusForError maps the shared sentinel errors to HTTP statuses;
// anything unrecognized is a 500.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return 404, "Not found"
	case errors.Is(err, repository.ErrEmailExists):
		return 409, "Email already in use"
	case errors.Is(err, repository.ErrAlreadySubmitted):
		return 409, "This request has already been submitted"
	case errors.Is(err, services.ErrEmailTaken):
		return 409, services.ErrEmailTaken.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		return 401, "Invalid email or password"
	case errors.Is(err, services.ErrNoLoginAccess):
		return 401, services.ErrNoLoginAccess.Error()
	case errors.Is(err, services.ErrInvalidRefreshToken):
		return 401, "Invalid or expired refresh token"
	case errors.Is(err, services.ErrInvalidDeadline):
		return 400, services.ErrInvalidDeadline.Error()
	case errors.Is(err, services.ErrMissingRequiredFields):
		return 400, services.ErrMissingRequiredFields.Error()
	default:
		return 500, "Internal server error"
	}
}

func respondServiceError(c *gin.Context, err error) {
	status, message := statusForError(err)
	respondError(c, status, message)
}
