package controller

import (
	"context"
	"errors"
	"net/http"

	"workmesh-backend/models"
	"workmesh-backend/repository"
	"workmesh-backend/services"
	"workmesh-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

// ProjectRequestController handles the client-intake flow. Send is an
// authenticated internal operation; the form endpoints are public and
// authorize by token possession alone.
type ProjectRequestController struct {
	ctx            context.Context
	requestService services.ProjectRequestServiceInterface
	logger         logger.Logger
}

func NewProjectRequestController(ctx context.Context, requestService services.ProjectRequestServiceInterface, log logger.Logger) *ProjectRequestController {
	return &ProjectRequestController{
		ctx:            ctx,
		requestService: requestService,
		logger:         log,
	}
}

// SendRequest creates an invite and mails the single-use form link.
// A mail delivery failure is reported in the payload, not as an error,
// so the link can still be shared by hand.
func (pc *ProjectRequestController) SendRequest(c *gin.Context) {
	orgID, callerID, _ := callerIdentity(c)

	var req models.SendProjectRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := pc.requestService.CreateAndSend(c.Request.Context(), orgID, callerID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	data := gin.H{
		"request": result.Request,
		"formUrl": result.FormURL,
	}
	if result.EmailError != "" {
		data["emailError"] = result.EmailError
	}

	respondOK(c, http.StatusCreated, data, "Project request sent")
}

// GetRequestForm resolves a token for the public form page. Unknown
// and already-consumed tokens get the same generic answer so an
// unauthenticated caller cannot probe token states; only the submit
// path discloses the already-submitted case.
func (pc *ProjectRequestController) GetRequestForm(c *gin.Context) {
	request, err := pc.requestService.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrAlreadySubmitted) {
			respondError(c, http.StatusNotFound, "Invalid or expired link")
			return
		}
		respondServiceError(c, err)
		return
	}

	// Only what the public form needs; internal fields stay hidden.
	respondOK(c, http.StatusOK, gin.H{
		"clientEmail": request.ClientEmail,
		"clientName":  request.ClientName,
		"status":      request.Status,
	}, "")
}

// SubmitRequestForm consumes the token and creates the draft project
func (pc *ProjectRequestController) SubmitRequestForm(c *gin.Context) {
	var req models.SubmitProjectRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	project, err := pc.requestService.Submit(c.Request.Context(), c.Param("token"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, gin.H{
		"projectId": project.ID,
	}, "Thank you, your project requirements were submitted")
}
