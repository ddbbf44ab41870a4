package handlers

import (
	"net/http"
	"strings"
	"time"

	request "fieldservice/internal/adapter/http/dto/request"
	response "fieldservice/internal/adapter/http/dto/response"
	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/workflow"
	"fieldservice/internal/logger"
	"fieldservice/internal/usecase"
	"fieldservice/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidTransitionPayload = pkg.NewDomainErrorSimple("INVALID_TRANSITION_INPUT", "Invalid transition payload", http.StatusBadRequest)

// WorkflowHandler exposes status transitions and workflow metadata.
type WorkflowHandler struct {
	usecase usecase.IWorkflowUseCase
	now     func() time.Time
}

func NewWorkflowHandler(uc usecase.IWorkflowUseCase) *WorkflowHandler {
	return &WorkflowHandler{usecase: uc, now: func() time.Time { return time.Now().UTC() }}
}

// Transition godoc
// @Summary      Move an entity to a new status
// @Tags         workflow
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Entity ID"
// @Param        body  body  request.TransitionRequest  true  "Target status"
// @Success      200  {object}  response.TransitionResponse
// @Failure      400,403,404,409,422,500  {object}  pkg.HTTPError
// @Router       /{entity}/{id}/transitions [post]
func (h *WorkflowHandler) Transition(entityType entities.EntityType) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFrom(c)
		if !ok {
			return
		}
		var payload request.TransitionRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(errInvalidTransitionPayload.HTTPStatus, errInvalidTransitionPayload.ToHTTPError())
			return
		}

		entityID := c.Param("id")
		var extra *usecase.TransitionPayload
		if payload.PaidCents != nil {
			extra = &usecase.TransitionPayload{PaidCents: payload.PaidCents}
		}

		result, err := h.usecase.Transition(c.Request.Context(), actor, entityType, entityID, payload.Target(), extra)
		if err != nil {
			logger.Infof("[workflow][handler] transition rejected entity=%s id=%s to=%s err=%v", entityType, entityID, payload.Target(), err)
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.FromTransition(result.Entity, result.Events, h.now()))
	}
}

// Get godoc
// @Summary      Read one entity in the caller's account
// @Tags         workflow
// @Produce      json
// @Param        id  path  string  true  "Entity ID"
// @Success      200  {object}  object
// @Failure      404  {object}  pkg.HTTPError
// @Router       /{entity}/{id} [get]
func (h *WorkflowHandler) Get(entityType entities.EntityType) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFrom(c)
		if !ok {
			return
		}
		e, err := h.usecase.Get(c.Request.Context(), actor, entityType, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.FromEntity(e, h.now()))
	}
}

// AllowedTransitions godoc
// @Summary      List the statuses reachable from a status
// @Tags         workflow
// @Produce      json
// @Param        entity  path   string  true  "job, visit, estimate or invoice"
// @Param        from    query  string  true  "Current status"
// @Success      200  {object}  response.AllowedTransitionsResponse
// @Failure      400  {object}  pkg.HTTPError
// @Router       /workflow/{entity}/transitions [get]
func (h *WorkflowHandler) AllowedTransitions(c *gin.Context) {
	entityType, err := entities.ParseEntityType(strings.ToLower(c.Param("entity")))
	if err != nil {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}
	from := entities.Status(strings.ToLower(strings.TrimSpace(c.Query("from"))))
	if !workflow.IsKnownStatus(entityType, from) {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Unknown status for "+string(entityType), http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	targets := h.usecase.AllowedTransitions(entityType, from)
	c.JSON(http.StatusOK, response.FromAllowedTransitions(entityType, from, targets))
}

// Capabilities godoc
// @Summary      Capabilities of the calling role
// @Tags         workflow
// @Produce      json
// @Success      200  {object}  response.CapabilitiesResponse
// @Router       /capabilities [get]
func (h *WorkflowHandler) Capabilities(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, response.FromCapabilities(actor.Role, workflow.Capabilities(actor.Role)))
}
