package handlers

import (
	"net/http"

	request "fieldservice/internal/adapter/http/dto/request"
	response "fieldservice/internal/adapter/http/dto/response"
	"fieldservice/internal/usecase"

	"github.com/gin-gonic/gin"
)

// VisitHandler handles assignment and technician notes on visits.
type VisitHandler struct {
	usecase usecase.IVisitUseCase
}

func NewVisitHandler(uc usecase.IVisitUseCase) *VisitHandler {
	return &VisitHandler{usecase: uc}
}

// AssignVisit godoc
// @Summary      Assign a visit to a technician
// @Tags         visits
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "Visit ID"
// @Param        body  body  request.AssignVisitRequest  true  "Assignee"
// @Success      200  {object}  response.VisitResponse
// @Failure      400,403,404,409  {object}  pkg.HTTPError
// @Router       /visits/{id}/assignee [patch]
func (h *VisitHandler) AssignVisit(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var payload request.AssignVisitRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}
	visit, err := h.usecase.AssignVisit(c.Request.Context(), actor, c.Param("id"), payload.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromVisit(visit))
}

// UpdateNotes godoc
// @Summary      Replace the technician notes of a visit
// @Tags         visits
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Visit ID"
// @Param        body  body  request.VisitNotesRequest  true  "Notes"
// @Success      200  {object}  response.VisitResponse
// @Failure      400,403,404,409  {object}  pkg.HTTPError
// @Router       /visits/{id}/notes [patch]
func (h *VisitHandler) UpdateNotes(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var payload request.VisitNotesRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}
	visit, err := h.usecase.UpdateNotes(c.Request.Context(), actor, c.Param("id"), *payload.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromVisit(visit))
}
