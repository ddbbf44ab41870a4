package handlers

import (
	"net/http"
	"time"

	request "fieldservice/internal/adapter/http/dto/request"
	response "fieldservice/internal/adapter/http/dto/response"
	"fieldservice/internal/logger"
	"fieldservice/internal/usecase"
	"fieldservice/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_ESTIMATE_INPUT", "Invalid estimate payload", http.StatusBadRequest)

// EstimateHandler handles estimate authoring and conversion to invoices.
type EstimateHandler struct {
	estimates  usecase.IEstimateUseCase
	conversion usecase.IConversionUseCase
	now        func() time.Time
}

func NewEstimateHandler(estimates usecase.IEstimateUseCase, conversion usecase.IConversionUseCase) *EstimateHandler {
	return &EstimateHandler{estimates: estimates, conversion: conversion, now: func() time.Time { return time.Now().UTC() }}
}

// ReplaceLineItems godoc
// @Summary      Replace the line items of a draft estimate
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "Estimate ID"
// @Param        body  body  request.LineItemsRequest  true  "Line items"
// @Success      200  {object}  response.EstimateResponse
// @Failure      400,403,404,409  {object}  pkg.HTTPError
// @Router       /estimates/{id}/line-items [put]
func (h *EstimateHandler) ReplaceLineItems(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var payload request.LineItemsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	estimate, err := h.estimates.ReplaceLineItems(c.Request.Context(), actor, c.Param("id"), payload.ToLineItems(), payload.TaxRateBps)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// GetEstimate godoc
// @Summary      Read an estimate
// @Tags         estimates
// @Produce      json
// @Param        id  path  string  true  "Estimate ID"
// @Success      200  {object}  response.EstimateResponse
// @Failure      403,404  {object}  pkg.HTTPError
// @Router       /estimates/{id} [get]
func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	estimate, err := h.estimates.GetEstimate(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// ConvertToInvoice godoc
// @Summary      Create the invoice of an approved estimate
// @Description  Idempotent: repeated calls return the invoice created by the first one.
// @Tags         estimates
// @Produce      json
// @Param        id  path  string  true  "Estimate ID"
// @Success      200  {object}  response.InvoiceResponse
// @Failure      403,404,422,500  {object}  pkg.HTTPError
// @Router       /estimates/{id}/invoice [post]
func (h *EstimateHandler) ConvertToInvoice(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	estimateID := c.Param("id")
	invoice, err := h.conversion.ConvertToInvoice(c.Request.Context(), actor, estimateID)
	if err != nil {
		logger.Infof("[conversion][handler] convert failed estimate_id=%s err=%v", estimateID, err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(invoice, h.now()))
}
