package routes

import (
	"fieldservice/internal/adapter/http/handlers"
	"fieldservice/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const (
	PathJobs      = "/jobs"
	PathVisits    = "/visits"
	PathEstimates = "/estimates"
	PathInvoices  = "/invoices"
	PathWorkflow  = "/workflow"
)

// Handlers groups every handler the API mounts.
type Handlers struct {
	Workflow *handlers.WorkflowHandler
	Estimate *handlers.EstimateHandler
	Visit    *handlers.VisitHandler
	Payment  *handlers.InvoicePaymentHandler
}

func addWorkflowRoutes(rg *gin.RouterGroup, h Handlers) {
	rg.GET("/capabilities", h.Workflow.Capabilities)
	rg.GET(PathWorkflow+"/:entity/transitions", h.Workflow.AllowedTransitions)

	jobs := rg.Group(PathJobs)
	{
		jobs.GET("/:id", h.Workflow.Get(entities.EntityJob))
		jobs.POST("/:id/transitions", h.Workflow.Transition(entities.EntityJob))
	}

	visits := rg.Group(PathVisits)
	{
		visits.GET("/:id", h.Workflow.Get(entities.EntityVisit))
		visits.POST("/:id/transitions", h.Workflow.Transition(entities.EntityVisit))
		visits.PATCH("/:id/assignee", h.Visit.AssignVisit)
		visits.PATCH("/:id/notes", h.Visit.UpdateNotes)
	}

	estimates := rg.Group(PathEstimates)
	{
		estimates.GET("/:id", h.Estimate.GetEstimate)
		estimates.POST("/:id/transitions", h.Workflow.Transition(entities.EntityEstimate))
		estimates.PUT("/:id/line-items", h.Estimate.ReplaceLineItems)
		estimates.POST("/:id/invoice", h.Estimate.ConvertToInvoice)
	}

	invoices := rg.Group(PathInvoices)
	{
		invoices.GET("/:id", h.Workflow.Get(entities.EntityInvoice))
		invoices.POST("/:id/transitions", h.Workflow.Transition(entities.EntityInvoice))
		invoices.POST("/:id/payments", h.Payment.RecordPayment)
		invoices.GET("/:id/payments", h.Payment.ListPayments)
	}
}
