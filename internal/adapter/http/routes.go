package http

import (
	"github.com/labstack/echo/v4"
)

// Handlers groups every handler the router needs.
type Handlers struct {
	Base       *Handler
	Auth       *AuthHandler
	Users      *UserHandler
	Credits    *CreditHandler
	Workflow   *WorkflowHandler
	Withdrawal *WithdrawalHandler
	Export     *ExportHandler
	Automation *AutomationHandler
	News       *NewsHandler
	Reference  *ReferenceHandler
}

// RegisterRoutes mounts the API. Everything under /api requires a bearer
// token; mutations additionally pass the idempotency middleware.
func RegisterRoutes(e *echo.Echo, h Handlers, authMW, idemMW echo.MiddlewareFunc) {
	e.GET("/health", h.Base.Health)
	e.POST("/auth/register", h.Auth.Register)
	e.POST("/auth/login", h.Auth.Login)

	api := e.Group("/api", authMW, idemMW)

	api.GET("/me", h.Users.Me)
	api.GET("/users", h.Users.List)
	api.GET("/users/:user_id", h.Users.Get)
	api.PATCH("/users/:user_id", h.Users.Update)
	// privileged registration (non-GESTOR roles) goes through the same handler
	api.POST("/users", h.Auth.Register)

	api.POST("/creditos", h.Credits.Create)
	api.GET("/creditos", h.Credits.List)
	api.GET("/creditos/:credit_id", h.Credits.Get)
	api.PATCH("/creditos/:credit_id", h.Credits.UpdateData)
	api.DELETE("/creditos/:credit_id", h.Credits.Delete)
	api.PUT("/creditos/:credit_id/analista", h.Credits.AssignAnalyst)
	api.PUT("/creditos/:credit_id/comision", h.Credits.MarkCommission)
	api.POST("/creditos/:credit_id/comentarios", h.Credits.AddComment)
	api.POST("/creditos/:credit_id/documentos", h.Credits.UploadDocument)

	api.GET("/estados", h.Workflow.ListStates)
	api.PUT("/creditos/:credit_id/estado", h.Workflow.UpdateStatus)
	api.PUT("/creditos/:credit_id/subsanacion", h.Workflow.ToggleSubsanacion)
	api.POST("/creditos/:credit_id/subsanar", h.Workflow.Subsanar)
	api.PUT("/creditos/:credit_id/tareas/:task_id", h.Workflow.CompleteTask)
	api.POST("/creditos/:credit_id/acciones/:action_id", h.Workflow.ExecuteStateAction)

	api.POST("/retiros", h.Withdrawal.Request)
	api.GET("/retiros", h.Withdrawal.ListMine)
	api.GET("/retiros/pendientes", h.Withdrawal.ListPending)
	api.PUT("/retiros/:request_id", h.Withdrawal.Resolve)

	api.GET("/export/csv", h.Export.CSV)
	api.GET("/export/xlsx", h.Export.XLSX)

	api.POST("/automatizaciones", h.Automation.Create)
	api.GET("/automatizaciones", h.Automation.List)
	api.PUT("/automatizaciones/:rule_id", h.Automation.Update)
	api.DELETE("/automatizaciones/:rule_id", h.Automation.Delete)
	api.POST("/automatizaciones/:rule_id/test", h.Automation.Test)

	api.GET("/noticias", h.News.List)
	api.POST("/noticias", h.News.Create)
	api.PUT("/noticias/:item_id", h.News.Update)
	api.DELETE("/noticias/:item_id", h.News.Delete)

	api.GET("/referencias", h.Reference.Directory)
}
