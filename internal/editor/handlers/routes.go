package handlers

import "github.com/gofiber/fiber/v3"

// ============================================================
// Routes
// ============================================================

// RegisterHealth вешает пробы оркестратора.
func RegisterHealth(app *fiber.App, h *HealthHandler) {
	app.Get("/health/live", h.LivenessProbe)
	app.Get("/health/ready", h.ReadinessProbe)
	app.Get("/health/startup", h.StartupProbe)
}

// RegisterDocs вешает OpenAPI и Swagger UI.
func RegisterDocs(app *fiber.App) {
	app.Get("/docs", SwaggerUI)
	app.Get("/docs/openapi.yaml", SwaggerSpec)
}

// Register вешает API редактора на группу /api/v1.
func Register(api fiber.Router, h *EditorHandler) {
	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Image Map Studio API v1",
			"status":  "ok",
		})
	})

	// Sessions
	api.Post("/sessions", h.CreateSession)
	api.Get("/sessions/:id", h.GetSession)
	api.Delete("/sessions/:id", h.DeleteSession)

	// Image source
	api.Post("/sessions/:id/image", h.UploadImage)
	api.Get("/sessions/:id/image", h.GetImage)
	api.Post("/sessions/:id/image-url", h.LoadImageURL)
	api.Post("/sessions/:id/reset", h.Reset)

	// Tools & view
	api.Put("/sessions/:id/tool", h.SetTool)
	api.Put("/sessions/:id/method", h.SetMethod)
	api.Put("/sessions/:id/zoom", h.SetZoom)
	api.Put("/sessions/:id/view", h.SetView)
	api.Put("/sessions/:id/map-name", h.SetMapName)

	// Pointer input
	api.Post("/sessions/:id/pointer", h.Pointer)
	api.Post("/sessions/:id/polygon/finish", h.FinishPolygon)

	// Selection & properties
	api.Put("/sessions/:id/selection", h.Select)
	api.Delete("/sessions/:id/selection", h.ClearSelection)
	api.Patch("/sessions/:id/areas/:areaId", h.UpdateArea)
	api.Delete("/sessions/:id/areas/:areaId", h.DeleteArea)
	api.Post("/sessions/:id/properties/open", h.OpenProperties)
	api.Post("/sessions/:id/properties/close", h.CloseProperties)
	api.Post("/sessions/:id/properties/apply", h.ApplyProperties)
	api.Post("/sessions/:id/context-menu/action", h.ContextMenuAction)
	api.Post("/sessions/:id/context-menu/close", h.CloseContextMenu)

	// Layers
	api.Get("/sessions/:id/layers", h.Layers)
	api.Post("/sessions/:id/layers/reorder", h.Reorder)
	api.Post("/sessions/:id/layers/drag/start", h.LayerDragStart)
	api.Post("/sessions/:id/layers/drag/over", h.LayerDragOver)
	api.Post("/sessions/:id/layers/drag/end", h.LayerDragEnd)

	// Output
	api.Get("/sessions/:id/code", h.Code)
	api.Get("/sessions/:id/download", h.Download)
	api.Get("/sessions/:id/overlay.png", h.Overlay)

	// Export archive
	api.Get("/exports", h.ListExports)
	api.Get("/exports/:exportId", h.GetExport)
}
