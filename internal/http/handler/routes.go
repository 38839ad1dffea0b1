package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"meterflow/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; the business logic lives in the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, importSvc service.ImportService, dataSvc service.MeterDataService) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health endpoint checks DB connectivity; healthz is a bare liveness probe
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api/v1")

	api.Post("/flow-files/upload", UploadFlowFile(importSvc))
	api.Get("/flow-files", ListFlowFiles(dataSvc))
	api.Get("/flow-files/:id", GetFlowFile(dataSvc))
	api.Get("/flow-files/:id/download", DownloadFlowFile(dataSvc))

	api.Get("/meter-points", ListMeterPoints(dataSvc))
	api.Get("/meter-points/:id", GetMeterPoint(dataSvc))
	api.Get("/meter-points/:id/readings", ListMeterPointReadings(dataSvc))

	api.Get("/meters", ListMeters(dataSvc))
	api.Get("/meters/:id", GetMeter(dataSvc))
	api.Get("/meters/:id/readings", ListMeterReadings(dataSvc))

	// summary must be registered before :id so the literal segment wins
	api.Get("/readings/summary", ReadingsSummary(dataSvc))
	api.Get("/readings", ListReadings(dataSvc))
	api.Get("/readings/:id", GetReading(dataSvc))
}
