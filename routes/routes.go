package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	controller "outreachly/controllers"
)

// SetupRoutes wires the HTTP surface: engagement webhook ingestion, the
// manual sweep trigger, and sequence management.
func SetupRoutes(app *fiber.App, webhooks *controller.WebhookController, sweeps *controller.SweepController, sequences *controller.SequenceController) {
	requestLog := logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	})

	hooks := app.Group("/webhooks", requestLog)
	hooks.Post("/smartlead", webhooks.HandleSmartleadWebhook)

	cron := app.Group("/cron", requestLog)
	cron.Post("/execute-sequences", sweeps.Trigger)

	seq := app.Group("/sequences", requestLog)
	seq.Post("/", sequences.CreateSequence)
	seq.Post("/:id/enroll", sequences.EnrollContact)
}
