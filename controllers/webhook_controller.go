package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"outreachly/models"
	"outreachly/store"
	"outreachly/utils"
)

// Score deltas per engagement event; bounces carry no score change.
const (
	scoreOpened  = 10
	scoreClicked = 15
	scoreReplied = 50
)

// WebhookController ingests Smartlead engagement events. It supplies
// the history the condition evaluator consumes.
type WebhookController struct {
	Store  store.Store
	Logger *logrus.Entry

	// Whether a reply/bounce pauses the enrollment. Pausing is an
	// explicit operation; the sweep simply never selects paused rows.
	PauseOnReply  bool
	PauseOnBounce bool
}

func NewWebhookController(st store.Store, logger *logrus.Entry, pauseOnReply, pauseOnBounce bool) *WebhookController {
	return &WebhookController{
		Store:         st,
		Logger:        logger,
		PauseOnReply:  pauseOnReply,
		PauseOnBounce: pauseOnBounce,
	}
}

type smartleadEvent struct {
	Type         string `json:"type" validate:"required"`
	ContactID    uint   `json:"contact_id" validate:"required"`
	SequenceID   uint   `json:"sequence_id" validate:"required"`
	EnrollmentID uint   `json:"enrollment_id" validate:"required"`
	StepNumber   int    `json:"step_number"`
	MessageID    string `json:"message_id"`
	URL          string `json:"url"`
}

// HandleSmartleadWebhook processes open/click/reply/bounce events:
// append the engagement record, adjust the contact's score, and
// optionally pause the enrollment.
func (wc *WebhookController) HandleSmartleadWebhook(c *fiber.Ctx) error {
	var event smartleadEvent
	if err := c.BodyParser(&event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	wc.Logger.WithFields(map[string]interface{}{
		"event":         event.Type,
		"enrollment_id": event.EnrollmentID,
	}).Info("Received Smartlead event")

	var engagementType string
	var score int
	var pause bool

	switch event.Type {
	case "email.opened":
		engagementType = models.EngagementEmailOpened
		score = scoreOpened
	case "email.clicked":
		engagementType = models.EngagementEmailClicked
		score = scoreClicked
	case "email.replied":
		engagementType = models.EngagementEmailReplied
		score = scoreReplied
		pause = wc.PauseOnReply
	case "email.bounced":
		engagementType = models.EngagementEmailBounced
		pause = wc.PauseOnBounce
	default:
		wc.Logger.Warnf("Unknown event type: %s", event.Type)
		return c.JSON(fiber.Map{"success": true})
	}

	ctx := c.UserContext()
	engagement := &models.Engagement{
		ContactID:      event.ContactID,
		SequenceID:     event.SequenceID,
		EnrollmentID:   event.EnrollmentID,
		EngagementType: engagementType,
		Metadata: models.EngagementMetadata{
			StepNumber: event.StepNumber,
			Event:      event.Type,
			MessageID:  event.MessageID,
			URL:        event.URL,
		},
	}
	if err := wc.Store.AppendEngagement(ctx, engagement); err != nil {
		wc.Logger.WithError(err).Error("Failed to record engagement")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	if score > 0 {
		if err := wc.Store.AddContactScore(ctx, event.ContactID, score); err != nil {
			// Score is best-effort; the engagement record is what gates
			// progression.
			wc.Logger.WithError(err).Warn("Failed to update contact score")
		}
	}

	if pause {
		if err := wc.Store.PauseEnrollment(ctx, event.EnrollmentID); err != nil {
			wc.Logger.WithError(err).Error("Failed to pause enrollment")
		} else {
			wc.Logger.WithField("enrollment_id", event.EnrollmentID).
				Info("Enrollment paused")
		}
	}

	return c.JSON(fiber.Map{"success": true})
}
