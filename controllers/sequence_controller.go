package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"outreachly/models"
	"outreachly/smartlead"
	"outreachly/store"
	"outreachly/utils"
)

// SequenceController manages sequences and enrollments.
type SequenceController struct {
	DB        *gorm.DB
	Store     store.Store
	Logger    *logrus.Entry
	NewClient func(apiKey string) *smartlead.Client
}

func NewSequenceController(db *gorm.DB, st store.Store, logger *logrus.Entry, newClient func(apiKey string) *smartlead.Client) *SequenceController {
	return &SequenceController{
		DB:        db,
		Store:     st,
		Logger:    logger,
		NewClient: newClient,
	}
}

type stepInput struct {
	StepType      string `json:"step_type" validate:"required,oneof=email call"`
	Subject       string `json:"subject"`
	Body          string `json:"body"`
	CallObjective string `json:"call_objective"`
	CallScript    string `json:"call_script"`
	DelayDays     int    `json:"delay_days" validate:"min=0"`
	DelayHours    int    `json:"delay_hours" validate:"min=0,max=23"`

	ConditionPreviousOpened  bool `json:"condition_previous_opened"`
	ConditionPreviousClicked bool `json:"condition_previous_clicked"`
	ConditionNotReplied      bool `json:"condition_not_replied"`
}

type createSequenceInput struct {
	UserID      uint        `json:"user_id" validate:"required"`
	Name        string      `json:"name" validate:"required,min=3,max=120"`
	Description string      `json:"description"`
	Steps       []stepInput `json:"steps" validate:"required,min=1,dive"`
}

// CreateSequence persists a sequence with its steps and creates the
// matching campaign on Smartlead so email steps have somewhere to send.
func (sc *SequenceController) CreateSequence(c *fiber.Ctx) error {
	var input createSequenceInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	creds, err := sc.Store.UserCredentials(c.UserContext(), input.UserID)
	if err != nil {
		if errors.Is(err, store.ErrCredentialsNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "User has not connected a Smartlead account",
			})
		}
		sc.Logger.WithError(err).Error("Failed to resolve credentials")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	steps := make([]models.SequenceStep, 0, len(input.Steps))
	var campaignSteps []smartlead.CampaignStep
	for i, in := range input.Steps {
		number := i + 1
		var step models.SequenceStep
		switch in.StepType {
		case models.StepTypeEmail:
			step = models.NewEmailStep(number, models.EmailPayload{
				Subject: in.Subject,
				Body:    in.Body,
			}, in.DelayDays, in.DelayHours)
			campaignSteps = append(campaignSteps, smartlead.CampaignStep{
				SequenceNumber: number,
				Subject:        in.Subject,
				Body:           in.Body,
				DelayInDays:    in.DelayDays,
			})
		case models.StepTypeCall:
			step = models.NewCallStep(number, models.CallPayload{
				Objective: in.CallObjective,
				Script:    in.CallScript,
			}, in.DelayDays, in.DelayHours)
		}
		step.ConditionPreviousOpened = in.ConditionPreviousOpened
		step.ConditionPreviousClicked = in.ConditionPreviousClicked
		step.ConditionNotReplied = in.ConditionNotReplied
		steps = append(steps, step)
	}

	client := sc.NewClient(creds.APIKey)
	campaignID, err := client.CreateCampaign(c.UserContext(), input.Name, creds.EmailAccountID, campaignSteps)
	if err != nil {
		sc.Logger.WithError(err).Error("Failed to create Smartlead campaign")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to create provider campaign",
		})
	}

	sequence := models.Sequence{
		UserID:              input.UserID,
		Name:                input.Name,
		Description:         input.Description,
		SmartleadCampaignID: campaignID,
		Steps:               steps,
	}
	if err := sc.DB.Create(&sequence).Error; err != nil {
		sc.Logger.WithError(err).Error("Failed to create sequence")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create sequence",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(sequence)
}

type enrollContactInput struct {
	ContactID uint `json:"contact_id" validate:"required"`
}

// EnrollContact starts a contact on a sequence: step 1, active, due
// immediately so the next sweep picks it up.
func (sc *SequenceController) EnrollContact(c *fiber.Ctx) error {
	sequenceID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid sequence id",
		})
	}

	var input enrollContactInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var sequence models.Sequence
	if err := sc.DB.First(&sequence, sequenceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Sequence not found",
		})
	}
	var contact models.Contact
	if err := sc.DB.First(&contact, input.ContactID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Contact not found",
		})
	}

	enrollment := models.Enrollment{
		ContactID:   contact.ID,
		SequenceID:  sequence.ID,
		CurrentStep: 1,
		Status:      models.EnrollmentStatusActive,
		NextSendAt:  utils.Pointer(time.Now()),
	}
	if err := sc.DB.Create(&enrollment).Error; err != nil {
		sc.Logger.WithError(err).Error("Failed to create enrollment")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to enroll contact",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(enrollment)
}
