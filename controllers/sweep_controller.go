package controller

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"outreachly/engine"
)

// SweepController exposes the on-demand sweep trigger. It has the same
// semantics as the scheduled run; overlap is handled by the engine's
// enrollment lease.
type SweepController struct {
	Executor *engine.Executor
	Logger   *logrus.Entry

	// Shared secret; empty disables the check (development).
	Token string
}

func NewSweepController(executor *engine.Executor, logger *logrus.Entry, token string) *SweepController {
	return &SweepController{Executor: executor, Logger: logger, Token: token}
}

// Trigger runs one sweep synchronously and reports completion. The
// sweep never fails as a whole, so the response is always 200 once it
// returns.
func (sc *SweepController) Trigger(c *fiber.Ctx) error {
	if sc.Token != "" {
		provided := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(sc.Token)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid trigger token",
			})
		}
	}

	sc.Logger.Info("Manual sequence sweep triggered")
	sc.Executor.Run(c.UserContext())

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Sequences executed successfully",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
