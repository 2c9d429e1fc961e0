package controller

import (
	"errors"

	"github.com/benbeisheim/chess-rules-backend/internal/model"
	"github.com/benbeisheim/chess-rules-backend/internal/search"
	"github.com/benbeisheim/chess-rules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

var conflictErrors = []error{
	model.ErrWrongTurn,
	model.ErrPromotionPending,
	model.ErrNoPromotionPending,
}

var badRequestErrors = []error{
	model.ErrInvalidSource,
	model.ErrIllegalDestination,
	model.ErrInvalidPromotionChoice,
	model.ErrOutOfBounds,
	search.ErrNoLegalMoves,
	search.ErrInvalidDepth,
	service.ErrInvalidSetup,
}

func statusFor(err error) int {
	if errors.Is(err, service.ErrGameNotFound) {
		return fiber.StatusNotFound
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return fiber.StatusConflict
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return fiber.StatusBadRequest
		}
	}
	return fiber.StatusInternalServerError
}

func sendError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}
