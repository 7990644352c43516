package handler

import (
	"strings"

	"docsimplify/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const mainMenuText = "🏠 DocSimplify\n\nSend me a PDF or an image and I will simplify it."

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	h.logger.Info("User started bot",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("username", c.Sender().Username),
	)

	text := mainMenuText + "\nAccepted: " + strings.Join(domain.AcceptedExtensions, " ")

	if c.Callback() != nil {
		if err := c.Edit(text, mainMenuMarkup()); err != nil {
			if handleErr := h.handleEditError(err, c); handleErr == nil {
				return nil
			}
			return c.Send(text, mainMenuMarkup())
		}
		return c.Respond()
	}
	return c.Send(text, mainMenuMarkup())
}
