package handler

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"docsimplify/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const historyTimeout = 10 * time.Second

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context) error {
	if err == nil {
		return nil
	}

	if isNotModified(err) {
		h.logger.Debug("Message already up to date, acknowledging",
			zap.Int64("user_id", c.Sender().ID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", c.Sender().ID),
		zap.String("callback_id", c.Callback().ID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles callback queries not matched by a button endpoint
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		return nil
	}

	data := cleanCallbackData(callback.Data)
	key := callback.Unique
	if key == "" {
		key = data
	}

	h.logger.Debug("Processing callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	switch key {
	case btnHistory.Unique:
		return h.handleHistory(c)
	case btnDownload.Unique:
		return h.handleDownload(c)
	case btnMainMenu.Unique:
		return h.handleStart(c)
	}

	h.logger.Warn("Unhandled callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleDownload sends the final simplified text as simplified.txt
func (h *Handler) handleDownload(c tele.Context) error {
	artifact, err := h.viewsFor(c.Chat().ID).upload.Download()
	if err != nil {
		if errors.Is(err, domain.ErrEmptyText) {
			return c.Respond(&tele.CallbackResponse{
				Text:      "Nothing to download yet",
				ShowAlert: true,
			})
		}
		h.logger.Error("Failed to build download", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Download failed"})
	}

	if err := c.Send(artifact.Document()); err != nil {
		h.logger.Error("Failed to send download",
			zap.Int64("chat_id", c.Chat().ID),
			zap.Int("size", artifact.Size()),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: "Download failed"})
	}
	return c.Respond()
}

// handleHistory fetches the history once and shows it
func (h *Handler) handleHistory(c tele.Context) error {
	hv := h.viewsFor(c.Chat().ID).history

	ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
	defer cancel()
	_ = hv.Activate(ctx)

	text := formatHistory(hv.Snapshot())
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnHistory),
		markup.Row(btnMainMenu),
	)

	if c.Callback() != nil {
		if err := c.Edit(text, markup, tele.ModeHTML); err != nil {
			if handleErr := h.handleEditError(err, c); handleErr == nil {
				return nil
			}
			return c.Send(text, markup, tele.ModeHTML)
		}
		return c.Respond()
	}
	return c.Send(text, markup, tele.ModeHTML)
}
