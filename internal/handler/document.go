package handler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"

	"docsimplify/internal/domain"
	"docsimplify/internal/view"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v3"
)

// handleDocument handles files sent as documents
func (h *Handler) handleDocument(c tele.Context) error {
	doc := c.Message().Document
	if doc == nil {
		return nil
	}

	name := doc.FileName
	if name == "" {
		name = "document"
	}
	return h.receiveFile(c, &doc.File, name, doc.MIME)
}

// handlePhoto handles compressed photos
func (h *Handler) handlePhoto(c tele.Context) error {
	photo := c.Message().Photo
	if photo == nil {
		return nil
	}
	return h.receiveFile(c, &photo.File, "photo_"+photo.UniqueID+".jpg", "image/jpeg")
}

func (h *Handler) receiveFile(c tele.Context, file *tele.File, name, mime string) error {
	chatID := c.Chat().ID

	upload, err := h.fetchFile(file, name, mime)
	if err != nil {
		h.logger.Error("Failed to download file",
			zap.Int64("chat_id", chatID),
			zap.String("file_name", name),
			zap.Error(err),
		)
		return c.Send("❌ Could not download the file. Please try again.")
	}

	return h.processUpload(c, upload)
}

func (h *Handler) fetchFile(file *tele.File, name, mime string) (*domain.FileUpload, error) {
	rc, err := h.bot.File(file)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return &domain.FileUpload{Name: name, ContentType: mime, Content: content}, nil
}

// processUpload runs the upload for the chat and mirrors the reveal into a
// single message that is edited in place.
func (h *Handler) processUpload(c tele.Context, upload *domain.FileUpload) error {
	chatID := c.Chat().ID
	uv := h.viewsFor(chatID).upload

	msg, err := h.bot.Send(c.Chat(),
		fmt.Sprintf("⏳ Processing <b>%s</b>…", html.EscapeString(upload.Name)),
		tele.ModeHTML,
	)
	if err != nil {
		return err
	}

	if err := uv.Upload(uv.Context(), upload); err != nil {
		if errors.Is(err, view.ErrClosed) {
			return nil
		}
		_, editErr := h.bot.Edit(msg,
			fmt.Sprintf("❌ Failed to process <b>%s</b>.", html.EscapeString(upload.Name)),
			tele.ModeHTML,
		)
		return editErr
	}

	limiter := rate.NewLimiter(rate.Every(h.editInterval), 1)
	err = relayReveal(uv.Context(), uv, upload.Name, limiter, func(text string, final bool) error {
		opts := &tele.SendOptions{ParseMode: tele.ModeHTML}
		if final {
			opts.ReplyMarkup = resultMarkup()
		}

		_, err := h.bot.Edit(msg, formatReveal(text), opts)
		if err == nil || isNotModified(err) {
			return nil
		}
		if !final {
			h.logger.Warn("Failed to edit reveal message",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			return nil
		}
		return err
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, view.ErrClosed) {
		return nil
	}
	return err
}

// relayReveal mirrors the view's reveal of fileName into edit calls paced by
// limiter. The finished text is always delivered with final set. It returns
// once the reveal finishes, a newer upload takes over, or ctx ends.
func relayReveal(
	ctx context.Context,
	uv *view.UploadView,
	fileName string,
	limiter *rate.Limiter,
	edit func(text string, final bool) error,
) error {
	events, unsubscribe := uv.Subscribe()
	defer unsubscribe()

	shown := ""
	for {
		st := uv.State()
		if st.Loading || st.FileName != fileName || st.TranslatedText == "" {
			return nil
		}
		if st.TypedOutput == st.TranslatedText {
			return edit(st.TypedOutput, true)
		}
		if st.TypedOutput != "" && st.TypedOutput != shown {
			if err := edit(st.TypedOutput, false); err != nil {
				return err
			}
			shown = st.TypedOutput
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-events:
			if !ok {
				return view.ErrClosed
			}
		}

		if err := limiter.Wait(ctx); err != nil {
			return err
		}
	}
}
