package handler

import (
	"sync"
	"time"

	"docsimplify/internal/reveal"
	"docsimplify/internal/service"
	"docsimplify/internal/view"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// chatViews holds the view controllers of one chat
type chatViews struct {
	upload  *view.UploadView
	history *view.HistoryView
}

// Handler manages all bot interactions
type Handler struct {
	bot          *tele.Bot
	simplifier   service.Simplifier
	engine       *reveal.Engine
	history      view.HistorySource
	editInterval time.Duration
	logger       *zap.Logger

	// Per-chat views, created on first use
	views   map[int64]*chatViews
	viewMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	simplifier service.Simplifier,
	engine *reveal.Engine,
	history view.HistorySource,
	editInterval time.Duration,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:          bot,
		simplifier:   simplifier,
		engine:       engine,
		history:      history,
		editInterval: editInterval,
		logger:       logger,
		views:        make(map[int64]*chatViews),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/history", h.handleHistory)

	// Files
	h.bot.Handle(tele.OnDocument, h.handleDocument)
	h.bot.Handle(tele.OnPhoto, h.handlePhoto)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnHistory, h.handleHistory)
	h.bot.Handle(&btnDownload, h.handleDownload)
	h.bot.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// viewsFor returns the chat's views, creating them on first use
func (h *Handler) viewsFor(chatID int64) *chatViews {
	h.viewMux.RLock()
	v, exists := h.views[chatID]
	h.viewMux.RUnlock()
	if exists {
		return v
	}

	h.viewMux.Lock()
	defer h.viewMux.Unlock()

	if v, exists = h.views[chatID]; exists {
		return v
	}
	logger := h.logger.With(zap.Int64("chat_id", chatID))
	v = &chatViews{
		upload:  view.NewUploadView(h.simplifier, h.engine, logger),
		history: view.NewHistoryView(h.history, logger),
	}
	h.views[chatID] = v
	return v
}

// Close stops every chat's reveal and pending upload
func (h *Handler) Close() {
	h.viewMux.Lock()
	defer h.viewMux.Unlock()

	for chatID, v := range h.views {
		v.upload.Close()
		delete(h.views, chatID)
	}
}

// Inline keyboard buttons
var (
	btnHistory = tele.Btn{
		Unique: "history",
		Text:   "📚 History",
	}
	btnDownload = tele.Btn{
		Unique: "download",
		Text:   "⬇️ Download Simplified Text",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnHistory),
	)
	return menu
}

// resultMarkup is attached to a finished reveal
func resultMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnDownload),
		menu.Row(btnHistory),
	)
	return menu
}
