package middleware

import (
	"strconv"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// BotLogging logs every update handled by the bot
func BotLogging(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()
			err := next(c)

			fields := []zap.Field{
				zap.Int("update_id", c.Update().ID),
				zap.Duration("duration", time.Since(start)),
			}
			if c.Sender() != nil {
				fields = append(fields, zap.Int64("user_id", c.Sender().ID))
			}
			if c.Callback() != nil {
				fields = append(fields, zap.String("callback", c.Callback().Unique))
			}

			if err != nil {
				logger.Error("Bot update failed", append(fields, zap.Error(err))...)
				return err
			}
			logger.Debug("Bot update handled", fields...)
			return nil
		}
	}
}

// BotRateLimit drops updates from chats that exceed the limiter
func BotRateLimit(limiter *RateLimiter, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			chat := c.Chat()
			if chat == nil {
				return next(c)
			}

			if !limiter.Allow("chat:" + strconv.FormatInt(chat.ID, 10)) {
				logger.Warn("Bot rate limit exceeded", zap.Int64("chat_id", chat.ID))
				return nil
			}
			return next(c)
		}
	}
}
