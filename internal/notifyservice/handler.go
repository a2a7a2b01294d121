package notifyservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
	"golang.org/x/exp/rand"
)

func NewNotifyService(mb common.MessageConsumer, host string, port int, username, password, sender, admin string, logger NotifyLogger) *NotifyService {
	ctx, cancel := context.WithCancel(context.Background())
	return &NotifyService{
		mb:     mb,
		m:      NewMailer(host, port, username, password, sender, NewTemplate()),
		admin:  admin,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// NotifyNewUsers consumes user.created events and emails the site admin a
// signup notice for each one.
func (s *NotifyService) NotifyNewUsers() {
	msgs, err := s.mb.Consume(common.UserCreatedKey, common.UserExchange, common.UserCreatedQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var event common.UserCreatedEvent

				err := json.Unmarshal(msg.Body, &event)
				if err != nil {
					s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
					continue
				}

				payload := struct {
					Username   string
					Name       string
					SignedUpAt string
				}{
					Username:   event.Username,
					Name:       event.Name,
					SignedUpAt: event.SignedUpAt.Format(time.RFC1123),
				}

				// exponential backoff with jitter
				const maxRetries = 5
				const baseDelay = 500 * time.Millisecond

				var attempt int
				for attempt = 0; attempt < maxRetries; attempt++ {
					err = s.m.send(s.admin, payload, "new_user_email.html")
					if err == nil {
						s.logger.Info("signup notice sent", slog.String("username", event.Username))
						msg.Ack(false)
						break
					}

					delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
					s.logger.Info("delaying signup notice", slog.String("username", event.Username), slog.Int("attempt", attempt), slog.Duration("delay", delay))
					time.Sleep(delay)
				}

				if attempt == maxRetries {
					s.logger.Error("could not send signup notice", slog.String("username", event.Username))
					msg.Ack(false)
				}

			case <-s.ctx.Done():
				s.logger.Info("stopping NotifyNewUsers due to context cancellation")
				return
			}
		}
	}()
}

func (s *NotifyService) Close() {
	s.cancel()
}
