package notification

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/varoOP/animedexdb/internal/domain"
)

// Service reports export runs. Without a webhook it only logs that nothing was sent.
type Service struct {
	log     zerolog.Logger
	discord *DiscordService
}

func NewService(log zerolog.Logger, webhookURL string) domain.NotificationService {
	s := &Service{log: log.With().Str("module", "notification").Logger()}
	if webhookURL != "" {
		s.discord = NewDiscordService(log, webhookURL)
	}
	return s
}

func (s *Service) SendSuccess(ctx context.Context, stats domain.Statistics) error {
	if s.discord == nil {
		s.log.Debug().Int("collection", stats.TotalAnime).Msg("No webhook configured, skipping export notification")
		return nil
	}
	return s.discord.SendSuccess(ctx, stats)
}

func (s *Service) SendError(ctx context.Context, err error) error {
	if s.discord == nil {
		s.log.Debug().Err(err).Msg("No webhook configured, skipping failure notification")
		return nil
	}
	return s.discord.SendError(ctx, err)
}
