package service

import (
	"context"
	"strings"

	"github.com/eoralab/casechat/internal/backend"
	"github.com/eoralab/casechat/internal/config"
	"github.com/eoralab/casechat/internal/domain"
	"go.uber.org/zap"
)

// GatewayService validates incoming questions and forwards them to the
// upstream assistant backend. It holds no state of its own; sessions and
// answers live upstream.
type GatewayService struct {
	cfg     *config.Config
	backend *backend.Client
	logger  *zap.Logger
}

// NewGatewayService creates a new gateway service
func NewGatewayService(cfg *config.Config, client *backend.Client, logger *zap.Logger) *GatewayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GatewayService{
		cfg:     cfg,
		backend: client,
		logger:  logger,
	}
}

// Ask validates the question and forwards it upstream. fallbackSessionID is
// used when the request carries no session id (the original keys such
// conversations by client address).
func (s *GatewayService) Ask(ctx context.Context, req *domain.AskRequest, fallbackSessionID string) (*domain.AskResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, domain.ErrEmptyQuestion
	}
	if len([]rune(question)) > s.cfg.Chat.MaxQuestionLen {
		return nil, domain.ErrQuestionTooLong
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = fallbackSessionID
	}
	if sessionID == "" {
		sessionID = "default"
	}

	s.logger.Info("forwarding question",
		zap.String("session_id", sessionID),
		zap.Int("question_len", len(question)),
	)

	resp, err := s.backend.Ask(ctx, question, sessionID)
	if err != nil {
		return nil, err
	}

	resp.Question = question
	resp.SessionID = sessionID
	return resp, nil
}

// Stats reads knowledge base statistics from the backend.
func (s *GatewayService) Stats(ctx context.Context) (*domain.Stats, error) {
	return s.backend.Stats(ctx)
}

// Health reports backend liveness, degrading to unhealthy on any failure.
func (s *GatewayService) Health(ctx context.Context) *domain.Health {
	health, err := s.backend.Health(ctx)
	if err != nil {
		return &domain.Health{Status: "unhealthy", Error: err.Error()}
	}
	return health
}
