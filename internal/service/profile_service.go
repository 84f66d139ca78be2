package service

import (
	"context"

	"ai-adoption-analyst-be/internal/dto"
	"ai-adoption-analyst-be/internal/pkg/logger"
	"ai-adoption-analyst-be/internal/repository/memory"
	"ai-adoption-analyst-be/pkg/persona"
	"ai-adoption-analyst-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IProfileService interface {
	Derive(ctx context.Context, request *dto.DeriveProfileRequest) (*dto.DeriveProfileResponse, error)
	GetSession(ctx context.Context, sessionID string) (*dto.SessionProfileResponse, error)
}

type profileService struct {
	sessionRepo *memory.SessionRepository
	logger      logger.ILogger
}

func NewProfileService(sessionRepo *memory.SessionRepository, log logger.ILogger) IProfileService {
	return &profileService{
		sessionRepo: sessionRepo,
		logger:      log,
	}
}

// Derive computes the persona from onboarding answers and stores it under the
// session id. Re-onboarding with the same id overwrites the record wholesale,
// including accumulated coverage.
func (s *profileService) Derive(ctx context.Context, request *dto.DeriveProfileRequest) (*dto.DeriveProfileResponse, error) {
	p := persona.Derive(persona.OnboardingAnswers{
		ChartLiteracy:    request.ChartLiteracy,
		CalcComfort:      request.CalcComfort,
		LikertAnswers:    request.LikertAnswers,
		ReasoningCorrect: request.ReasoningCorrect,
		AuthorityLevel:   request.AuthorityLevel,
		SpanBucket:       request.SpanBucket,
	})

	sessionID := request.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	s.sessionRepo.Save(&store.Session{
		ID:      sessionID,
		Persona: &p,
	})

	s.logger.Info("profile", "persona derived", map[string]interface{}{
		"session_id": sessionID,
		"numeracy":   p.NumeracyScore,
		"span":       p.SpanCategory,
	})

	return &dto.DeriveProfileResponse{
		SessionID: sessionID,
		Persona:   p,
	}, nil
}

// GetSession returns the stored persona. Lookup is the one surface where
// absence is a real, client-visible condition.
func (s *profileService) GetSession(ctx context.Context, sessionID string) (*dto.SessionProfileResponse, error) {
	sess, found := s.sessionRepo.Get(sessionID)
	if !found || sess.Persona == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found")
	}
	return &dto.SessionProfileResponse{
		SessionID: sess.ID,
		Persona:   *sess.Persona,
	}, nil
}
