package service

import (
	"context"
	"time"

	"ai-adoption-analyst-be/internal/dto"
	"ai-adoption-analyst-be/internal/pkg/logger"
	"ai-adoption-analyst-be/internal/repository/memory"
	"ai-adoption-analyst-be/pkg/coach"
	"ai-adoption-analyst-be/pkg/coverage"
	"ai-adoption-analyst-be/pkg/evidence"
	"ai-adoption-analyst-be/pkg/facts"
	"ai-adoption-analyst-be/pkg/llm"
	"ai-adoption-analyst-be/pkg/persona"
	"ai-adoption-analyst-be/pkg/prompt"
	"ai-adoption-analyst-be/pkg/response"
	"ai-adoption-analyst-be/pkg/store"

	"github.com/google/uuid"
)

// IAssistantService runs the per-turn pipeline. Methods never fail: every
// path terminates in either a validated result or its deterministic fallback,
// so callers always get a payload.
type IAssistantService interface {
	Answer(ctx context.Context, request *dto.ChatRequest) *dto.ChatResponse
	SelectEvidence(ctx context.Context, request *dto.EvidenceSelectionRequest) *dto.EvidenceSelectionResponse
	SynthesizeFacts(ctx context.Context, request *dto.FactSynthesisRequest) *dto.FactSynthesisResponse
	CoachQuestion(ctx context.Context, request *dto.CoachRequest) *dto.CoachResponse
	Catalog() *dto.CatalogResponse
}

// Transcript window supplied to any prompt-building step, to bound prompt size
const maxPromptTurns = 6

type assistantService struct {
	llmProvider llm.LLMProvider
	sessionRepo *memory.SessionRepository
	logger      logger.ILogger
	callTimeout time.Duration

	// Domain components
	selector    *evidence.Selector
	synthesizer *facts.Synthesizer
	assembler   *prompt.Assembler
	coach       *coach.Coach
}

// NewAssistantService creates the assistant service with all domain components
func NewAssistantService(
	llmProvider llm.LLMProvider,
	sessionRepo *memory.SessionRepository,
	log logger.ILogger,
	callTimeout time.Duration,
) IAssistantService {
	return &assistantService{
		llmProvider: llmProvider,
		sessionRepo: sessionRepo,
		logger:      log,
		callTimeout: callTimeout,

		selector:    evidence.NewSelector(llmProvider, log),
		synthesizer: facts.NewSynthesizer(llmProvider, log),
		assembler:   prompt.NewAssembler(),
		coach:       coach.NewCoach(llmProvider, log),
	}
}

// Answer performs the main answer call: assemble the system prompt for the
// requested mode, send it with the recent transcript, validate the output.
func (s *assistantService) Answer(ctx context.Context, request *dto.ChatRequest) *dto.ChatResponse {
	turnID := ensureTurnID(request.TurnID)
	p := s.resolvePersona(dto.PersonaDTO{
		Numeracy:     request.Numeracy,
		SpanCategory: request.SpanCategory,
	}, request.SessionID)

	catalog := catalogOrDefault(request.CatalogSnapshot)
	contextLines := buildContextLines(request.AttachedIDs, catalog)

	factLines := make([]string, 0, len(request.Facts))
	for _, f := range request.Facts {
		if f.Line != "" {
			factLines = append(factLines, f.Line)
		}
	}

	mode := prompt.ModeControl
	if request.Mode == prompt.ModeProto {
		mode = prompt.ModeProto
	}

	flags := coverage.Flags{}
	if request.Coverage != nil {
		flags = *request.Coverage
	}

	system := s.assembler.Assemble(prompt.Input{
		Mode:         mode,
		Persona:      p,
		Coverage:     flags,
		FactLines:    factLines,
		WindowLabel:  request.WindowLabel,
		ContextLines: contextLines,
	})

	history := make([]llm.Message, 0, maxPromptTurns+1)
	history = append(history, llm.Message{Role: llm.RoleSystem, Content: system})
	for _, m := range lastTurns(request.Messages, maxPromptTurns) {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	raw, err := s.llmProvider.Chat(callCtx, history, llm.WithTemperature(0))
	if err != nil {
		s.logger.Warn("assistant", "answer call failed, serving fallback", map[string]interface{}{
			"turn_id": turnID,
			"mode":    mode,
			"error":   err.Error(),
		})
		return &dto.ChatResponse{Text: response.FallbackAnswer, TurnID: turnID}
	}

	return &dto.ChatResponse{Text: response.Text(raw), TurnID: turnID}
}

// SelectEvidence classifies the turn and picks supporting cards. When a
// session id is supplied, the session record accumulates the authoritative
// and lexical coverage signals monotonically.
func (s *assistantService) SelectEvidence(ctx context.Context, request *dto.EvidenceSelectionRequest) *dto.EvidenceSelectionResponse {
	turnID := ensureTurnID(request.TurnID)
	p := s.resolvePersona(request.Persona, request.SessionID)
	catalog := catalogOrDefault(request.CatalogSnapshot)

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	selection := s.selector.Select(callCtx, request.Focus, request.Transcript, p, catalog)

	res := &dto.EvidenceSelectionResponse{
		IDs:        selection.IDs,
		Rationales: selection.Rationales,
		Coverage:   selection.Coverage,
		TurnID:     turnID,
	}

	if request.SessionID != "" {
		lexical := coverage.Tag(request.Focus + "\n" + request.Transcript)
		sess, found := s.sessionRepo.Get(request.SessionID)
		if !found {
			sess = &store.Session{ID: request.SessionID}
		}
		sess.Coverage = coverage.Merge(sess.Coverage, selection.Coverage, lexical)
		sess.LastQuery = request.Focus
		s.sessionRepo.Save(sess)

		accumulated := sess.Coverage
		res.SessionCoverage = &accumulated
	}

	return res
}

// SynthesizeFacts produces the per-turn fact batch. An empty resolvable
// selection short-circuits without an external call.
func (s *assistantService) SynthesizeFacts(ctx context.Context, request *dto.FactSynthesisRequest) *dto.FactSynthesisResponse {
	turnID := ensureTurnID(request.TurnID)
	p := s.resolvePersona(request.Persona, "")
	catalog := catalogOrDefault(request.CatalogSnapshot)

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	batch := s.synthesizer.Synthesize(callCtx, request.Focus, request.Transcript, p, request.SelectedIDs, catalog)

	return &dto.FactSynthesisResponse{
		Window: batch.Window,
		Facts:  batch.Facts,
		TurnID: turnID,
	}
}

// CoachQuestion runs the on-demand coaching path, independent of the main
// answer flow.
func (s *assistantService) CoachQuestion(ctx context.Context, request *dto.CoachRequest) *dto.CoachResponse {
	turnID := ensureTurnID(request.TurnID)
	p := s.resolvePersona(request.Persona, "")

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	feedback := s.coach.Coach(callCtx, request.OriginalQuestion, p, request.Transcript)

	return &dto.CoachResponse{
		Feedback: feedback.Bullets,
		Rewrite:  feedback.Rewrite,
		CCTags:   feedback.Tags,
		TurnID:   turnID,
	}
}

func (s *assistantService) Catalog() *dto.CatalogResponse {
	return &dto.CatalogResponse{Cards: evidence.Catalog()}
}

// resolvePersona prefers inline persona fields; unset fields default from the
// stored session persona when one exists, then normalize.
func (s *assistantService) resolvePersona(p dto.PersonaDTO, sessionID string) persona.Persona {
	out := persona.Persona{
		NumeracyScore:  p.Numeracy,
		SpanCategory:   p.SpanCategory,
		AuthorityLevel: p.AuthorityLevel,
	}
	if sessionID != "" {
		if sess, found := s.sessionRepo.Get(sessionID); found && sess.Persona != nil {
			if out.NumeracyScore == 0 {
				out.NumeracyScore = sess.Persona.NumeracyScore
			}
			if out.SpanCategory == "" {
				out.SpanCategory = sess.Persona.SpanCategory
			}
			if out.AuthorityLevel == "" {
				out.AuthorityLevel = sess.Persona.AuthorityLevel
			}
		}
	}
	return persona.Normalize(out)
}

func catalogOrDefault(snapshot []evidence.Card) []evidence.Card {
	if len(snapshot) == 0 {
		return evidence.Catalog()
	}
	return snapshot
}

func buildContextLines(attachedIDs []string, catalog []evidence.Card) []string {
	lines := make([]string, 0, len(attachedIDs))
	for _, id := range attachedIDs {
		if c, ok := evidence.FindCard(catalog, id); ok {
			lines = append(lines, c.Source+": "+c.Title+" — "+c.Blurb)
		}
	}
	return lines
}

func lastTurns(messages []dto.ChatMessageDTO, n int) []dto.ChatMessageDTO {
	if len(messages) <= n {
		return messages
	}
	return messages[len(messages)-n:]
}

func ensureTurnID(turnID string) string {
	if turnID != "" {
		return turnID
	}
	return uuid.New().String()
}
