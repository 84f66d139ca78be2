package bootstrap

import (
	"time"

	"ai-adoption-analyst-be/internal/config"
	"ai-adoption-analyst-be/internal/controller"
	"ai-adoption-analyst-be/internal/pkg/logger"
	"ai-adoption-analyst-be/internal/repository/memory"
	"ai-adoption-analyst-be/internal/service"
	"ai-adoption-analyst-be/pkg/llm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	ProfileController   controller.IProfileController

	// Exposed for graceful shutdown
	Logger logger.ILogger
}

// NewContainer wires the application. The LLM provider is injected so tests
// and the simulation CLI can substitute a scripted collaborator.
func NewContainer(cfg *config.Config, llmProvider llm.LLMProvider) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 3. Services
	callTimeout := time.Duration(cfg.Ai.CallTimeoutSeconds) * time.Second
	assistantService := service.NewAssistantService(llmProvider, sessionRepo, sysLogger, callTimeout)
	profileService := service.NewProfileService(sessionRepo, sysLogger)

	// 4. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		ProfileController:   controller.NewProfileController(profileService),
		Logger:              sysLogger,
	}
}
