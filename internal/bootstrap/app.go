package bootstrap

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"documind-backend/internal/ai"
	"documind-backend/internal/analyses"
	"documind-backend/internal/config"
	"documind-backend/internal/llm"
	"documind-backend/internal/llm/groq"
	"documind-backend/internal/notify"
	"documind-backend/internal/server"
	"documind-backend/internal/shared/telemetry"
)

// App holds the wired application dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	Repo            analyses.Repo
	LLM             llm.Client
	Mailer          notify.Mailer
	AnalysesService *analyses.Service
	AnalysesHandler *analyses.Handler
	AIService       *ai.Service
	AIHandler       *ai.Handler
}

// Overrides lets callers substitute external collaborators, primarily for
// tests with a fake model client or mail transport.
type Overrides struct {
	LLM    llm.Client
	Mailer notify.Mailer
}

// Build wires the application from configuration.
func Build(cfg config.Config) (*App, error) {
	return BuildWith(cfg, Overrides{})
}

// BuildWith wires the application, applying any overrides.
func BuildWith(cfg config.Config, o Overrides) (*App, error) {
	repo, err := analyses.NewFileRepo(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("init upload dir: %w", err)
	}

	llmClient := o.LLM
	if llmClient == nil {
		llmClient, err = groq.NewClient(cfg.GroqAPIKey, cfg.GroqModel, cfg.GroqBaseURL)
		if err != nil {
			return nil, err
		}
	}

	mailer := o.Mailer
	if mailer == nil {
		if cfg.SMTPConfigured() {
			mailer = notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
		} else {
			telemetry.Warn("bootstrap.email.disabled", map[string]any{
				"reason": "SMTP settings incomplete",
			})
		}
	}

	svc := &analyses.Service{Repo: repo, LLM: llmClient, Mailer: mailer}
	handler := analyses.NewHandler(svc, cfg.UploadDir)
	aiSvc := &ai.Service{Repo: repo, LLM: llmClient, Model: cfg.GroqModel}
	aiHandler := ai.NewHandler(aiSvc)

	router := server.NewRouter(server.RouterDeps{
		Config:   cfg,
		Analyses: handler,
		AI:       aiHandler,
	})

	return &App{
		Config:          cfg,
		Router:          router,
		Repo:            repo,
		LLM:             llmClient,
		Mailer:          mailer,
		AnalysesService: svc,
		AnalysesHandler: handler,
		AIService:       aiSvc,
		AIHandler:       aiHandler,
	}, nil
}
