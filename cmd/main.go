package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"academy-concierge/handler"
	"academy-concierge/internal/config"
	"academy-concierge/internal/domain"
	"academy-concierge/internal/integrations/agentcrm"
	"academy-concierge/internal/integrations/gemini"
	"academy-concierge/internal/integrations/paramstore"
	"academy-concierge/internal/integrations/woocommerce"
	"academy-concierge/internal/usecase"
)

// chatModel adapts the Gemini client to the usecase interface, which
// returns the session as an interface type.
type chatModel struct {
	client *gemini.Client
}

func (m chatModel) StartChat(ctx context.Context, history []domain.ChatTurn) (usecase.ChatSession, error) {
	return m.client.StartChat(ctx, history)
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	ssmClient, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
	if err != nil {
		slog.Error("failed to create SSM client", "err", err)
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second}

	store, err := woocommerce.NewClient(ssmClient, cfg.ParamPrefix,
		woocommerce.WithBaseURL(cfg.StoreBaseURL),
		woocommerce.WithHTTPClient(httpClient),
	)
	if err != nil {
		slog.Error("failed to create store client", "err", err)
		os.Exit(1)
	}

	crm, err := agentcrm.NewClient(ssmClient, cfg.ParamPrefix, cfg.CRMLocationID,
		agentcrm.WithBaseURL(cfg.CRMBaseURL),
		agentcrm.WithAPIVersion(cfg.CRMAPIVersion),
		agentcrm.WithHTTPClient(httpClient),
	)
	if err != nil {
		slog.Error("failed to create CRM client", "err", err)
		os.Exit(1)
	}

	model, err := gemini.NewClient(ctx, ssmClient, cfg.ParamPrefix, gemini.Config{
		Model:             cfg.GeminiModel,
		SystemInstruction: usecase.SystemPrompt(),
		Tools:             usecase.ToolDeclarations(),
	})
	if err != nil {
		slog.Error("failed to create Gemini client", "err", err)
		os.Exit(1)
	}

	dispatcher, err := usecase.NewDispatcher(store, crm)
	if err != nil {
		slog.Error("failed to create tool dispatcher", "err", err)
		os.Exit(1)
	}

	chatService, err := usecase.NewChatService(chatModel{client: model}, dispatcher)
	if err != nil {
		slog.Error("failed to create chat service", "err", err)
		os.Exit(1)
	}

	catalogService, err := usecase.NewCatalogService(store)
	if err != nil {
		slog.Error("failed to create catalog service", "err", err)
		os.Exit(1)
	}

	academyService, err := usecase.NewAcademyService(crm)
	if err != nil {
		slog.Error("failed to create academy service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(chatService, catalogService, academyService)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
