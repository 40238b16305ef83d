package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"academy-concierge/internal/domain"
	"academy-concierge/internal/integrations/paramstore"
)

const defaultModel = "gemini-2.0-flash-exp"

// Config carries the non-secret model settings. The API key comes from
// SSM Parameter Store.
type Config struct {
	Model             string
	SystemInstruction string
	Tools             []*genai.FunctionDeclaration
}

// Client wraps the Gemini SDK for function-calling chat sessions.
type Client struct {
	client *genai.Client
	model  string
	system string
	tools  []*genai.Tool
}

// NewClient fetches the API key from Parameter Store under paramPrefix
// and builds a Gemini client. Construction happens once at cold start.
func NewClient(ctx context.Context, ps paramstore.Getter, paramPrefix string, cfg Config) (*Client, error) {
	if ps == nil {
		return nil, errors.New("gemini: paramstore getter must not be nil")
	}
	paramPrefix = strings.TrimRight(strings.TrimSpace(paramPrefix), "/")
	if paramPrefix == "" {
		return nil, errors.New("gemini: parameter prefix must not be empty")
	}

	apiKey, err := ps.GetParameter(ctx, paramPrefix+"/gemini-api-key")
	if err != nil {
		return nil, fmt.Errorf("gemini: fetch api key: %w", err)
	}
	if apiKey == "" {
		return nil, errors.New("gemini: api key is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	c := &Client{
		client: client,
		model:  model,
		system: cfg.SystemInstruction,
	}
	if len(cfg.Tools) > 0 {
		c.tools = []*genai.Tool{{FunctionDeclarations: cfg.Tools}}
	}
	return c, nil
}

// Session is one model conversation.
type Session struct {
	cs *genai.ChatSession
}

// SendMessage appends parts to the session and returns the model's
// next response.
func (s *Session) SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	return s.cs.SendMessage(ctx, parts...)
}

// StartChat opens a session seeded with the system instruction, the
// tool declarations, and the supplied prior turns. Roles other than
// "model" are treated as user turns so an arbitrary caller-supplied
// history cannot break the session.
func (c *Client) StartChat(_ context.Context, history []domain.ChatTurn) (*Session, error) {
	gm := c.client.GenerativeModel(c.model)
	gm.Tools = c.tools
	if c.system != "" {
		gm.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(c.system)}}
	}

	cs := gm.StartChat()
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		role := domain.RoleUser
		if turn.Role == domain.RoleModel {
			role = domain.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}
	cs.History = contents

	return &Session{cs: cs}, nil
}

// Close releases the underlying SDK client.
func (c *Client) Close() error {
	return c.client.Close()
}
