package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"academy-concierge/internal/domain"
)

const (
	// Upper bound on model/tool round-trips per request. A well-behaved
	// conversation needs one or two; the cap stops a model that keeps
	// requesting tools from looping forever.
	maxToolRounds = 8

	fallbackAnswer = "Lo siento, no pude procesar tu solicitud."
)

// ChatSession is one model conversation. SendMessage appends parts to
// the session and returns the model's next response.
type ChatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// ChatModel starts sessions seeded with the system prompt, the tool
// declarations, and the caller-supplied prior turns.
type ChatModel interface {
	StartChat(ctx context.Context, history []domain.ChatTurn) (ChatSession, error)
}

// ToolDispatcher executes a tool invocation requested by the model.
type ToolDispatcher interface {
	Dispatch(ctx context.Context, name string, args map[string]any) any
}

// ChatService drives the conversation between the end user, the model,
// and the tool dispatcher.
type ChatService struct {
	model ChatModel
	tools ToolDispatcher
}

type ChatInput struct {
	Message string
	History []domain.ChatTurn
}

type ChatOutput struct {
	Answer  string
	History []domain.ChatTurn
}

func NewChatService(model ChatModel, tools ToolDispatcher) (*ChatService, error) {
	if model == nil {
		return nil, errors.New("usecase: chat model must not be nil")
	}
	if tools == nil {
		return nil, errors.New("usecase: tool dispatcher must not be nil")
	}
	return &ChatService{model: model, tools: tools}, nil
}

// Chat sends the user's message into a fresh model session and resolves
// any tool calls the model requests before returning its final text.
// The returned history is the input history plus the new user and model
// turns; nothing is stored server-side.
func (s *ChatService) Chat(ctx context.Context, in ChatInput) (ChatOutput, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return ChatOutput{}, newError(ErrorInvalidInput, "empty_message", nil)
	}

	session, err := s.model.StartChat(ctx, in.History)
	if err != nil {
		return ChatOutput{}, newError(ErrorInternal, "model_init_error", err)
	}

	resp, err := session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return ChatOutput{}, newError(ErrorUpstream, "model_error", err)
	}

	for round := 0; round < maxToolRounds; round++ {
		calls := functionCalls(resp)
		if len(calls) == 0 {
			break
		}

		// Every call in the response is dispatched, in order, before
		// the next round-trip. Execution is strictly sequential.
		parts := make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			result := s.tools.Dispatch(ctx, call.Name, call.Args)
			parts = append(parts, genai.FunctionResponse{
				Name:     call.Name,
				Response: map[string]any{"result": result},
			})
		}

		resp, err = session.SendMessage(ctx, parts...)
		if err != nil {
			return ChatOutput{}, newError(ErrorUpstream, "model_error", err)
		}
	}

	answer := textAnswer(resp)

	history := make([]domain.ChatTurn, 0, len(in.History)+2)
	history = append(history, in.History...)
	history = append(history,
		domain.ChatTurn{Role: domain.RoleUser, Content: message},
		domain.ChatTurn{Role: domain.RoleModel, Content: answer},
	)

	return ChatOutput{Answer: answer, History: history}, nil
}

// functionCalls extracts the tool-call parts from a model response.
func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	var calls []genai.FunctionCall
	for _, part := range resp.Candidates[0].Content.Parts {
		if call, ok := part.(genai.FunctionCall); ok {
			calls = append(calls, call)
		}
	}
	return calls
}

// textAnswer concatenates the text parts of a model response in order,
// skipping non-text parts. An answer is never empty.
func textAnswer(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return fallbackAnswer
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return fallbackAnswer
	}
	return b.String()
}
