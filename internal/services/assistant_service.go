package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"tableside/internal/llm"
	"tableside/internal/tools"
	"tableside/internal/views"
	"tableside/pkg"
)

const systemPrompt = "You are a helpful restaurant assistant."

type AssistantService interface {
	Chat(ctx context.Context, traceID string, req views.AssistantRequest) (string, error)
}

// dispatchState models the two-round exchange explicitly. Round 2 is only
// entered after every requested tool has executed, and it never offers
// tools again.
type dispatchState int

const (
	stateAwaitingFirst dispatchState = iota
	stateExecutingTools
	stateAwaitingSecond
	stateDone
)

type AssistantServiceImpl struct {
	logger   *zap.Logger
	engine   llm.Client // nil means no engine configured: echo fallback
	registry *tools.Registry
	model    string
}

func NewAssistantService(logger *zap.Logger, engine llm.Client, registry *tools.Registry, model string) AssistantService {
	return &AssistantServiceImpl{
		logger:   logger,
		engine:   engine,
		registry: registry,
		model:    model,
	}
}

func (s *AssistantServiceImpl) Chat(ctx context.Context, traceID string, req views.AssistantRequest) (string, error) {
	if s.engine == nil {
		return fmt.Sprintf("I heard: %q.", req.Message), nil
	}

	transcript := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: req.Message},
	}

	var (
		state     = stateAwaitingFirst
		toolCalls []llm.ToolCall
		reply     string
	)

	for state != stateDone {
		switch state {
		case stateAwaitingFirst:
			resp, err := s.engine.ChatCompletion(ctx, llm.ChatRequest{
				Model:      s.model,
				Messages:   transcript,
				Tools:      s.toolCatalog(),
				ToolChoice: "auto",
			})
			if err != nil {
				return "", pkg.NewAppError(pkg.ErrUpstreamCode, "Assistant error", err)
			}
			msg := resp.Msg()
			if len(msg.ToolCalls) == 0 {
				reply = msg.Content
				state = stateDone
				break
			}
			transcript = append(transcript, msg)
			toolCalls = msg.ToolCalls
			state = stateExecutingTools

		case stateExecutingTools:
			for _, call := range toolCalls {
				transcript = append(transcript, s.executeToolCall(ctx, traceID, call, req.TableID))
			}
			state = stateAwaitingSecond

		case stateAwaitingSecond:
			resp, err := s.engine.ChatCompletion(ctx, llm.ChatRequest{
				Model:    s.model,
				Messages: transcript,
			})
			if err != nil {
				return "", pkg.NewAppError(pkg.ErrUpstreamCode, "Assistant error", err)
			}
			reply = resp.Msg().Content
			state = stateDone
		}
	}
	return reply, nil
}

// executeToolCall runs one requested call and folds any failure into the
// tool result instead of aborting: the engine reacts to errors in natural
// language, and one bad call never blocks the others or round 2.
func (s *AssistantServiceImpl) executeToolCall(ctx context.Context, traceID string, call llm.ToolCall, tableID *int64) llm.Message {
	name := call.Function.Name
	args := tools.Args{}
	if raw := call.Function.Arguments; raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			s.logger.Warn("malformed tool arguments",
				zap.String(pkg.TraceId, traceID),
				zap.String("tool", name),
				zap.Error(err),
			)
			return toolResult(call, map[string]any{"error": "malformed arguments: " + err.Error()})
		}
	}

	// Default-fill policy: if the model forgot which table, use the
	// session's.
	if name == "create_orders" && tableID != nil {
		if v, present := args["table_id"]; !present || v == nil {
			args["table_id"] = *tableID
		}
	}

	result, err := s.registry.Call(ctx, name, args)
	if err != nil {
		s.logger.Warn("tool call failed",
			zap.String(pkg.TraceId, traceID),
			zap.String("tool", name),
			zap.Error(err),
		)
		return toolResult(call, map[string]any{"error": err.Error()})
	}
	s.logger.Info("tool call executed",
		zap.String(pkg.TraceId, traceID),
		zap.String("tool", name),
	)
	return toolResult(call, result)
}

func toolResult(call llm.ToolCall, result any) llm.Message {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		content = []byte(`{"error": "unencodable tool result"}`)
	}
	return llm.Message{
		Role:       "tool",
		ToolCallID: call.ID,
		Name:       call.Function.Name,
		Content:    string(content),
	}
}

func (s *AssistantServiceImpl) toolCatalog() []llm.ToolDef {
	list := s.registry.List()
	defs := make([]llm.ToolDef, 0, len(list))
	for _, t := range list {
		defs = append(defs, llm.ToolDef{
			Type: "function",
			Function: llm.FunctionDef{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return defs
}
