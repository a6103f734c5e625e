package oracle

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/smhong/meddebate/pkg/models"
)

// Request is a single invocation of the reasoning oracle.
type Request struct {
	// RoleInstruction is the system-level role the oracle should play.
	RoleInstruction string
	// Prompt is the user-level prompt text.
	Prompt string
	// Evidence holds medical images to attach ahead of the prompt.
	Evidence []models.ImageEvidence
	// EnableTools allows the oracle to issue web searches.
	EnableTools bool
}

// ToolCall records a side-tool invocation the oracle made while answering.
// The engine surfaces these for progress display and never acts on them.
type ToolCall struct {
	// Name is the tool name, e.g. "web_search".
	Name string
	// Input is the decoded tool input, passed through untouched.
	Input any
}

// Query returns the search query carried in the tool input, or "" when the
// input has none.
func (t ToolCall) Query() string {
	m, ok := t.Input.(map[string]any)
	if !ok {
		return ""
	}
	q, _ := m["query"].(string)
	return q
}

// Response is the oracle's answer to a single request.
type Response struct {
	// Text is the concatenated free-form output.
	Text string
	// ToolCalls lists side-tool invocations made during the answer.
	ToolCalls []ToolCall
}

// Oracle is the sole interface the deliberation engine depends on for
// reasoning. Implementations must be safe for concurrent use; the engine
// fans out calls within a stage.
type Oracle interface {
	Invoke(ctx context.Context, req Request) (Response, error)
}

// maxResponseTokens caps the length of a single oracle answer.
const maxResponseTokens = 4000

// AnthropicOracle implements Oracle on top of the Anthropic Messages API.
// Web search is requested as a server tool; the API executes it remotely and
// the invocations are surfaced back to the caller as metadata.
type AnthropicOracle struct {
	client       *Client
	searchActive bool
}

// NewAnthropicOracle creates an oracle backed by the given client.
// When enableSearch is false, EnableTools on requests is ignored.
func NewAnthropicOracle(client *Client, enableSearch bool) *AnthropicOracle {
	return &AnthropicOracle{client: client, searchActive: enableSearch}
}

// Invoke performs one Messages API round trip. If the model pauses mid-turn
// to run a server tool, the conversation is continued once to collect the
// final text.
func (o *AnthropicOracle) Invoke(ctx context.Context, req Request) (Response, error) {
	content := buildContent(req)

	params := anthropic.MessageNewParams{
		Model:     o.client.Model(),
		MaxTokens: maxResponseTokens,
		System: []anthropic.TextBlockParam{
			{Text: req.RoleInstruction},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(content...),
		},
	}
	if req.EnableTools && o.searchActive {
		params.Tools = []anthropic.ToolUnionParam{
			{
				OfWebSearchTool20250305: &anthropic.WebSearchTool20250305Param{
					MaxUses: anthropic.Int(3),
				},
			},
		}
	}

	msg, err := o.client.sdk().Messages.New(ctx, params)
	if err != nil {
		return Response{}, fmt.Errorf("messages api: %w", err)
	}
	o.client.Tracker().Add(msg.Usage.InputTokens, msg.Usage.OutputTokens)

	resp := collectResponse(msg)

	// Server tools pause the turn while results stream back; one continuation
	// is enough to let the model finish its answer.
	if msg.StopReason == anthropic.StopReasonPauseTurn {
		params.Messages = append(params.Messages, msg.ToParam())
		final, err := o.client.sdk().Messages.New(ctx, params)
		if err != nil {
			return Response{}, fmt.Errorf("continue after tool use: %w", err)
		}
		o.client.Tracker().Add(final.Usage.InputTokens, final.Usage.OutputTokens)

		cont := collectResponse(final)
		resp.Text += cont.Text
		resp.ToolCalls = append(resp.ToolCalls, cont.ToolCalls...)
	}

	return resp, nil
}

// buildContent assembles the user content: image blocks (with caption text
// blocks) first, then the prompt text, matching how evidence is presented to
// every debate voice.
func buildContent(req Request) []anthropic.ContentBlockParamUnion {
	var content []anthropic.ContentBlockParamUnion
	for _, img := range req.Evidence {
		content = append(content, anthropic.NewImageBlockBase64(img.MediaType, img.Data))
		if img.Caption != "" {
			content = append(content, anthropic.NewTextBlock("[image: "+img.Caption+"]"))
		}
	}
	content = append(content, anthropic.NewTextBlock(req.Prompt))
	return content
}

// collectResponse flattens a Messages API response into text plus tool-call
// metadata.
func collectResponse(msg *anthropic.Message) Response {
	var resp Response
	for _, block := range msg.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			resp.Text += variant.Text
		case anthropic.ServerToolUseBlock:
			resp.ToolCalls = append(resp.ToolCalls, ToolCall{
				Name:  string(variant.Name),
				Input: variant.Input,
			})
		}
	}
	return resp
}
