// Package content produces the body of the lead confirmation email. The
// OpenAI-backed generator personalizes the copy from the submitted form
// fields; callers are expected to fall back to static copy when generation
// fails.
package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/brightfold/lead-capture-api/pkg/logging"
)

const systemPrompt = "You write short, warm confirmation emails for people who just submitted a contact form. Thank them by name, acknowledge their message, and say the team will reach out within one business day. Plain text only, under 120 words, no subject line, no signature placeholders."

// ErrNoContent is returned when the model responds without usable text.
var ErrNoContent = errors.New("content: completion returned no content")

var tracer = otel.Tracer("brightfold.internal.content")

// ConfirmationInput carries the lead fields the generator may reference.
// Fields may be empty; the generator must tolerate that.
type ConfirmationInput struct {
	Name    string
	Email   string
	Company string
	Message string
}

// Generator produces a confirmation email body for a captured lead.
type Generator interface {
	Generate(ctx context.Context, in ConfirmationInput) (string, error)
}

type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIGenerator asks an OpenAI chat model for the email body.
type OpenAIGenerator struct {
	client chatClient
	model  string
	logger *logging.Logger
}

// NewOpenAIGenerator returns an OpenAI-backed Generator.
func NewOpenAIGenerator(client chatClient, model string, logger *logging.Logger) *OpenAIGenerator {
	if client == nil {
		panic("content: chat client cannot be nil")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &OpenAIGenerator{
		client: client,
		model:  model,
		logger: logger,
	}
}

// Generate requests one completion and returns the first choice's text.
// A response with no choices, or with blank content, yields ErrNoContent
// rather than an out-of-range access.
func (g *OpenAIGenerator) Generate(ctx context.Context, in ConfirmationInput) (string, error) {
	ctx, span := tracer.Start(ctx, "content.generate")
	defer span.End()

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: formatLeadPrompt(in)},
		},
	}

	callCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(callCtx, req)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("content: openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		span.RecordError(ErrNoContent)
		return "", ErrNoContent
	}
	if span.IsRecording() {
		span.SetAttributes(attribute.Int("brightfold.openai.choices", len(resp.Choices)))
	}

	body := strings.TrimSpace(resp.Choices[0].Message.Content)
	if body == "" {
		return "", ErrNoContent
	}
	return body, nil
}

func formatLeadPrompt(in ConfirmationInput) string {
	builder := strings.Builder{}
	builder.WriteString("New form submission:\n")
	builder.WriteString(fmt.Sprintf("Name: %s\n", in.Name))
	if in.Company != "" {
		builder.WriteString(fmt.Sprintf("Company: %s\n", in.Company))
	}
	if in.Message != "" {
		builder.WriteString(fmt.Sprintf("Message: %s\n", in.Message))
	}
	builder.WriteString("Write the confirmation email body.")
	return builder.String()
}

// StaticGenerator returns fixed copy. Used when no OpenAI key is configured.
type StaticGenerator struct {
	Body string
}

// Generate returns the configured body, or ErrNoContent when it is blank so
// the caller's fallback copy applies.
func (g *StaticGenerator) Generate(ctx context.Context, in ConfirmationInput) (string, error) {
	if strings.TrimSpace(g.Body) == "" {
		return "", ErrNoContent
	}
	return g.Body, nil
}
