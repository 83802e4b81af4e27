package content

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/brightfold/lead-capture-api/pkg/logging"
)

type stubChatClient struct {
	response openai.ChatCompletionResponse
	err      error
	requests []openai.ChatCompletionRequest
}

func (s *stubChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return s.response, nil
}

func TestGenerateUsesFirstChoice(t *testing.T) {
	client := &stubChatClient{
		response: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "Thanks for reaching out, Jane!"}},
				{Message: openai.ChatCompletionMessage{Content: "second choice, must be ignored"}},
			},
		},
	}

	gen := NewOpenAIGenerator(client, "gpt-4o-mini", logging.Default())
	body, err := gen.Generate(context.Background(), ConfirmationInput{Name: "Jane", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if body != "Thanks for reaching out, Jane!" {
		t.Fatalf("expected first choice content, got %q", body)
	}
}

func TestGenerateSingleChoiceAtIndexZero(t *testing.T) {
	// A response with only one choice populated at index 0 must be used,
	// never skipped in favor of a non-existent later index.
	client := &stubChatClient{
		response: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "Only choice."}},
			},
		},
	}

	gen := NewOpenAIGenerator(client, "", logging.Default())
	body, err := gen.Generate(context.Background(), ConfirmationInput{Name: "Jane"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if body != "Only choice." {
		t.Fatalf("expected the single choice, got %q", body)
	}
}

func TestGenerateNoChoices(t *testing.T) {
	client := &stubChatClient{response: openai.ChatCompletionResponse{}}

	gen := NewOpenAIGenerator(client, "gpt-4o-mini", logging.Default())
	_, err := gen.Generate(context.Background(), ConfirmationInput{Name: "Jane"})
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
}

func TestGenerateBlankContent(t *testing.T) {
	client := &stubChatClient{
		response: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "   \n"}},
			},
		},
	}

	gen := NewOpenAIGenerator(client, "gpt-4o-mini", logging.Default())
	_, err := gen.Generate(context.Background(), ConfirmationInput{Name: "Jane"})
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
}

func TestGenerateTransportError(t *testing.T) {
	client := &stubChatClient{err: errors.New("dial tcp: connection refused")}

	gen := NewOpenAIGenerator(client, "gpt-4o-mini", logging.Default())
	_, err := gen.Generate(context.Background(), ConfirmationInput{Name: "Jane"})
	if err == nil || !strings.Contains(err.Error(), "completion failed") {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
}

func TestGeneratePromptIncludesLeadFields(t *testing.T) {
	client := &stubChatClient{
		response: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "ok"}},
			},
		},
	}

	gen := NewOpenAIGenerator(client, "gpt-4o-mini", logging.Default())
	_, err := gen.Generate(context.Background(), ConfirmationInput{
		Name:    "Jane",
		Company: "Acme Co",
		Message: "Need pricing for 50 seats",
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if len(client.requests) != 1 {
		t.Fatalf("expected exactly one completion request, got %d", len(client.requests))
	}
	prompt := client.requests[0].Messages[1].Content
	for _, want := range []string{"Jane", "Acme Co", "Need pricing for 50 seats"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestStaticGenerator(t *testing.T) {
	gen := &StaticGenerator{Body: "Thanks! We will be in touch."}
	body, err := gen.Generate(context.Background(), ConfirmationInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != "Thanks! We will be in touch." {
		t.Fatalf("unexpected body: %q", body)
	}

	empty := &StaticGenerator{}
	if _, err := empty.Generate(context.Background(), ConfirmationInput{}); !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent from empty static generator, got %v", err)
	}
}
