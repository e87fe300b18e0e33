package genai

import (
	"context"
	"fmt"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"vidquiz-service/internal/domain"
)

// Config carries the generative backend settings.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client talks to the generative backend. Video-length media takes a while
// to process, so calls run under a multi-minute ceiling.
type Client struct {
	api     *openai.Client
	apiKey  string
	model   string
	timeout time.Duration
}

const (
	defaultModel   = openai.GPT4o
	defaultTimeout = 4 * time.Minute
)

func New(cfg Config) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		api:     openai.NewClient(cfg.APIKey),
		apiKey:  cfg.APIKey,
		model:   model,
		timeout: timeout,
	}
}

// GenerateQuiz prompts the backend with the source material and returns the
// parsed, validated quiz document.
func (c *Client) GenerateQuiz(ctx context.Context, material domain.SourceMaterial) (domain.QuizDocument, error) {
	if c.apiKey == "" {
		return nil, domain.ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(material)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", domain.ErrUpstreamFailure)
	}
	log.Printf("quiz completion received in %v", time.Since(start))

	return ParseQuizDocument(resp.Choices[0].Message.Content)
}

// Transcribe runs the audio file at path through the backend's
// speech-to-text model and returns the transcript text.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
	})
	if err != nil {
		return "", fmt.Errorf("%w: transcription: %v", domain.ErrUpstreamFailure, err)
	}
	return resp.Text, nil
}
