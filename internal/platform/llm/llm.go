// Package llm wraps the inference clients used by the wizard steps: an Eino
// chat model for the text-only steps and the Gemini client directly for
// vision, which needs image parts.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	gemini "github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	"adwizard/internal/apperr"
)

type Config struct {
	Provider    string `json:"provider"`
	APIKey      string `json:"api_key"`
	Model       string `json:"model"`
	VisionModel string `json:"vision_model"`
}

type Service struct {
	config       Config
	chatModel    model.BaseChatModel
	geminiClient *genai.Client
}

// NewService initializes the provider clients once at process startup.
func NewService(config Config) (*Service, error) {
	s := &Service{config: config}

	switch strings.ToLower(config.Provider) {
	case "gemini":
		if err := s.initializeGemini(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported provider: %s. Supported: gemini", config.Provider)
	}
	return s, nil
}

func (s *Service) initializeGemini() error {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: s.config.APIKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	s.geminiClient = client

	chatModel, err := gemini.NewChatModel(context.Background(), &gemini.Config{
		Client: client,
		Model:  s.config.Model,
	})
	if err != nil {
		return fmt.Errorf("failed to create Gemini chat model: %w", err)
	}
	s.chatModel = chatModel
	return nil
}

// Generate runs a system+user chat turn and returns the raw response text.
// The caller is responsible for un-fencing and parsing.
func (s *Service) Generate(ctx context.Context, system, user string) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user),
	}

	response, err := s.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrUpstream, err)
	}
	return response.Content, nil
}

// AnalyzeImage sends a prompt plus one inline image to the vision model and
// returns the raw response text.
func (s *Service) AnalyzeImage(ctx context.Context, prompt string, imageData []byte, mimeType string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		{InlineData: &genai.Blob{Data: imageData, MIMEType: mimeType}},
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := s.geminiClient.Models.GenerateContent(ctx, s.config.VisionModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrUpstream, err)
	}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response from vision model", apperr.ErrUpstream)
	}
	return result.Text(), nil
}
