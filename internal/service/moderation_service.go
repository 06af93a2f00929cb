package service

import (
	"context"
	"strings"
	"time"

	"github.com/dterira/Quorable/config"
	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// ModerationService asks an LLM whether submitted content is abusive and
// logs a warning when it is. Advisory only: it runs off the request path
// and never affects the outcome of a mutation.
type ModerationService interface {
	ReviewAsync(kind string, id uint, content string)
	Close() error
}

type moderationService struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewModerationService(cfg *config.Config) (ModerationService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Content moderation is disabled.")
		return &moderationService{}, nil
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, err
	}
	return &moderationService{
		client: client,
		model:  client.GenerativeModel("gemini-1.5-flash"),
	}, nil
}

func (s *moderationService) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *moderationService) ReviewAsync(kind string, id uint, content string) {
	if s.model == nil || strings.TrimSpace(content) == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		prompt := "You review content for a Q&A site. Reply with exactly FLAG if the following text contains abuse, spam or personal data, otherwise reply with exactly OK.\n\n" + content
		resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			log.Error().Err(err).Str("kind", kind).Uint("id", id).Msg("Moderation review failed")
			return
		}

		verdict := ""
		if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
			for _, part := range resp.Candidates[0].Content.Parts {
				if text, ok := part.(genai.Text); ok {
					verdict += string(text)
				}
			}
		}
		if strings.Contains(strings.ToUpper(verdict), "FLAG") {
			log.Warn().Str("kind", kind).Uint("id", id).Msg("Content flagged by moderation review")
		}
	}()
}
