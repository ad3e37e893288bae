package extract

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/doctrail/contact-cli/internal/config"
	"github.com/doctrail/contact-cli/internal/model"
	"github.com/doctrail/contact-cli/pkg/anthropic"
)

const systemPrompt = `You extract the contact details of the party that sent a scanned document (invoice, letter, delivery note). Respond with a single JSON object and nothing else.`

const taskPrompt = `Extract the sender's data from this document. Return a JSON object with string values for these keys: email, phone, company, lastname, firstname, address, num_address, additional_address, city, postal_code. Omit any key you cannot read from the document.`

// ClaudeExtractor implements Extractor against the Anthropic Messages API.
type ClaudeExtractor struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	limiter   *rate.Limiter
}

// NewClaudeExtractor creates an extractor for the configured contact model.
func NewClaudeExtractor(client anthropic.Client, cfg config.AnthropicConfig) *ClaudeExtractor {
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerMinute)/60, 1)
	}

	return &ClaudeExtractor{
		client:    client,
		model:     cfg.ContactModel,
		maxTokens: maxTokens,
		limiter:   limiter,
	}
}

// Extract sends the image and task prompt to the contact model and parses
// the reply. A reply that is not valid JSON degrades to the empty field
// mapping, never a parse error.
func (e *ClaudeExtractor) Extract(ctx context.Context, image []byte, mediaType string) (model.ExtractedFields, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return model.ExtractedFields{}, eris.Wrap(err, "extract: rate limit wait")
		}
	}

	temp := 0.0
	resp, err := e.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       e.model,
		MaxTokens:   e.maxTokens,
		System:      systemPrompt,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Blocks: []anthropic.ContentBlockParam{
				anthropic.ImageBlock(mediaType, image),
				anthropic.TextBlock(taskPrompt),
			}},
		},
	})
	if err != nil {
		return model.ExtractedFields{}, eris.Wrap(err, "extract: contact model call")
	}
	resp.Usage.Log(e.model, "contact_extract")

	var fields model.ExtractedFields
	text := cleanJSON(resp.Text())
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		zap.L().Warn("contact extraction not parseable, treating as empty",
			zap.String("model", e.model),
			zap.Error(err),
		)
		return model.ExtractedFields{}, nil
	}
	return fields, nil
}

// cleanJSON strips markdown fences and surrounding prose from a model reply.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	// Strip markdown code fences.
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	// Find first { and last }.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
