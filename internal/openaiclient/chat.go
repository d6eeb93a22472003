package openaiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/petforge/petforge/internal/constants"
)

// Prompt templates can be set at application startup to customize the
// prompts used when requesting enhanced names and lore from OpenAI. Use the
// token "{{parents}}" where the comma-separated parent names will be
// substituted and "{{rarity}}" for the computed rarity.
var (
	namePromptTemplate string
	lorePromptTemplate string
)

// SetNamePromptTemplate sets a custom prompt template for fusion name
// enhancement. Call from main after loading configuration.
func SetNamePromptTemplate(t string) {
	namePromptTemplate = strings.TrimSpace(t)
}

// SetLorePromptTemplate sets a custom prompt template for fusion lore
// enhancement.
func SetLorePromptTemplate(t string) {
	lorePromptTemplate = strings.TrimSpace(t)
}

func expand(template string, parentNames []string, rarity string) string {
	p := strings.ReplaceAll(template, "{{parents}}", strings.Join(parentNames, ", "))
	return strings.ReplaceAll(p, "{{rarity}}", rarity)
}

// chatCompletion invokes the OpenAI Chat Completions API with a single user
// prompt and returns the first choice's content.
func chatCompletion(ctx context.Context, system, prompt string) (string, error) {
	apiKey := os.Getenv(constants.EnvOpenAIAPIKey)
	if apiKey == "" {
		return "", fmt.Errorf("%s not set", constants.EnvOpenAIAPIKey)
	}

	payload := map[string]interface{}{
		"model": constants.OpenAIChatModel,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": prompt},
		},
		"max_completion_tokens": 3100,
		"service_tier":          "default",
	}

	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", constants.OpenAIBaseURL+constants.OpenAIChatCompletionsPath, bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+apiKey)
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai error: %d %s", resp.StatusCode, string(body))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

// GenerateFusionName asks OpenAI for a single creative name combining the
// parent names. Only the first line of the response is used.
func GenerateFusionName(ctx context.Context, parentNames []string, rarity string) (string, error) {
	prompt := namePromptTemplate
	if prompt == "" {
		prompt = "Given these pet names: {{parents}}. Create a short, fun, single-name fusion that combines them (1-3 words), fitting a {{rarity}} rarity creature. Return only the name."
	}
	prompt = expand(prompt, parentNames, rarity)

	name, err := chatCompletion(ctx, "You are a creative name generator for game creatures.", prompt)
	if err != nil {
		return "", err
	}
	if idx := strings.Index(name, "\n"); idx >= 0 {
		name = name[:idx]
	}
	return strings.Trim(name, "\"' "), nil
}

// GenerateFusionLore asks OpenAI for a one-paragraph origin blurb for the
// fusion product.
func GenerateFusionLore(ctx context.Context, parentNames []string, rarity string) (string, error) {
	prompt := lorePromptTemplate
	if prompt == "" {
		prompt = "Write one short paragraph (max 50 words) of playful origin lore for a creature fused from {{parents}}, rarity {{rarity}}. Return only the paragraph."
	}
	prompt = expand(prompt, parentNames, rarity)
	return chatCompletion(ctx, "You are a lore writer for a lighthearted creature-collecting game.", prompt)
}
