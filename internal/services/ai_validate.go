package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/may5296007/Projetweb2/internal/models"
)

// RemoteValidator asks an OpenAI-compatible chat-completions endpoint
// to review one answer. One attempt, no retry; every failure is
// reported so the caller can fall back to the local analyzer.
type RemoteValidator struct {
	httpClient *http.Client
	apiKey     string
	apiURL     string
	model      string
}

func NewRemoteValidator(apiKey, apiURL, model string) *RemoteValidator {
	return &RemoteValidator{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		apiURL:     apiURL,
		model:      model,
	}
}

func (v *RemoteValidator) IsAvailable() bool {
	return v.apiKey != ""
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const reviewerPrompt = `Tu es un expert en validation de plans de cours. Tu dois analyser la réponse d'un enseignant selon une règle de validation précise.

Tu dois toujours répondre en JSON avec exactement ce format:
{
  "status": "Conforme" | "À améliorer" | "Non conforme",
  "positives": ["point positif 1", "point positif 2"],
  "improvements": ["point à améliorer 1", "point à améliorer 2"],
  "suggestion": "suggestion de correction si nécessaire ou null"
}

Critères de statut:
- "Conforme": La réponse respecte tous les critères de la règle
- "À améliorer": La réponse respecte partiellement les critères
- "Non conforme": La réponse ne respecte pas les critères essentiels

Sois constructif et bienveillant dans tes commentaires.`

func (v *RemoteValidator) Validate(question *models.Question, answer string) (*ValidationResult, error) {
	if !v.IsAvailable() {
		return nil, fmt.Errorf("AI validation is not configured")
	}

	userPrompt := fmt.Sprintf(
		"Question: %s\n\nRègle de validation: %s\n\nRéponse de l'enseignant:\n%s\n\nAnalyse cette réponse et fournis ton évaluation en JSON.",
		question.Title, question.AIRule, answer,
	)

	reqBody := chatRequest{
		Model: v.model,
		Messages: []chatMessage{
			{Role: "system", Content: reviewerPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.7,
		MaxTokens:   800,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", v.apiURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+v.apiKey)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}

	if chatResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from AI")
	}

	return parseValidationReply(chatResp.Choices[0].Message.Content)
}

// parseValidationReply extracts the first brace-delimited JSON object
// from the model's reply, tolerating surrounding prose or code fences.
func parseValidationReply(content string) (*ValidationResult, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object in AI reply")
	}

	var result ValidationResult
	if err := json.Unmarshal([]byte(content[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("AI returned invalid JSON: %w", err)
	}

	switch result.Status {
	case models.ValidationCompliant, models.ValidationNeedsImprovement, models.ValidationNonCompliant:
	default:
		return nil, fmt.Errorf("AI reply has unknown status %q", result.Status)
	}
	if len(result.Positives) == 0 {
		return nil, fmt.Errorf("AI reply is missing positives")
	}

	return &result, nil
}
