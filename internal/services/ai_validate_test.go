package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/may5296007/Projetweb2/internal/models"
)

func chatReply(t *testing.T, content string) string {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func TestRemoteValidatorParsesProseWrappedJSON(t *testing.T) {
	reply := `Voici mon évaluation :
{"status": "Conforme", "positives": ["Les objectifs sont clairs"], "improvements": [], "suggestion": null}
J'espère que cela aide.`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}
		w.Write([]byte(chatReply(t, reply)))
	}))
	defer server.Close()

	v := NewRemoteValidator("test-key", server.URL, "gpt-test")
	question := &models.Question{Title: "Objectifs", AIRule: "Vérifier les objectifs"}

	result, err := v.Validate(question, "Les objectifs du cours sont...")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Status != models.ValidationCompliant {
		t.Errorf("status = %q, want %q", result.Status, models.ValidationCompliant)
	}
	if len(result.Positives) != 1 || result.Positives[0] != "Les objectifs sont clairs" {
		t.Errorf("positives = %v", result.Positives)
	}
}

func TestRemoteValidatorFailureClasses(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"non-2xx response",
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "rate limited", http.StatusTooManyRequests)
			},
		},
		{
			"no JSON object in reply",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(chatReply(t, "Je ne peux pas évaluer cette réponse.")))
			},
		},
		{
			"malformed JSON object",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(chatReply(t, `{"status": "Conforme", "positives": [`)))
			},
		},
		{
			"unknown status value",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(chatReply(t, `{"status": "ok", "positives": ["x"]}`)))
			},
		},
		{
			"missing positives",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(chatReply(t, `{"status": "Conforme", "positives": []}`)))
			},
		},
		{
			"no choices",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"choices": []}`))
			},
		},
	}

	question := &models.Question{Title: "Q", AIRule: "règle"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			v := NewRemoteValidator("test-key", server.URL, "gpt-test")
			if _, err := v.Validate(question, "réponse"); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRemoteValidatorUnconfigured(t *testing.T) {
	v := NewRemoteValidator("", "https://api.openai.com/v1", "gpt-test")
	if v.IsAvailable() {
		t.Error("validator without a key should not report available")
	}
	if _, err := v.Validate(&models.Question{}, "réponse"); err == nil {
		t.Error("expected an error when unconfigured")
	}
}

func TestParseValidationReplyExtractsFirstBraceSpan(t *testing.T) {
	content := "```json\n" + `{"status": "À améliorer", "positives": ["a"], "improvements": ["b"], "suggestion": "c"}` + "\n```"

	result, err := parseValidationReply(content)
	if err != nil {
		t.Fatalf("parseValidationReply: %v", err)
	}
	if result.Status != models.ValidationNeedsImprovement {
		t.Errorf("status = %q", result.Status)
	}
	if result.Suggestion != "c" {
		t.Errorf("suggestion = %q", result.Suggestion)
	}
}

type failingValidator struct{}

func (failingValidator) Validate(*models.Question, string) (*ValidationResult, error) {
	return nil, errors.New("transport down")
}

func TestEvaluateFallsBackOnRemoteFailure(t *testing.T) {
	svc := NewValidationService(nil, failingValidator{})
	question := &models.Question{Title: "Q", AIRule: "Vérifier la clarté"}
	answer := strings.TrimSpace(strings.Repeat("mot ", 50))

	result := svc.Evaluate(question, answer)
	if result.Status != models.ValidationCompliant {
		t.Errorf("status = %q, want fallback analyzer result", result.Status)
	}
	if len(result.Positives) == 0 {
		t.Error("fallback must produce positives")
	}

	// The fallback path is deterministic even though the remote is not.
	again := svc.Evaluate(question, answer)
	if again.Status != result.Status {
		t.Errorf("fallback not stable: %q vs %q", again.Status, result.Status)
	}
}
