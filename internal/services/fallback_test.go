package services

import (
	"reflect"
	"strings"
	"testing"

	"github.com/may5296007/Projetweb2/internal/models"
)

func TestAnalyzeMinLengthShortfall(t *testing.T) {
	analyzer := NewFallbackAnalyzer()
	question := &models.Question{
		Title:     "Description du cours",
		AIRule:    "Vérifier la description",
		MinLength: 100,
	}
	answer := strings.Repeat("a", 40)

	result := analyzer.Analyze(question, answer)

	if result.Status != models.ValidationNeedsImprovement {
		t.Fatalf("status = %q, want %q", result.Status, models.ValidationNeedsImprovement)
	}
	if len(result.Improvements) != 1 {
		t.Fatalf("improvements = %v, want exactly one", result.Improvements)
	}
	if !strings.Contains(result.Improvements[0], "100") || !strings.Contains(result.Improvements[0], "40") {
		t.Errorf("improvement %q should cite both 100 and 40", result.Improvements[0])
	}
	if len(result.Positives) == 0 {
		t.Error("positives must never be empty")
	}
	if result.Suggestion != "Quelques ajustements permettraient d'améliorer votre réponse." {
		t.Errorf("unexpected suggestion %q", result.Suggestion)
	}
}

func TestAnalyzeWordCountAndObjectives(t *testing.T) {
	analyzer := NewFallbackAnalyzer()
	question := &models.Question{
		Title:  "Objectifs d'apprentissage",
		AIRule: "Vérifier que la réponse contient au moins 100 mots et mentionne les objectifs",
	}
	// 120 words, mentioning the objectives.
	answer := strings.TrimSpace(strings.Repeat("objectifs apprentissage ", 60))

	result := analyzer.Analyze(question, answer)

	if result.Status != models.ValidationCompliant {
		t.Fatalf("status = %q, want %q (improvements: %v)",
			result.Status, models.ValidationCompliant, result.Improvements)
	}
	if len(result.Improvements) != 0 {
		t.Errorf("improvements = %v, want none", result.Improvements)
	}
	if result.Suggestion != "" {
		t.Errorf("suggestion = %q, want empty for a compliant result", result.Suggestion)
	}

	var wordPositive, objectivePositive bool
	for _, p := range result.Positives {
		if strings.Contains(p, "120") && strings.Contains(p, "100") {
			wordPositive = true
		}
		if strings.Contains(p, "objectifs") {
			objectivePositive = true
		}
	}
	if !wordPositive {
		t.Errorf("positives %v should cite 120 words against the 100 minimum", result.Positives)
	}
	if !objectivePositive {
		t.Errorf("positives %v should acknowledge the objectives", result.Positives)
	}
}

func TestAnalyzeThreeImprovementsIsNonCompliant(t *testing.T) {
	analyzer := NewFallbackAnalyzer()
	question := &models.Question{
		Title:  "Contenu du plan",
		AIRule: "Vérifier les objectifs, l'approche pédagogique et les méthodes d'évaluation",
	}
	answer := "Ceci est une courte description du cours."

	result := analyzer.Analyze(question, answer)

	if len(result.Improvements) != 3 {
		t.Fatalf("improvements = %v, want three", result.Improvements)
	}
	if result.Status != models.ValidationNonCompliant {
		t.Errorf("status = %q, want %q", result.Status, models.ValidationNonCompliant)
	}
	if result.Suggestion != "Veuillez réviser votre réponse en tenant compte des points d'amélioration mentionnés." {
		t.Errorf("unexpected suggestion %q", result.Suggestion)
	}
	if len(result.Positives) != 1 || result.Positives[0] != "La réponse a été fournie" {
		t.Errorf("positives = %v, want only the provided-answer fallback", result.Positives)
	}
}

func TestAnalyzeGenericPositives(t *testing.T) {
	analyzer := NewFallbackAnalyzer()
	question := &models.Question{
		Title:  "Remarques",
		AIRule: "Vérifier la clarté",
	}

	t.Run("fifty words under two hundred chars", func(t *testing.T) {
		// 50 words, 199 runes.
		answer := strings.TrimSpace(strings.Repeat("mot ", 50))

		result := analyzer.Analyze(question, answer)
		want := []string{"La réponse est suffisamment détaillée"}
		if !reflect.DeepEqual(result.Positives, want) {
			t.Errorf("positives = %v, want %v", result.Positives, want)
		}
		if result.Status != models.ValidationCompliant {
			t.Errorf("status = %q, want %q", result.Status, models.ValidationCompliant)
		}
	})

	t.Run("two hundred chars adds second positive", func(t *testing.T) {
		// 52 words, 207 runes: both generic positives apply.
		answer := strings.TrimSpace(strings.Repeat("mot ", 52))

		result := analyzer.Analyze(question, answer)
		want := []string{
			"La réponse est suffisamment détaillée",
			"La réponse fournit une bonne quantité d'informations",
		}
		if !reflect.DeepEqual(result.Positives, want) {
			t.Errorf("positives = %v, want %v", result.Positives, want)
		}
	})
}

func TestAnalyzeEvaluationKeyword(t *testing.T) {
	analyzer := NewFallbackAnalyzer()
	question := &models.Question{
		Title:  "Évaluations",
		AIRule: "Vérifier que les critères d'évaluation sont présents",
	}

	tests := []struct {
		name         string
		answer       string
		wantPositive bool
	}{
		{"mentions evaluation", "L'évaluation se fait en deux examens.", true},
		{"mentions percent", "Examen final: 40% de la note.", true},
		{"mentions neither", "Deux examens sont prévus durant la session.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyzer.Analyze(question, tt.answer)
			found := false
			for _, p := range result.Positives {
				if p == "Les méthodes d'évaluation sont présentes" {
					found = true
				}
			}
			if found != tt.wantPositive {
				t.Errorf("evaluation positive present = %v, want %v (positives %v, improvements %v)",
					found, tt.wantPositive, result.Positives, result.Improvements)
			}
			if !tt.wantPositive {
				if len(result.Improvements) == 0 {
					t.Error("expected an improvement when the keyword check fails")
				}
				if result.Status == models.ValidationCompliant {
					t.Error("status should not be compliant with a pending improvement")
				}
			}
		})
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	analyzer := NewFallbackAnalyzer()
	question := &models.Question{
		Title:     "Approche pédagogique",
		AIRule:    "Vérifier l'approche pédagogique en au moins 30 mots",
		MinLength: 50,
	}
	answer := "Ma méthode repose sur des ateliers pratiques chaque semaine."

	first := analyzer.Analyze(question, answer)
	for i := 0; i < 5; i++ {
		if got := analyzer.Analyze(question, answer); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differed: %+v vs %+v", i, got, first)
		}
	}
}
