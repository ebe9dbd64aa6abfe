package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/may5296007/Projetweb2/internal/models"
)

func sampleFormForRender() *models.Form {
	return &models.Form{
		ID:    1,
		Title: "Plan de cours A2025",
		Questions: []models.Question{
			{ID: 1, FormID: 1, Title: "Description du cours", OrderNum: 0},
			{ID: 2, FormID: 1, Title: "Objectifs d'apprentissage", OrderNum: 1},
		},
	}
}

func samplePlanForRender() *models.Plan {
	return &models.Plan{
		ID:          1,
		FormID:      1,
		TeacherName: "Marie Tremblay",
		CourseCode:  "420-1W1-AA",
		CourseName:  "Programmation Web",
		Session:     "Automne 2025",
		Responses: []models.Response{
			{PlanID: 1, QuestionID: 1, QuestionTitle: "Description du cours", Answer: "Un cours d'introduction au développement Web.", OrderNum: 0},
			{PlanID: 1, QuestionID: 2, QuestionTitle: "Objectifs d'apprentissage", Answer: "", OrderNum: 1},
		},
		Validations: []models.Validation{
			{PlanID: 1, QuestionID: 1, Status: models.ValidationCompliant, Positives: []string{"ok"}},
		},
	}
}

func TestExportFileName(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	tests := []struct {
		name        string
		teacherName string
		courseCode  string
		want        string
	}{
		{
			"plain",
			"Marie Tremblay", "420-1W1-AA",
			"Marie_Tremblay_420-1W1-AA_1700000000000.pdf",
		},
		{
			"whitespace collapsed",
			"Jean  Paul\tRoy", "420 1W1",
			"Jean_Paul_Roy_420_1W1_1700000000000.pdf",
		},
		{
			"unsafe characters dropped",
			"Éric Côté", "INF/101",
			"ric_Ct_INF101_1700000000000.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExportFileName(tt.teacherName, tt.courseCode, now)
			if got != tt.want {
				t.Errorf("ExportFileName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocalBlobStore(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalBlobStore(dir, "http://localhost:8080/")

	url, err := store.Store([]byte("%PDF-1.4 test"), "plan.pdf")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if url != "http://localhost:8080/uploads/plans/plan.pdf" {
		t.Errorf("url = %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "plans", "plan.pdf"))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "%PDF-1.4 test" {
		t.Errorf("stored content = %q", data)
	}
}

func TestPDFRendererProducesDocument(t *testing.T) {
	plan := samplePlanForRender()
	form := sampleFormForRender()

	data, err := NewPDFRenderer().Render(plan, form)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Errorf("output does not look like a PDF (starts with %q)", string(data[:8]))
	}
}
