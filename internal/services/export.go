package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/may5296007/Projetweb2/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// PlanRenderer turns a finished plan into a binary document.
type PlanRenderer interface {
	Render(plan *models.Plan, form *models.Form) ([]byte, error)
}

// BlobStore persists a rendered document and returns a retrievable
// URL.
type BlobStore interface {
	Store(data []byte, name string) (string, error)
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
var whitespace = regexp.MustCompile(`\s+`)

func sanitizeFilePart(s string) string {
	return unsafeFileChars.ReplaceAllString(whitespace.ReplaceAllString(s, "_"), "")
}

// ExportFileName builds {teacher}_{courseCode}_{epochMillis}.pdf with
// whitespace collapsed to underscores and unsafe characters dropped.
func ExportFileName(teacherName, courseCode string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%d.pdf",
		sanitizeFilePart(teacherName), sanitizeFilePart(courseCode), now.UnixMilli())
}

// PDFRenderer lays the plan out as a printable document: course
// header, then each question with its answer and validation status in
// form order.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(plan *models.Plan, form *models.Form) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Plan de cours - "+plan.CourseCode), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr("Plan de cours"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	header := []string{
		fmt.Sprintf("Cours: %s - %s", plan.CourseCode, plan.CourseName),
		"Enseignant: " + plan.TeacherName,
		"Session: " + plan.Session,
		"Formulaire: " + form.Title,
	}
	for _, line := range header {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	answers := make(map[uint]string, len(plan.Responses))
	for _, resp := range plan.Responses {
		answers[resp.QuestionID] = resp.Answer
	}
	statuses := make(map[uint]string, len(plan.Validations))
	for _, v := range plan.Validations {
		statuses[v.QuestionID] = v.Status
	}

	for i, q := range form.Questions {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, q.Title)), "", "L", false)

		pdf.SetFont("Helvetica", "", 10)
		answer := answers[q.ID]
		if answer == "" {
			answer = "(sans réponse)"
		}
		pdf.MultiCell(0, 5, tr(answer), "", "L", false)

		if status, ok := statuses[q.ID]; ok {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(0, 5, tr("Validation: "+status), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	pdf.SetY(-15)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5,
		tr("Document généré automatiquement - Plateforme de Plans de Cours"),
		"", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LocalBlobStore writes documents under the static uploads directory
// served by the HTTP layer and returns their public URL.
type LocalBlobStore struct {
	dir     string
	baseURL string
}

func NewLocalBlobStore(dir, baseURL string) *LocalBlobStore {
	return &LocalBlobStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalBlobStore) Store(data []byte, name string) (string, error) {
	planDir := filepath.Join(s.dir, "plans")
	if err := os.MkdirAll(planDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(planDir, name), data, 0o644); err != nil {
		return "", err
	}
	return s.baseURL + "/uploads/plans/" + name, nil
}
