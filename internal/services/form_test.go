package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/may5296007/Projetweb2/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Form{},
		&models.Question{},
		&models.Plan{},
		&models.Response{},
		&models.Validation{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func addQuestions(t *testing.T, svc *FormService, formID uint, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := svc.AddQuestion(formID, QuestionInput{
			Title:  fmt.Sprintf("Question %d", i+1),
			AIRule: "Vérifier la clarté",
		})
		if err != nil {
			t.Fatalf("add question %d: %v", i, err)
		}
	}
}

func TestActivateRequiresTenQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := NewFormService(db)

	form, err := svc.CreateForm(FormInput{Title: "Gabarit"})
	if err != nil {
		t.Fatal(err)
	}
	addQuestions(t, svc, form.ID, 7)

	_, err = svc.Activate(form.ID)
	var actErr *ActivationError
	if !errors.As(err, &actErr) {
		t.Fatalf("err = %v, want ActivationError", err)
	}
	if actErr.QuestionCount != 7 || actErr.Missing != 3 {
		t.Errorf("shortfall = %d/%d, want 7/3", actErr.QuestionCount, actErr.Missing)
	}

	got, _ := svc.GetFormByID(form.ID)
	if got.IsActive {
		t.Error("form must stay inactive after a failed activation")
	}

	addQuestions(t, svc, form.ID, 3)
	activated, err := svc.Activate(form.ID)
	if err != nil {
		t.Fatalf("activation with 10 questions should succeed: %v", err)
	}
	if !activated.IsActive {
		t.Error("form not marked active")
	}
}

func TestActivateKeepsExactlyOneActiveForm(t *testing.T) {
	db := newTestDB(t)
	svc := NewFormService(db)

	var ids []uint
	for i := 0; i < 3; i++ {
		form, err := svc.CreateForm(FormInput{Title: fmt.Sprintf("Formulaire %d", i+1)})
		if err != nil {
			t.Fatal(err)
		}
		addQuestions(t, svc, form.ID, 10)
		ids = append(ids, form.ID)
	}

	for _, id := range ids {
		if _, err := svc.Activate(id); err != nil {
			t.Fatalf("activate %d: %v", id, err)
		}

		var activeCount int64
		db.Model(&models.Form{}).Where("is_active = ?", true).Count(&activeCount)
		if activeCount != 1 {
			t.Fatalf("active forms = %d after activating %d, want exactly 1", activeCount, id)
		}

		active, err := svc.GetActiveForm()
		if err != nil {
			t.Fatal(err)
		}
		if active.ID != id {
			t.Errorf("active form = %d, want %d", active.ID, id)
		}
	}
}

func TestGetActiveFormWhenNoneActive(t *testing.T) {
	db := newTestDB(t)
	svc := NewFormService(db)

	_, err := svc.GetActiveForm()
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestReorderQuestion(t *testing.T) {
	db := newTestDB(t)
	svc := NewFormService(db)

	form, err := svc.CreateForm(FormInput{Title: "Gabarit"})
	if err != nil {
		t.Fatal(err)
	}
	addQuestions(t, svc, form.ID, 3)

	titles := func() []string {
		got, err := svc.GetFormByID(form.ID)
		if err != nil {
			t.Fatal(err)
		}
		out := make([]string, len(got.Questions))
		for i, q := range got.Questions {
			out[i] = q.Title
		}
		return out
	}

	result, err := svc.ReorderQuestion(form.ID, 0, 1)
	if err != nil {
		t.Fatalf("reorder down: %v", err)
	}
	if !result.Moved {
		t.Error("expected a swap")
	}
	if got := titles(); got[0] != "Question 2" || got[1] != "Question 1" {
		t.Errorf("order after swap = %v", got)
	}

	// Boundary moves report no swap instead of failing.
	result, err = svc.ReorderQuestion(form.ID, 0, -1)
	if err != nil {
		t.Fatalf("boundary move up: %v", err)
	}
	if result.Moved {
		t.Error("moving the first question up must be a no-op")
	}

	result, err = svc.ReorderQuestion(form.ID, 2, 1)
	if err != nil {
		t.Fatalf("boundary move down: %v", err)
	}
	if result.Moved {
		t.Error("moving the last question down must be a no-op")
	}

	if _, err := svc.ReorderQuestion(form.ID, 9, 1); err == nil {
		t.Error("out-of-range index should be reported")
	}
}

func TestDeleteActiveFormRefused(t *testing.T) {
	db := newTestDB(t)
	svc := NewFormService(db)

	form, err := svc.CreateForm(FormInput{Title: "Gabarit"})
	if err != nil {
		t.Fatal(err)
	}
	addQuestions(t, svc, form.ID, 10)
	if _, err := svc.Activate(form.ID); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteForm(form.ID); err == nil {
		t.Fatal("deleting the active form must fail")
	}

	if err := svc.Deactivate(form.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteForm(form.ID); err != nil {
		t.Fatalf("deleting an inactive form: %v", err)
	}
}

func TestRemoveQuestionLeavesOtherOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewFormService(db)

	form, err := svc.CreateForm(FormInput{Title: "Gabarit"})
	if err != nil {
		t.Fatal(err)
	}
	addQuestions(t, svc, form.ID, 3)

	got, err := svc.GetFormByID(form.ID)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.RemoveQuestion(form.ID, got.Questions[1].ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	got, err = svc.GetFormByID(form.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(got.Questions))
	}
	if got.Questions[0].Title != "Question 1" || got.Questions[1].Title != "Question 3" {
		t.Errorf("remaining order = %v, %v", got.Questions[0].Title, got.Questions[1].Title)
	}
}
