package services

import (
	"net/http"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/engineer-english/eigo_api/model"
	"github.com/engineer-english/eigo_api/shared"
)

func newTestSqliteService(t *testing.T) *SqliteService {
	t.Helper()

	svc := &SqliteService{database: filepath.Join(t.TempDir(), "test.db")}
	if err := svc.Start(); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	return svc
}

func TestSqliteServiceMigratesAndServesRepositories(t *testing.T) {
	svc := newTestSqliteService(t)

	scene, err := svc.Content().CreateScene(&model.Scene{Title: "要件定義"})
	if err != nil {
		t.Fatalf("CreateScene error: %v", err)
	}

	lesson, err := svc.Content().CreateLesson(&model.Lesson{SceneID: scene.ID, Title: "ヒアリング"})
	if err != nil {
		t.Fatalf("CreateLesson error: %v", err)
	}

	user, err := svc.Users().CreateUser("alice", "alice@example.com", "hash")
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}

	if _, err := svc.Progress().Upsert(&model.UserProgress{UserID: user.ID, LessonID: lesson.ID, Score: 90}); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}

	counts, err := svc.Content().Counts()
	if err != nil {
		t.Fatalf("Counts error: %v", err)
	}
	if counts.Scenes != 1 || counts.Lessons != 1 {
		t.Fatalf("counts = %+v", counts)
	}
}

func TestSqliteHandleErrorMapping(t *testing.T) {
	svc := newTestSqliteService(t)

	cases := []struct {
		err         error
		wantStatus  int
		wantMessage string
	}{
		{gorm.ErrRecordNotFound, http.StatusNotFound, "Resource not found"},
		{gorm.ErrDuplicatedKey, http.StatusConflict, "Resource already exists"},
		{gorm.ErrForeignKeyViolated, http.StatusBadRequest, "Referenced resource does not exist"},
		{gorm.ErrInvalidTransaction, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		appErr, ok := shared.GetAppError(svc.HandleError(tc.err))
		if !ok {
			t.Fatalf("HandleError(%v) did not return an AppError", tc.err)
		}
		if appErr.StatusCode != tc.wantStatus {
			t.Fatalf("HandleError(%v) status = %d, want %d", tc.err, appErr.StatusCode, tc.wantStatus)
		}
		if appErr.Message != tc.wantMessage {
			t.Fatalf("HandleError(%v) message = %q, want %q", tc.err, appErr.Message, tc.wantMessage)
		}
	}

	if svc.HandleError(nil) != nil {
		t.Fatal("HandleError(nil) should be nil")
	}
}

func TestSqliteUniqueConstraintMapsToConflict(t *testing.T) {
	svc := newTestSqliteService(t)

	if _, err := svc.Users().CreateUser("bob", "bob@example.com", "hash"); err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}

	_, err := svc.Users().CreateUser("bob", "bob2@example.com", "hash")
	if err == nil {
		t.Fatal("expected unique constraint violation")
	}

	appErr, ok := shared.GetAppError(svc.HandleError(err))
	if !ok || appErr.StatusCode != http.StatusConflict {
		t.Fatalf("mapped err = %v, want 409", appErr)
	}
	if appErr.Message != "Resource already exists" {
		t.Fatalf("mapped message = %q, want %q", appErr.Message, "Resource already exists")
	}
}
