package services

import (
	"net/http"
	"testing"

	"github.com/engineer-english/eigo_api/dto"
	"github.com/engineer-english/eigo_api/model"
	"github.com/engineer-english/eigo_api/shared"
)

func newTestContentService(t *testing.T) (*ContentService, *PostgresService) {
	t.Helper()
	sqlSvc := newTestSQL(t)
	return &ContentService{sqlSvc: sqlSvc, cacheSvc: &RedisService{}}, sqlSvc
}

func TestListScenesIncludesLessonCount(t *testing.T) {
	svc, sqlSvc := newTestContentService(t)

	scene, err := sqlSvc.Content().CreateScene(&model.Scene{Title: "実装"})
	if err != nil {
		t.Fatalf("CreateScene error: %v", err)
	}
	for _, title := range []string{"命名", "レビュー"} {
		if _, err := sqlSvc.Content().CreateLesson(&model.Lesson{SceneID: scene.ID, Title: title}); err != nil {
			t.Fatalf("CreateLesson error: %v", err)
		}
	}

	resp, err := svc.ListScenes()
	if err != nil {
		t.Fatalf("ListScenes error: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("total = %d, want 1", resp.Total)
	}
	if resp.Scenes[0].LessonCount != 2 {
		t.Fatalf("lesson count = %d, want 2", resp.Scenes[0].LessonCount)
	}
}

func TestGetSceneNotFound(t *testing.T) {
	svc, _ := newTestContentService(t)

	_, err := svc.GetScene("missing")
	if err == nil {
		t.Fatal("expected error for unknown scene")
	}
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.StatusCode != http.StatusNotFound {
		t.Fatalf("err = %v, want 404 AppError", err)
	}
}

func TestListLessonsRejectsUnknownSceneFilter(t *testing.T) {
	svc, _ := newTestContentService(t)

	_, err := svc.ListLessons("missing")
	if err == nil {
		t.Fatal("expected error for unknown scene filter")
	}
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.StatusCode != http.StatusNotFound {
		t.Fatalf("err = %v, want 404 AppError", err)
	}
}

func TestCreateLessonRequiresScene(t *testing.T) {
	svc, _ := newTestContentService(t)

	_, err := svc.CreateLesson(dto.CreateLessonRequest{SceneID: "missing", Title: "L"})
	if err == nil {
		t.Fatal("expected error when scene does not exist")
	}
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.StatusCode != http.StatusNotFound {
		t.Fatalf("err = %v, want 404 AppError", err)
	}
}

func TestGetLessonDetail(t *testing.T) {
	svc, sqlSvc := newTestContentService(t)

	scene, _ := sqlSvc.Content().CreateScene(&model.Scene{Title: "運用"})
	lesson, _ := sqlSvc.Content().CreateLesson(&model.Lesson{SceneID: scene.ID, Title: "監視", Description: "運用 / 監視"})

	if err := sqlSvc.Content().CreatePhrase(nil, &model.Phrase{
		SceneID: scene.ID, LessonID: &lesson.ID, TextEN: "The alert fired.", TextJA: "アラートが発火しました。",
	}); err != nil {
		t.Fatalf("CreatePhrase error: %v", err)
	}
	for _, order := range []int{2, 1} {
		if err := sqlSvc.Content().CreateDialogue(nil, &model.Dialogue{
			SceneID: scene.ID, LessonID: &lesson.ID, Speaker: "SRE", LineEN: "line", LineJA: "行", Order: order,
		}); err != nil {
			t.Fatalf("CreateDialogue error: %v", err)
		}
	}

	resp, err := svc.GetLesson(lesson.ID)
	if err != nil {
		t.Fatalf("GetLesson error: %v", err)
	}
	if resp.Description != "運用 / 監視" {
		t.Fatalf("description = %q", resp.Description)
	}
	if len(resp.Phrases) != 1 {
		t.Fatalf("phrases = %d, want 1", len(resp.Phrases))
	}
	if len(resp.Dialogues) != 2 || resp.Dialogues[0].Order != 1 || resp.Dialogues[1].Order != 2 {
		t.Fatalf("dialogues = %+v, want conversation order", resp.Dialogues)
	}
}

func TestGetStatsWithoutCache(t *testing.T) {
	svc, sqlSvc := newTestContentService(t)

	scene, _ := sqlSvc.Content().CreateScene(&model.Scene{Title: "S"})
	sqlSvc.Content().CreateLesson(&model.Lesson{SceneID: scene.ID, Title: "L"})
	sqlSvc.Content().CreatePhrase(nil, &model.Phrase{SceneID: scene.ID, TextEN: "p", TextJA: "p"})

	stats, err := svc.GetStats()
	if err != nil {
		t.Fatalf("GetStats error: %v", err)
	}
	if stats.Scenes != 1 || stats.Lessons != 1 || stats.Phrases != 1 || stats.Dialogues != 0 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestDeleteSceneThenGone(t *testing.T) {
	svc, sqlSvc := newTestContentService(t)

	scene, _ := sqlSvc.Content().CreateScene(&model.Scene{Title: "消える"})

	if err := svc.DeleteScene(scene.ID); err != nil {
		t.Fatalf("DeleteScene error: %v", err)
	}

	if err := svc.DeleteScene(scene.ID); err == nil {
		t.Fatal("expected 404 on second delete")
	}
}
