package seeders

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/engineer-english/eigo_api/model"
	"github.com/engineer-english/eigo_api/services/repositories"
	"github.com/engineer-english/eigo_api/shared"
)

func openSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Scene{},
		&model.Lesson{},
		&model.Phrase{},
		&model.Dialogue{},
		&model.UserProgress{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func testCurriculum() *Curriculum {
	return &Curriculum{
		LegacyDialogueLines: []string{"Old placeholder line"},
		Scenes: []SceneSeed{
			{
				Title:   "テスト",
				Lessons: []string{"単体テスト", "結合テスト"},
				Phrases: []PhraseSeed{
					{EN: "Let's write a unit test.", JA: "単体テストを書きましょう。"},
					{EN: "The integration test failed.", JA: "結合テストが失敗しました。"},
				},
				Dialogues: []DialogueSeed{
					{Speaker: "Dev", EN: "The build is green.", JA: "ビルドは成功です。", Order: 1},
					{Speaker: "QA", EN: "I found a regression.", JA: "リグレッションを見つけました。", Order: 2},
				},
			},
		},
	}
}

func TestSeedCreatesCurriculum(t *testing.T) {
	db := openSeedTestDB(t)

	result, err := NewCurriculumSeeder(db, testCurriculum()).Seed()
	if err != nil {
		t.Fatalf("Seed error: %v", err)
	}

	if result.LessonsCreated != 2 {
		t.Fatalf("lessons created = %d, want 2", result.LessonsCreated)
	}
	if result.PhrasesCreated != 2 {
		t.Fatalf("phrases created = %d, want 2", result.PhrasesCreated)
	}
	if result.DialoguesCreated != 2 {
		t.Fatalf("dialogues created = %d, want 2", result.DialoguesCreated)
	}

	repo := repositories.NewContentRepository(db)
	scene, err := repo.GetSceneByTitle("テスト")
	if err != nil {
		t.Fatalf("GetSceneByTitle error: %v", err)
	}

	lessons, err := repo.ListLessons(scene.ID)
	if err != nil {
		t.Fatalf("ListLessons error: %v", err)
	}
	if len(lessons) != 2 {
		t.Fatalf("lessons = %d, want 2", len(lessons))
	}
	if lessons[0].Description != "テスト / 単体テスト" {
		t.Fatalf("description = %q, want scene/lesson synthesis", lessons[0].Description)
	}

	phrases, err := repo.ListPhrases(scene.ID, "")
	if err != nil {
		t.Fatalf("ListPhrases error: %v", err)
	}
	for _, p := range phrases {
		if p.Source != shared.SourceSeeder {
			t.Fatalf("phrase %q has source %q, want %q", p.TextEN, p.Source, shared.SourceSeeder)
		}
		if p.LessonID == nil {
			t.Fatalf("phrase %q not assigned to a lesson", p.TextEN)
		}
	}
}

func TestSeedSecondRunCreatesNoLessonsOrDialogues(t *testing.T) {
	db := openSeedTestDB(t)
	curriculum := testCurriculum()

	if _, err := NewCurriculumSeeder(db, curriculum).Seed(); err != nil {
		t.Fatalf("first Seed error: %v", err)
	}

	result, err := NewCurriculumSeeder(db, curriculum).Seed()
	if err != nil {
		t.Fatalf("second Seed error: %v", err)
	}

	if result.LessonsCreated != 0 {
		t.Fatalf("second run created %d lessons, want 0", result.LessonsCreated)
	}
	if result.DialoguesCreated != 0 || result.DialoguesUpdated != 0 {
		t.Fatalf("second run touched dialogues: %+v", result)
	}

	// Seeder-owned phrases are purged and rebuilt each run; the net row
	// count must stay stable.
	counts, err := repositories.NewContentRepository(db).Counts()
	if err != nil {
		t.Fatalf("Counts error: %v", err)
	}
	if counts.Phrases != 2 || counts.Dialogues != 2 || counts.Lessons != 2 || counts.Scenes != 1 {
		t.Fatalf("counts drifted on second run: %+v", counts)
	}
}

func TestSeedSparesUserAuthoredPhrases(t *testing.T) {
	db := openSeedTestDB(t)
	curriculum := testCurriculum()

	if _, err := NewCurriculumSeeder(db, curriculum).Seed(); err != nil {
		t.Fatalf("first Seed error: %v", err)
	}

	repo := repositories.NewContentRepository(db)
	scene, err := repo.GetSceneByTitle("テスト")
	if err != nil {
		t.Fatalf("GetSceneByTitle error: %v", err)
	}

	authored := model.Phrase{
		SceneID: scene.ID,
		TextEN:  "My own phrase.",
		TextJA:  "自分のフレーズ。",
		Source:  shared.SourceUser,
	}
	if err := repo.CreatePhrase(nil, &authored); err != nil {
		t.Fatalf("CreatePhrase error: %v", err)
	}

	if _, err := NewCurriculumSeeder(db, curriculum).Seed(); err != nil {
		t.Fatalf("second Seed error: %v", err)
	}

	survivor, err := repo.GetPhraseByText(nil, scene.ID, "My own phrase.")
	if err != nil {
		t.Fatalf("user phrase did not survive reseeding: %v", err)
	}
	if survivor.Source != shared.SourceUser {
		t.Fatalf("user phrase source = %q, want untouched", survivor.Source)
	}
}

func TestSeedClaimsMatchingUserPhrase(t *testing.T) {
	db := openSeedTestDB(t)
	curriculum := testCurriculum()
	repo := repositories.NewContentRepository(db)

	scene, _, err := repo.GetOrCreateScene(nil, "テスト")
	if err != nil {
		t.Fatalf("GetOrCreateScene error: %v", err)
	}

	// Same English text as a curriculum phrase, but user-authored and with
	// a drifted translation.
	drifted := model.Phrase{
		SceneID: scene.ID,
		TextEN:  "Let's write a unit test.",
		TextJA:  "古い訳",
		Source:  shared.SourceUser,
	}
	if err := repo.CreatePhrase(nil, &drifted); err != nil {
		t.Fatalf("CreatePhrase error: %v", err)
	}

	result, err := NewCurriculumSeeder(db, curriculum).Seed()
	if err != nil {
		t.Fatalf("Seed error: %v", err)
	}
	if result.PhrasesUpdated != 1 {
		t.Fatalf("phrases updated = %d, want 1 claimed row", result.PhrasesUpdated)
	}

	claimed, err := repo.GetPhraseByText(nil, scene.ID, "Let's write a unit test.")
	if err != nil {
		t.Fatalf("GetPhraseByText error: %v", err)
	}
	if claimed.ID != drifted.ID {
		t.Fatalf("expected the existing row to be claimed, got new id %s", claimed.ID)
	}
	if claimed.TextJA != "単体テストを書きましょう。" {
		t.Fatalf("translation not repaired: %q", claimed.TextJA)
	}
	if claimed.Source != shared.SourceSeeder {
		t.Fatalf("source = %q, want claimed by seeder", claimed.Source)
	}
}

func TestSeedPurgesLegacyDialogueLines(t *testing.T) {
	db := openSeedTestDB(t)
	curriculum := testCurriculum()
	repo := repositories.NewContentRepository(db)

	scene, _, err := repo.GetOrCreateScene(nil, "テスト")
	if err != nil {
		t.Fatalf("GetOrCreateScene error: %v", err)
	}

	legacy := model.Dialogue{
		SceneID: scene.ID,
		Speaker: "A",
		LineEN:  "Old placeholder line",
		LineJA:  "古い行",
		Order:   1,
	}
	if err := repo.CreateDialogue(nil, &legacy); err != nil {
		t.Fatalf("CreateDialogue error: %v", err)
	}

	if _, err := NewCurriculumSeeder(db, curriculum).Seed(); err != nil {
		t.Fatalf("Seed error: %v", err)
	}

	replaced, err := repo.GetDialogueByOrder(nil, scene.ID, 1)
	if err != nil {
		t.Fatalf("GetDialogueByOrder error: %v", err)
	}
	if replaced.LineEN != "The build is green." {
		t.Fatalf("order 1 line = %q, want legacy line replaced", replaced.LineEN)
	}
	if replaced.ID == legacy.ID {
		t.Fatal("legacy dialogue row should have been purged, not reused")
	}
}

func TestSeedRollsBackOnFailure(t *testing.T) {
	db := openSeedTestDB(t)
	if err := db.Migrator().DropTable(&model.Dialogue{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	_, err := NewCurriculumSeeder(db, testCurriculum()).Seed()
	if err == nil {
		t.Fatal("expected seed to fail without the dialogues table")
	}

	// The whole run is one transaction: the scene, lessons and phrases
	// created before the failure must be gone.
	var scenes, lessons, phrases int64
	db.Model(&model.Scene{}).Count(&scenes)
	db.Model(&model.Lesson{}).Count(&lessons)
	db.Model(&model.Phrase{}).Count(&phrases)
	if scenes != 0 || lessons != 0 || phrases != 0 {
		t.Fatalf("rows after failed run = %d/%d/%d, want everything rolled back", scenes, lessons, phrases)
	}
}

func TestSeedRepairsDialogueDrift(t *testing.T) {
	db := openSeedTestDB(t)
	curriculum := testCurriculum()
	repo := repositories.NewContentRepository(db)

	if _, err := NewCurriculumSeeder(db, curriculum).Seed(); err != nil {
		t.Fatalf("first Seed error: %v", err)
	}

	scene, err := repo.GetSceneByTitle("テスト")
	if err != nil {
		t.Fatalf("GetSceneByTitle error: %v", err)
	}
	dialogue, err := repo.GetDialogueByOrder(nil, scene.ID, 2)
	if err != nil {
		t.Fatalf("GetDialogueByOrder error: %v", err)
	}

	dialogue.Speaker = "Someone else"
	if err := repo.UpdateDialogue(nil, dialogue); err != nil {
		t.Fatalf("UpdateDialogue error: %v", err)
	}

	result, err := NewCurriculumSeeder(db, curriculum).Seed()
	if err != nil {
		t.Fatalf("second Seed error: %v", err)
	}
	if result.DialoguesUpdated != 1 {
		t.Fatalf("dialogues updated = %d, want 1", result.DialoguesUpdated)
	}

	repaired, err := repo.GetDialogueByOrder(nil, scene.ID, 2)
	if err != nil {
		t.Fatalf("GetDialogueByOrder error: %v", err)
	}
	if repaired.Speaker != "QA" {
		t.Fatalf("speaker = %q, want repaired to QA", repaired.Speaker)
	}
}
