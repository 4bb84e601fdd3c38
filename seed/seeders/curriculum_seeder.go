package seeders

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/engineer-english/eigo_api/model"
	"github.com/engineer-english/eigo_api/services/repositories"
	"github.com/engineer-english/eigo_api/shared"
)

// CurriculumSeeder reconciles the database against a curriculum definition.
// Running it repeatedly is safe: existing rows are matched by natural key
// (scene title, lesson title within a scene, phrase English text within a
// scene, dialogue order within a scene) and only drifted fields are
// rewritten. Rows authored outside the seeder are never purged.
type CurriculumSeeder struct {
	db         *gorm.DB
	curriculum *Curriculum
}

// Result reports what a reconciliation run changed.
type Result struct {
	LessonsCreated   int
	PhrasesCreated   int
	DialoguesCreated int
	PhrasesUpdated   int
	DialoguesUpdated int
}

func (r Result) String() string {
	return fmt.Sprintf("+%d lessons, +%d phrases, +%d dialogues (updated %d phrases, %d dialogues)",
		r.LessonsCreated, r.PhrasesCreated, r.DialoguesCreated, r.PhrasesUpdated, r.DialoguesUpdated)
}

func NewCurriculumSeeder(db *gorm.DB, curriculum *Curriculum) *CurriculumSeeder {
	return &CurriculumSeeder{db: db, curriculum: curriculum}
}

// Seed runs the full reconciliation in a single transaction. Any failure
// rolls back every change of the run.
func (s *CurriculumSeeder) Seed() (*Result, error) {
	result := &Result{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewContentRepository(tx)

		for _, sceneSeed := range s.curriculum.Scenes {
			if err := s.seedScene(repo, sceneSeed, result); err != nil {
				return fmt.Errorf("scene %q: %w", sceneSeed.Title, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Infof("Curriculum reconciled: %s", result)
	return result, nil
}

func (s *CurriculumSeeder) seedScene(repo *repositories.ContentRepository, sceneSeed SceneSeed, result *Result) error {
	scene, _, err := repo.GetOrCreateScene(nil, sceneSeed.Title)
	if err != nil {
		return err
	}

	// Purge before reconciling: seeder-owned phrases are rebuilt from
	// scratch, and superseded placeholder dialogues are dropped by their
	// English lines.
	if err := repo.DeletePhrasesBySource(nil, scene.ID, shared.SourceSeeder); err != nil {
		return err
	}
	if err := repo.DeleteDialoguesByLines(nil, scene.ID, s.curriculum.LegacyDialogueLines); err != nil {
		return err
	}

	lessons := make([]*model.Lesson, 0, len(sceneSeed.Lessons))
	for _, lessonTitle := range sceneSeed.Lessons {
		description := fmt.Sprintf("%s / %s", sceneSeed.Title, lessonTitle)
		lesson, created, err := repo.GetOrCreateLesson(nil, scene.ID, lessonTitle, description)
		if err != nil {
			return err
		}
		if created {
			result.LessonsCreated++
		}
		lessons = append(lessons, lesson)
	}

	// Phrases spread round-robin across the scene's lessons.
	for idx, phraseSeed := range sceneSeed.Phrases {
		lesson := lessons[idx%len(lessons)]

		existing, err := repo.GetPhraseByText(nil, scene.ID, phraseSeed.EN)
		if err == gorm.ErrRecordNotFound {
			err = repo.CreatePhrase(nil, &model.Phrase{
				SceneID:  scene.ID,
				LessonID: &lesson.ID,
				TextEN:   phraseSeed.EN,
				TextJA:   phraseSeed.JA,
				Source:   shared.SourceSeeder,
			})
			if err != nil {
				return err
			}
			result.PhrasesCreated++
			continue
		}
		if err != nil {
			return err
		}

		// A row with the same English text already exists outside seeder
		// ownership. Claim it and repair any drift.
		changed := false
		if existing.TextJA != phraseSeed.JA {
			existing.TextJA = phraseSeed.JA
			changed = true
		}
		if existing.LessonID == nil || *existing.LessonID != lesson.ID {
			existing.LessonID = &lesson.ID
			changed = true
		}
		if existing.Source != shared.SourceSeeder {
			existing.Source = shared.SourceSeeder
			changed = true
		}
		if changed {
			if err := repo.UpdatePhrase(nil, existing); err != nil {
				return err
			}
			result.PhrasesUpdated++
		}
	}

	// Dialogues keyed by conversation order within the scene.
	for idx, dialogueSeed := range sceneSeed.Dialogues {
		lesson := lessons[idx%len(lessons)]

		existing, err := repo.GetDialogueByOrder(nil, scene.ID, dialogueSeed.Order)
		if err == gorm.ErrRecordNotFound {
			err = repo.CreateDialogue(nil, &model.Dialogue{
				SceneID:  scene.ID,
				LessonID: &lesson.ID,
				Speaker:  dialogueSeed.Speaker,
				LineEN:   dialogueSeed.EN,
				LineJA:   dialogueSeed.JA,
				Order:    dialogueSeed.Order,
			})
			if err != nil {
				return err
			}
			result.DialoguesCreated++
			continue
		}
		if err != nil {
			return err
		}

		changed := false
		if existing.Speaker != dialogueSeed.Speaker {
			existing.Speaker = dialogueSeed.Speaker
			changed = true
		}
		if existing.LineEN != dialogueSeed.EN {
			existing.LineEN = dialogueSeed.EN
			changed = true
		}
		if existing.LineJA != dialogueSeed.JA {
			existing.LineJA = dialogueSeed.JA
			changed = true
		}
		if existing.LessonID == nil || *existing.LessonID != lesson.ID {
			existing.LessonID = &lesson.ID
			changed = true
		}
		if changed {
			if err := repo.UpdateDialogue(nil, existing); err != nil {
				return err
			}
			result.DialoguesUpdated++
		}
	}

	return nil
}
