package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/engineer-english/eigo_api/model"
)

// ContentRepository owns the curriculum tables: scenes, lessons, phrases and
// dialogues. All multi-row mutations (cascading deletes, reconciliation) run
// in transactions.
type ContentRepository struct {
	BaseRepository
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// ==================== SCENE METHODS ====================

func (ds *ContentRepository) ListScenes() ([]model.Scene, error) {
	var scenes []model.Scene
	if err := ds.db.Preload("Lessons").Order("created_at ASC").Find(&scenes).Error; err != nil {
		return nil, err
	}
	return scenes, nil
}

func (ds *ContentRepository) GetScene(id string) (*model.Scene, error) {
	var scene model.Scene
	if err := ds.db.Where("id = ?", id).First(&scene).Error; err != nil {
		return nil, err
	}
	return &scene, nil
}

// GetSceneDetail loads a scene with its lessons, phrases and dialogues.
// Dialogues come back in conversation order.
func (ds *ContentRepository) GetSceneDetail(id string) (*model.Scene, error) {
	var scene model.Scene
	err := ds.db.
		Preload("Lessons").
		Preload("Phrases").
		Preload("Dialogues", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\" ASC")
		}).
		Where("id = ?", id).First(&scene).Error
	if err != nil {
		return nil, err
	}
	return &scene, nil
}

func (ds *ContentRepository) GetSceneByTitle(title string) (*model.Scene, error) {
	var scene model.Scene
	if err := ds.db.Where("title = ?", title).First(&scene).Error; err != nil {
		return nil, err
	}
	return &scene, nil
}

func (ds *ContentRepository) CreateScene(scene *model.Scene) (*model.Scene, error) {
	if scene.ID == "" {
		id, _ := uuid.NewV7()
		scene.ID = id.String()
	}
	scene.CreatedAt = time.Now()
	scene.UpdatedAt = time.Now()

	if err := ds.db.Create(scene).Error; err != nil {
		return nil, err
	}
	return scene, nil
}

// GetOrCreateScene looks a scene up by title and creates it when missing.
// The bool reports whether a row was created.
func (ds *ContentRepository) GetOrCreateScene(tx *gorm.DB, title string) (*model.Scene, bool, error) {
	if tx == nil {
		tx = ds.db
	}

	var scene model.Scene
	err := tx.Where("title = ?", title).First(&scene).Error
	if err == nil {
		return &scene, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	id, _ := uuid.NewV7()
	scene = model.Scene{
		ID:        id.String(),
		Title:     title,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := tx.Create(&scene).Error; err != nil {
		return nil, false, err
	}
	return &scene, true, nil
}

// DeleteScene removes a scene together with everything hanging off it:
// lessons, their progress rows, and the scene's phrases and dialogues.
func (ds *ContentRepository) DeleteScene(id string) error {
	return ds.db.Transaction(func(tx *gorm.DB) error {
		var lessonIDs []string
		if err := tx.Model(&model.Lesson{}).Where("scene_id = ?", id).Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}
		if len(lessonIDs) > 0 {
			if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.UserProgress{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("scene_id = ?", id).Delete(&model.Phrase{}).Error; err != nil {
			return err
		}
		if err := tx.Where("scene_id = ?", id).Delete(&model.Dialogue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("scene_id = ?", id).Delete(&model.Lesson{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Scene{}).Error
	})
}

// ==================== LESSON METHODS ====================

func (ds *ContentRepository) ListLessons(sceneID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	query := ds.db.Model(&model.Lesson{})

	if sceneID != "" {
		query = query.Where("scene_id = ?", sceneID)
	}

	if err := query.Order("created_at ASC").Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (ds *ContentRepository) GetLesson(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := ds.db.Where("id = ?", id).First(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

// GetLessonDetail loads a lesson with the phrases and dialogues assigned to
// it. Dialogues come back in conversation order.
func (ds *ContentRepository) GetLessonDetail(id string) (*model.Lesson, []model.Phrase, []model.Dialogue, error) {
	lesson, err := ds.GetLesson(id)
	if err != nil {
		return nil, nil, nil, err
	}

	var phrases []model.Phrase
	if err := ds.db.Where("lesson_id = ?", id).Find(&phrases).Error; err != nil {
		return nil, nil, nil, err
	}

	var dialogues []model.Dialogue
	if err := ds.db.Where("lesson_id = ?", id).Order("\"order\" ASC").Find(&dialogues).Error; err != nil {
		return nil, nil, nil, err
	}

	return lesson, phrases, dialogues, nil
}

func (ds *ContentRepository) CreateLesson(lesson *model.Lesson) (*model.Lesson, error) {
	if lesson.ID == "" {
		id, _ := uuid.NewV7()
		lesson.ID = id.String()
	}
	lesson.CreatedAt = time.Now()
	lesson.UpdatedAt = time.Now()

	if err := ds.db.Create(lesson).Error; err != nil {
		return nil, err
	}
	return lesson, nil
}

// GetOrCreateLesson looks a lesson up by (scene, title) and creates it when
// missing. The description is only set on create; later edits survive
// reconciliation runs.
func (ds *ContentRepository) GetOrCreateLesson(tx *gorm.DB, sceneID, title, description string) (*model.Lesson, bool, error) {
	if tx == nil {
		tx = ds.db
	}

	var lesson model.Lesson
	err := tx.Where("scene_id = ? AND title = ?", sceneID, title).First(&lesson).Error
	if err == nil {
		return &lesson, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	id, _ := uuid.NewV7()
	lesson = model.Lesson{
		ID:          id.String(),
		SceneID:     sceneID,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := tx.Create(&lesson).Error; err != nil {
		return nil, false, err
	}
	return &lesson, true, nil
}

// DeleteLesson removes a lesson together with its progress rows and the
// phrases and dialogues it owns. Scene-level content without a lesson link
// is untouched.
func (ds *ContentRepository) DeleteLesson(id string) error {
	return ds.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", id).Delete(&model.UserProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", id).Delete(&model.Phrase{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", id).Delete(&model.Dialogue{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Lesson{}).Error
	})
}

// ==================== PHRASE METHODS ====================

// ListPhrases returns phrases filtered by scene and/or lesson. Both filters
// compose with AND when both are set.
func (ds *ContentRepository) ListPhrases(sceneID, lessonID string) ([]model.Phrase, error) {
	var phrases []model.Phrase
	query := ds.db.Model(&model.Phrase{})

	if sceneID != "" {
		query = query.Where("scene_id = ?", sceneID)
	}
	if lessonID != "" {
		query = query.Where("lesson_id = ?", lessonID)
	}

	if err := query.Order("created_at ASC").Find(&phrases).Error; err != nil {
		return nil, err
	}
	return phrases, nil
}

func (ds *ContentRepository) GetPhraseByText(tx *gorm.DB, sceneID, textEN string) (*model.Phrase, error) {
	if tx == nil {
		tx = ds.db
	}
	var phrase model.Phrase
	if err := tx.Where("scene_id = ? AND text_en = ?", sceneID, textEN).First(&phrase).Error; err != nil {
		return nil, err
	}
	return &phrase, nil
}

func (ds *ContentRepository) CreatePhrase(tx *gorm.DB, phrase *model.Phrase) error {
	if tx == nil {
		tx = ds.db
	}
	if phrase.ID == "" {
		id, _ := uuid.NewV7()
		phrase.ID = id.String()
	}
	phrase.CreatedAt = time.Now()
	phrase.UpdatedAt = time.Now()
	return tx.Create(phrase).Error
}

func (ds *ContentRepository) UpdatePhrase(tx *gorm.DB, phrase *model.Phrase) error {
	if tx == nil {
		tx = ds.db
	}
	phrase.UpdatedAt = time.Now()
	return tx.Save(phrase).Error
}

// DeletePhrasesBySource removes phrases in a scene that carry the given
// provenance marker. User-authored rows are never touched.
func (ds *ContentRepository) DeletePhrasesBySource(tx *gorm.DB, sceneID, source string) error {
	if tx == nil {
		tx = ds.db
	}
	return tx.Where("scene_id = ? AND source = ?", sceneID, source).Delete(&model.Phrase{}).Error
}

// ==================== DIALOGUE METHODS ====================

// ListDialogues returns dialogue lines filtered by scene and/or lesson,
// always in ascending conversation order.
func (ds *ContentRepository) ListDialogues(sceneID, lessonID string) ([]model.Dialogue, error) {
	var dialogues []model.Dialogue
	query := ds.db.Model(&model.Dialogue{})

	if sceneID != "" {
		query = query.Where("scene_id = ?", sceneID)
	}
	if lessonID != "" {
		query = query.Where("lesson_id = ?", lessonID)
	}

	if err := query.Order("\"order\" ASC").Find(&dialogues).Error; err != nil {
		return nil, err
	}
	return dialogues, nil
}

func (ds *ContentRepository) GetDialogueByOrder(tx *gorm.DB, sceneID string, order int) (*model.Dialogue, error) {
	if tx == nil {
		tx = ds.db
	}
	var dialogue model.Dialogue
	if err := tx.Where("scene_id = ? AND \"order\" = ?", sceneID, order).First(&dialogue).Error; err != nil {
		return nil, err
	}
	return &dialogue, nil
}

func (ds *ContentRepository) CreateDialogue(tx *gorm.DB, dialogue *model.Dialogue) error {
	if tx == nil {
		tx = ds.db
	}
	if dialogue.ID == "" {
		id, _ := uuid.NewV7()
		dialogue.ID = id.String()
	}
	dialogue.CreatedAt = time.Now()
	dialogue.UpdatedAt = time.Now()
	return tx.Create(dialogue).Error
}

func (ds *ContentRepository) UpdateDialogue(tx *gorm.DB, dialogue *model.Dialogue) error {
	if tx == nil {
		tx = ds.db
	}
	dialogue.UpdatedAt = time.Now()
	return tx.Save(dialogue).Error
}

// DeleteDialoguesByLines removes dialogue lines in a scene whose English text
// matches one of the given lines. Used to purge superseded placeholder sets.
func (ds *ContentRepository) DeleteDialoguesByLines(tx *gorm.DB, sceneID string, lines []string) error {
	if tx == nil {
		tx = ds.db
	}
	if len(lines) == 0 {
		return nil
	}
	return tx.Where("scene_id = ? AND line_en IN ?", sceneID, lines).Delete(&model.Dialogue{}).Error
}

// ==================== STATS ====================

type ContentCounts struct {
	Scenes    int64
	Lessons   int64
	Phrases   int64
	Dialogues int64
}

func (ds *ContentRepository) Counts() (*ContentCounts, error) {
	var counts ContentCounts
	if err := ds.db.Model(&model.Scene{}).Count(&counts.Scenes).Error; err != nil {
		return nil, err
	}
	if err := ds.db.Model(&model.Lesson{}).Count(&counts.Lessons).Error; err != nil {
		return nil, err
	}
	if err := ds.db.Model(&model.Phrase{}).Count(&counts.Phrases).Error; err != nil {
		return nil, err
	}
	if err := ds.db.Model(&model.Dialogue{}).Count(&counts.Dialogues).Error; err != nil {
		return nil, err
	}
	return &counts, nil
}
