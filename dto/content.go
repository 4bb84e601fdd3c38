package dto

// Scene DTOs
type SceneResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	LessonCount int    `json:"lesson_count"`
}

type SceneDetailResponse struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Lessons   []LessonResponse   `json:"lessons"`
	Phrases   []PhraseResponse   `json:"phrases"`
	Dialogues []DialogueResponse `json:"dialogues"`
}

type SceneCollectionResponse struct {
	Scenes []SceneResponse `json:"scenes"`
	Total  int             `json:"total"`
}

type CreateSceneRequest struct {
	Title string `json:"title" validate:"required,max=120"`
}

func (r CreateSceneRequest) Validate() error {
	return GetValidator().Struct(r)
}

// Lesson DTOs
type LessonResponse struct {
	ID          string `json:"id"`
	SceneID     string `json:"scene_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// LessonDetailResponse embeds the phrases and dialogues owned by the lesson.
// Collaborators use this shape for single-record detail views only.
type LessonDetailResponse struct {
	ID          string             `json:"id"`
	SceneID     string             `json:"scene_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Phrases     []PhraseResponse   `json:"lesson_phrases"`
	Dialogues   []DialogueResponse `json:"lesson_dialogues"`
}

type LessonCollectionResponse struct {
	Lessons []LessonResponse `json:"lessons"`
	Total   int              `json:"total"`
}

type CreateLessonRequest struct {
	SceneID     string `json:"scene_id" validate:"required"`
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description"`
}

func (r CreateLessonRequest) Validate() error {
	return GetValidator().Struct(r)
}

// Phrase DTOs
type PhraseResponse struct {
	ID       string  `json:"id"`
	SceneID  string  `json:"scene_id"`
	LessonID *string `json:"lesson_id"`
	TextEN   string  `json:"text_en"`
	TextJA   string  `json:"text_ja"`
	Note     string  `json:"note"`
	Source   string  `json:"source"`
}

type PhraseCollectionResponse struct {
	Phrases []PhraseResponse `json:"phrases"`
	Total   int              `json:"total"`
}

// Dialogue DTOs
type DialogueResponse struct {
	ID       string  `json:"id"`
	SceneID  string  `json:"scene_id"`
	LessonID *string `json:"lesson_id"`
	Speaker  string  `json:"speaker"`
	LineEN   string  `json:"line_en"`
	LineJA   string  `json:"line_ja"`
	Order    int     `json:"order"`
}

type DialogueCollectionResponse struct {
	Dialogues []DialogueResponse `json:"dialogues"`
	Total     int                `json:"total"`
}

// ContentFilterRequest carries the optional, composable listing filters for
// phrases and dialogues. Both filters apply together (AND) when both are set.
type ContentFilterRequest struct {
	Scene  string `json:"scene" query:"scene"`
	Lesson string `json:"lesson" query:"lesson"`
}

// Stats
type ContentStatsResponse struct {
	Scenes    int64 `json:"scenes"`
	Lessons   int64 `json:"lessons"`
	Phrases   int64 `json:"phrases"`
	Dialogues int64 `json:"dialogues"`
}

// SeedResultResponse reports what a curriculum reconciliation run changed.
type SeedResultResponse struct {
	LessonsCreated   int `json:"lessons_created"`
	PhrasesCreated   int `json:"phrases_created"`
	DialoguesCreated int `json:"dialogues_created"`
	PhrasesUpdated   int `json:"phrases_updated"`
	DialoguesUpdated int `json:"dialogues_updated"`
}
