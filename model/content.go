// model/content.go
package model

import (
	"time"
)

// Scene is a top-level curriculum topic, e.g. a phase of the software
// development lifecycle. The seeder treats the title as the natural key.
type Scene struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Lessons   []Lesson   `json:"lessons,omitempty" gorm:"foreignKey:SceneID;constraint:OnDelete:CASCADE"`
	Phrases   []Phrase   `json:"phrases,omitempty" gorm:"foreignKey:SceneID;constraint:OnDelete:CASCADE"`
	Dialogues []Dialogue `json:"dialogues,omitempty" gorm:"foreignKey:SceneID;constraint:OnDelete:CASCADE"`
}

// Lesson is a named unit of instruction within a Scene. (scene_id, title) is
// the natural key used by the seeder.
type Lesson struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	SceneID     string    `json:"scene_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationship
	Scene Scene `json:"-" gorm:"foreignKey:SceneID"`
}

// Phrase is a bilingual example sentence. Always tied to a Scene, optionally
// to a Lesson for fine-grained grouping. Source marks provenance: records
// written by the reconciling seeder carry shared.SourceSeeder and may be
// purged and rewritten by it; anything else survives seeder runs untouched.
type Phrase struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	SceneID   string    `json:"scene_id" gorm:"not null;index"`
	LessonID  *string   `json:"lesson_id" gorm:"index"`
	TextEN    string    `json:"text_en" gorm:"not null"`
	TextJA    string    `json:"text_ja" gorm:"not null"`
	Note      string    `json:"note" gorm:"type:text"`
	Source    string    `json:"source" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Dialogue is an ordered, speaker-attributed bilingual line within a Scene.
// Order is unique within a scene and drives the default listing order.
type Dialogue struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	SceneID   string    `json:"scene_id" gorm:"not null;uniqueIndex:idx_scene_order"`
	LessonID  *string   `json:"lesson_id" gorm:"index"`
	Speaker   string    `json:"speaker" gorm:"not null"`
	LineEN    string    `json:"line_en" gorm:"type:text;not null"`
	LineJA    string    `json:"line_ja" gorm:"type:text;not null"`
	Order     int       `json:"order" gorm:"column:order;not null;uniqueIndex:idx_scene_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
