package seeders

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed curriculum.yaml
var defaultCurriculum []byte

// Curriculum is the full seed data set: the scenes to reconcile and the
// legacy placeholder dialogue lines to purge.
type Curriculum struct {
	LegacyDialogueLines []string    `yaml:"legacy_dialogue_lines"`
	Scenes              []SceneSeed `yaml:"scenes"`
}

type SceneSeed struct {
	Title     string         `yaml:"title"`
	Lessons   []string       `yaml:"lessons"`
	Phrases   []PhraseSeed   `yaml:"phrases"`
	Dialogues []DialogueSeed `yaml:"dialogues"`
}

type PhraseSeed struct {
	EN string `yaml:"en"`
	JA string `yaml:"ja"`
}

type DialogueSeed struct {
	Speaker string `yaml:"speaker"`
	EN      string `yaml:"en"`
	JA      string `yaml:"ja"`
	Order   int    `yaml:"order"`
}

// LoadCurriculum reads a curriculum from path, or the embedded default when
// path is empty.
func LoadCurriculum(path string) (*Curriculum, error) {
	data := defaultCurriculum
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read curriculum file: %w", err)
		}
	}

	var curriculum Curriculum
	if err := yaml.Unmarshal(data, &curriculum); err != nil {
		return nil, fmt.Errorf("failed to parse curriculum: %w", err)
	}

	if err := curriculum.Validate(); err != nil {
		return nil, err
	}

	return &curriculum, nil
}

// Validate rejects curricula that would leave content orphaned.
func (c *Curriculum) Validate() error {
	if len(c.Scenes) == 0 {
		return fmt.Errorf("curriculum has no scenes")
	}

	for _, scene := range c.Scenes {
		if scene.Title == "" {
			return fmt.Errorf("curriculum contains a scene without a title")
		}
		if len(scene.Lessons) == 0 {
			return fmt.Errorf("scene %q has no lessons", scene.Title)
		}
		seenOrders := make(map[int]bool)
		for _, d := range scene.Dialogues {
			if seenOrders[d.Order] {
				return fmt.Errorf("scene %q has duplicate dialogue order %d", scene.Title, d.Order)
			}
			seenOrders[d.Order] = true
		}
	}

	return nil
}
