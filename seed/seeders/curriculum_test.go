package seeders

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedCurriculum(t *testing.T) {
	curriculum, err := LoadCurriculum("")
	if err != nil {
		t.Fatalf("LoadCurriculum error: %v", err)
	}

	if len(curriculum.Scenes) != 6 {
		t.Fatalf("scenes = %d, want 6", len(curriculum.Scenes))
	}
	if len(curriculum.LegacyDialogueLines) == 0 {
		t.Fatal("expected legacy dialogue lines in the embedded curriculum")
	}

	for _, scene := range curriculum.Scenes {
		if len(scene.Lessons) != 5 {
			t.Fatalf("scene %q has %d lessons, want 5", scene.Title, len(scene.Lessons))
		}
		if len(scene.Phrases) != 5 {
			t.Fatalf("scene %q has %d phrases, want 5", scene.Title, len(scene.Phrases))
		}
		if len(scene.Dialogues) != 5 {
			t.Fatalf("scene %q has %d dialogues, want 5", scene.Title, len(scene.Dialogues))
		}
	}
}

func TestLoadCurriculumFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curriculum.yaml")
	content := `scenes:
  - title: "Custom Scene"
    lessons:
      - "Lesson One"
    phrases:
      - en: "Hello"
        ja: "こんにちは"
    dialogues:
      - speaker: "A"
        en: "Hi"
        ja: "やあ"
        order: 1
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write curriculum file: %v", err)
	}

	curriculum, err := LoadCurriculum(path)
	if err != nil {
		t.Fatalf("LoadCurriculum error: %v", err)
	}
	if len(curriculum.Scenes) != 1 || curriculum.Scenes[0].Title != "Custom Scene" {
		t.Fatalf("unexpected curriculum: %+v", curriculum)
	}
}

func TestLoadCurriculumMissingFile(t *testing.T) {
	if _, err := LoadCurriculum(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCurriculumValidate(t *testing.T) {
	cases := []struct {
		name       string
		curriculum Curriculum
		wantErr    bool
	}{
		{
			name:       "no scenes",
			curriculum: Curriculum{},
			wantErr:    true,
		},
		{
			name: "untitled scene",
			curriculum: Curriculum{Scenes: []SceneSeed{
				{Lessons: []string{"L"}},
			}},
			wantErr: true,
		},
		{
			name: "scene without lessons",
			curriculum: Curriculum{Scenes: []SceneSeed{
				{Title: "S"},
			}},
			wantErr: true,
		},
		{
			name: "duplicate dialogue order",
			curriculum: Curriculum{Scenes: []SceneSeed{
				{Title: "S", Lessons: []string{"L"}, Dialogues: []DialogueSeed{
					{Speaker: "A", EN: "a", JA: "a", Order: 1},
					{Speaker: "B", EN: "b", JA: "b", Order: 1},
				}},
			}},
			wantErr: true,
		},
		{
			name: "valid",
			curriculum: Curriculum{Scenes: []SceneSeed{
				{Title: "S", Lessons: []string{"L"}, Dialogues: []DialogueSeed{
					{Speaker: "A", EN: "a", JA: "a", Order: 1},
					{Speaker: "B", EN: "b", JA: "b", Order: 2},
				}},
			}},
			wantErr: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.curriculum.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
