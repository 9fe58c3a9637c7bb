package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"two-balls", "Two Balls"},
		{"glass_shell", "Glass Shell"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func writeSceneFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestParseFileMetadata(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name: "complete.yaml",
			content: `# Scene: Glass Pair
# Description: Two glass balls
# Group: Glass
spheres: []`,
			expected: SceneInfo{
				ID:          "file:complete",
				Name:        "Glass Pair",
				Description: "Two glass balls",
				Group:       "Glass",
				Type:        "file",
			},
		},
		{
			name:    "no-metadata.yml",
			content: `spheres: []`,
			expected: SceneInfo{
				ID:    "file:no-metadata",
				Name:  "No Metadata",
				Group: fileGroup,
				Type:  "file",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSceneFile(t, dir, tc.name, tc.content)
			tc.expected.FilePath = path

			info, err := ParseFileMetadata(path)
			if err != nil {
				t.Fatalf("ParseFileMetadata failed: %v", err)
			}
			if info != tc.expected {
				t.Errorf("ParseFileMetadata = %+v, want %+v", info, tc.expected)
			}
		})
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "b.yaml", "# Group: Zeta\nspheres: []")
	writeSceneFile(t, dir, "a.yaml", "# Group: Alpha\nspheres: []")
	writeSceneFile(t, dir, "notes.txt", "ignored")

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes failed: %v", err)
	}

	var groups []string
	for _, group := range response.Groups {
		groups = append(groups, group.Name)
	}
	expected := []string{builtinGroup, "Alpha", "Zeta"}
	if len(groups) != len(expected) {
		t.Fatalf("Expected groups %v, got %v", expected, groups)
	}
	for i := range expected {
		if groups[i] != expected[i] {
			t.Errorf("Group %d: expected %q, got %q", i, expected[i], groups[i])
		}
	}
	if len(response.Groups[0].Scenes) != len(Names()) {
		t.Errorf("Expected %d built-in scenes, got %d", len(Names()), len(response.Groups[0].Scenes))
	}
}

func TestListSceneFiles_MissingDir(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Expected no error for missing directory, got %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("Expected no scenes, got %d", len(scenes))
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "single.yaml", `
render:
  samples: 4
materials:
  gray: {type: diffuse, albedo: [0.5, 0.5, 0.5]}
spheres:
  - center: [0, 0, -1]
    radius: 0.5
    material: gray
`)

	s, f, err := Resolve("file:single", dir, Options{})
	if err != nil {
		t.Fatalf("Resolve file scene failed: %v", err)
	}
	if f == nil || f.Render.Samples != 4 {
		t.Errorf("Expected the parsed file to be returned, got %+v", f)
	}
	if s.Name != "single" || s.World.Len() != 1 {
		t.Errorf("Unexpected scene %q with %d entries", s.Name, s.World.Len())
	}

	s, f, err = Resolve("default", dir, Options{})
	if err != nil {
		t.Fatalf("Resolve builtin failed: %v", err)
	}
	if f != nil || s.Name != "default" {
		t.Errorf("Expected built-in default scene without file, got %q", s.Name)
	}

	for _, id := range []string{"file:missing", "file:../single", "file:", "nope"} {
		if _, _, err := Resolve(id, dir, Options{}); !errors.Is(err, ErrUnknownScene) {
			t.Errorf("Resolve(%q): expected ErrUnknownScene, got %v", id, err)
		}
	}
}
