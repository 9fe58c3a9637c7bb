package scene

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const (
	builtinGroup = "Built-in Scenes"
	fileGroup    = "Scene Files"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, "file:<name>" for scene files
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the YAML file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// ListSceneFiles scans dir for YAML scene files. A missing directory is not
// an error and yields an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, errors.Wrap(err, "scan scenes directory")
		}
		files = append(files, matches...)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		info, err := ParseFileMetadata(filePath)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseFileMetadata reads "# Scene:", "# Description:" and "# Group:" header
// comments from a scene file. Missing fields fall back to the file name.
func ParseFileMetadata(filePath string) (SceneInfo, error) {
	name := NameFromPath(filePath)
	info := SceneInfo{
		ID:       "file:" + name,
		Name:     titleCase(name),
		Group:    fileGroup,
		Type:     "file",
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return info, errors.Wrapf(err, "open %s", filePath)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		switch {
		case strings.HasPrefix(content, "Scene:"):
			info.Name = strings.TrimSpace(strings.TrimPrefix(content, "Scene:"))
		case strings.HasPrefix(content, "Description:"):
			info.Description = strings.TrimSpace(strings.TrimPrefix(content, "Description:"))
		case strings.HasPrefix(content, "Group:"):
			info.Group = strings.TrimSpace(strings.TrimPrefix(content, "Group:"))
		}
	}

	return info, errors.Wrapf(scanner.Err(), "read %s", filePath)
}

// ListAllScenes returns built-in scenes first, then scene files found in dir
// grouped alphabetically
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	builtinScenes := make([]SceneInfo, 0, len(builtins))
	for _, name := range Names() {
		builtinScenes = append(builtinScenes, SceneInfo{
			ID:          name,
			Name:        titleCase(name),
			Description: Description(name),
			Group:       builtinGroup,
			Type:        "builtin",
		})
	}
	response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: builtinScenes})

	fileScenes, err := ListSceneFiles(dir)
	if err != nil {
		return response, errors.Wrap(err, "list scene files")
	}

	groupMap := make(map[string][]SceneInfo)
	for _, info := range fileScenes {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}
	groupNames := make([]string, 0, len(groupMap))
	for groupName := range groupMap {
		groupNames = append(groupNames, groupName)
	}
	sort.Strings(groupNames)

	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}
	return response, nil
}

// Resolve loads a scene by the ID reported in SceneInfo: a built-in name or
// "file:<name>" for a YAML file in dir
func Resolve(id, dir string, opts Options) (*Scene, *File, error) {
	if !strings.HasPrefix(id, "file:") {
		s, err := Load(id, opts)
		return s, nil, err
	}

	name := strings.TrimPrefix(id, "file:")
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, nil, errors.Wrapf(ErrUnknownScene, "%q", id)
	}

	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		f, err := LoadFile(path)
		if err != nil {
			return nil, nil, err
		}
		s, err := f.Build(name, opts.Camera)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "build scene %q", id)
		}
		return s, f, nil
	}
	return nil, nil, errors.Wrapf(ErrUnknownScene, "%q", id)
}

// titleCase converts a filename-style string to title case
// e.g., "two-balls" -> "Two Balls"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
