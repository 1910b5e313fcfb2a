package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-kd-raytracer/pkg/log"
)

var logger = log.New("scene")

const (
	builtinGroup = "Built-in Scenes"
	fileGroup    = "Scene Files"

	// SceneFileExt is the extension of scene description files
	SceneFileExt = ".ray"
)

// DefaultSceneDirs are searched in order for scene files
var DefaultSceneDirs = []string{"scenes", "../scenes"}

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to scene file (file type only)
	Variant     string `json:"variant"`     // Variant name (optional)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete scene listing
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// findSceneDir returns the first existing directory of dirs, or ""
func findSceneDir(dirs []string) string {
	for _, path := range dirs {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListFileScenes scans the first existing directory of dirs for scene files
func ListFileScenes(dirs ...string) ([]SceneInfo, error) {
	if len(dirs) == 0 {
		dirs = DefaultSceneDirs
	}
	scenesDir := findSceneDir(dirs)
	if scenesDir == "" {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(scenesDir, "*"+SceneFileExt))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		info, err := ParseMetadata(filePath)
		if err != nil {
			logger.Warningf("failed to parse metadata for %s: %v", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ParseMetadata extracts metadata from the header comments of a scene file.
// Missing fields fall back to values derived from the file name.
func ParseMetadata(filePath string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	info := SceneInfo{
		ID:          "file:" + base,
		Name:        titleCase(base),
		DisplayName: titleCase(base),
		Group:       fileGroup,
		Type:        "file",
		FilePath:    filePath,
	}

	// Unreadable files keep the fallback values
	file, err := os.Open(filePath)
	if err != nil {
		return info, nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		// Metadata only appears before the first statement
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		key, value, ok := strings.Cut(content, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "Scene":
			info.Name = value
		case "Variant":
			info.Variant = value
		case "Description":
			info.Description = value
		case "Group":
			info.Group = value
		}
	}

	if info.Variant != "" {
		info.DisplayName = fmt.Sprintf("%s - %s", info.Name, info.Variant)
	} else {
		info.DisplayName = info.Name
	}
	return info, scanner.Err()
}

// builtinInfos describes the built-in scenes
func builtinInfos() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		infos = append(infos, SceneInfo{
			ID:          b.ID,
			Name:        b.Name,
			DisplayName: b.Name,
			Description: b.Description,
			Group:       builtinGroup,
			Type:        "builtin",
		})
	}
	return infos
}

// ListAllScenes returns built-in and file scenes grouped by category, with
// the built-in group first and the rest alphabetical
func ListAllScenes(dirs ...string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListFileScenes(dirs...)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	groupMap := make(map[string][]SceneInfo)
	for _, info := range append(builtinInfos(), fileScenes...) {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	var groupNames []string
	for name := range groupMap {
		if name != builtinGroup {
			groupNames = append(groupNames, name)
		}
	}
	sort.Strings(groupNames)

	if group, ok := groupMap[builtinGroup]; ok {
		response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: group})
	}
	for _, name := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: name, Scenes: groupMap[name]})
	}
	return response, nil
}

// Resolve turns a scene reference into a scene. The reference may be a
// built-in ID, a path to a scene file, or the ID or base name of a file
// found in the scene directories.
func Resolve(ref string, dirs ...string) (*Scene, error) {
	if b, ok := LookupBuiltin(ref); ok {
		return b.Build(), nil
	}

	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return Load(ref)
	}

	fileScenes, err := ListFileScenes(dirs...)
	if err != nil {
		return nil, err
	}
	want := strings.TrimSuffix(strings.TrimPrefix(ref, "file:"), SceneFileExt)
	for _, info := range fileScenes {
		base := strings.TrimSuffix(filepath.Base(info.FilePath), SceneFileExt)
		if base == want {
			return Load(info.FilePath)
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, ref)
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
