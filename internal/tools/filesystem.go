package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadFileTool reads the complete contents of a workspace-relative file.
type ReadFileTool struct{ workspace string }

func (t *ReadFileTool) Name() string        { return "read_file" }
func (t *ReadFileTool) Description() string { return "Read the complete contents of a file" }
func (t *ReadFileTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path": map[string]any{"type": "string", "description": "File path relative to workspace root"},
		},
		"required": []string{"path"},
	}
}

func (t *ReadFileTool) Execute(ctx context.Context, args map[string]any) Result {
	path, _ := args["path"].(string)
	full, err := resolvePath(t.workspace, path)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	content, err := os.ReadFile(full)
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("error reading file: %v", err)}
	}
	lines := strings.Count(string(content), "\n") + 1
	return Result{Success: true, Output: string(content), Metadata: map[string]any{"lines": lines, "bytes": len(content)}}
}

// WriteFileTool writes content to a workspace-relative file, creating
// parent directories and overwriting existing content.
type WriteFileTool struct{ workspace string }

func (t *WriteFileTool) Name() string { return "write_file" }
func (t *WriteFileTool) Description() string {
	return "Write content to a file, creating it if it doesn't exist (overwrites existing files)"
}
func (t *WriteFileTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path":    map[string]any{"type": "string"},
			"content": map[string]any{"type": "string"},
		},
		"required": []string{"path", "content"},
	}
}

func (t *WriteFileTool) Execute(ctx context.Context, args map[string]any) Result {
	path, _ := args["path"].(string)
	content, _ := args["content"].(string)
	full, err := resolvePath(t.workspace, path)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return Result{Success: false, Error: fmt.Sprintf("error creating directories: %v", err)}
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return Result{Success: false, Error: fmt.Sprintf("error writing file: %v", err)}
	}
	return Result{Success: true, Output: fmt.Sprintf("wrote %d bytes to %s", len(content), path), FilesChanged: []string{path}}
}

// EditFileTool replaces the single occurrence of oldText with newText in a
// workspace-relative file; it fails when oldText is absent or occurs more
// than once.
type EditFileTool struct{ workspace string }

func (t *EditFileTool) Name() string        { return "edit_file" }
func (t *EditFileTool) Description() string { return "Replace text in an existing file" }
func (t *EditFileTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path":     map[string]any{"type": "string"},
			"old_text": map[string]any{"type": "string"},
			"new_text": map[string]any{"type": "string"},
		},
		"required": []string{"path", "old_text", "new_text"},
	}
}

func (t *EditFileTool) Execute(ctx context.Context, args map[string]any) Result {
	path, _ := args["path"].(string)
	oldText, _ := args["old_text"].(string)
	newText, _ := args["new_text"].(string)

	full, err := resolvePath(t.workspace, path)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("error reading file: %v", err)}
	}
	content := string(data)
	if !strings.Contains(content, oldText) {
		return Result{Success: false, Error: "old_text not found in file"}
	}
	if strings.Count(content, oldText) > 1 {
		return Result{Success: false, Error: "old_text is not unique in file"}
	}
	updated := strings.Replace(content, oldText, newText, 1)
	if err := os.WriteFile(full, []byte(updated), 0o644); err != nil {
		return Result{Success: false, Error: fmt.Sprintf("error writing file: %v", err)}
	}
	return Result{Success: true, Output: fmt.Sprintf("edited %s", path), FilesChanged: []string{path}}
}

// ListFilesTool lists files under a workspace-relative directory.
type ListFilesTool struct{ workspace string }

func (t *ListFilesTool) Name() string        { return "list_files" }
func (t *ListFilesTool) Description() string { return "List files under a directory" }
func (t *ListFilesTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path": map[string]any{"type": "string", "description": "Directory path relative to workspace root, default \".\""},
		},
	}
}

func (t *ListFilesTool) Execute(ctx context.Context, args map[string]any) Result {
	path, _ := args["path"].(string)
	if path == "" {
		path = "."
	}
	full, err := resolvePath(t.workspace, path)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	var names []string
	err = filepath.WalkDir(full, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == full {
			return nil
		}
		rel, _ := filepath.Rel(t.workspace, p)
		names = append(names, rel)
		return nil
	})
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("error listing files: %v", err)}
	}
	return Result{Success: true, Output: strings.Join(names, "\n"), Metadata: map[string]any{"count": len(names)}}
}

// SearchCodeTool performs a simple substring search across workspace files.
type SearchCodeTool struct{ workspace string }

func (t *SearchCodeTool) Name() string        { return "search_code" }
func (t *SearchCodeTool) Description() string { return "Search file contents for a literal substring" }
func (t *SearchCodeTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{"type": "string"},
		},
		"required": []string{"query"},
	}
}

func (t *SearchCodeTool) Execute(ctx context.Context, args map[string]any) Result {
	query, _ := args["query"].(string)
	if query == "" {
		return Result{Success: false, Error: "query is required"}
	}

	var matches []string
	err := filepath.WalkDir(t.workspace, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		data, readErr := os.ReadFile(p)
		if readErr != nil {
			return nil
		}
		if strings.Contains(string(data), query) {
			rel, _ := filepath.Rel(t.workspace, p)
			matches = append(matches, rel)
		}
		return nil
	})
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("error searching: %v", err)}
	}
	return Result{Success: true, Output: strings.Join(matches, "\n"), Metadata: map[string]any{"count": len(matches)}}
}
