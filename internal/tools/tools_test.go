package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

type panickingTool struct{}

func (panickingTool) Name() string               { return "boom" }
func (panickingTool) Description() string        { return "always panics" }
func (panickingTool) Parameters() map[string]any { return map[string]any{} }
func (panickingTool) Execute(ctx context.Context, args map[string]any) Result {
	panic("tool exploded")
}

func TestRegistryExecuteRecoversFromToolPanic(t *testing.T) {
	reg := NewRegistry()
	reg.Register(panickingTool{})

	result := reg.Execute(context.Background(), "boom", nil)
	if result.Success {
		t.Error("Success = true, want false for a panicking tool")
	}
	if result.Error == "" {
		t.Error("Error is empty, want the recovered panic message")
	}
}

func TestRegistryExecuteUnknownToolName(t *testing.T) {
	reg := NewRegistry()
	result := reg.Execute(context.Background(), "nonexistent", nil)
	if result.Success {
		t.Error("Success = true, want false for an unregistered tool name")
	}
}

func TestRegistryNamesPreservesRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&ReadFileTool{})
	reg.Register(&WriteFileTool{})

	names := reg.Names()
	if len(names) != 2 || names[0] != "read_file" || names[1] != "write_file" {
		t.Errorf("Names() = %v, want [read_file write_file] in registration order", names)
	}
}

func TestCreateExpandsToolSetsAndDeduplicates(t *testing.T) {
	reg, err := Create([]string{"basic", "read_file"}, t.TempDir())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	names := reg.Names()
	seen := map[string]int{}
	for _, n := range names {
		seen[n]++
	}
	if seen["read_file"] != 1 {
		t.Errorf("read_file registered %d times, want exactly 1 after deduplication", seen["read_file"])
	}
	if len(names) != 3 {
		t.Errorf("Names() = %v, want the 3 distinct tools in the basic set", names)
	}
}

func TestCreateUnknownNameErrors(t *testing.T) {
	_, err := Create([]string{"not_a_real_tool_or_set"}, t.TempDir())
	if err == nil {
		t.Fatal("expected an error for an unknown tool/set name")
	}
}

func TestResolvePathRejectsEscapingWorkspace(t *testing.T) {
	ws := t.TempDir()
	if _, err := resolvePath(ws, "../../etc/passwd"); err == nil {
		t.Fatal("expected resolvePath to reject a path escaping the workspace")
	}
}

func TestResolvePathAllowsNestedPath(t *testing.T) {
	ws := t.TempDir()
	full, err := resolvePath(ws, "sub/dir/file.txt")
	if err != nil {
		t.Fatalf("resolvePath() error = %v", err)
	}
	if filepath.Dir(full) != filepath.Join(ws, "sub", "dir") {
		t.Errorf("resolvePath() = %q, unexpected", full)
	}
}

func TestWriteThenReadFileRoundTrip(t *testing.T) {
	ws := t.TempDir()
	write := &WriteFileTool{workspace: ws}
	res := write.Execute(context.Background(), map[string]any{"path": "notes.txt", "content": "hello"})
	if !res.Success {
		t.Fatalf("write Execute() failed: %+v", res)
	}

	read := &ReadFileTool{workspace: ws}
	res = read.Execute(context.Background(), map[string]any{"path": "notes.txt"})
	if !res.Success || res.Output != "hello" {
		t.Errorf("read Execute() = %+v, want success with output %q", res, "hello")
	}

	if _, err := os.Stat(filepath.Join(ws, "notes.txt")); err != nil {
		t.Errorf("expected file on disk: %v", err)
	}
}
