package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/strandworks/genchat/core/generate"
	"github.com/strandworks/genchat/tools"
)

// registerBuiltinTools fills the registry with the local tools the agent
// command exposes to the model.
func registerBuiltinTools(registry *tools.Registry) {
	must(registry.Register(&generate.FunctionDeclaration{
		Name:        "datetime",
		Description: "Returns the current date and time in RFC3339 format.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}, handleDatetime))

	must(registry.Register(&generate.FunctionDeclaration{
		Name:        "read_file",
		Description: "Reads the contents of a file at the given path.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Absolute or relative path to the file to read.",
				},
			},
			"required": []string{"path"},
		},
	}, handleReadFile))

	must(registry.Register(&generate.FunctionDeclaration{
		Name:        "list_directory",
		Description: "Lists files and directories at the given path.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Absolute or relative path to the directory to list.",
				},
			},
		},
	}, handleListDirectory))
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("failed to register tool: %v", err))
	}
}

func handleDatetime(_ context.Context, _ map[string]any) (map[string]any, error) {
	return map[string]any{"datetime": time.Now().Format(time.RFC3339)}, nil
}

func handleReadFile(_ context.Context, args map[string]any) (map[string]any, error) {
	path, _ := args["path"].(string)
	if path == "" {
		return nil, errors.New("path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return map[string]any{"content": string(data)}, nil
}

func handleListDirectory(_ context.Context, args map[string]any) (map[string]any, error) {
	path, _ := args["path"].(string)
	if path == "" {
		path = "."
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return map[string]any{"entries": names}, nil
}
