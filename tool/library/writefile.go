package library

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/simmyhq/simmy/pubsub"
	"github.com/simmyhq/simmy/tool"
)

// WriteFile returns a tool that writes text content to a file, creating
// parent directories as needed.
func WriteFile() tool.Definition {
	return tool.Must("write_file", runWriteFile,
		tool.Description("Write text content to a file on disk, replacing it if it exists."),
		tool.Parameters(tool.Object([]string{"path", "content"},
			tool.P("path", tool.String("The path of the file to write.")),
			tool.P("content", tool.String("The content to write to the file.")),
		)),
	)
}

func runWriteFile(_ *pubsub.Bus, args tool.Args) (string, error) {
	path := args.String("path")
	content := args.String("content")

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating directory for %s failed: %w", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s failed: %w", path, err)
	}
	return fmt.Sprintf("Wrote %d bytes to %s.", len(content), path), nil
}
