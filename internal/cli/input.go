package cli

import (
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/GuilfordHill/SVMesh/pkg/errors"
	"github.com/GuilfordHill/SVMesh/pkg/pipeline"
)

// input is diagram text together with where it came from.
type input struct {
	source string // file path, or "stdin"
	text   string
}

// fromStdin reports whether args select standard input.
func fromStdin(args []string) bool {
	return len(args) == 0 || args[0] == "-"
}

// readInput reads the diagram named by args, or stdin when args is empty or "-".
// Input is capped one byte past the pipeline limit so oversize text is
// rejected by validation rather than truncated.
func readInput(stdin io.Reader, args []string) (input, error) {
	if fromStdin(args) {
		data, err := io.ReadAll(io.LimitReader(stdin, pipeline.MaxInputBytes+1))
		if err != nil {
			return input{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return input{source: pipeline.DefaultSource, text: string(data)}, nil
	}

	path := args[0]
	if err := errors.ValidatePath(path); err != nil {
		return input{}, err
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return input{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s does not exist", path)
	}
	if err != nil {
		return input{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "stat %s", path)
	}
	if info.IsDir() {
		return input{}, errors.New(errors.ErrCodeInvalidInput, "%s is a directory", path)
	}
	if info.Size() > pipeline.MaxInputBytes {
		return input{}, errors.New(errors.ErrCodeInputTooLarge, "%s is %d bytes (max %d)", path, info.Size(), pipeline.MaxInputBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return input{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return input{source: path, text: string(data)}, nil
}

// basePath derives the base output path from the output flag and input source.
// If output is empty, it strips the extension from the input file; stdin
// input falls back to "diagram" in the working directory.
// If output carries a known format extension, that extension is stripped.
func basePath(output, source string) string {
	if output == "" {
		if source == pipeline.DefaultSource || source == "" {
			return "diagram"
		}
		return strings.TrimSuffix(source, filepath.Ext(source))
	}
	// Longest first so ".nodelink.svg" wins over ".svg".
	exts := slices.SortedFunc(maps.Values(pipeline.FormatExt), func(a, b string) int { return len(b) - len(a) })
	for _, ext := range exts {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}
