package service

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"lessonhub/internal/model"

	"github.com/rs/zerolog"
)

type CodeRunner interface {
	ValidateCode(ctx context.Context, code, language, expectedOutput string) (*model.CodeValidation, error)
}

type codeRunner struct {
	pythonBin string
	nodeBin   string
	logger    zerolog.Logger
}

// NewCodeRunner creates a CodeRunner that runs snippets with the given interpreters.
func NewCodeRunner(pythonBin, nodeBin string, logger zerolog.Logger) CodeRunner {
	return &codeRunner{
		pythonBin: pythonBin,
		nodeBin:   nodeBin,
		logger:    logger.With().Str("service", "CodeRunner").Logger(),
	}
}

func (r *codeRunner) command(language string) (bin, flag string, err error) {
	switch strings.ToLower(language) {
	case "python":
		return r.pythonBin, "-c", nil
	case "javascript", "js":
		return r.nodeBin, "-e", nil
	}
	return "", "", fmt.Errorf("Unsupported language: %s", language)
}

// ValidateCode runs code and compares its trimmed stdout with expectedOutput.
// Any stderr output fails the run even when the process exits cleanly. The process
// is not given a deadline of its own; only ctx can stop it.
func (r *codeRunner) ValidateCode(ctx context.Context, code, language, expectedOutput string) (*model.CodeValidation, error) {
	bin, flag, err := r.command(language)
	if err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, flag, code)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if runErr != nil {
		if _, exited := runErr.(*exec.ExitError); !exited {
			r.logger.Error().Err(runErr).Str("bin", bin).Msg("Failed to start interpreter")
			return nil, fmt.Errorf("Failed to execute code: %v", runErr)
		}
	}

	out := stdout.String()
	res := &model.CodeValidation{
		Output:    out,
		IsCorrect: strings.TrimSpace(out) == expectedOutput,
	}
	switch {
	case stderr.Len() > 0:
		msg := stderr.String()
		res.Error = &msg
	case runErr != nil:
		msg := runErr.Error()
		res.Error = &msg
	default:
		res.Success = true
	}
	r.logger.Debug().Str("language", language).Bool("success", res.Success).Bool("is_correct", res.IsCorrect).Msg("Code validated")
	return res, nil
}
