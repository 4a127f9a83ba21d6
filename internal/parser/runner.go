package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"keema/internal/models"
)

const (
	outputPattern   = "replay-*.json"
	waitDelay       = 2 * time.Second
	maxReportedTail = 512
)

type Config struct {
	Command string        `env:"COMMAND" envDefault:"node"`
	Script  string        `env:"SCRIPT" envDefault:"./parser/parse.cjs"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"60s"`
	Workers int           `env:"WORKERS" envDefault:"4"`
	TempDir string        `env:"TEMP_DIR" envDefault:""`
}

// Runner invokes the external replay parser as
// `<command> [script] <replay> <output.json>` and returns the document it wrote.
type Runner struct {
	cfg Config
}

func NewRunner(cfg *Config) *Runner {
	c := *cfg
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
	return &Runner{cfg: c}
}

func (r *Runner) Parse(ctx context.Context, replayPath string) ([]byte, error) {
	out, err := os.CreateTemp(r.cfg.TempDir, outputPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create parser output file: %w", err)
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath)

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	var args []string
	if r.cfg.Script != "" {
		args = append(args, r.cfg.Script)
	}
	args = append(args, replayPath, outPath)

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, r.cfg.Command, args...)
	cmd.Stdout = &output
	cmd.Stderr = &output
	cmd.WaitDelay = waitDelay

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: timed out after %s", models.ErrParserFailure, r.cfg.Timeout)
		}
		return nil, fmt.Errorf("%w: %v: %s", models.ErrParserFailure, err, tail(output.Bytes()))
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read output: %v", models.ErrParserFailure, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty output", models.ErrParserFailure)
	}
	return data, nil
}

func tail(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) > maxReportedTail {
		b = b[len(b)-maxReportedTail:]
	}
	return string(b)
}
