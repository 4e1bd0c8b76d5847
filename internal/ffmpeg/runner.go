package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

var (
	// ErrInputNotFound reports a missing or non-regular input file.
	ErrInputNotFound = errors.New("input file not found")
	// ErrEncodeFailed reports a non-zero ffmpeg exit, with the captured
	// stderr tail in the message.
	ErrEncodeFailed = errors.New("ffmpeg failed")
	// ErrInsufficientSpace reports that the output directory lacks the
	// required free space.
	ErrInsufficientSpace = errors.New("insufficient free space")
)

// TimelapseRequest describes a timelapse encode: every Step-th frame of the
// input is sampled and respaced at the input frame rate.
type TimelapseRequest struct {
	InputPath string
	Step      int
	InputFPS  int
	OutputFPS int
}

// Runner defines the encoder operations the CLI depends on.
type Runner interface {
	Timelapse(ctx context.Context, req TimelapseRequest) (string, error)
	ToMP4(ctx context.Context, inputPath string) (string, error)
}

// Option configures the CLI runner.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithLogger attaches a logger for command-level debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CLI) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMinFreeSpace sets the free-space floor checked on the output
// directory before an encode starts. Zero disables the check.
func WithMinFreeSpace(minBytes uint64) Option {
	return func(c *CLI) {
		c.minFreeBytes = minBytes
	}
}

// defaultMinFreeBytes leaves room for the encoded output next to the input.
const defaultMinFreeBytes = 256 << 20

// CLI wraps the ffmpeg command-line encoder.
type CLI struct {
	binary       string
	logger       *slog.Logger
	minFreeBytes uint64
	freeSpace    func(path string) (uint64, error)
}

// NewCLI constructs a CLI runner using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{
		binary:       "ffmpeg",
		logger:       slog.Default(),
		minFreeBytes: defaultMinFreeBytes,
		freeSpace:    realFreeSpace,
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Timelapse speeds up a long normal-speed video by sampling every Step-th
// frame. The output lands next to the input with a "_timelapse" stem
// suffix, overwriting any previous result.
func (c *CLI) Timelapse(ctx context.Context, req TimelapseRequest) (string, error) {
	if req.Step < 2 {
		return "", fmt.Errorf("step must be at least 2, got %d", req.Step)
	}
	if req.InputFPS <= 0 {
		return "", fmt.Errorf("input fps must be positive, got %d", req.InputFPS)
	}
	outputFPS := req.OutputFPS
	if outputFPS <= 0 {
		outputFPS = 60
	}

	input, err := resolveInput(req.InputPath)
	if err != nil {
		return "", err
	}
	if err := c.checkFreeSpace(input); err != nil {
		return "", err
	}

	output := siblingPath(input, "_timelapse", "")
	args := []string{
		"-an", // drop the input audio
		"-i", input,
		"-vf", fmt.Sprintf("framestep=%d,setpts=N/%d/TB", req.Step, req.InputFPS),
		"-r", strconv.Itoa(outputFPS),
		"-y",
		output,
	}
	if err := c.run(ctx, args); err != nil {
		return "", err
	}
	return output, nil
}

// ToMP4 remuxes a video into an MP4 container without re-encoding.
func (c *CLI) ToMP4(ctx context.Context, inputPath string) (string, error) {
	input, err := resolveInput(inputPath)
	if err != nil {
		return "", err
	}
	if err := c.checkFreeSpace(input); err != nil {
		return "", err
	}

	output := siblingPath(input, "", ".mp4")
	args := []string{
		"-i", input,
		"-vcodec", "copy",
		"-y",
		output,
	}
	if err := c.run(ctx, args); err != nil {
		return "", err
	}
	return output, nil
}

func (c *CLI) run(ctx context.Context, args []string) error {
	c.logger.Debug("running ffmpeg", "binary", c.binary, "args", strings.Join(args, " "))

	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if detail := stderrTail(stderr.String()); detail != "" {
			return fmt.Errorf("%w: %s", ErrEncodeFailed, detail)
		}
		return fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	return nil
}

// stderrTail keeps the last few stderr lines, where ffmpeg puts the actual
// failure reason.
func stderrTail(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > 3 {
		lines = lines[len(lines)-3:]
	}
	return strings.TrimSpace(strings.Join(lines, " "))
}

var _ Runner = (*CLI)(nil)
