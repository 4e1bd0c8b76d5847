package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"redbreast/internal/config"
	"redbreast/internal/ffmpeg"
	"redbreast/internal/history"
)

type fakeRunner struct {
	timelapseReq ffmpeg.TimelapseRequest
	toMP4Input   string
	output       string
	err          error
}

func (f *fakeRunner) Timelapse(_ context.Context, req ffmpeg.TimelapseRequest) (string, error) {
	f.timelapseReq = req
	return f.output, f.err
}

func (f *fakeRunner) ToMP4(_ context.Context, inputPath string) (string, error) {
	f.toMP4Input = inputPath
	return f.output, f.err
}

func writeTestConfig(t *testing.T, historyEnabled bool) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf(`[paths]
log_dir = %q

[encoder]
output_fps = 48

[history]
enabled = %v
`, filepath.Join(dir, "logs"), historyEnabled)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return path
}

func testContext(t *testing.T, historyEnabled bool, runner ffmpeg.Runner) *commandContext {
	t.Helper()
	configFlag := writeTestConfig(t, historyEnabled)
	ctx := newCommandContext(&configFlag)
	if runner != nil {
		ctx.newRunner = func(cfg *config.Config, logger *slog.Logger) ffmpeg.Runner {
			return runner
		}
	}
	return ctx
}

func TestTimelapseCommandDefaultsOutputFPSFromConfig(t *testing.T) {
	runner := &fakeRunner{output: "/videos/walk_timelapse.mkv"}
	ctx := testContext(t, false, runner)

	cmd := newTimelapseCommand(ctx)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--input-file", "/videos/walk.mkv", "--input-fps", "30", "--step", "12"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("timelapse: %v", err)
	}

	want := ffmpeg.TimelapseRequest{
		InputPath: "/videos/walk.mkv",
		Step:      12,
		InputFPS:  30,
		OutputFPS: 48,
	}
	if runner.timelapseReq != want {
		t.Fatalf("request = %+v, want %+v", runner.timelapseReq, want)
	}
	if !strings.Contains(out.String(), "Created file: /videos/walk_timelapse.mkv") {
		t.Fatalf("output = %q, want created-file line", out.String())
	}
}

func TestTimelapseCommandExplicitOutputFPS(t *testing.T) {
	runner := &fakeRunner{output: "/videos/walk_timelapse.mkv"}
	ctx := testContext(t, false, runner)

	cmd := newTimelapseCommand(ctx)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"-i", "/videos/walk.mkv", "--input-fps", "30", "--output-fps", "24"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("timelapse: %v", err)
	}
	if runner.timelapseReq.OutputFPS != 24 {
		t.Fatalf("OutputFPS = %d, want 24", runner.timelapseReq.OutputFPS)
	}
}

func TestTimelapseCommandSurfacesEncodeError(t *testing.T) {
	encodeErr := errors.New("framestep must be at least 2")
	runner := &fakeRunner{err: encodeErr}
	ctx := testContext(t, false, runner)

	cmd := newTimelapseCommand(ctx)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"-i", "/videos/walk.mkv", "--input-fps", "30"})

	if err := cmd.Execute(); !errors.Is(err, encodeErr) {
		t.Fatalf("err = %v, want %v", err, encodeErr)
	}
}

func TestToMP4Command(t *testing.T) {
	runner := &fakeRunner{output: "/videos/concert.mp4"}
	ctx := testContext(t, false, runner)

	cmd := newToMP4Command(ctx)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"-i", "/videos/concert.mkv"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("to-mp4: %v", err)
	}
	if runner.toMP4Input != "/videos/concert.mkv" {
		t.Fatalf("input = %q, want /videos/concert.mkv", runner.toMP4Input)
	}
	if !strings.Contains(out.String(), "Created file: /videos/concert.mp4") {
		t.Fatalf("output = %q, want created-file line", out.String())
	}
}

func TestEncodeRunRecordsHistory(t *testing.T) {
	runner := &fakeRunner{output: "/videos/walk_timelapse.mkv"}
	ctx := testContext(t, true, runner)

	cmd := newTimelapseCommand(ctx)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"-i", "/videos/Morning-Walk.mkv", "--input-fps", "30"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("timelapse: %v", err)
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		t.Fatalf("ensureConfig: %v", err)
	}
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer store.Close()

	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	entry := entries[0]
	if entry.Command != "timelapse" {
		t.Errorf("Command = %q, want timelapse", entry.Command)
	}
	if entry.Status != history.StatusCompleted {
		t.Errorf("Status = %q, want %q", entry.Status, history.StatusCompleted)
	}
	if entry.Title != "Morning Walk" {
		t.Errorf("Title = %q, want Morning Walk", entry.Title)
	}
	if entry.OutputPath != "/videos/walk_timelapse.mkv" {
		t.Errorf("OutputPath = %q", entry.OutputPath)
	}
}

func TestEncodeRunRecordsFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("moov atom not found")}
	ctx := testContext(t, true, runner)

	cmd := newToMP4Command(ctx)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"-i", "/videos/broken.avi"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected encode error")
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		t.Fatalf("ensureConfig: %v", err)
	}
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer store.Close()

	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Status != history.StatusFailed {
		t.Errorf("Status = %q, want %q", entries[0].Status, history.StatusFailed)
	}
	if !strings.Contains(entries[0].ErrorMessage, "moov atom") {
		t.Errorf("ErrorMessage = %q, want moov atom mention", entries[0].ErrorMessage)
	}
}

func TestHistoryListEmpty(t *testing.T) {
	ctx := testContext(t, true, nil)

	cmd := newHistoryCommand(ctx)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"list"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("history list: %v", err)
	}
	if !strings.Contains(out.String(), "No encode runs recorded.") {
		t.Fatalf("output = %q, want empty-store message", out.String())
	}
}

func TestHistorySearchFiltersAndOrders(t *testing.T) {
	ctx := testContext(t, true, nil)

	cfg, err := ctx.ensureConfig()
	if err != nil {
		t.Fatalf("ensureConfig: %v", err)
	}
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	seed := []history.Entry{
		{Command: "timelapse", InputPath: "/videos/Morning-Walk.mkv", DurationSeconds: 42.5, CreatedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)},
		{Command: "to-mp4", InputPath: "/videos/Concert.mkv", DurationSeconds: 3.1, CreatedAt: time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)},
		{Command: "timelapse", InputPath: "/videos/Evening-Walk.mkv", DurationSeconds: 51.0, CreatedAt: time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)},
	}
	for _, entry := range seed {
		if _, err := store.Record(context.Background(), entry); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	cmd := newHistoryCommand(ctx)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"search", "--where", "command=timelapse", "--where", "duration__gt=45", "--order", "-created_at"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("history search: %v", err)
	}

	rendered := out.String()
	if !strings.Contains(rendered, "Evening Walk") {
		t.Fatalf("output missing Evening Walk:\n%s", rendered)
	}
	if strings.Contains(rendered, "Morning Walk") || strings.Contains(rendered, "Concert") {
		t.Fatalf("output contains filtered-out entries:\n%s", rendered)
	}
}

func TestConfigValidateHonorsConfigFlag(t *testing.T) {
	ctx := testContext(t, true, nil)

	cmd := newConfigValidateCommand(ctx)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(nil)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("config validate: %v", err)
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		t.Fatalf("ensureConfig: %v", err)
	}
	rendered := out.String()
	if !strings.Contains(rendered, "Configuration OK: "+*ctx.configFlag) {
		t.Fatalf("output = %q, want OK line for %s", rendered, *ctx.configFlag)
	}
	if !strings.Contains(rendered, cfg.Paths.LogDir) {
		t.Fatalf("output = %q, want log dir %s", rendered, cfg.Paths.LogDir)
	}
}

func TestHistorySearchRejectsMalformedWhere(t *testing.T) {
	ctx := testContext(t, true, nil)

	cmd := newHistoryCommand(ctx)
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"search", "--where", "nonsense"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "invalid --where") {
		t.Fatalf("err = %v, want invalid --where", err)
	}
}
