package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hlslc/frontend/internal/cache"
	"github.com/hlslc/frontend/internal/diag"
	"github.com/hlslc/frontend/internal/frontend"
	"github.com/hlslc/frontend/internal/parser"
	"github.com/hlslc/frontend/internal/project"
	"github.com/hlslc/frontend/internal/ui"
)

var (
	buildJobs       int
	buildNoCache    bool
	buildCleanCache bool
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [dir]",
	Short: "Build every shader named by an hlslc.toml manifest",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().IntVar(&buildJobs, "jobs", 0, "max concurrent compiles (0 = GOMAXPROCS)")
	buildCmd.Flags().BoolVar(&buildNoCache, "no-cache", false, "ignore and do not populate the disk cache")
	buildCmd.Flags().BoolVar(&buildCleanCache, "clean-cache", false, "drop every cached result before building")
}

type buildUnit struct {
	manifest *project.Manifest
	path     string
	text     string
}

func runBuild(cmd *cobra.Command, args []string) error {
	startDir := "."
	if len(args) == 1 {
		startDir = args[0]
	}

	manifestPath, found, err := project.FindManifest(startDir)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no hlslc.toml found starting from %s", startDir)
	}
	manifest, err := project.Load(manifestPath)
	if err != nil {
		return err
	}

	text, err := os.ReadFile(manifest.SourcePath())
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", manifest.SourcePath(), err)
	}
	unit := buildUnit{manifest: manifest, path: manifest.SourcePath(), text: string(text)}

	disk, err := cache.Open("hlslc")
	if err != nil {
		return fmt.Errorf("failed to open disk cache: %w", err)
	}
	if buildCleanCache {
		if err := disk.DropAll(); err != nil {
			return fmt.Errorf("failed to clean disk cache: %w", err)
		}
	}
	if buildNoCache {
		disk = nil
	}

	useTUI := isTerminal(os.Stdout)
	quiet, _ := cmd.Flags().GetBool("quiet")
	if quiet {
		useTUI = false
	}

	jobs := buildJobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	files := []string{filepath.Base(unit.path)}
	events := make(chan ui.Event, 4)
	statuses := make([]diag.Status, 1)
	renders := make([]string, 1)

	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)
	g.Go(func() error {
		statuses[0], renders[0] = buildOne(gctx, unit, disk, events)
		close(events)
		return nil
	})

	if useTUI {
		program := tea.NewProgram(ui.NewProgressModel("build", files, events), tea.WithOutput(os.Stdout))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("progress display failed: %w", err)
		}
	} else {
		for range events {
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if renders[0] != "" {
		fmt.Fprint(out, renders[0])
	}
	fmt.Fprintf(out, "%s: %s\n", unit.path, statuses[0])

	if statuses[0] == diag.StatusError {
		return fmt.Errorf("build failed")
	}
	return nil
}

// buildOne compiles a single manifest-described shader, consulting and
// populating the disk cache, and reports its progress on events.
func buildOne(ctx context.Context, unit buildUnit, disk *cache.Disk, events chan<- ui.Event) (diag.Status, string) {
	name := filepath.Base(unit.path)
	stage := frontend.ShaderPixel
	if unit.manifest.Compile.Stage == "vertex" {
		stage = frontend.ShaderVertex
	}
	major, minor := unit.manifest.Compile.Major, unit.manifest.Compile.Minor

	key := project.HashSource(unit.text, unit.manifest.Compile.EntryPoint, uint8(stage), major, minor)

	events <- ui.Event{File: name, Stage: ui.StageParse, Status: ui.StatusWorking}

	if disk != nil {
		if payload, hit, err := disk.Get(key); err == nil && hit {
			events <- ui.Event{File: name, Status: statusFor(diag.Status(payload.Status))}
			return diag.Status(payload.Status), payload.Render()
		}
	}

	select {
	case <-ctx.Done():
		events <- ui.Event{File: name, Status: ui.StatusError}
		return diag.StatusError, ""
	default:
	}

	fctx := frontend.NewContext(frontend.Options{})
	fctx.ParseFile(unit.path, unit.text, parser.Options{})

	events <- ui.Event{File: name, Stage: ui.StageCompile, Status: ui.StatusWorking}

	var status diag.Status
	if fctx.Diags.HasErrors() {
		status = fctx.Diags.Status()
	} else {
		status, _ = fctx.Compile(unit.manifest.Compile.EntryPoint, stage, major, minor)
	}

	events <- ui.Event{File: name, Stage: ui.StageLiveness, Status: ui.StatusWorking}

	out := diag.Render(fctx.Diags, fctx.Files)

	if disk != nil {
		payload := cache.ToPayload(fctx.Files, status, fctx.Diags.Items())
		_ = disk.Put(key, payload)
	}

	events <- ui.Event{File: name, Status: statusFor(status)}
	return status, out
}

func statusFor(status diag.Status) ui.Status {
	if status == diag.StatusError {
		return ui.StatusError
	}
	return ui.StatusDone
}
