package testutil

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"tasknote/internal/markdown"
	"tasknote/internal/store"
)

// RunConfig configures a behavior test run.
type RunConfig struct {
	// MaxOps is the maximum number of operations to execute.
	MaxOps int

	// CompareStateEveryN runs full state comparison every N operations.
	// Set to 0 to disable periodic checks (only check at end).
	CompareStateEveryN int
}

// DefaultRunConfig returns a balanced configuration for behavior tests.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		MaxOps:             200,
		CompareStateEveryN: 1,
	}
}

// RunBehavior executes the ops encoded in seed against a fresh store and
// model and fails tb on the first divergence.
func RunBehavior(tb testing.TB, seed []byte, genCfg OpGenConfig, cfg RunConfig) {
	tb.Helper()

	if cfg.MaxOps <= 0 {
		tb.Fatalf("RunBehavior requires MaxOps > 0")
	}

	h := NewHarness(tb)
	gen := NewOpGenerator(seed, h.Model, &genCfg)
	history := make([]string, 0, cfg.MaxOps)

	for opIndex := 1; opIndex <= cfg.MaxOps && gen.HasMore(); opIndex++ {
		op := gen.NextOp()
		history = append(history, op.String())

		realRes := op.ApplyReal(h)
		modelRes := op.ApplyModel(h)

		err := compareResults(op, &modelRes, &realRes)
		if err != nil {
			tb.Fatalf("%v\n%s", err, FormatOps(history))
		}

		if cfg.CompareStateEveryN > 0 && opIndex%cfg.CompareStateEveryN == 0 {
			err := CompareState(h)
			if err != nil {
				tb.Fatalf("%v\n%s", err, FormatOps(history))
			}
		}
	}

	err := CompareState(h)
	if err != nil {
		tb.Fatalf("%v\n%s", err, FormatOps(history))
	}
}

func compareResults(op Op, modelRes, realRes *Result) error {
	if modelRes.OK != realRes.OK {
		if modelRes.OK {
			return fmt.Errorf("model succeeded but store failed: %s: %w", op.String(), realRes.Err)
		}

		return fmt.Errorf("model failed but store succeeded: %s", op.String())
	}

	if modelRes.Wrote != realRes.Wrote {
		return fmt.Errorf("save mismatch: %s: model wrote=%t, store wrote=%t", op.String(), modelRes.Wrote, realRes.Wrote)
	}

	if !realRes.OK && !errors.Is(realRes.Err, store.ErrPersistence) {
		return fmt.Errorf("want a persistence error: %s: %w", op.String(), realRes.Err)
	}

	return nil
}

// CompareState checks the store's collection, both task files and the
// snapshot version against the model.
func CompareState(h *Harness) error {
	snap := h.Store.Snapshot()

	if snap.Version < h.lastVersion {
		return fmt.Errorf("version went backwards: %d after %d", snap.Version, h.lastVersion)
	}

	h.lastVersion = snap.Version

	if diff := cmp.Diff(h.Model.Memory, FromRecords(snap.Items), cmpopts.EquateEmpty()); diff != "" {
		return fmt.Errorf("memory mismatch (-model +store):\n%s", diff)
	}

	if got, want := h.Store.Dir(), h.Dirs[h.Model.Current]; got != want {
		return fmt.Errorf("dir=%s, want=%s", got, want)
	}

	for i := range h.Dirs {
		data, err := os.ReadFile(h.Path(i))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read %s: %w", h.Path(i), err)
		}

		onDisk := FromRecords(markdown.DecodeTasks(string(data)))
		if diff := cmp.Diff(h.Model.Disk[i], onDisk, cmpopts.EquateEmpty()); diff != "" {
			return fmt.Errorf("file %s mismatch (-model +disk):\n%s", h.Path(i), diff)
		}
	}

	return nil
}

// FormatOps renders an op history for failure messages.
func FormatOps(history []string) string {
	var b strings.Builder

	b.WriteString("ops:\n")

	for i, op := range history {
		fmt.Fprintf(&b, "  %3d. %s\n", i+1, op)
	}

	return b.String()
}
