package testutil

import (
	"fmt"
	"slices"
)

// SeedBuilder builds deterministic byte seeds for OpGenerator without
// hand-writing raw byte sequences.
//
// The builder encodes values according to OpGenerator's byte consumption
// order. Positions are passed through as-is; -1 encodes a position that
// addresses no task.
type SeedBuilder struct {
	cfg  OpGenConfig
	data []byte
	fail bool
}

// NewSeedBuilder creates a new builder for the given OpGenerator config.
func NewSeedBuilder(cfg *OpGenConfig) *SeedBuilder {
	if cfg == nil {
		panic("seed builder: cfg must not be nil")
	}

	return &SeedBuilder{cfg: *cfg}
}

// Bytes returns a copy of the built seed bytes.
func (b *SeedBuilder) Bytes() []byte {
	return slices.Clone(b.data)
}

// Failing makes the save of the next mutation fail.
func (b *SeedBuilder) Failing() *SeedBuilder {
	b.fail = true

	return b
}

// Add appends an add op. Empty text encodes a blank task.
func (b *SeedBuilder) Add(text string, today bool) *SeedBuilder {
	b.op(0, b.cfg.AddRate, "add")
	b.text(text)
	b.appendBool(today)

	return b.failByte()
}

// Toggle appends a completion toggle of the task at pos.
func (b *SeedBuilder) Toggle(pos int) *SeedBuilder {
	b.op(b.cfg.AddRate, b.cfg.ToggleRate, "toggle")
	b.pos(pos)

	return b.failByte()
}

// Today appends a today toggle of the task at pos.
func (b *SeedBuilder) Today(pos int) *SeedBuilder {
	b.op(b.cfg.AddRate+b.cfg.ToggleRate, b.cfg.TodayRate, "today")
	b.pos(pos)

	return b.failByte()
}

// Update appends a text replacement of the task at pos.
func (b *SeedBuilder) Update(pos int, text string) *SeedBuilder {
	b.op(b.cfg.AddRate+b.cfg.ToggleRate+b.cfg.TodayRate, b.cfg.UpdateRate, "update")
	b.pos(pos)
	b.text(text)

	return b.failByte()
}

// Delete appends a delete of the task at pos.
func (b *SeedBuilder) Delete(pos int) *SeedBuilder {
	b.op(b.cfg.AddRate+b.cfg.ToggleRate+b.cfg.TodayRate+b.cfg.UpdateRate, b.cfg.DeleteRate, "delete")
	b.pos(pos)

	return b.failByte()
}

// External appends an external rewrite of the current file.
func (b *SeedBuilder) External(tasks ...Task) *SeedBuilder {
	if len(tasks) > maxExternalTasks {
		panic(fmt.Sprintf("seed builder: at most %d external tasks", maxExternalTasks))
	}

	b.op(b.externalStart(), b.cfg.ExternalRate, "external")
	b.data = append(b.data, byte(len(tasks)))

	for _, t := range tasks {
		idx := slices.Index(seedTexts, t.Text)
		if idx < 0 {
			panic(fmt.Sprintf("seed builder: unknown text %q", t.Text))
		}

		b.data = append(b.data, byte(idx))
		b.appendBool(t.Completed)
		b.appendBool(t.Today)
	}

	return b
}

// Event appends a change event with no write behind it.
func (b *SeedBuilder) Event() *SeedBuilder {
	b.op(b.externalStart()+b.cfg.ExternalRate, b.cfg.EventRate, "event")

	return b
}

// Move appends a move to the other directory.
func (b *SeedBuilder) Move() *SeedBuilder {
	b.op(b.externalStart()+b.cfg.ExternalRate+b.cfg.EventRate, b.cfg.MoveRate, "move")

	return b
}

// Reload appends an explicit reload.
func (b *SeedBuilder) Reload() *SeedBuilder {
	start := b.externalStart() + b.cfg.ExternalRate + b.cfg.EventRate + b.cfg.MoveRate
	b.op(start, 100-start, "reload")

	return b
}

func (b *SeedBuilder) externalStart() int {
	return b.cfg.AddRate + b.cfg.ToggleRate + b.cfg.TodayRate + b.cfg.UpdateRate + b.cfg.DeleteRate
}

func (b *SeedBuilder) op(start, rate int, name string) {
	if rate <= 0 || start >= 100 {
		panic(fmt.Sprintf("seed builder: %s has no share of the op rates", name))
	}

	b.data = append(b.data, byte(start))
}

func (b *SeedBuilder) text(text string) {
	if text == "" {
		b.data = append(b.data, byte(len(seedTexts)))

		return
	}

	idx := slices.Index(seedTexts, text)
	if idx < 0 {
		panic(fmt.Sprintf("seed builder: unknown text %q", text))
	}

	b.data = append(b.data, byte(idx))
}

func (b *SeedBuilder) pos(pos int) {
	if pos < 0 {
		if b.cfg.InvalidPosRate <= 0 {
			panic("seed builder: invalid positions need InvalidPosRate > 0")
		}

		b.data = append(b.data, 0, 0)

		return
	}

	b.data = append(b.data, byte(b.validPercent(b.cfg.InvalidPosRate)), byte(pos))
}

func (b *SeedBuilder) failByte() *SeedBuilder {
	if b.fail {
		if b.cfg.FailWriteRate <= 0 {
			panic("seed builder: failing writes need FailWriteRate > 0")
		}

		b.data = append(b.data, 0)
		b.fail = false

		return b
	}

	b.data = append(b.data, byte(b.validPercent(b.cfg.FailWriteRate)))

	return b
}

// validPercent returns a byte value that NextPercent(rate) reads as false.
func (b *SeedBuilder) validPercent(rate int) int {
	if rate >= 100 {
		panic("seed builder: rate 100 leaves no valid choice")
	}

	return 99
}

func (b *SeedBuilder) appendBool(v bool) {
	if v {
		b.data = append(b.data, 1)
	} else {
		b.data = append(b.data, 0)
	}
}
