package testutil

// OpGenConfig configures the operation generator.
//
// Rates are percentages of generated ops. Whatever the op rates leave
// below 100 becomes reloads.
type OpGenConfig struct {
	AddRate      int
	ToggleRate   int
	TodayRate    int
	UpdateRate   int
	DeleteRate   int
	ExternalRate int
	EventRate    int
	MoveRate     int

	// FailWriteRate is the percentage of mutations whose save fails.
	FailWriteRate int

	// InvalidPosRate is the percentage of positions that address no task.
	InvalidPosRate int
}

// DefaultOpGenConfig returns a balanced configuration.
func DefaultOpGenConfig() OpGenConfig {
	return OpGenConfig{
		AddRate:        25,
		ToggleRate:     15,
		TodayRate:      10,
		UpdateRate:     10,
		DeleteRate:     10,
		ExternalRate:   10,
		EventRate:      5,
		MoveRate:       5,
		FailWriteRate:  10,
		InvalidPosRate: 10,
	}
}

// maxExternalTasks bounds the size of an external rewrite.
const maxExternalTasks = 4

// seedTexts is the text vocabulary. Index len(seedTexts) means blank.
var seedTexts = []string{
	"buy milk",
	"call bob",
	"write report",
	"fix bike",
	"plan week",
	"read #book chapter",
	"pay rent today",
}

// OpGenerator generates deterministic operations from a byte stream.
type OpGenerator struct {
	stream *ByteStream
	config OpGenConfig
	model  *Model
}

// NewOpGenerator creates a new operation generator. Positions are drawn
// against model, which must be the model the ops are applied to.
func NewOpGenerator(fuzzBytes []byte, model *Model, cfg *OpGenConfig) *OpGenerator {
	return &OpGenerator{
		stream: NewByteStream(fuzzBytes),
		config: *cfg,
		model:  model,
	}
}

// HasMore reports whether more operations can be generated.
func (g *OpGenerator) HasMore() bool {
	return g.stream.HasMore()
}

// NextOp generates the next operation.
func (g *OpGenerator) NextOp() Op {
	choice := int(g.stream.NextByte()) % 100
	cumulative := 0

	cumulative += g.config.AddRate
	if choice < cumulative {
		text := g.genText()

		return OpAdd{Text: text, Today: g.stream.NextBool(), Fail: g.genFail()}
	}

	cumulative += g.config.ToggleRate
	if choice < cumulative {
		pos := g.genPos()

		return OpToggle{Pos: pos, Fail: g.genFail()}
	}

	cumulative += g.config.TodayRate
	if choice < cumulative {
		pos := g.genPos()

		return OpToday{Pos: pos, Fail: g.genFail()}
	}

	cumulative += g.config.UpdateRate
	if choice < cumulative {
		pos := g.genPos()
		text := g.genText()

		return OpUpdate{Pos: pos, Text: text, Fail: g.genFail()}
	}

	cumulative += g.config.DeleteRate
	if choice < cumulative {
		pos := g.genPos()

		return OpDelete{Pos: pos, Fail: g.genFail()}
	}

	cumulative += g.config.ExternalRate
	if choice < cumulative {
		return g.genExternal()
	}

	cumulative += g.config.EventRate
	if choice < cumulative {
		return OpEvent{}
	}

	cumulative += g.config.MoveRate
	if choice < cumulative {
		return OpMove{}
	}

	return OpReload{}
}

func (g *OpGenerator) genText() string {
	idx := g.stream.NextInt(len(seedTexts) + 1)
	if idx == len(seedTexts) {
		return ""
	}

	return seedTexts[idx]
}

// genPos always reads two bytes so the stream stays aligned whatever the
// model size.
func (g *OpGenerator) genPos() int {
	invalid := g.stream.NextPercent(g.config.InvalidPosRate)
	idx := int(g.stream.NextByte())

	n := g.model.Len()
	if invalid || n == 0 {
		return -1
	}

	return idx % n
}

func (g *OpGenerator) genFail() bool {
	return g.stream.NextPercent(g.config.FailWriteRate)
}

func (g *OpGenerator) genExternal() Op {
	count := g.stream.NextInt(maxExternalTasks + 1)
	tasks := make([]Task, 0, count)

	for range count {
		tasks = append(tasks, Task{
			Text:      seedTexts[g.stream.NextInt(len(seedTexts))],
			Completed: g.stream.NextBool(),
			Today:     g.stream.NextBool(),
		})
	}

	return OpExternal{Tasks: tasks}
}
