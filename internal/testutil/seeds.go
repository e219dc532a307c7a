package testutil

// Seed bundles a human-readable name with seed bytes.
//
// Curated seed sequences are hand-crafted to exercise specific scenarios that
// random fuzzing might take a long time to discover. Each seed produces a
// deterministic sequence of operations when fed to OpGenerator with
// DefaultOpGenConfig.
type Seed struct {
	Name string
	Data []byte
}

// CuratedSeeds returns all curated seeds with descriptive names.
func CuratedSeeds() []Seed {
	return []Seed{
		{Name: "basic_lifecycle", Data: SeedBasicLifecycle()},
		{Name: "no_op_mutations", Data: SeedNoOpMutations()},
		{Name: "failed_save_then_external_edit", Data: SeedFailedSaveThenExternalEdit()},
		{Name: "failed_save_then_event", Data: SeedFailedSaveThenEvent()},
		{Name: "external_edit_between_saves", Data: SeedExternalEditBetweenSaves()},
		{Name: "move_and_back", Data: SeedMoveAndBack()},
	}
}

func defaultSeedConfig() *OpGenConfig {
	cfg := DefaultOpGenConfig()

	return &cfg
}

// SeedBasicLifecycle adds, toggles, edits and deletes tasks.
func SeedBasicLifecycle() []byte {
	return NewSeedBuilder(defaultSeedConfig()).
		Add("buy milk", false).
		Add("call bob", true).
		Toggle(1).
		Today(0).
		Update(1, "fix bike").
		Delete(0).
		Reload().
		Bytes()
}

// SeedNoOpMutations sends blank text and unknown positions, none of which
// may save.
func SeedNoOpMutations() []byte {
	return NewSeedBuilder(defaultSeedConfig()).
		Add("", true).
		Toggle(-1).
		Add("plan week", false).
		Update(0, "").
		Delete(-1).
		Today(-1).
		Bytes()
}

// SeedFailedSaveThenExternalEdit fails a save, then edits the file
// elsewhere. The failed save must not swallow the external change.
func SeedFailedSaveThenExternalEdit() []byte {
	return NewSeedBuilder(defaultSeedConfig()).
		Add("buy milk", false).
		Failing().Add("call bob", false).
		External(Task{Text: "write report", Today: true}).
		Bytes()
}

// SeedFailedSaveThenEvent fails a save and then receives a change event,
// which reloads the file and drops the unsaved change.
func SeedFailedSaveThenEvent() []byte {
	return NewSeedBuilder(defaultSeedConfig()).
		Add("buy milk", false).
		Failing().Toggle(0).
		Event().
		Toggle(0).
		Bytes()
}

// SeedExternalEditBetweenSaves interleaves own saves and external edits.
func SeedExternalEditBetweenSaves() []byte {
	return NewSeedBuilder(defaultSeedConfig()).
		Add("buy milk", false).
		External(Task{Text: "fix bike"}, Task{Text: "pay rent today", Completed: true}).
		Toggle(1).
		External().
		Add("read #book chapter", true).
		Event().
		Bytes()
}

// SeedMoveAndBack moves between two directories, each with its own file,
// and delivers late events from the abandoned watches.
func SeedMoveAndBack() []byte {
	return NewSeedBuilder(defaultSeedConfig()).
		Add("buy milk", false).
		Move().
		Add("call bob", true).
		Event().
		Move().
		Toggle(0).
		Event().
		Move().
		Reload().
		Bytes()
}
