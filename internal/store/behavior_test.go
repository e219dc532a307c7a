package store_test

import (
	"testing"

	"tasknote/internal/testutil"
)

func Test_TaskStore_Matches_Model_When_Running_Curated_Seeds(t *testing.T) {
	t.Parallel()

	for _, seed := range testutil.CuratedSeeds() {
		t.Run(seed.Name, func(t *testing.T) {
			t.Parallel()

			testutil.RunBehavior(t, seed.Data, testutil.DefaultOpGenConfig(), testutil.DefaultRunConfig())
		})
	}
}

func FuzzTaskStore_Matches_Model(f *testing.F) {
	for _, seed := range testutil.CuratedSeeds() {
		f.Add(seed.Data)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		testutil.RunBehavior(t, data, testutil.DefaultOpGenConfig(), testutil.DefaultRunConfig())
	})
}
