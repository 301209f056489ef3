package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roman3340/ai-surveys-sub000/model"
)

func newTestStore(t *testing.T) *DraftStore {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "drafts.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewDraftStore(db)
}

func modePtr(m model.Mode) *model.Mode { return &m }

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	settings := &model.Settings{Title: "Coffee survey", Language: "en"}
	questions := []model.Question{
		{ID: "q1", Type: model.TypeText, Title: "Name?", Required: true},
		{ID: "q2", Type: model.TypeSingleChoice, Title: "Blend?", Options: []string{"Arabica", "Robusta"}},
	}

	store.Save(Patch{
		Mode:         modePtr(model.ModeManual),
		Settings:     settings,
		Questions:    questions,
		SetQuestions: true,
	})

	draft := store.Load()
	require.NotNil(t, draft)
	assert.Equal(t, model.ModeManual, draft.Mode)
	require.NotNil(t, draft.Settings)
	assert.Equal(t, "Coffee survey", draft.Settings.Title)
	require.Len(t, draft.Questions, 2)
	assert.Equal(t, "q1", draft.Questions[0].ID)
	assert.Equal(t, "q2", draft.Questions[1].ID)
	assert.Equal(t, []string{"Arabica", "Robusta"}, draft.Questions[1].Options)
}

func TestRoundTripSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drafts.sqlite")

	db, err := Open(path)
	require.NoError(t, err)
	store := NewDraftStore(db)
	store.Save(Patch{
		Mode:      modePtr(model.ModeManual),
		Settings:  &model.Settings{Title: "Persisted"},
		Questions: []model.Question{{ID: "q1", Type: model.TypeYesNo, Title: "Happy?"}},

		SetQuestions: true,
	})
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	draft := NewDraftStore(db).Load()
	require.NotNil(t, draft)
	assert.Equal(t, "Persisted", draft.Settings.Title)
	require.Len(t, draft.Questions, 1)
	assert.Equal(t, "q1", draft.Questions[0].ID)
}

func TestPartialSaveMergesShallow(t *testing.T) {
	store := newTestStore(t)

	store.Save(Patch{Mode: modePtr(model.ModeManual), Settings: &model.Settings{Title: "First"}})
	store.Save(Patch{Questions: []model.Question{{ID: "q1", Title: "Only"}}, SetQuestions: true})

	draft := store.Load()
	require.NotNil(t, draft)
	// the earlier fields survive a later partial write
	assert.Equal(t, model.ModeManual, draft.Mode)
	assert.Equal(t, "First", draft.Settings.Title)
	require.Len(t, draft.Questions, 1)

	// a present field replaces wholesale
	store.Save(Patch{Settings: &model.Settings{Title: "Second"}})
	draft = store.Load()
	assert.Equal(t, "Second", draft.Settings.Title)
	assert.Equal(t, "", draft.Settings.Language)
}

func TestUpdatedAtIncreasesOnEveryWrite(t *testing.T) {
	store := newTestStore(t)

	store.Save(Patch{Mode: modePtr(model.ModeManual)})
	first := store.Load().UpdatedAt

	store.Save(Patch{Settings: &model.Settings{Title: "x"}})
	second := store.Load().UpdatedAt

	assert.True(t, second.After(first), "expected %s > %s", second, first)
}

func TestClearIsTotalAndIdempotent(t *testing.T) {
	store := newTestStore(t)

	store.Save(Patch{Mode: modePtr(model.ModeAI), AI: &model.AITrack{CurrentStep: "ai_topic"}})
	require.True(t, store.Exists())

	store.Clear()
	assert.Nil(t, store.Load())
	assert.False(t, store.Exists())

	// second clear must not fail or resurrect anything
	store.Clear()
	assert.Nil(t, store.Load())
	assert.False(t, store.Exists())
}

func TestClearSweepsLegacyKeys(t *testing.T) {
	store := newTestStore(t)

	for _, key := range legacyKeys {
		_, err := store.db.Exec(
			"INSERT INTO app_storage (key, value, updated_at) VALUES (?, ?, ?)",
			key, `{"stale":true}`, time.Now(),
		)
		require.NoError(t, err)
	}

	store.Clear()

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM app_storage").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestCorruptRecordLoadsAsAbsent(t *testing.T) {
	store := newTestStore(t)

	_, err := store.db.Exec(
		"INSERT INTO app_storage (key, value, updated_at) VALUES (?, ?, ?)",
		draftKey, "{not json", time.Now(),
	)
	require.NoError(t, err)

	assert.Nil(t, store.Load())
}

func TestLoadReturnsACopy(t *testing.T) {
	store := newTestStore(t)

	store.Save(Patch{
		Questions:    []model.Question{{ID: "q1", Options: []string{"a"}}},
		SetQuestions: true,
	})

	first := store.Load()
	first.Questions[0].Options[0] = "mutated"
	first.Questions[0].Title = "mutated"

	second := store.Load()
	assert.Equal(t, "a", second.Questions[0].Options[0])
	assert.Equal(t, "", second.Questions[0].Title)
}

func TestMemoryStaysAuthoritativeWhenWritesFail(t *testing.T) {
	store := newTestStore(t)

	// closing the db underneath makes every write fail
	require.NoError(t, store.db.Close())

	store.Save(Patch{Mode: modePtr(model.ModeManual), Settings: &model.Settings{Title: "kept"}})

	draft := store.Load()
	require.NotNil(t, draft)
	assert.Equal(t, "kept", draft.Settings.Title)
	assert.True(t, store.Exists())
}
