package storage

import (
	"database/sql"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/Roman3340/ai-surveys-sub000/log"
	"github.com/Roman3340/ai-surveys-sub000/model"
)

const draftKey = "survey_draft"

// Side keys written by earlier flow versions. Never read anymore, but
// Clear must sweep them so old installs don't resurrect stale state.
var legacyKeys = []string{
	"survey_settings",
	"survey_questions",
	"ai_survey_draft",
}

// Patch is a partial draft write. Each non-nil field replaces the stored
// field wholesale; nil fields are left alone. Questions uses a separate
// flag so an explicit empty list can be distinguished from "untouched".
type Patch struct {
	Mode         *model.Mode
	Settings     *model.Settings
	AI           *model.AITrack
	Questions    []model.Question
	SetQuestions bool
}

// DraftStore persists the in-progress survey definition. The in-memory
// copy stays authoritative for the session: if the underlying database
// rejects a write the author only loses resumability, never current
// edits.
type DraftStore struct {
	db *sql.DB

	mu  sync.Mutex
	mem *model.Draft
	now func() time.Time
}

func NewDraftStore(db *sql.DB) *DraftStore {
	return &DraftStore{db: db, now: time.Now}
}

// Save merges patch into the current draft, stamps UpdatedAt and writes
// the result back. Persistence failures are swallowed.
func (s *DraftStore) Save(patch Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.mem
	if draft == nil {
		draft = s.read()
	}
	if draft == nil {
		draft = &model.Draft{}
	}

	if patch.Mode != nil {
		draft.Mode = *patch.Mode
	}
	if patch.Settings != nil {
		draft.Settings = patch.Settings
	}
	if patch.AI != nil {
		draft.AI = patch.AI
	}
	if patch.SetQuestions {
		draft.Questions = cloneQuestions(patch.Questions)
	}

	stamp := s.now()
	if !stamp.After(draft.UpdatedAt) {
		// keep the timestamp strictly increasing even on coarse clocks
		stamp = draft.UpdatedAt.Add(time.Millisecond)
	}
	draft.UpdatedAt = stamp
	s.mem = draft

	payload, err := json.Marshal(draft)
	if err != nil {
		log.Errorf("draft.save.marshal: %s", err)
		return
	}

	_, err = s.db.Exec(`
		INSERT INTO app_storage (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		draftKey,
		string(payload),
		draft.UpdatedAt,
	)
	if err != nil {
		// degraded to memory-only; not surfaced to the author
		log.Warnf("draft.save.write: %s", err)
	}
}

// Load returns the current draft, or nil when nothing resumable exists.
// A corrupt stored record counts as absent.
func (s *DraftStore) Load() *model.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mem != nil {
		return cloneDraft(s.mem)
	}

	draft := s.read()
	if draft == nil {
		return nil
	}
	s.mem = draft
	return cloneDraft(draft)
}

// read fetches and decodes the persisted draft. Caller holds the lock.
func (s *DraftStore) read() *model.Draft {
	var payload string
	err := s.db.
		QueryRow("SELECT value FROM app_storage WHERE key = ?", draftKey).
		Scan(&payload)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Warnf("draft.load.read: %s", err)
		}
		return nil
	}

	draft := &model.Draft{}
	if err := json.Unmarshal([]byte(payload), draft); err != nil {
		log.Debugf("draft.load.corrupt: %s", err)
		return nil
	}
	return draft
}

// Clear removes the draft and every legacy side key. Idempotent.
func (s *DraftStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mem = nil

	keys := append([]string{draftKey}, legacyKeys...)
	for _, key := range keys {
		if _, err := s.db.Exec("DELETE FROM app_storage WHERE key = ?", key); err != nil {
			log.Warnf("draft.clear.%s: %s", key, err)
		}
	}
}

// Exists is a cheap presence check, no full decode.
func (s *DraftStore) Exists() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mem != nil {
		return true
	}

	var one int
	err := s.db.
		QueryRow("SELECT 1 FROM app_storage WHERE key = ?", draftKey).
		Scan(&one)
	return err == nil
}

func cloneDraft(d *model.Draft) *model.Draft {
	c := *d
	c.Questions = cloneQuestions(d.Questions)
	if d.Settings != nil {
		settings := *d.Settings
		c.Settings = &settings
	}
	if d.AI != nil {
		ai := *d.AI
		c.AI = &ai
	}
	return &c
}

func cloneQuestions(qs []model.Question) []model.Question {
	if qs == nil {
		return nil
	}
	out := make([]model.Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}
