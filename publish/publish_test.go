package publish

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roman3340/ai-surveys-sub000/api"
	"github.com/Roman3340/ai-surveys-sub000/model"
	"github.com/Roman3340/ai-surveys-sub000/storage"
)

type mockClient struct {
	api.Client

	createCalls  int
	publishCalls int
	createFunc   func(ctx context.Context, payload api.SurveyPayload) (string, error)
	publishFunc  func(ctx context.Context, surveyID string) error
}

func (m *mockClient) CreateSurvey(ctx context.Context, payload api.SurveyPayload) (string, error) {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, payload)
	}
	return "srv-1", nil
}

func (m *mockClient) PublishSurvey(ctx context.Context, surveyID string) error {
	m.publishCalls++
	if m.publishFunc != nil {
		return m.publishFunc(ctx, surveyID)
	}
	return nil
}

func newTestStore(t *testing.T) *storage.DraftStore {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "drafts.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return storage.NewDraftStore(db)
}

func modePtr(m model.Mode) *model.Mode { return &m }

func saveValidDraft(store *storage.DraftStore) {
	store.Save(storage.Patch{
		Mode:     modePtr(model.ModeManual),
		Settings: &model.Settings{Title: "Coffee survey"},
		Questions: []model.Question{
			{ID: "q1", Type: model.TypeText, Title: "Name?"},
			{ID: "q2", Type: model.TypeSingleChoice, Title: "Blend?", Options: []string{"A", "B"}},
		},
		SetQuestions: true,
	})
}

func TestPublishHappyPathClearsDraft(t *testing.T) {
	store := newTestStore(t)
	saveValidDraft(store)
	client := &mockClient{}

	result, err := NewReconciler(client, store).Publish(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "srv-1", result.SurveyID)
	assert.Equal(t, 1, client.createCalls)
	assert.Equal(t, 1, client.publishCalls)

	// only full success clears local state
	assert.False(t, store.Exists())
	assert.Nil(t, store.Load())
}

func TestValidationFailureNeverReachesBackend(t *testing.T) {
	store := newTestStore(t)
	store.Save(storage.Patch{
		Mode:     modePtr(model.ModeManual),
		Settings: &model.Settings{Title: "Coffee survey"},
		Questions: []model.Question{
			{ID: "q1", Type: model.TypeText}, // missing title
		},
		SetQuestions: true,
	})
	client := &mockClient{}

	_, err := NewReconciler(client, store).Publish(context.Background())
	require.Error(t, err)

	verr := &ValidationError{}
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Questions, "q1")
	assert.Equal(t, "q1", verr.FirstFailing)

	assert.Equal(t, 0, client.createCalls)
	assert.Equal(t, 0, client.publishCalls)
	assert.True(t, store.Exists())
}

func TestPartialFailureKeepsDraftAndRetriesWithoutRecreating(t *testing.T) {
	store := newTestStore(t)
	saveValidDraft(store)

	backendDown := true
	client := &mockClient{
		publishFunc: func(ctx context.Context, surveyID string) error {
			if backendDown {
				return &api.Error{Code: "api.publish_survey", Kind: api.KindTransient}
			}
			return nil
		},
	}

	rec := NewReconciler(client, store)

	_, err := rec.Publish(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, client.createCalls)
	assert.Equal(t, 1, client.publishCalls)

	// survey was created server-side; draft stays for retry
	assert.True(t, store.Exists())
	assert.True(t, rec.Retryable())

	// second failing retry still does not re-create
	_, err = rec.Publish(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, client.createCalls)
	assert.Equal(t, 2, client.publishCalls)

	backendDown = false
	result, err := rec.Publish(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "srv-1", result.SurveyID)
	assert.Equal(t, 1, client.createCalls, "create must run at most once per session")

	assert.False(t, store.Exists())
	assert.False(t, rec.Retryable())
}

func TestCreateFailureLeavesNothingRemembered(t *testing.T) {
	store := newTestStore(t)
	saveValidDraft(store)

	failing := true
	client := &mockClient{
		createFunc: func(ctx context.Context, payload api.SurveyPayload) (string, error) {
			if failing {
				return "", &api.Error{Code: "api.create_survey", Kind: api.KindTransient}
			}
			return "srv-2", nil
		},
	}

	rec := NewReconciler(client, store)
	_, err := rec.Publish(context.Background())
	require.Error(t, err)
	assert.False(t, rec.Retryable())
	assert.True(t, store.Exists())

	failing = false
	result, err := rec.Publish(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "srv-2", result.SurveyID)
	assert.Equal(t, 2, client.createCalls)
}

func TestPublishWithoutDraft(t *testing.T) {
	store := newTestStore(t)
	client := &mockClient{}

	_, err := NewReconciler(client, store).Publish(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, client.createCalls)
}

func TestConcurrentPublishIsRejected(t *testing.T) {
	store := newTestStore(t)
	saveValidDraft(store)

	started := make(chan struct{})
	release := make(chan struct{})
	client := &mockClient{
		publishFunc: func(ctx context.Context, surveyID string) error {
			close(started)
			<-release
			return nil
		},
	}

	rec := NewReconciler(client, store)

	done := make(chan error, 1)
	go func() {
		_, err := rec.Publish(context.Background())
		done <- err
	}()

	<-started
	_, err := rec.Publish(context.Background())
	assert.ErrorIs(t, err, ErrInFlight)

	close(release)
	require.NoError(t, <-done)
}
