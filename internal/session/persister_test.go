package session

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizmatters/healthpath/internal/fixtures"
	"github.com/bizmatters/healthpath/internal/logger"
	"github.com/bizmatters/healthpath/internal/plan"
	"github.com/bizmatters/healthpath/internal/storage"
)

// failingKV fails every operation
type failingKV struct {
	err error
}

func (f *failingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f *failingKV) Set(context.Context, string, string) error        { return f.err }
func (f *failingKV) Delete(context.Context, string) error             { return f.err }
func (f *failingKV) Close() error                                     { return nil }

func TestPersister_RoundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewPersister(storage.NewMemory(), logger.NewNop())

	doc, err := plan.Parse(fixtures.PlanJSON)
	require.NoError(t, err)

	s := New()
	s.Answers = fixtures.CompleteAnswers()
	s.Plan = doc
	p.Save(ctx, s)

	loaded, ok := p.Load(ctx)
	require.True(t, ok)

	if diff := cmp.Diff(s.Answers.Snapshot(), loaded.Answers.Snapshot()); diff != "" {
		t.Errorf("answers mismatch (-saved +loaded):\n%s", diff)
	}
	if diff := cmp.Diff(s.Plan, loaded.Plan, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("plan mismatch (-saved +loaded):\n%s", diff)
	}
	assert.Equal(t, 0, loaded.Step)
}

func TestPersister_HasSavedData(t *testing.T) {
	tests := []struct {
		name      string
		seed      map[string]string
		wantSaved bool
		wantPlan  bool
	}{
		{
			name:      "answers without plan",
			seed:      map[string]string{AnswersKey: `{"goal":"loseWeight"}`},
			wantSaved: true,
		},
		{
			name:      "nothing stored",
			seed:      map[string]string{},
			wantSaved: false,
		},
		{
			name:      "empty answers with plan",
			seed:      map[string]string{AnswersKey: `{}`, PlanKey: `{"overview":{"summary":"x"}}`},
			wantSaved: false,
			wantPlan:  true,
		},
		{
			name:      "corrupt answers",
			seed:      map[string]string{AnswersKey: `{"goal":`},
			wantSaved: false,
		},
		{
			name:      "corrupt plan is dropped",
			seed:      map[string]string{AnswersKey: `{"goal":"loseWeight"}`, PlanKey: `not json`},
			wantSaved: true,
			wantPlan:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := storage.NewMemory()
			for k, v := range tt.seed {
				require.NoError(t, kv.Set(ctx, k, v))
			}

			s, ok := NewPersister(kv, logger.NewNop()).Load(ctx)
			require.NotNil(t, s)
			assert.Equal(t, tt.wantSaved, ok)
			assert.Equal(t, tt.wantPlan, s.HasPlan())
		})
	}
}

func TestPersister_SaveWithoutPlanKeepsPlanKeyUntouched(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	p := NewPersister(kv, logger.NewNop())

	s := New()
	s.Answers = fixtures.CompleteAnswers()
	p.Save(ctx, s)

	_, ok, err := kv.Get(ctx, PlanKey)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = kv.Get(ctx, AnswersKey)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPersister_Clear(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	p := NewPersister(kv, logger.NewNop())

	s := New()
	s.Answers = fixtures.CompleteAnswers()
	s.Plan = &plan.Document{}
	s.Step = 4
	p.Save(ctx, s)
	epoch := s.Epoch()

	p.Clear(ctx, s)

	assert.Equal(t, 0, s.Step)
	assert.Equal(t, 0, s.Answers.Len())
	assert.Nil(t, s.Plan)
	assert.Greater(t, s.Epoch(), epoch)

	_, ok := p.Load(ctx)
	assert.False(t, ok)
	_, found, _ := kv.Get(ctx, PlanKey)
	assert.False(t, found)
}

func TestPersister_StorageFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	p := NewPersister(&failingKV{err: errors.New("quota exceeded")}, logger.NewNop())

	s := New()
	s.Answers = fixtures.CompleteAnswers()
	s.Plan = &plan.Document{}

	assert.NotPanics(t, func() {
		p.Save(ctx, s)
		p.Clear(ctx, s)
	})

	loaded, ok := p.Load(ctx)
	assert.False(t, ok)
	assert.NotNil(t, loaded)
	assert.False(t, loaded.HasPlan())
}

func TestStorageError(t *testing.T) {
	cause := errors.New("disk full")
	err := &StorageError{Op: "write", Key: AnswersKey, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "storage write healthpath_answers: disk full", err.Error())
}
