package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/timeflow/internal/domain"
	"github.com/runoshun/timeflow/internal/infra/kvrepo"
)

func ptr[T any](v T) *T { return &v }

func TestCreateTag_Execute(t *testing.T) {
	// Setup
	env := newTestEnv(t)
	uc := NewCreateTag(env.repos.Tags, env.clock, env.logger)

	// Execute
	out, err := uc.Execute(context.Background(), CreateTagInput{Label: "  Reading  "})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Reading", out.Tag.Label)
	assert.Equal(t, domain.DefaultTagColor, out.Tag.Color)
	assert.True(t, strings.HasPrefix(out.Tag.ID, fmt.Sprintf("%d-", base.UnixMilli())))
	assert.True(t, out.Tag.Active())

	tags, err := env.repos.Tags.Load()
	require.NoError(t, err)
	require.Len(t, tags, 4)
	assert.Equal(t, out.Tag, tags[3])
}

func TestCreateTag_Execute_EmptyLabel(t *testing.T) {
	env := newTestEnv(t)
	uc := NewCreateTag(env.repos.Tags, env.clock, env.logger)

	_, err := uc.Execute(context.Background(), CreateTagInput{Label: "   "})

	assert.ErrorIs(t, err, domain.ErrEmptyLabel)
	assert.True(t, domain.IsValidation(err))
	_, found, _ := env.store.Get(kvrepo.TagsKey)
	assert.False(t, found)
}

func TestCreateTag_Execute_StorageError(t *testing.T) {
	env := newTestEnv(t)
	env.store.FailSet(kvrepo.TagsKey, errors.New("disk full"))
	uc := NewCreateTag(env.repos.Tags, env.clock, env.logger)

	_, err := uc.Execute(context.Background(), CreateTagInput{Label: "Reading", Color: "#fff"})

	require.Error(t, err)
	assert.True(t, domain.IsStorage(err))
}

func TestUpdateTag_Execute(t *testing.T) {
	tests := []struct {
		name    string
		input   UpdateTagInput
		want    domain.Tag
		wantErr error
	}{
		{
			name:  "rename",
			input: UpdateTagInput{ID: "study", Label: ptr(" Learning ")},
			want:  domain.Tag{ID: "study", Label: "Learning", Color: "#22c55e"},
		},
		{
			name:  "recolor and deactivate",
			input: UpdateTagInput{ID: "work", Color: ptr("#000000"), Active: ptr(false)},
			want:  domain.Tag{ID: "work", Label: "Work", Color: "#000000", IsActive: ptr(false)},
		},
		{
			name:    "no fields",
			input:   UpdateTagInput{ID: "work"},
			wantErr: domain.ErrNoFieldsToUpdate,
		},
		{
			name:    "unknown tag",
			input:   UpdateTagInput{ID: "nope", Label: ptr("x")},
			wantErr: domain.ErrTagNotFound,
		},
		{
			name:    "empty label",
			input:   UpdateTagInput{ID: "work", Label: ptr(" ")},
			wantErr: domain.ErrEmptyLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			uc := NewUpdateTag(env.repos.Tags, env.logger)

			out, err := uc.Execute(context.Background(), tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, domain.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Tag)

			tags, err := env.repos.Tags.Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, tags[domain.FindTag(tags, tt.input.ID)])
		})
	}
}

func TestDeleteTag_Execute(t *testing.T) {
	// Setup
	env := newTestEnv(t)
	settings := domain.DefaultSettings()
	settings.ToggleMasterGoalTag("study")
	settings.ToggleMasterGoalTag("work")
	require.NoError(t, env.repos.Settings.Save(settings))
	uc := NewDeleteTag(env.repos.Tags, env.repos.Settings, env.logger)

	// Execute
	out, err := uc.Execute(context.Background(), DeleteTagInput{ID: "study"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Study", out.Tag.Label)

	tags, err := env.repos.Tags.Load()
	require.NoError(t, err)
	assert.Equal(t, -1, domain.FindTag(tags, "study"))
	assert.Len(t, tags, 2)

	stored, err := env.repos.Settings.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"work"}, stored.MasterGoalTagIDs)
}

func TestDeleteTag_Execute_LastTagLeavesEmptyList(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.repos.Tags.Save([]domain.Tag{{ID: "only", Label: "Only"}}))
	uc := NewDeleteTag(env.repos.Tags, env.repos.Settings, env.logger)

	_, err := uc.Execute(context.Background(), DeleteTagInput{ID: "only"})
	require.NoError(t, err)

	tags, err := env.repos.Tags.Load()
	require.NoError(t, err)
	assert.Empty(t, tags)

	_, err = uc.Execute(context.Background(), DeleteTagInput{ID: "only"})
	assert.ErrorIs(t, err, domain.ErrTagNotFound)
}

func TestListTags_Execute(t *testing.T) {
	env := newTestEnv(t)
	settings := domain.DefaultSettings()
	settings.ToggleMasterGoalTag("study")
	require.NoError(t, env.repos.Settings.Save(settings))

	out, err := NewListTags(env.repos.Tags, env.repos.Settings, env.logger).Execute(context.Background(), ListTagsInput{})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTags(), out.Tags)
	assert.Equal(t, map[string]bool{"study": true}, out.GoalTags)
}

func TestListTags_Execute_EmptySelectionMeansAllActive(t *testing.T) {
	env := newTestEnv(t)
	tags := domain.DefaultTags()
	tags[2].IsActive = ptr(false)
	require.NoError(t, env.repos.Tags.Save(tags))

	out, err := NewListTags(env.repos.Tags, env.repos.Settings, env.logger).Execute(context.Background(), ListTagsInput{})

	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"deep-work": true, "study": true}, out.GoalTags)
}

func TestTagMutations_ReadFailureKeepsStoredTags(t *testing.T) {
	stored := []domain.Tag{{ID: "piano", Label: "Piano", Color: "#fff"}}

	tests := []struct {
		name string
		run  func(env *testEnv) error
	}{
		{
			name: "create",
			run: func(env *testEnv) error {
				_, err := NewCreateTag(env.repos.Tags, env.clock, env.logger).
					Execute(context.Background(), CreateTagInput{Label: "Reading"})
				return err
			},
		},
		{
			name: "update",
			run: func(env *testEnv) error {
				_, err := NewUpdateTag(env.repos.Tags, env.logger).
					Execute(context.Background(), UpdateTagInput{ID: "piano", Label: ptr("Keys")})
				return err
			},
		},
		{
			name: "delete",
			run: func(env *testEnv) error {
				_, err := NewDeleteTag(env.repos.Tags, env.repos.Settings, env.logger).
					Execute(context.Background(), DeleteTagInput{ID: "piano"})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			env := newTestEnv(t)
			require.NoError(t, env.repos.Tags.Save(stored))
			env.store.FailGet(kvrepo.TagsKey, errors.New("permission denied"))

			// Execute
			err := tt.run(env)

			// Assert
			require.Error(t, err)
			assert.True(t, domain.IsReadFailure(err))
			env.store.FailGet(kvrepo.TagsKey, nil)
			tags, err := env.repos.Tags.Load()
			require.NoError(t, err)
			assert.Equal(t, stored, tags)
		})
	}
}

func TestCreateTag_Execute_CorruptTagsFallBackToDefaults(t *testing.T) {
	// Setup
	env := newTestEnv(t)
	require.NoError(t, env.store.Set(kvrepo.TagsKey, []byte("{not json")))
	uc := NewCreateTag(env.repos.Tags, env.clock, env.logger)

	// Execute
	out, err := uc.Execute(context.Background(), CreateTagInput{Label: "Reading"})

	// Assert
	require.NoError(t, err)
	tags, err := env.repos.Tags.Load()
	require.NoError(t, err)
	assert.Equal(t, append(domain.DefaultTags(), out.Tag), tags)
	assert.NotEmpty(t, env.logger.Recorded())
}
