package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/timeflow/internal/domain"
)

func TestTagCommand_NoSubcommand_ShowsHelp(t *testing.T) {
	c, _ := newTestContainer(t)

	out, err := run(t, c, "tag")

	require.NoError(t, err)
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "list")
	assert.Contains(t, out, "rm")
}

func TestTagListCommand(t *testing.T) {
	c, _ := newTestContainer(t)

	out, err := run(t, c, "tag", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "deep-work")
	assert.Contains(t, out, "Deep Work")
	assert.Contains(t, out, "#22c55e")
}

func TestTagCommands_AddEditRemove(t *testing.T) {
	// Setup
	c, _ := newTestContainer(t)

	// Add
	out, err := run(t, c, "tag", "add", "Reading", "--color", "#a855f7")
	require.NoError(t, err)
	assert.Contains(t, out, "Created tag Reading")

	tags, err := c.Tags.Load()
	require.NoError(t, err)
	require.Len(t, tags, 4)
	id := tags[3].ID

	// Edit
	_, err = run(t, c, "tag", "edit", id, "--label", "Books", "--active=false")
	require.NoError(t, err)
	tags, _ = c.Tags.Load()
	assert.Equal(t, "Books", tags[3].Label)
	assert.Equal(t, "#a855f7", tags[3].Color)
	assert.False(t, tags[3].Active())

	// Remove
	out, err = run(t, c, "tag", "rm", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed tag Books")
	tags, _ = c.Tags.Load()
	assert.Len(t, tags, 3)
}

func TestTagEditCommand_NoFlags(t *testing.T) {
	c, _ := newTestContainer(t)

	_, err := run(t, c, "tag", "edit", "study")

	assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)
}

func TestTagAddCommand_EmptyLabel(t *testing.T) {
	c, _ := newTestContainer(t)

	_, err := run(t, c, "tag", "add", "  ")

	assert.ErrorIs(t, err, domain.ErrEmptyLabel)
}

func TestTagListCommand_JSON(t *testing.T) {
	c, _ := newTestContainer(t)

	out, err := run(t, c, "tag", "list", "--json")
	require.NoError(t, err)

	var tags []domain.Tag
	require.NoError(t, json.Unmarshal([]byte(out), &tags))
	assert.Equal(t, domain.DefaultTags(), tags)
}
