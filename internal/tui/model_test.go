package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/contentguard-api/internal/fixtures"
	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/internal/queue"
	"github.com/noah-isme/contentguard-api/internal/repository"
	"github.com/noah-isme/contentguard-api/internal/service"
)

var operator = models.Identity{ID: "1", Name: "Admin User", Role: models.RoleAdmin}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m, _ := newTestModelWithRepo(t)
	return m
}

func newTestModelWithRepo(t *testing.T) (Model, *repository.ContentRepository) {
	t.Helper()
	repo := repository.NewContentRepository(fixtures.Content())
	decisions := service.NewDecisionService(repo, nil, nil, nil)
	reviews := service.NewReviewService(repo, decisions, nil, nil, nil, nil)
	return New(context.Background(), reviews, operator), repo
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func itemIDs(m Model) []string {
	ids := make([]string, 0, len(m.view.Items))
	for _, item := range m.view.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestModelStartsInListMode(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, queue.ModeList, m.view.Mode)
	assert.Equal(t, []string{"c1", "c2", "c3"}, itemIDs(m))
	assert.Equal(t, 0, m.cursor)
	assert.Contains(t, m.View(), "all 3")
}

func TestModelOpensHighlightedItem(t *testing.T) {
	m := press(t, newTestModel(t), "down", "enter")

	require.Equal(t, queue.ModeSingle, m.view.Mode)
	require.NotNil(t, m.view.Current)
	assert.Equal(t, "c2", m.view.Current.ID)
	assert.Contains(t, m.View(), "2/3")

	m = press(t, m, "esc")
	assert.Equal(t, queue.ModeList, m.view.Mode)
}

func TestModelApproveAdvances(t *testing.T) {
	m := press(t, newTestModel(t), "down", "enter", "a")
	require.True(t, m.noting)
	assert.Contains(t, m.View(), "Approve c2")

	m = press(t, m, "enter")

	assert.Equal(t, "Approved c2", m.status)
	assert.Empty(t, m.err)
	assert.Equal(t, []string{"c1", "c3"}, itemIDs(m))
	require.NotNil(t, m.view.Current)
	assert.Equal(t, "c3", m.view.Current.ID)
}

func TestModelRejectWithCategory(t *testing.T) {
	m := press(t, newTestModel(t), "r")
	require.True(t, m.picking)
	assert.Contains(t, m.View(), "Reject c1 as:")

	m = press(t, m, "down", "down", "enter")
	assert.False(t, m.picking)
	require.True(t, m.noting)
	assert.Contains(t, m.View(), "Reject (violence) c1")

	m = press(t, m, "enter")
	assert.Equal(t, "Rejected c1 as violence", m.status)
	assert.Equal(t, []string{"c2", "c3"}, itemIDs(m))
}

func TestModelRejectCancelled(t *testing.T) {
	m := press(t, newTestModel(t), "r", "esc")

	assert.False(t, m.picking)
	assert.Equal(t, []string{"c1", "c2", "c3"}, itemIDs(m))
}

func TestModelFiltersCycle(t *testing.T) {
	m := press(t, newTestModel(t), "t")
	assert.Equal(t, "image", m.view.Filters.ContentType)
	assert.Equal(t, []string{"c1"}, itemIDs(m))

	m = press(t, m, "t", "t", "t", "s")
	assert.Equal(t, queue.All, m.view.Filters.ContentType)
	assert.Equal(t, queue.SortOldest, m.view.Filters.SortOrder)
	assert.Equal(t, []string{"c3", "c2", "c1"}, itemIDs(m))
}

func TestModelEndOfQueueBanner(t *testing.T) {
	m := press(t, newTestModel(t), "enter", "n", "n")
	assert.False(t, m.endOfQueue)

	m = press(t, m, "n")
	assert.True(t, m.endOfQueue)
	assert.Equal(t, "c1", m.view.Current.ID)
	assert.Contains(t, m.View(), "End of Queue")

	m = press(t, m, "p")
	assert.False(t, m.endOfQueue)
	assert.Equal(t, "c3", m.view.Current.ID)
}

func TestModelEmptyQueueIgnoresDecisions(t *testing.T) {
	m := press(t, newTestModel(t), "a", "enter", "a", "enter", "a", "enter")
	require.True(t, m.view.Empty)

	m = press(t, m, "a", "r")
	assert.False(t, m.picking)
	assert.False(t, m.noting)
	assert.Empty(t, m.err)
	assert.Contains(t, m.View(), "No pending content")
}

func TestModelDecisionNotesRecorded(t *testing.T) {
	m, repo := newTestModelWithRepo(t)

	m = press(t, m, "a", "q", "u", "i", "e", "t")
	assert.Equal(t, "quiet", m.notes.Value())
	m = press(t, m, "enter")
	assert.Equal(t, "Approved c1", m.status)

	m = press(t, m, "r", "down", "down", "down", "down", "enter", "b", "o", "t", "enter")
	assert.Equal(t, "Rejected c2 as spam", m.status)

	approved, err := repo.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	require.NotNil(t, approved.Notes)
	assert.Equal(t, "quiet", *approved.Notes)

	rejected, err := repo.FindByID(context.Background(), "c2")
	require.NoError(t, err)
	require.NotNil(t, rejected.Notes)
	assert.Equal(t, "bot", *rejected.Notes)
}

func TestModelNotesCancelled(t *testing.T) {
	m := press(t, newTestModel(t), "a", "x", "esc")

	assert.False(t, m.noting)
	assert.Empty(t, m.status)
	assert.Equal(t, []string{"c1", "c2", "c3"}, itemIDs(m))

	m = press(t, m, "a")
	assert.Empty(t, m.notes.Value())
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
