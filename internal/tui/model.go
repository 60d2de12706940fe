// Package tui is the terminal review console used by modctl.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/noah-isme/contentguard-api/internal/dto"
	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/internal/queue"
	appErrors "github.com/noah-isme/contentguard-api/pkg/errors"
)

// Reviewer is the review surface the console drives.
type Reviewer interface {
	View(ctx context.Context) dto.ReviewResponse
	SetFilters(ctx context.Context, req dto.ReviewFiltersRequest) (dto.ReviewResponse, error)
	SetMode(ctx context.Context, mode queue.Mode) (dto.ReviewResponse, error)
	Review(ctx context.Context, id string) (dto.ReviewResponse, error)
	Next(ctx context.Context) dto.ReviewResponse
	Previous(ctx context.Context) dto.ReviewResponse
	Approve(ctx context.Context, actor models.Identity, id, notes string) (dto.ReviewResponse, error)
	Reject(ctx context.Context, actor models.Identity, id string, category models.Category, notes string) (dto.ReviewResponse, error)
}

// Model is the bubbletea model of the review console.
type Model struct {
	ctx      context.Context
	reviewer Reviewer
	actor    models.Identity

	view       queue.View
	endOfQueue bool
	cursor     int

	picking   bool
	category  int
	pendingID string

	noting   bool
	decision models.ModerationStatus
	notes    textinput.Model

	status string
	err    string

	keys   keyMap
	help   help.Model
	styles styles
	width  int
}

// New renders the current queue for actor.
func New(ctx context.Context, reviewer Reviewer, actor models.Identity) Model {
	notes := textinput.New()
	notes.Placeholder = "Add notes about this content (optional)"
	notes.Prompt = "notes> "
	notes.CharLimit = 500

	m := Model{
		ctx:      ctx,
		reviewer: reviewer,
		actor:    actor,
		notes:    notes,
		keys:     defaultKeyMap(),
		help:     help.New(),
		styles:   defaultStyles(),
	}
	m.apply(reviewer.View(ctx), nil)
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.noting {
			return m.updateNotes(msg)
		}
		if m.picking {
			return m.updatePicker(msg)
		}
		return m.updateQueue(msg)
	}
	return m, nil
}

func (m Model) updateQueue(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status, m.err = "", ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.view.Items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if m.view.Mode == queue.ModeList && len(m.view.Items) > 0 {
			m.apply(m.reviewer.Review(m.ctx, m.view.Items[m.cursor].ID))
		}
	case key.Matches(msg, m.keys.Back):
		m.apply(m.reviewer.SetMode(m.ctx, queue.ModeList))
	case key.Matches(msg, m.keys.Next):
		if m.view.Mode == queue.ModeSingle {
			m.apply(m.reviewer.Next(m.ctx), nil)
		}
	case key.Matches(msg, m.keys.Previous):
		if m.view.Mode == queue.ModeSingle {
			m.apply(m.reviewer.Previous(m.ctx), nil)
		}
	case key.Matches(msg, m.keys.Approve):
		if id, ok := m.target(); ok {
			m.pendingID = id
			cmd := m.startNotes(models.StatusApproved)
			return m, cmd
		}
	case key.Matches(msg, m.keys.Reject):
		if id, ok := m.target(); ok {
			m.picking, m.pendingID, m.category = true, id, 0
		}
	case key.Matches(msg, m.keys.Type):
		f := m.view.Filters
		f.ContentType = cycle(f.ContentType, contentTypeOptions())
		m.setFilters(f)
	case key.Matches(msg, m.keys.Platform):
		f := m.view.Filters
		f.Platform = cycle(f.Platform, platformOptions())
		m.setFilters(f)
	case key.Matches(msg, m.keys.Sort):
		f := m.view.Filters
		if f.SortOrder == queue.SortOldest {
			f.SortOrder = queue.SortNewest
		} else {
			f.SortOrder = queue.SortOldest
		}
		m.setFilters(f)
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.picking, m.pendingID = false, ""
	case key.Matches(msg, m.keys.Up):
		if m.category > 0 {
			m.category--
		}
	case key.Matches(msg, m.keys.Down):
		if m.category < len(models.Categories)-1 {
			m.category++
		}
	case key.Matches(msg, m.keys.Open):
		m.picking = false
		cmd := m.startNotes(models.StatusRejected)
		return m, cmd
	}
	return m, nil
}

func (m *Model) startNotes(decision models.ModerationStatus) tea.Cmd {
	m.noting, m.decision = true, decision
	m.notes.Reset()
	return m.notes.Focus()
}

// updateNotes feeds keys to the notes input until enter submits the pending
// decision or esc abandons it.
func (m Model) updateNotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.noting, m.pendingID = false, ""
		m.notes.Blur()
		return m, nil
	case tea.KeyEnter:
		m.noting = false
		m.notes.Blur()
		m.submit(m.notes.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

func (m *Model) submit(notes string) {
	id := m.pendingID
	m.pendingID = ""
	m.status, m.err = "", ""
	switch m.decision {
	case models.StatusApproved:
		m.apply(m.reviewer.Approve(m.ctx, m.actor, id, notes))
		if m.err == "" {
			m.status = "Approved " + id
		}
	case models.StatusRejected:
		category := models.Categories[m.category]
		m.apply(m.reviewer.Reject(m.ctx, m.actor, id, category, notes))
		if m.err == "" {
			m.status = fmt.Sprintf("Rejected %s as %s", id, category.Label())
		}
	}
}

func (m *Model) setFilters(f queue.Filters) {
	m.apply(m.reviewer.SetFilters(m.ctx, dto.ReviewFiltersRequest{
		ContentType: f.ContentType,
		Platform:    f.Platform,
		SortOrder:   string(f.SortOrder),
	}))
}

// target is the item a decision applies to: the open item in single mode or
// the highlighted row in list mode.
func (m Model) target() (string, bool) {
	if !m.view.CanDecide {
		return "", false
	}
	if m.view.Mode == queue.ModeSingle && m.view.Current != nil {
		return m.view.Current.ID, true
	}
	if m.cursor < len(m.view.Items) {
		return m.view.Items[m.cursor].ID, true
	}
	return "", false
}

func (m *Model) apply(resp dto.ReviewResponse, err error) {
	if err != nil {
		m.err = appErrors.FromError(err).Message
		if resp.Filters.ContentType == "" {
			return
		}
	}
	m.view = resp.View
	m.endOfQueue = resp.EndOfQueue
	if m.view.Mode == queue.ModeSingle && m.view.CurrentIndex >= 0 {
		m.cursor = m.view.CurrentIndex
	}
	if m.cursor >= len(m.view.Items) {
		m.cursor = max(len(m.view.Items)-1, 0)
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("ContentGuard review"))
	b.WriteString("  ")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%s · %s", m.actor.Name, m.view.Mode)))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.endOfQueue {
		b.WriteString(m.styles.Banner.Render("End of Queue: you've reached the end of the content queue."))
		b.WriteString("\n\n")
	}

	switch {
	case m.noting:
		b.WriteString(m.renderNotes())
	case m.picking:
		b.WriteString(m.renderPicker())
	case m.view.Empty:
		b.WriteString(m.styles.Muted.Render("No pending content matches the current filters."))
		b.WriteString("\n")
	case m.view.Mode == queue.ModeSingle && m.view.Current != nil:
		b.WriteString(m.renderCurrent())
	default:
		b.WriteString(m.renderList())
	}

	b.WriteString("\n")
	if m.err != "" {
		b.WriteString(m.styles.Error.Render(m.err))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderTabs() string {
	c := m.view.Counts
	f := m.view.Filters
	return m.styles.Tabs.Render(fmt.Sprintf(
		"all %d · image %d · video %d · comment %d   type=%s platform=%s sort=%s",
		c.All, c.Image, c.Video, c.Comment, f.ContentType, f.Platform, f.SortOrder,
	))
}

func (m Model) renderList() string {
	var b strings.Builder
	for i, item := range m.view.Items {
		line := fmt.Sprintf("%-4s %-8s %-10s %-16s %s", item.ID, item.Type, item.Platform, item.User.Name, preview(item, 40))
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCurrent() string {
	item := m.view.Current
	body := fmt.Sprintf("%s  %d/%d\n%s on %s by %s\nsubmitted %s\n\n%s",
		item.ID, m.view.CurrentIndex+1, m.view.Total,
		item.Type, item.Platform, item.User.Name,
		item.Timestamp.Format("2006-01-02 15:04"),
		preview(*item, 200),
	)
	return m.styles.Card.Render(body) + "\n"
}

func (m Model) renderPicker() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Reject %s as:\n", m.pendingID))
	for i, c := range models.Categories {
		line := "  " + c.Label()
		if i == m.category {
			b.WriteString(m.styles.Selected.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderNotes() string {
	verb := "Approve"
	if m.decision == models.StatusRejected {
		verb = "Reject (" + models.Categories[m.category].Label() + ")"
	}
	return fmt.Sprintf("%s %s\n%s\n%s\n", verb, m.pendingID, m.notes.View(),
		m.styles.Muted.Render("enter to submit · esc to cancel"))
}

func preview(item models.ContentItem, limit int) string {
	var s string
	switch {
	case item.Text != nil:
		s = *item.Text
	case item.URL != nil:
		s = *item.URL
	}
	r := []rune(s)
	if len(r) > limit {
		return string(r[:limit-1]) + "…"
	}
	return s
}

func contentTypeOptions() []string {
	opts := []string{queue.All}
	for _, t := range models.ContentTypes {
		opts = append(opts, string(t))
	}
	return opts
}

func platformOptions() []string {
	opts := []string{queue.All}
	for _, p := range models.Platforms {
		opts = append(opts, string(p))
	}
	return opts
}

func cycle(current string, options []string) string {
	for i, opt := range options {
		if opt == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}
