package queue

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/contentguard-api/internal/models"
)

// queueOf returns pending items whose newest-first order matches the argument order.
func queueOf(names ...string) []models.ContentItem {
	out := make([]models.ContentItem, len(names))
	for i, n := range names {
		out[i] = item(n, models.ContentTypeImage, models.PlatformInstagram, -time.Duration(i)*time.Minute)
	}
	return out
}

func decide(source []models.ContentItem, id string) []models.ContentItem {
	next := make([]models.ContentItem, len(source))
	copy(next, source)
	for i := range next {
		if next[i].ID == id {
			next[i].Status = models.StatusApproved
		}
	}
	return next
}

func single(t *testing.T, source []models.ContentItem, id string) Controller {
	t.Helper()
	c, err := New(source).Review(id)
	require.NoError(t, err)
	return c
}

func TestReviewSwitchesToSingle(t *testing.T) {
	c := New(queueOf("a", "b", "c"))
	assert.Equal(t, ModeList, c.Mode())

	c, err := c.Review("b")
	require.NoError(t, err)
	assert.Equal(t, ModeSingle, c.Mode())
	assert.Equal(t, 1, c.Index())
}

func TestReviewUnknownItemIsRefused(t *testing.T) {
	c := New(queueOf("a", "b"))
	next, err := c.Review("zzz")
	require.ErrorIs(t, err, ErrItemNotFound)
	assert.Equal(t, ModeList, next.Mode())
	assert.Equal(t, c.View(), next.View())
}

func TestNextWrapsWithEndOfQueue(t *testing.T) {
	c := single(t, queueOf("a", "b", "c"), "b")

	c, sig := c.Next()
	assert.Equal(t, SignalNone, sig)
	assert.Equal(t, 2, c.Index())

	c, sig = c.Next()
	assert.Equal(t, SignalEndOfQueue, sig)
	assert.Equal(t, 0, c.Index())
}

func TestPreviousWrapsSilently(t *testing.T) {
	c := single(t, queueOf("a", "b", "c"), "a")

	c = c.Previous()
	assert.Equal(t, 2, c.Index())
	c = c.Previous()
	assert.Equal(t, 1, c.Index())
}

func TestNavigationIsNoOpForShortQueues(t *testing.T) {
	one := single(t, queueOf("a"), "a")
	next, sig := one.Next()
	assert.Equal(t, SignalNone, sig)
	assert.Equal(t, 0, next.Index())
	assert.Equal(t, 0, one.Previous().Index())
	assert.False(t, one.View().CanNavigate)

	empty := New(nil).SetMode(ModeSingle)
	next, sig = empty.Next()
	assert.Equal(t, SignalNone, sig)
	assert.Equal(t, -1, next.Index())
	assert.Equal(t, -1, empty.Previous().Index())
}

func TestNavigationIgnoredInListMode(t *testing.T) {
	c := New(queueOf("a", "b"))
	next, sig := c.Next()
	assert.Equal(t, SignalNone, sig)
	assert.Equal(t, 0, next.Index())
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	c := single(t, queueOf("a", "b"), "a")
	_, _ = c.Next()
	_ = c.SetFilters(Filters{ContentType: "video", Platform: All, SortOrder: SortNewest})
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 2, c.Len())
}

func TestSetFiltersResetsIndexInSingleMode(t *testing.T) {
	c := single(t, queueOf("a", "b", "c"), "c")
	c = c.SetFilters(Filters{ContentType: All, Platform: All, SortOrder: SortOldest})
	assert.Equal(t, 0, c.Index())
	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "c", cur.ID)
}

func TestSetFiltersToEmptyKeepsSingleMode(t *testing.T) {
	c := single(t, queueOf("a", "b"), "a")
	c = c.SetFilters(Filters{ContentType: "comment", Platform: All, SortOrder: SortNewest})

	v := c.View()
	assert.Equal(t, ModeSingle, v.Mode)
	assert.True(t, v.Empty)
	assert.False(t, v.CanNavigate)
	assert.False(t, v.CanDecide)
	assert.Nil(t, v.Current)
	assert.Equal(t, -1, v.CurrentIndex)
}

func TestAfterDecisionAdvancesToSuccessor(t *testing.T) {
	source := queueOf("a", "b", "c")
	c := single(t, source, "a")

	c, sig := c.AfterDecision("a", decide(source, "a"))
	assert.Equal(t, SignalNone, sig)
	if diff := cmp.Diff([]string{"b", "c"}, ids(c.Items())); diff != "" {
		t.Fatalf("queue mismatch (-want +got):\n%s", diff)
	}
	cur, _ := c.Current()
	assert.Equal(t, "b", cur.ID)
}

func TestAfterDecisionOnLastWrapsWithEndOfQueue(t *testing.T) {
	source := queueOf("a", "b", "c")
	c := single(t, source, "c")

	c, sig := c.AfterDecision("c", decide(source, "c"))
	assert.Equal(t, SignalEndOfQueue, sig)
	assert.Equal(t, 0, c.Index())
	cur, _ := c.Current()
	assert.Equal(t, "a", cur.ID)
}

func TestAfterDecisionOnOnlyItemLeavesEmptySingle(t *testing.T) {
	source := queueOf("a")
	c := single(t, source, "a")

	c, sig := c.AfterDecision("a", decide(source, "a"))
	assert.Equal(t, SignalNone, sig)

	v := c.View()
	assert.Empty(t, v.Items)
	assert.Equal(t, ModeSingle, v.Mode)
	assert.True(t, v.Empty)
	assert.False(t, v.CanDecide)
}

func TestAfterDecisionInListModeKeepsPosition(t *testing.T) {
	source := queueOf("a", "b", "c")
	c := New(source)

	c, sig := c.AfterDecision("b", decide(source, "b"))
	assert.Equal(t, SignalNone, sig)
	assert.Equal(t, ModeList, c.Mode())
	assert.Equal(t, []string{"a", "c"}, ids(c.Items()))
}

func TestAfterDecisionOnOtherItemKeepsCurrent(t *testing.T) {
	source := queueOf("a", "b", "c")
	c := single(t, source, "c")

	c, sig := c.AfterDecision("a", decide(source, "a"))
	assert.Equal(t, SignalNone, sig)
	cur, _ := c.Current()
	assert.Equal(t, "c", cur.ID)
	assert.Equal(t, 1, c.Index())
}

func TestResyncClampsWhenCurrentDisappears(t *testing.T) {
	source := queueOf("a", "b", "c")
	c := single(t, source, "c")

	c = c.Resync(decide(source, "c"))
	assert.Equal(t, 1, c.Index())
	cur, _ := c.Current()
	assert.Equal(t, "b", cur.ID)
}

func TestSetModeClamps(t *testing.T) {
	c := single(t, queueOf("a", "b"), "b")
	c = c.SetMode(ModeList).SetMode(ModeSingle)
	assert.Equal(t, 1, c.Index())
}

func TestViewCounts(t *testing.T) {
	source := append(queueOf("a", "b"), item("z", models.ContentTypeComment, models.PlatformYouTube, time.Hour))
	v := New(source).SetFilters(Filters{ContentType: "comment", Platform: All, SortOrder: SortNewest}).View()
	assert.Equal(t, TypeCounts{All: 3, Image: 2, Comment: 1}, v.Counts)
	assert.Equal(t, 1, v.Total)
	assert.Nil(t, v.Current)
}
