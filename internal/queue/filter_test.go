package queue

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/contentguard-api/internal/fixtures"
	"github.com/noah-isme/contentguard-api/internal/models"
)

var base = time.Date(2023, 10, 15, 12, 0, 0, 0, time.UTC)

func item(id string, typ models.ContentType, platform models.Platform, offset time.Duration) models.ContentItem {
	it := models.ContentItem{
		ID:        id,
		Type:      typ,
		Timestamp: base.Add(offset),
		Status:    models.StatusPending,
		Platform:  platform,
		User:      models.Author{ID: "u-" + id, Name: "User " + id},
	}
	if typ == models.ContentTypeComment {
		text := "text " + id
		it.Text = &text
	} else {
		url := "https://example.com/" + id
		it.URL = &url
	}
	return it
}

func ids(items []models.ContentItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestApplyOnlyKeepsMatchingPendingItems(t *testing.T) {
	items := fixtures.Content()
	types := append([]string{All}, "image", "video", "comment")
	platforms := []string{All}
	for _, p := range models.Platforms {
		platforms = append(platforms, string(p))
	}

	for _, typ := range types {
		for _, platform := range platforms {
			for _, order := range []SortOrder{SortNewest, SortOldest} {
				f := Filters{ContentType: typ, Platform: platform, SortOrder: order}
				got := Apply(items, f)

				want := 0
				for _, it := range items {
					if it.IsPending() &&
						(typ == All || string(it.Type) == typ) &&
						(platform == All || string(it.Platform) == platform) {
						want++
					}
				}
				require.Len(t, got, want, "filters %+v", f)
				for _, it := range got {
					assert.True(t, it.IsPending())
					if typ != All {
						assert.Equal(t, typ, string(it.Type))
					}
					if platform != All {
						assert.Equal(t, platform, string(it.Platform))
					}
				}
			}
		}
	}
}

func TestApplySortIsStableAndOrdered(t *testing.T) {
	items := []models.ContentItem{
		item("a", models.ContentTypeImage, models.PlatformFacebook, 0),
		item("b", models.ContentTypeVideo, models.PlatformFacebook, time.Hour),
		item("c", models.ContentTypeComment, models.PlatformFacebook, 0),
		item("d", models.ContentTypeImage, models.PlatformFacebook, -time.Hour),
		item("e", models.ContentTypeImage, models.PlatformFacebook, time.Hour),
	}

	newest := Apply(items, DefaultFilters())
	if diff := cmp.Diff([]string{"b", "e", "a", "c", "d"}, ids(newest)); diff != "" {
		t.Fatalf("newest order mismatch (-want +got):\n%s", diff)
	}

	oldest := Apply(items, Filters{ContentType: All, Platform: All, SortOrder: SortOldest})
	if diff := cmp.Diff([]string{"d", "a", "c", "b", "e"}, ids(oldest)); diff != "" {
		t.Fatalf("oldest order mismatch (-want +got):\n%s", diff)
	}

	for i := 1; i < len(newest); i++ {
		assert.False(t, newest[i].Timestamp.After(newest[i-1].Timestamp))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	items := []models.ContentItem{
		item("old", models.ContentTypeImage, models.PlatformFacebook, -time.Hour),
		item("new", models.ContentTypeImage, models.PlatformFacebook, time.Hour),
	}
	_ = Apply(items, DefaultFilters())
	assert.Equal(t, []string{"old", "new"}, ids(items))
}

func TestApplyEmptyIsValid(t *testing.T) {
	got := Apply(nil, DefaultFilters())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNormalizeFilters(t *testing.T) {
	f, err := Filters{}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, DefaultFilters(), f)

	_, err = Filters{ContentType: "gif"}.Normalize()
	assert.Error(t, err)
	_, err = Filters{Platform: "myspace"}.Normalize()
	assert.Error(t, err)
	_, err = Filters{SortOrder: "random"}.Normalize()
	assert.Error(t, err)
}

func TestCountPending(t *testing.T) {
	counts := CountPending(fixtures.Content())
	assert.Equal(t, TypeCounts{All: 3, Image: 1, Video: 1, Comment: 1}, counts)
}
