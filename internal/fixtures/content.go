// Package fixtures holds the built-in dataset the console starts with when no
// external seed is configured.
package fixtures

import (
	"time"

	"github.com/noah-isme/contentguard-api/internal/models"
)

func ptr[T any](v T) *T { return &v }

func ts(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		panic(err)
	}
	return t
}

func avatar(n string) *string {
	return ptr("https://i.pravatar.cc/150?img=" + n)
}

// Content returns a fresh copy of the built-in content items.
func Content() []models.ContentItem {
	return []models.ContentItem{
		{
			ID:        "c1",
			Type:      models.ContentTypeImage,
			URL:       ptr("https://picsum.photos/id/1/500/300"),
			Timestamp: ts("2023-10-15T14:23:11Z"),
			Status:    models.StatusPending,
			User:      models.Author{ID: "u1", Name: "John Doe", Avatar: avatar("1")},
			Platform:  models.PlatformInstagram,
		},
		{
			ID:        "c2",
			Type:      models.ContentTypeVideo,
			URL:       ptr("https://example.com/video1"),
			Timestamp: ts("2023-10-15T12:45:22Z"),
			Status:    models.StatusPending,
			User:      models.Author{ID: "u2", Name: "Jane Smith", Avatar: avatar("2")},
			Platform:  models.PlatformTikTok,
		},
		{
			ID:        "c3",
			Type:      models.ContentTypeComment,
			Text:      ptr("This is a sample comment that needs moderation."),
			Timestamp: ts("2023-10-15T10:12:45Z"),
			Status:    models.StatusPending,
			User:      models.Author{ID: "u3", Name: "Robert Johnson", Avatar: avatar("3")},
			Platform:  models.PlatformFacebook,
		},
		{
			ID:          "c4",
			Type:        models.ContentTypeImage,
			URL:         ptr("https://picsum.photos/id/20/500/300"),
			Timestamp:   ts("2023-10-14T22:18:09Z"),
			Status:      models.StatusApproved,
			Category:    ptr(models.CategoryOther),
			User:        models.Author{ID: "u4", Name: "Alice Williams", Avatar: avatar("4")},
			Platform:    models.PlatformInstagram,
			ModeratedBy: &models.Moderator{ID: "m1", Name: "Moderator 1"},
			ModeratedAt: ptr(ts("2023-10-15T08:22:33Z")),
		},
		{
			ID:          "c5",
			Type:        models.ContentTypeComment,
			Text:        ptr("This comment was flagged and rejected for violating community guidelines."),
			Timestamp:   ts("2023-10-14T18:34:21Z"),
			Status:      models.StatusRejected,
			Category:    ptr(models.CategoryHateSpeech),
			User:        models.Author{ID: "u5", Name: "David Brown", Avatar: avatar("5")},
			Platform:    models.PlatformYouTube,
			ModeratedBy: &models.Moderator{ID: "m2", Name: "Moderator 2"},
			ModeratedAt: ptr(ts("2023-10-14T19:12:45Z")),
			Notes:       ptr("Clear violation of hate speech policy."),
		},
		{
			ID:          "c6",
			Type:        models.ContentTypeVideo,
			URL:         ptr("https://example.com/video2"),
			Timestamp:   ts("2023-10-14T15:56:11Z"),
			Status:      models.StatusApproved,
			User:        models.Author{ID: "u6", Name: "Sarah Miller", Avatar: avatar("6")},
			Platform:    models.PlatformYouTube,
			ModeratedBy: &models.Moderator{ID: "m1", Name: "Moderator 1"},
			ModeratedAt: ptr(ts("2023-10-14T16:32:19Z")),
		},
		{
			ID:          "c7",
			Type:        models.ContentTypeImage,
			URL:         ptr("https://picsum.photos/id/43/500/300"),
			Timestamp:   ts("2023-10-14T12:23:44Z"),
			Status:      models.StatusRejected,
			Category:    ptr(models.CategoryAdult),
			User:        models.Author{ID: "u7", Name: "Michael Wilson", Avatar: avatar("7")},
			Platform:    models.PlatformFacebook,
			ModeratedBy: &models.Moderator{ID: "m3", Name: "Moderator 3"},
			ModeratedAt: ptr(ts("2023-10-14T12:45:22Z")),
			Notes:       ptr("Contains adult content not suitable for general audience."),
		},
		{
			ID:          "c8",
			Type:        models.ContentTypeComment,
			Text:        ptr("This is another comment that was reviewed and approved."),
			Timestamp:   ts("2023-10-14T09:45:33Z"),
			Status:      models.StatusApproved,
			User:        models.Author{ID: "u8", Name: "Emily Davis", Avatar: avatar("8")},
			Platform:    models.PlatformTwitter,
			ModeratedBy: &models.Moderator{ID: "m2", Name: "Moderator 2"},
			ModeratedAt: ptr(ts("2023-10-14T10:12:18Z")),
		},
	}
}
