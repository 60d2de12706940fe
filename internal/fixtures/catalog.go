package fixtures

import "github.com/noah-isme/contentguard-api/internal/models"

// Policies returns the built-in moderation policies.
func Policies() []models.Policy {
	return []models.Policy{
		{
			ID:          "p1",
			Name:        "Hate Speech Detection",
			Description: "Detects and flags content containing hate speech, slurs, or discriminatory language.",
			Category:    models.CategoryHateSpeech,
			Severity:    models.SeverityHigh,
			Automated:   true,
			CreatedAt:   ts("2023-08-12T10:00:00Z"),
			UpdatedAt:   ts("2023-09-28T14:30:00Z"),
		},
		{
			ID:          "p2",
			Name:        "Adult Content Filter",
			Description: "Identifies and restricts explicit adult content across all platforms.",
			Category:    models.CategoryAdult,
			Severity:    models.SeverityHigh,
			Automated:   true,
			CreatedAt:   ts("2023-08-12T10:00:00Z"),
			UpdatedAt:   ts("2023-10-05T11:15:00Z"),
		},
		{
			ID:          "p3",
			Name:        "Violence & Gore Filter",
			Description: "Detects violent imagery, excessive gore, or content promoting violence.",
			Category:    models.CategoryViolence,
			Severity:    models.SeverityHigh,
			Automated:   true,
			CreatedAt:   ts("2023-08-15T09:30:00Z"),
			UpdatedAt:   ts("2023-09-20T16:45:00Z"),
		},
		{
			ID:          "p4",
			Name:        "Harassment Policy",
			Description: "Identifies content targeting individuals with harassment or bullying.",
			Category:    models.CategoryHarassment,
			Severity:    models.SeverityMedium,
			Automated:   false,
			CreatedAt:   ts("2023-08-18T13:20:00Z"),
			UpdatedAt:   ts("2023-09-10T10:30:00Z"),
		},
		{
			ID:          "p5",
			Name:        "Spam Detection",
			Description: "Identifies repetitive or automated content designed to promote products or services.",
			Category:    models.CategorySpam,
			Severity:    models.SeverityLow,
			Automated:   true,
			CreatedAt:   ts("2023-08-20T15:45:00Z"),
			UpdatedAt:   ts("2023-10-01T09:15:00Z"),
		},
		{
			ID:          "p6",
			Name:        "Misinformation Filter",
			Description: "Flags content containing potentially false or misleading information.",
			Category:    models.CategoryMisinformation,
			Severity:    models.SeverityMedium,
			Automated:   false,
			CreatedAt:   ts("2023-09-01T11:30:00Z"),
			UpdatedAt:   ts("2023-10-10T14:20:00Z"),
		},
		{
			ID:          "p7",
			Name:        "Copyright Detection",
			Description: "Identifies potentially copyrighted material being shared without permission.",
			Category:    models.CategoryCopyright,
			Severity:    models.SeverityMedium,
			Automated:   true,
			CreatedAt:   ts("2023-09-05T14:15:00Z"),
			UpdatedAt:   ts("2023-09-25T16:30:00Z"),
		},
	}
}

// APIKeys returns the built-in platform integrations.
func APIKeys() []models.APIKeyConfig {
	return []models.APIKeyConfig{
		{
			ID: "api1", Name: "Facebook Moderation API", Key: "fb_mod_xxxxxxxxxxxxx",
			Platform: models.PlatformFacebook, Status: models.APIKeyActive,
			CreatedAt: ts("2023-08-01T10:00:00Z"), LastUsed: ptr(ts("2023-10-15T09:45:22Z")),
			RequestLimit: 10000, RequestsUsed: 7823,
		},
		{
			ID: "api2", Name: "Twitter Content API", Key: "tw_content_xxxxxxxxxxx",
			Platform: models.PlatformTwitter, Status: models.APIKeyActive,
			CreatedAt: ts("2023-08-05T14:30:00Z"), LastUsed: ptr(ts("2023-10-15T11:12:33Z")),
			RequestLimit: 5000, RequestsUsed: 3246,
		},
		{
			ID: "api3", Name: "Instagram Moderation API", Key: "ig_mod_xxxxxxxxxxxxx",
			Platform: models.PlatformInstagram, Status: models.APIKeyActive,
			CreatedAt: ts("2023-08-10T09:15:00Z"), LastUsed: ptr(ts("2023-10-15T08:30:15Z")),
			RequestLimit: 8000, RequestsUsed: 6127,
		},
		{
			ID: "api4", Name: "YouTube Content API", Key: "yt_content_xxxxxxxxxxx",
			Platform: models.PlatformYouTube, Status: models.APIKeyInactive,
			CreatedAt: ts("2023-09-01T13:45:00Z"), LastUsed: ptr(ts("2023-10-10T15:22:41Z")),
			RequestLimit: 12000, RequestsUsed: 8934,
		},
		{
			ID: "api5", Name: "TikTok Moderation API", Key: "tt_mod_xxxxxxxxxxxxx",
			Platform: models.PlatformTikTok, Status: models.APIKeyActive,
			CreatedAt: ts("2023-09-15T11:30:00Z"), LastUsed: ptr(ts("2023-10-15T10:18:55Z")),
			RequestLimit: 7500, RequestsUsed: 4215,
		},
	}
}

// DailyVolume is one bar of the weekly moderation chart.
type DailyVolume struct {
	Date     string `json:"date"`
	Approved int    `json:"approved"`
	Rejected int    `json:"rejected"`
}

// WeeklyVolume returns the static weekly chart shown on the dashboard.
func WeeklyVolume() []DailyVolume {
	return []DailyVolume{
		{Date: "Mon", Approved: 320, Rejected: 45},
		{Date: "Tue", Approved: 280, Rejected: 62},
		{Date: "Wed", Approved: 410, Rejected: 78},
		{Date: "Thu", Approved: 350, Rejected: 52},
		{Date: "Fri", Approved: 290, Rejected: 41},
		{Date: "Sat", Approved: 190, Rejected: 32},
		{Date: "Sun", Approved: 140, Rejected: 25},
	}
}
