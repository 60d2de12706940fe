package models

import "time"

// NotificationVariant controls how the console renders a notification.
type NotificationVariant string

const (
	VariantDefault     NotificationVariant = "default"
	VariantDestructive NotificationVariant = "destructive"
)

// Notification is a transient message emitted after a state change commits.
type Notification struct {
	ID          string              `json:"id"`
	Kind        string              `json:"kind"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Variant     NotificationVariant `json:"variant"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// Notification kinds.
const (
	KindLogin          = "auth.login"
	KindLoginFailed    = "auth.login_failed"
	KindSignup         = "auth.signup"
	KindSignupFailed   = "auth.signup_failed"
	KindLogout         = "auth.logout"
	KindApproved       = "content.approved"
	KindRejected       = "content.rejected"
	KindDecisionFailed = "content.decision_failed"
	KindEndOfQueue     = "queue.end"
	KindPolicyCreated  = "policy.created"
	KindPolicyUpdated  = "policy.updated"
	KindPolicyDeleted  = "policy.deleted"
	KindAPIKeyCreated  = "apikey.created"
	KindAPIKeyToggled  = "apikey.toggled"
	KindAPIKeyRotated  = "apikey.regenerated"
	KindAPIKeyInvalid  = "apikey.invalid"
	KindExportReady    = "export.finished"
	KindExportFailed   = "export.failed"
)
