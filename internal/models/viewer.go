package models

// Viewer is the immutable per-request identity context. Rebuilt on every
// request from the verified token plus the backend profile row, never held
// as ambient state.
type Viewer struct {
	Authenticated bool
	User          *User
}

// Onboarded reports whether the viewer may see city-scoped feeds.
func (v Viewer) Onboarded() bool {
	return v.Authenticated && v.User != nil && v.User.OnboardingCompleted
}

// City is the viewer's preferred city, empty when not configured.
func (v Viewer) City() string {
	if v.User == nil {
		return ""
	}
	return v.User.PreferredCity
}

// Admin reports moderation access.
func (v Viewer) Admin() bool {
	return v.Authenticated && v.User != nil && v.User.Role == RoleAdmin
}

func Guest() Viewer { return Viewer{} }
