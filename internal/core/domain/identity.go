package domain

// Identity is the authenticated principal for the duration of one request.
// It is rebuilt on every request from a verified token plus a fresh credential
// lookup, never persisted, and never shared across requests.
type Identity struct {
	UserID   string
	Username string
	Roles    []string
}

// HasAnyRole reports whether the identity holds at least one of the given
// roles. An empty required set admits any authenticated identity.
func (i Identity) HasAnyRole(required ...string) bool {
	if len(required) == 0 {
		return true
	}
	for _, want := range required {
		for _, have := range i.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
