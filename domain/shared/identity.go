package shared

// Identity carries the per-request caller facts resolved by the HTTP
// layer: who the user is and whether they hold the admin role. The core
// never reads session state itself; an Identity is passed explicitly
// into every application-service operation.
type Identity struct {
	UserID string
	Admin  bool
}

// Anonymous is the identity of an unauthenticated request.
var Anonymous = Identity{}

// Authenticated reports whether the request has a logged-in user.
func (i Identity) Authenticated() bool {
	return i.UserID != ""
}

// NewIdentity creates a customer identity.
func NewIdentity(userID string) Identity {
	return Identity{UserID: userID}
}

// NewAdminIdentity creates an identity that also holds the admin role.
func NewAdminIdentity(userID string) Identity {
	return Identity{UserID: userID, Admin: true}
}
