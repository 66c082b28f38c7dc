package models

// Actor is the identity attempting an operation. The zero value is anonymous.
type Actor struct {
	ID       uint
	Username string
}

// Anonymous is the actor of an unauthenticated request.
var Anonymous = Actor{}

// IsAuthenticated reports whether the actor carries a resolved identity.
func (a Actor) IsAuthenticated() bool {
	return a.ID != 0
}
