// Package ui renders auth state as text. Everything here is a read-only
// consumer: it never calls the API or touches the store.
package ui

import (
	"fmt"
	"strings"

	"simplecrud/internal/models"
)

// State is the slice of the auth context the renderers need.
type State interface {
	CurrentUser() (models.User, bool)
	IsAuthenticated() bool
}

const timeLayout = "Jan 2, 2006 15:04 MST"

// Header renders the title and navigation. The profile link only shows up
// for a signed-in user.
func Header(state State) string {
	var b strings.Builder
	b.WriteString("Simple CRUD App\n")

	links := []string{"home", "users"}
	if state.IsAuthenticated() {
		links = append(links, "profile")
	}
	fmt.Fprintf(&b, "  %s\n", strings.Join(links, " | "))
	return b.String()
}

// Profile renders the signed-in user's details, or a placeholder when nobody
// is signed in. Timestamps are formatted for humans here; the API keeps them
// machine-readable.
func Profile(state State) string {
	user, ok := state.CurrentUser()
	if !ok {
		return "Please log in to view your profile.\n"
	}

	var b strings.Builder
	b.WriteString("User Profile\n")
	fmt.Fprintf(&b, "  Email:        %s\n", user.Email)
	fmt.Fprintf(&b, "  Member since: %s\n", user.CreatedAt.Format(timeLayout))
	fmt.Fprintf(&b, "  Last login:   %s\n", user.LastLogin.Format(timeLayout))
	return b.String()
}
