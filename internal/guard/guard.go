// Package guard decides which page a user may see.
package guard

import "github.com/Makepad-fr/tada/internal/model"

// Page identifies a top-level view.
type Page int

const (
	Home Page = iota
	Login
	Todos
)

func (p Page) String() string {
	switch p {
	case Home:
		return "home"
	case Login:
		return "login"
	case Todos:
		return "todos"
	default:
		return "unknown"
	}
}

// Outcome is the guard's verdict for a requested page.
type Outcome int

const (
	Stay Outcome = iota
	RedirectToLogin
	RedirectToProtected
)

// Decision is an outcome plus the page that should be shown.
type Decision struct {
	Outcome Outcome
	Page    Page
}

// Redirected reports whether the requested page was replaced.
func (d Decision) Redirected() bool { return d.Outcome != Stay }

// Check applies the access rules for page given the current user (nil when
// logged out). Todos needs a user; Login is only for anonymous users.
func Check(page Page, user *model.User) Decision {
	switch {
	case page == Todos && user == nil:
		return Decision{Outcome: RedirectToLogin, Page: Login}
	case page == Login && user != nil:
		return Decision{Outcome: RedirectToProtected, Page: Todos}
	default:
		return Decision{Outcome: Stay, Page: page}
	}
}

// Resolve returns the page to show.
func Resolve(page Page, user *model.User) Page {
	return Check(page, user).Page
}
