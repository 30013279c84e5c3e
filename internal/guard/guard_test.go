package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Makepad-fr/tada/internal/model"
)

func TestCheck(t *testing.T) {
	ann := &model.User{Name: "Ann", Email: "ann@x.com"}

	tests := []struct {
		name string
		page Page
		user *model.User
		want Decision
	}{
		{name: "home logged out", page: Home, want: Decision{Outcome: Stay, Page: Home}},
		{name: "home logged in", page: Home, user: ann, want: Decision{Outcome: Stay, Page: Home}},
		{name: "login logged out", page: Login, want: Decision{Outcome: Stay, Page: Login}},
		{name: "login logged in", page: Login, user: ann, want: Decision{Outcome: RedirectToProtected, Page: Todos}},
		{name: "todos logged out", page: Todos, want: Decision{Outcome: RedirectToLogin, Page: Login}},
		{name: "todos logged in", page: Todos, user: ann, want: Decision{Outcome: Stay, Page: Todos}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check(tt.page, tt.user)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Outcome != Stay, got.Redirected())
			assert.Equal(t, tt.want.Page, Resolve(tt.page, tt.user))
		})
	}
}

func TestPageString(t *testing.T) {
	assert.Equal(t, "home", Home.String())
	assert.Equal(t, "login", Login.String())
	assert.Equal(t, "todos", Todos.String())
	assert.Equal(t, "unknown", Page(42).String())
}
