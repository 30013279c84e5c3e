package model

// Todo is one entry of the personal todo list.
// DueDate keeps the string the user typed; validation decides whether it
// is a calendar date.
type Todo struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	DueDate string `json:"dueDate"`
}
