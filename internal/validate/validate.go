// Package validate checks the todo and login forms against their JSON
// schemas and reports every failing field at once.
package validate

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBaseURL = "https://tada.local/schemas/"

// Code classifies why a field was rejected.
type Code string

const (
	TooShort     Code = "too_short"
	InvalidDate  Code = "invalid_date"
	InvalidEmail Code = "invalid_email"
	// Invalid covers schema failures with no dedicated code (wrong type,
	// missing property).
	Invalid Code = "invalid"
)

// ErrValidation is the sentinel every *Error unwraps to.
var ErrValidation = errors.New("validation error")

// FieldError is a single rejected field.
type FieldError struct {
	Field   string
	Code    Code
	Message string
}

// Error lists the rejected fields of one form, in schema property order.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error {
	return ErrValidation
}

// Message returns the message for field, or "" when the field passed.
func (e *Error) Message(field string) string {
	if e == nil {
		return ""
	}
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// Code returns the code for field, or "" when the field passed.
func (e *Error) Code(field string) Code {
	if e == nil {
		return ""
	}
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Code
		}
	}
	return ""
}

// Map returns field -> message.
func (e *Error) Map() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = f.Message
	}
	return out
}

// TodoInput is the raw todo form.
type TodoInput struct {
	Title   string
	DueDate string
}

// LoginInput is the raw login form.
type LoginInput struct {
	Name  string
	Email string
}

// form binds a compiled schema to the order its fields are reported in and
// the message each (field, code) pair surfaces as.
type form struct {
	schema   *jsonschema.Schema
	fields   []string
	messages map[string]map[Code]string
	// formatCodes maps a field to the code its "format" keyword fails with.
	formatCodes map[string]Code
}

var (
	todoForm = &form{
		schema: mustCompile("todo.json"),
		fields: []string{"title", "dueDate"},
		messages: map[string]map[Code]string{
			"title":   {TooShort: "Title must be at least 3 characters long"},
			"dueDate": {InvalidDate: "Invalid date"},
		},
		formatCodes: map[string]Code{"dueDate": InvalidDate},
	}
	loginForm = &form{
		schema: mustCompile("login.json"),
		fields: []string{"name", "email"},
		messages: map[string]map[Code]string{
			"name":  {TooShort: "Name must be at least 3 characters long"},
			"email": {InvalidEmail: "Invalid email"},
		},
		formatCodes: map[string]Code{"email": InvalidEmail},
	}
)

// Todo validates a todo form. On success the input is returned unchanged.
func Todo(in TodoInput) (TodoInput, error) {
	if err := todoForm.check(map[string]interface{}{
		"title":   in.Title,
		"dueDate": in.DueDate,
	}); err != nil {
		return TodoInput{}, err
	}
	return in, nil
}

// Login validates a login form. On success the input is returned unchanged.
func Login(in LoginInput) (LoginInput, error) {
	if err := loginForm.check(map[string]interface{}{
		"name":  in.Name,
		"email": in.Email,
	}); err != nil {
		return LoginInput{}, err
	}
	return in, nil
}

func (f *form) check(doc map[string]interface{}) error {
	err := f.schema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}

	byField := make(map[string]FieldError)
	collect(ve, func(leaf *jsonschema.ValidationError) {
		field := fieldOf(leaf.InstanceLocation)
		if _, seen := byField[field]; seen {
			return
		}
		code := f.codeFor(field, keywordOf(leaf.KeywordLocation))
		msg := f.messages[field][code]
		if msg == "" {
			msg = leaf.Message
		}
		byField[field] = FieldError{Field: field, Code: code, Message: msg}
	})

	out := &Error{Fields: make([]FieldError, 0, len(byField))}
	for _, name := range f.fields {
		if fe, ok := byField[name]; ok {
			out.Fields = append(out.Fields, fe)
			delete(byField, name)
		}
	}
	// Anything left is reported against a location outside the known
	// properties (e.g. the document root).
	rest := make([]string, 0, len(byField))
	for name := range byField {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	for _, name := range rest {
		out.Fields = append(out.Fields, byField[name])
	}
	return out
}

func (f *form) codeFor(field, keyword string) Code {
	switch keyword {
	case "minLength":
		return TooShort
	case "format":
		if c, ok := f.formatCodes[field]; ok {
			return c
		}
	}
	return Invalid
}

func collect(err *jsonschema.ValidationError, leaf func(*jsonschema.ValidationError)) {
	if len(err.Causes) == 0 {
		leaf(err)
		return
	}
	for _, cause := range err.Causes {
		collect(cause, leaf)
	}
}

// fieldOf turns an instance JSON pointer ("/title") into a field name.
func fieldOf(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if i := strings.IndexByte(ptr, '/'); i >= 0 {
		ptr = ptr[:i]
	}
	return ptr
}

// keywordOf returns the last segment of a keyword location.
func keywordOf(loc string) string {
	if i := strings.LastIndexByte(loc, '/'); i >= 0 {
		return loc[i+1:]
	}
	return loc
}

func mustCompile(name string) *jsonschema.Schema {
	// Formats are resolved at compile time, so the custom ones have to be
	// present before the first schema compiles.
	jsonschema.Formats[calendarDateFormat] = isCalendarDate
	jsonschema.Formats[emailFormat] = isEmail

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	data, err := fs.ReadFile(schemaFS, "schemas/"+name)
	if err != nil {
		panic(fmt.Sprintf("validate: read schema %s: %v", name, err))
	}
	url := schemaBaseURL + name
	if err := compiler.AddResource(url, strings.NewReader(string(data))); err != nil {
		panic(fmt.Sprintf("validate: add schema %s: %v", name, err))
	}
	return compiler.MustCompile(url)
}
