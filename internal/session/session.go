// Package session holds the state behind the user form: the values being
// typed, the list of users entered so far, the list currently shown, and
// the log of rejected submissions.
package session

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/pdxmph/user-manager-tui/internal/notify"
	"github.com/pdxmph/user-manager-tui/internal/users"
)

// Messages shown to the user
const (
	MsgErrorOccurred    = "An error occurred. Check error log."
	MsgSearchCleared    = "Search cleared."
	MsgSortedAscending  = "Sorted Ascending"
	MsgSortedDescending = "Sorted Descending"
	MsgNoErrors         = "No errors recorded."

	msgMissingField = "All fields are required"
	msgInvalidEmail = "Invalid email format"
)

// timestampLayout is the prefix format for error log entries
const timestampLayout = "2006-01-02 15:04:05"

// Session is the state of one form session. Create one per UI and drop it
// when the UI goes away. A Session is not safe for concurrent use.
type Session struct {
	// Working field values bound to the form inputs
	FirstName string
	LastName  string
	Email     string

	all       []users.User
	displayed []users.User
	errors    []string // most recent first
	errorLog  string
	message   string

	hub    *notify.Hub
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Session
type Option func(*Session)

// WithHub publishes session messages through hub instead of a private one
func WithHub(hub *notify.Hub) Option {
	return func(s *Session) {
		s.hub = hub
	}
}

// WithLogger sets the logger for session activity
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithClock overrides the time source used for error log timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New creates an empty session
func New(opts ...Option) *Session {
	s := &Session{
		hub:    notify.NewHub(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hub returns the hub the session publishes to. UI layers subscribe here.
func (s *Session) Hub() *notify.Hub {
	return s.hub
}

// Submit adds a user from the working field values
func (s *Session) Submit() (users.User, error) {
	return s.Add(s.FirstName, s.LastName, s.Email)
}

// Add validates and appends a user. On success the displayed list is reset
// to every user and the working fields are cleared. On failure the error is
// pushed onto the error log and returned; nothing else changes.
func (s *Session) Add(firstName, lastName, email string) (users.User, error) {
	if err := validate(firstName, lastName, email); err != nil {
		s.recordError(err)
		s.publish(MsgErrorOccurred)
		return users.User{}, err
	}

	u := users.New(firstName, lastName, email)
	s.all = append(s.all, u)
	s.displayed = slices.Clone(s.all)

	s.logger.Info("user added", "first_name", firstName, "last_name", lastName, "count", len(s.all))
	s.publish(fmt.Sprintf("User added: %s %s", firstName, lastName))
	s.clearFields()

	return u, nil
}

func validate(firstName, lastName, email string) error {
	if isBlank(firstName) || isBlank(lastName) || isBlank(email) {
		return &ValidationError{Reason: ReasonMissingField, Message: msgMissingField}
	}
	if !strings.Contains(email, "@") {
		return &ValidationError{Reason: ReasonInvalidEmail, Message: msgInvalidEmail}
	}
	return nil
}

// Search shows the users whose email contains query, ignoring case.
// A blank query shows everyone.
func (s *Session) Search(query string) {
	if isBlank(query) {
		s.displayed = slices.Clone(s.all)
		s.logger.Debug("search cleared", "count", len(s.displayed))
		s.publish(MsgSearchCleared)
		return
	}

	needle := strings.ToLower(query)
	matched := make([]users.User, 0, len(s.all))
	for _, u := range s.all {
		if strings.Contains(strings.ToLower(u.Email()), needle) {
			matched = append(matched, u)
		}
	}
	s.displayed = matched

	s.logger.Debug("search executed", "query", query, "matches", len(matched))
	s.publish(fmt.Sprintf("Search executed for: %s", query))
}

// Sort orders the displayed list by last name, then first name. Descending
// reverses both keys. Only the current view is reordered, so a filtered
// list stays filtered.
func (s *Session) Sort(ascending bool) {
	sorted := slices.Clone(s.displayed)
	slices.SortStableFunc(sorted, func(a, b users.User) int {
		c := cmp.Or(
			strings.Compare(a.LastName(), b.LastName()),
			strings.Compare(a.FirstName(), b.FirstName()),
		)
		if !ascending {
			return -c
		}
		return c
	})
	s.displayed = sorted

	s.logger.Debug("sorted", "ascending", ascending, "count", len(sorted))
	if ascending {
		s.publish(MsgSortedAscending)
	} else {
		s.publish(MsgSortedDescending)
	}
}

// ShowErrors renders the error log, most recent entry first, and returns it
func (s *Session) ShowErrors() string {
	if len(s.errors) == 0 {
		s.errorLog = MsgNoErrors
	} else {
		s.errorLog = strings.Join(s.errors, "\n")
	}
	return s.errorLog
}

// Users returns every user in the order they were added
func (s *Session) Users() []users.User {
	return slices.Clone(s.all)
}

// Displayed returns the users currently shown
func (s *Session) Displayed() []users.User {
	return slices.Clone(s.displayed)
}

// Errors returns the error log entries, most recent first
func (s *Session) Errors() []string {
	return slices.Clone(s.errors)
}

// ErrorLog returns the text produced by the last ShowErrors call
func (s *Session) ErrorLog() string {
	return s.errorLog
}

// Message returns the most recently published message
func (s *Session) Message() string {
	return s.message
}

func (s *Session) recordError(err error) {
	entry := fmt.Sprintf("[%s] %s", s.now().Format(timestampLayout), err.Error())
	s.errors = slices.Insert(s.errors, 0, entry)
	s.logger.Warn("user rejected", "error", err, "logged_errors", len(s.errors))
}

func (s *Session) publish(message string) {
	s.message = message
	s.hub.Publish(message)
}

func (s *Session) clearFields() {
	s.FirstName = ""
	s.LastName = ""
	s.Email = ""
}

func isBlank(v string) bool {
	return strings.TrimSpace(v) == ""
}
