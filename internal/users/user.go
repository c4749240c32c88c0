package users

import "fmt"

// User represents a person entered through the form
type User struct {
	firstName string
	lastName  string
	email     string
}

// New creates a user. Validation is the caller's job.
func New(firstName, lastName, email string) User {
	return User{
		firstName: firstName,
		lastName:  lastName,
		email:     email,
	}
}

// FirstName returns the user's first name
func (u User) FirstName() string {
	return u.firstName
}

// LastName returns the user's last name
func (u User) LastName() string {
	return u.lastName
}

// Email returns the user's email address
func (u User) Email() string {
	return u.email
}

// String formats the user for list display
func (u User) String() string {
	return fmt.Sprintf("%s %s - %s", u.firstName, u.lastName, u.email)
}
