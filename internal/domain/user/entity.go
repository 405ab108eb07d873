package user

import "time"

// User represents a user entity in the system.
type User struct {
	ID        int64     // ID is the unique identifier assigned on creation
	Name      string    // Name is the full name of the user
	Email     string    // Email is the contact address of the user, duplicates allowed
	BirthDate time.Time // BirthDate is the calendar date of birth, time of day is zero
}
