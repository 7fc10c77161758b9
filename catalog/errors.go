package catalog

import "fmt"

// DuplicateNameError is returned when a game or alias name collides
// case-insensitively with an existing entry of either kind.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("an entry with the name '%s' already exists", e.Name)
}

// UnknownGameError is returned when a game name or id does not resolve.
type UnknownGameError struct {
	Name string
}

func (e *UnknownGameError) Error() string {
	return fmt.Sprintf("there is no game with the name '%s'", e.Name)
}
