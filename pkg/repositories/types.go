package repositories

import "fmt"

type ErrNotFound struct {
	Key string
}

func (e *ErrNotFound) Error() string {
	if e.Key == "" {
		return "not found"
	}
	return fmt.Sprintf("key %q not found", e.Key)
}

func IsNotFound(err error) bool {
	_, ok := err.(*ErrNotFound)
	return ok
}
