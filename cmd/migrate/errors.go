package main

import (
	"errors"
	"fmt"
)

var errNameRequired = errors.New("name is required for create command")

type unknownCommandError struct {
	command string
}

func (e *unknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: %s", e.command)
}
