package command

import (
	"fmt"
	"strconv"
)

// ParseError reports an id argument that is not an unsigned 32-bit integer.
type ParseError struct {
	Arg   string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q is not a valid id", e.Arg, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ArityError reports a wrong number of arguments for a verb.
type ArityError struct {
	Verb    Verb
	Want    int
	Got     int
	AtLeast bool
}

func (e *ArityError) Error() string {
	if e.AtLeast {
		return fmt.Sprintf("%s takes at least %d argument(s), got %d", e.Verb, e.Want, e.Got)
	}
	return fmt.Sprintf("%s takes %d argument(s), got %d", e.Verb, e.Want, e.Got)
}

func exactly(cmd Command, n int) error {
	if len(cmd.Args) != n {
		return &ArityError{Verb: cmd.Verb, Want: n, Got: len(cmd.Args)}
	}
	return nil
}

func atLeast(cmd Command, n int) error {
	if len(cmd.Args) < n {
		return &ArityError{Verb: cmd.Verb, Want: n, Got: len(cmd.Args), AtLeast: true}
	}
	return nil
}

// ParseID parses a decimal uint32 id. arg names the argument in errors.
func ParseID(arg, value string) (uint32, error) {
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, &ParseError{Arg: arg, Value: value, Err: err}
	}
	return uint32(n), nil
}

func parseIDs(arg string, values []string) ([]uint32, error) {
	ids := make([]uint32, 0, len(values))
	for _, v := range values {
		id, err := ParseID(arg, v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
