package gridgraph

import "fmt"

// parseErr builds a *ParseError around a sentinel.
func parseErr(line, column int, err error) error {
	return &ParseError{Line: line, Column: column, Err: err}
}

// outOfBounds is the panic raised by Cost for an invalid position.
func outOfBounds(p Position, w, h int) error {
	return fmt.Errorf("%w: %v not in %dx%d", ErrOutOfBounds, p, h, w)
}
