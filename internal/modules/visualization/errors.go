package visualization

import "fmt"

// RenderError wraps a failure with the rendering operation that produced it.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("visualization: %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func renderErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RenderError{Op: op, Err: err}
}
