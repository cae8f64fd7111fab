package errors

import (
	"fmt"
	"go/token"
)

// Diagnostic is an error located at a source position.
type Diagnostic struct {
	Pos token.Position
	Err error
}

func (d *Diagnostic) Error() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: %v", d.Pos, d.Err)
	}
	return d.Err.Error()
}

func (d *Diagnostic) Unwrap() error { return d.Err }

// At locates err at pos. An error that already carries a position is
// returned unchanged, so a failure is located exactly once.
func At(pos token.Position, err error) error {
	if err == nil {
		return nil
	}
	var d *Diagnostic
	if As(err, &d) {
		return err
	}
	return &Diagnostic{Pos: pos, Err: err}
}

// PositionOf returns the position attached by At.
func PositionOf(err error) (token.Position, bool) {
	var d *Diagnostic
	if err == nil || !As(err, &d) {
		return token.Position{}, false
	}
	return d.Pos, true
}
