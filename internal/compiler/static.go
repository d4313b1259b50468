package compiler

import "context"

// Static is a Compiler that returns fixed output. It is used where the
// generated code is already known, such as tests and replays of a
// previously compiled template.
type Static struct {
	Output string
	Err    error
}

// Compile returns the fixed output.
func (s Static) Compile(context.Context, string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.Output, nil
}

// Func adapts a function to the Compiler interface.
type Func func(ctx context.Context, source string) (string, error)

// Compile calls f.
func (f Func) Compile(ctx context.Context, source string) (string, error) {
	return f(ctx, source)
}
