package cmd

import (
	"errors"
	"strings"
)

// splitCommandLine splits a POSIX-shell-like command line into argv.
// It understands single and double quotes and backslash escapes but
// performs no expansion.
func splitCommandLine(commandLine string) ([]string, error) {
	var s commandLineSplitter
	for i := range len(commandLine) {
		var next byte
		hasNext := i+1 < len(commandLine)
		if hasNext {
			next = commandLine[i+1]
		}
		s.consume(commandLine[i], next, hasNext)
	}
	return s.finish()
}

type commandLineSplitter struct {
	out []string
	cur strings.Builder

	inArg    bool
	inSingle bool
	inDouble bool
	escaped  bool
}

func (s *commandLineSplitter) flush() {
	if !s.inArg {
		return
	}
	s.out = append(s.out, s.cur.String())
	s.cur.Reset()
	s.inArg = false
}

func (s *commandLineSplitter) write(ch byte) {
	s.cur.WriteByte(ch)
	s.inArg = true
}

func (s *commandLineSplitter) consume(ch, next byte, hasNext bool) {
	switch {
	case s.escaped:
		s.write(ch)
		s.escaped = false
	case s.inSingle:
		if ch == '\'' {
			s.inSingle = false
			return
		}
		s.write(ch)
	case s.inDouble:
		s.consumeDouble(ch, next, hasNext)
	default:
		s.consumePlain(ch, next, hasNext)
	}
}

func (s *commandLineSplitter) consumeDouble(ch, next byte, hasNext bool) {
	switch {
	case ch == '"':
		s.inDouble = false
	case ch == '\\' && hasNext && escapable(next):
		s.escaped = true
		s.inArg = true
	default:
		s.write(ch)
	}
}

func (s *commandLineSplitter) consumePlain(ch, next byte, hasNext bool) {
	switch {
	case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
		s.flush()
	case ch == '\'':
		s.inSingle = true
		s.inArg = true
	case ch == '"':
		s.inDouble = true
		s.inArg = true
	case ch == '\\' && hasNext && escapable(next):
		s.escaped = true
		s.inArg = true
	default:
		s.write(ch)
	}
}

func escapable(next byte) bool {
	switch next {
	case '"', '\'', '\\', ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

func (s *commandLineSplitter) finish() ([]string, error) {
	switch {
	case s.escaped:
		return nil, errors.New("trailing backslash escape")
	case s.inSingle:
		return nil, errors.New("unterminated single quote")
	case s.inDouble:
		return nil, errors.New("unterminated double quote")
	}
	s.flush()
	return s.out, nil
}
