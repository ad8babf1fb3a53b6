// This file is part of mingus - https://github.com/joamag/mingus
//
// Copyright 2026 The Mingus Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asm

import "text/scanner"

type lexState int

const (
	stateNormal lexState = iota
	stateToken
	stateComment
	stateString
)

// handler receives the spans recognized by the lexer. pos is the position of
// the first byte of the span.
type handler interface {
	token(s string, pos scanner.Position) error
	str(s string, pos scanner.Position) error
	comment(s string, pos scanner.Position) error
	fail(pos scanner.Position, msg string) error
}

// lexer is a byte driven state machine splitting assembly source into tokens,
// string literals and comments. A span starts at a mark and is handed to the
// handler when the byte terminating it is fed.
type lexer struct {
	src     []byte
	h       handler
	state   lexState
	mark    int              // offset of the first byte of the current span
	markPos scanner.Position // position of mark
	pos     scanner.Position // position of the next byte to feed
	closed  bool
}

func newLexer(name string, src []byte, h handler) *lexer {
	return &lexer{
		src: src,
		h:   h,
		pos: scanner.Position{Filename: name, Line: 1, Column: 1},
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', 0:
		return true
	}
	return false
}

func (l *lexer) setMark(skip int) {
	l.mark = l.pos.Offset + skip
	l.markPos = l.pos
	l.markPos.Offset += skip
	l.markPos.Column += skip
}

func (l *lexer) span() string {
	return string(l.src[l.mark:l.pos.Offset])
}

// feed processes the byte at the current offset. The synthetic NUL fed by
// close sits one past the end of src.
func (l *lexer) feed(c byte) (err error) {
	switch l.state {
	case stateNormal:
		switch {
		case c == ';':
			l.state = stateComment
			l.setMark(1)
		case c == '"':
			l.state = stateString
			l.setMark(1)
		case isSpace(c):
		default:
			l.state = stateToken
			l.setMark(0)
		}
	case stateToken:
		if isSpace(c) {
			l.state = stateNormal
			err = l.h.token(l.span(), l.markPos)
		}
	case stateComment:
		switch c {
		case '\r', '\n', 0:
			l.state = stateNormal
			err = l.h.comment(l.span(), l.markPos)
		}
	case stateString:
		if c == '"' {
			l.state = stateNormal
			err = l.h.str(l.span(), l.markPos)
		}
	}
	l.pos.Offset++
	if c == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	return err
}

// close flushes any pending token or comment by feeding a final NUL byte. It
// does nothing if called more than once.
func (l *lexer) close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	if l.state == stateString {
		return l.h.fail(l.markPos, "unterminated string literal")
	}
	return l.feed(0)
}

// run feeds all of src to the lexer then closes it.
func (l *lexer) run() error {
	for _, c := range l.src {
		if err := l.feed(c); err != nil {
			return err
		}
	}
	return l.close()
}
