package diagnostics

import (
	"fmt"

	"github.com/funvibe/coolc/internal/token"
)

type ErrorCode string

const (
	// Lexical errors.
	ErrL001 ErrorCode = "L001" // illegal character
	ErrL002 ErrorCode = "L002" // malformed string literal
	ErrL003 ErrorCode = "L003" // comment error (unterminated or unmatched)

	// Parse errors.
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // no prefix parse rule

	// Class structure and hierarchy.
	ErrS001 ErrorCode = "S001" // conflict with basic class
	ErrS002 ErrorCode = "S002" // class redefinition
	ErrS003 ErrorCode = "S003" // Main is not defined
	ErrS004 ErrorCode = "S004" // inherits undeclared class
	ErrS005 ErrorCode = "S005" // inherits from a basic class
	ErrS006 ErrorCode = "S006" // cycle in class hierarchy

	// Feature declarations.
	ErrS007 ErrorCode = "S007" // duplicate method in class
	ErrS008 ErrorCode = "S008" // duplicate attribute
	ErrS009 ErrorCode = "S009" // 'self' used as a binding name
	ErrS010 ErrorCode = "S010" // duplicate formal name
	ErrS011 ErrorCode = "S011" // reference to an undefined type
	ErrS012 ErrorCode = "S012" // incompatible method override
	ErrS013 ErrorCode = "S013" // SELF_TYPE as attribute type

	// Expression typing.
	ErrT001 ErrorCode = "T001" // undeclared identifier
	ErrT002 ErrorCode = "T002" // type does not conform
	ErrT003 ErrorCode = "T003" // operand or predicate type violation
	ErrT004 ErrorCode = "T004" // dispatch to undefined method
	ErrT005 ErrorCode = "T005" // wrong number of dispatch arguments
	ErrT006 ErrorCode = "T006" // duplicate branch type in case
)

// DiagnosticError is a single diagnostic about the input program. It is
// accumulated in slices and reported; it never unwinds the analysis.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
}

func NewError(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

// Error renders the diagnostic as "<file>:<line>: <message>". Diagnostics
// without a source locus (program-level errors such as a missing Main
// class) render as the bare message.
func (e *DiagnosticError) Error() string {
	if e.File == "" {
		return e.Message
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Token.Line, e.Message)
}

// HasLocus reports whether the diagnostic points at a source position.
func (e *DiagnosticError) HasLocus() bool { return e.File != "" }
