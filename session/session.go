// Package session ties the allocation registry to the statement lifecycle
// the way generated embedded-SQL client code drives it: transient buffers
// are auto-registered during execution, reclaimed structurally when the
// statement finishes, and reclaimed fully on explicit request or session
// close.
package session

import (
	"github.com/embeddedsql/memkit/internal/sqltext"
	"github.com/embeddedsql/memkit/mem"
)

// Encoding re-exports the client encodings accepted by DupColumnText.
type Encoding = sqltext.Encoding

const (
	EncUTF8    = sqltext.EncUTF8
	EncLatin1  = sqltext.EncLatin1
	EncUTF16LE = sqltext.EncUTF16LE
)

// Session owns one execution context. It is bound to a single thread of
// control, like the context it owns.
type Session struct {
	mem   *mem.Context
	stmts uint64
}

// New creates a session with its own execution context. Options are passed
// through to mem.New.
func New(opts ...mem.Option) *Session {
	return &Session{mem: mem.New(opts...)}
}

// Mem exposes the session's execution context for direct allocation calls.
func (s *Session) Mem() *mem.Context {
	return s.mem
}

// Statements returns the number of completed statements.
func (s *Session) Statements() uint64 {
	return s.stmts
}

// BindParam duplicates a bound parameter value into an auto-registered
// buffer that lives until the statement finishes.
func (s *Session) BindParam(val []byte, origin mem.Origin) ([]byte, error) {
	if val == nil {
		return nil, nil
	}
	b, err := s.mem.AutoAlloc(len(val), origin)
	if err != nil {
		return nil, err
	}
	copy(b, val)
	return b, nil
}

// DupColumnText converts a raw result column from the client encoding to
// UTF-8 and copies it into an auto-registered buffer. A nil column is an
// absent value and returns nil without error.
func (s *Session) DupColumnText(raw []byte, enc Encoding, origin mem.Origin) ([]byte, error) {
	if raw == nil {
		return nil, nil
	}
	decoded, err := sqltext.Decode(raw, enc)
	if err != nil {
		return nil, err
	}
	b, err := s.mem.AutoAlloc(len(decoded), origin)
	if err != nil {
		return nil, err
	}
	copy(b, decoded)
	return b, nil
}

// FinishStatement marks the current statement complete and performs the
// structural teardown of its transient buffers. A set deferred-clear flag
// turns it into a logged no-op.
func (s *Session) FinishStatement() {
	s.stmts++
	s.mem.ClearAuto()
}

// KeepResultsAcrossExec suppresses the next structural teardown so result
// buffers survive into the next statement execution.
func (s *Session) KeepResultsAcrossExec() {
	s.mem.DisableAutoClear()
}

// FreeUserResults releases every tracked buffer unconditionally, the path
// used on explicit user request or error recovery.
func (s *Session) FreeUserResults() {
	s.mem.FreeAll()
}

// Close tears down the session's execution context. Idempotent.
func (s *Session) Close() error {
	return s.mem.Close()
}
