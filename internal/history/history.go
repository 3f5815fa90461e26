// Package history keeps the append-only log of successful evaluations.
package history

// Entry is one recorded evaluation.
type Entry struct {
	Seq        int    `json:"seq" yaml:"seq"`
	Mode       string `json:"mode" yaml:"mode"`
	Expression string `json:"expression" yaml:"expression"`
	Result     string `json:"result" yaml:"result"`
}

// Store is not safe for concurrent use; the session serializes access.
type Store struct {
	entries []Entry
	next    int
}

func New() *Store { return &Store{next: 1} }

// Append records an entry and returns it with its sequence index.
func (s *Store) Append(mode, expression, result string) Entry {
	e := Entry{Seq: s.next, Mode: mode, Expression: expression, Result: result}
	s.next++
	s.entries = append(s.entries, e)
	return e
}

// Clear drops all entries and restarts numbering at 1.
func (s *Store) Clear() {
	s.entries = nil
	s.next = 1
}

// Recent returns up to n most recent entries, oldest first.
func (s *Store) Recent(n int) []Entry {
	if n <= 0 || len(s.entries) == 0 {
		return []Entry{}
	}
	if n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]Entry, n)
	copy(out, s.entries[len(s.entries)-n:])
	return out
}

func (s *Store) Len() int { return len(s.entries) }
