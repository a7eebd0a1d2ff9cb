package pagination

import "fmt"

// State is the current page index of a paginated view.
type State struct {
	// TotalPages is the number of pages available (0 when there is nothing to show).
	TotalPages int `json:"total_pages"`

	// Current is the zero-based index of the page being shown.
	// Always within [0, TotalPages-1], or 0 when TotalPages is 0.
	Current int `json:"current"`
}

// NewState returns the initial state for totalPages pages.
func NewState(totalPages int) State {
	if totalPages < 0 {
		totalPages = 0
	}
	return State{TotalPages: totalPages}
}

// IsEmpty reports whether there are no pages at all.
func (s State) IsEmpty() bool {
	return s.TotalPages == 0
}

// HasNext reports whether Next would move.
func (s State) HasNext() bool {
	return s.Current < s.TotalPages-1
}

// HasPrev reports whether Prev would move.
func (s State) HasPrev() bool {
	return s.Current > 0
}

// CommandKind identifies a navigation command.
type CommandKind int

const (
	// CommandGoTo jumps to Command.Index.
	CommandGoTo CommandKind = iota

	// CommandNext advances one page.
	CommandNext

	// CommandPrev goes back one page.
	CommandPrev
)

// String returns the command name.
func (k CommandKind) String() string {
	switch k {
	case CommandGoTo:
		return "goto"
	case CommandNext:
		return "next"
	case CommandPrev:
		return "prev"
	default:
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
}

// Command is a navigation event forwarded by the presentation layer.
type Command struct {
	Kind  CommandKind
	Index int // only used by CommandGoTo
}

// GoTo returns a command that jumps to page index.
func GoTo(index int) Command {
	return Command{Kind: CommandGoTo, Index: index}
}

// Next returns a command that advances one page.
func Next() Command {
	return Command{Kind: CommandNext}
}

// Prev returns a command that goes back one page.
func Prev() Command {
	return Command{Kind: CommandPrev}
}

// Reduce applies cmd to s and returns the resulting state.
// Commands that would leave the valid range are no-ops.
func Reduce(s State, cmd Command) State {
	switch cmd.Kind {
	case CommandGoTo:
		if cmd.Index >= 0 && cmd.Index < s.TotalPages {
			s.Current = cmd.Index
		}
	case CommandNext:
		if s.HasNext() {
			s.Current++
		}
	case CommandPrev:
		if s.HasPrev() {
			s.Current--
		}
	}
	return s
}
