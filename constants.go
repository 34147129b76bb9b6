package brainfuck

const (
	DEBUG = false

	// DEFAULT_CELL_COUNT is the initial tape allocation. The tape grows to
	// the right on demand, so this is a starting size, not a limit.
	DEFAULT_CELL_COUNT = 30000

	// DEFAULT_WINDOW_CELLS is how many cells Tape.Window renders around the
	// pointer when no explicit width is given.
	DEFAULT_WINDOW_CELLS = 25

	WHILE_STACK_CAP = 16
)
