package domain

// Session defaults shared by the interpreter and its hosts.
const (
	// DefaultHomeDirectory is the virtual working directory every session
	// starts in, and the target of a bare `cd`.
	DefaultHomeDirectory = "/home/user"

	// DefaultTheme is the terminal theme a fresh session remembers.
	DefaultTheme = "green"

	// DefaultHistoryLimit bounds the persisted command history.
	DefaultHistoryLimit = 100

	// TerminalContext tags natural-language requests with their origin.
	TerminalContext = "terminal"
)

// ThemeNames lists the fixed set of terminal themes, phosphor palettes first.
var ThemeNames = []string{"green", "amber", "dark", "light"}

// ValidTheme reports whether name is one of the fixed themes.
func ValidTheme(name string) bool {
	for _, t := range ThemeNames {
		if t == name {
			return true
		}
	}
	return false
}
