package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	Up    Key
	Down  Key
	Left  Key
	Right Key
	Home  Key
	End   Key

	Select Key
	Toggle Key
	Clear  Key
	Back   Key
	Quit   Key

	F1  Key
	F2  Key
	F3  Key
	F10 Key
}

// Key represents a key binding.
type Key struct {
	Keys    []string
	Help    string
	Enabled bool
}

func newKey(help string, keys ...string) Key {
	return Key{Keys: keys, Help: help, Enabled: true}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:    newKey("subir", "up", "k"),
		Down:  newKey("bajar", "down", "j"),
		Left:  newKey("día anterior", "left", "h"),
		Right: newKey("día siguiente", "right", "l"),
		Home:  newKey("inicio", "home", "g"),
		End:   newKey("fin", "end", "G"),

		Select: newKey("ver receta", "enter"),
		Toggle: newKey("marcar", " "),
		Clear:  newKey("limpiar", "c"),
		Back:   newKey("volver", "esc", "backspace"),
		Quit:   newKey("salir", "q", "ctrl+c"),

		F1:  newKey("Ayuda", "f1", "?"),
		F2:  newKey("Semana", "f2"),
		F3:  newKey("Compras", "f3"),
		F10: newKey("Salir", "f10"),
	}
}

// Matches checks if a key message matches this key binding.
func (k Key) Matches(msg tea.KeyMsg) bool {
	if !k.Enabled {
		return false
	}

	keyStr := msg.String()
	for _, key := range k.Keys {
		if keyStr == key {
			return true
		}
	}
	return false
}

// MatchesAny checks if a key message matches any of the provided key bindings.
func MatchesAny(msg tea.KeyMsg, keys ...Key) bool {
	for _, k := range keys {
		if k.Matches(msg) {
			return true
		}
	}
	return false
}

// IsQuit checks if the key message is a quit command.
func (km KeyMap) IsQuit(msg tea.KeyMsg) bool {
	return km.Quit.Matches(msg) || km.F10.Matches(msg)
}

// IsFunctionKey checks if the key message switches modules.
func (km KeyMap) IsFunctionKey(msg tea.KeyMsg) bool {
	return MatchesAny(msg, km.F1, km.F2, km.F3)
}

// FunctionKeyModule returns the module a function key switches to.
func (km KeyMap) FunctionKeyModule(msg tea.KeyMsg) Module {
	switch {
	case km.F1.Matches(msg):
		return ModuleHelp
	case km.F2.Matches(msg):
		return ModuleWeek
	case km.F3.Matches(msg):
		return ModuleShopping
	default:
		return ""
	}
}

// StatusBarHelp returns the help text for the status bar.
func (km KeyMap) StatusBarHelp() string {
	return "[F1]Ayuda [F2]Semana [F3]Compras [F10]Salir"
}
