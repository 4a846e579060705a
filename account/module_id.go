package account

import (
	"fmt"
	"regexp"
	"strings"
)

var identRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether s can name a module or function.
func ValidIdentifier(s string) bool { return identRe.MatchString(s) }

// ModuleID names a module: the publishing account plus the module name.
type ModuleID struct {
	Address Address `json:"address"`
	Name    string  `json:"name"`
}

// NewModuleID validates name and returns the pair.
func NewModuleID(addr Address, name string) (ModuleID, error) {
	if !ValidIdentifier(name) {
		return ModuleID{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}

	return ModuleID{Address: addr, Name: name}, nil
}

// ParseModuleID parses the "<address>::<name>" form produced by String.
func ParseModuleID(s string) (ModuleID, error) {
	addr, name, ok := strings.Cut(s, "::")
	if !ok {
		return ModuleID{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	a, err := ParseAddress(addr)
	if err != nil {
		return ModuleID{}, err
	}

	return NewModuleID(a, name)
}

// String renders the id as <address>::<name>.
func (m ModuleID) String() string { return m.Address.String() + "::" + m.Name }

// Short renders the id with an abbreviated address.
func (m ModuleID) Short() string { return m.Address.Short() + "::" + m.Name }
