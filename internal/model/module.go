package model

import "fmt"

// Module identifies one of the supported training modules.
type Module string

const (
	ModuleRCP       Module = "rcp"
	ModuleNose      Module = "nose"
	ModuleBurnSkins Module = "burn-skins"
)

// Modules returns every supported module tag.
func Modules() []Module {
	return []Module{ModuleRCP, ModuleNose, ModuleBurnSkins}
}

// IsValid reports whether m is one of the supported module tags.
func (m Module) IsValid() bool {
	switch m {
	case ModuleRCP, ModuleNose, ModuleBurnSkins:
		return true
	}
	return false
}

func (m Module) String() string {
	return string(m)
}

// ParseModule converts a raw string into a Module, rejecting unknown tags.
func ParseModule(s string) (Module, error) {
	m := Module(s)
	if !m.IsValid() {
		return "", fmt.Errorf("module must be one of: rcp, nose, burn-skins (got %q)", s)
	}
	return m, nil
}
