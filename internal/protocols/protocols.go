// Package protocols indexes the built-in schema sets by name
package protocols

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexhholmes/framegen/internal/pipeline"
	"github.com/alexhholmes/framegen/internal/protocols/ieee802154"
)

var builtins = map[string]func() []pipeline.Unit{
	ieee802154.Name: ieee802154.Units,
}

// Names returns the built-in set names, sorted
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Units returns the units of every named set, in the order given
func Units(names ...string) ([]pipeline.Unit, error) {
	var units []pipeline.Unit
	for _, name := range names {
		build, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown builtin %q (have %s)", name, strings.Join(Names(), ", "))
		}
		units = append(units, build()...)
	}
	return units, nil
}
