package sandbox

import (
	"fmt"

	"github.com/newstack-cloud/tmplexpand/core"
)

// ReasonCodeModuleNotFound is provided when the reason for a sandbox
// failure is a require/import of a dotted module name that was never
// registered in the virtual namespace.
const ReasonCodeModuleNotFound core.ReasonCode = "module_not_found"

func errModuleNotFound(dottedName string) error {
	return &core.Error{
		ReasonCode: ReasonCodeModuleNotFound,
		Err:        fmt.Errorf("no sandboxed module registered for %q", dottedName),
	}
}
