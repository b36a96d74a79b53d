package coordinator

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/buildgridgo/internal/model"
)

// CycleError reports an ordering constraint that would make evaluation
// impossible. Path lists the nodes of the cycle, first and last equal.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("evaluation cycle: %s", strings.Join(e.Path, " -> "))
}

// NoSigningProfileError reports that neither the requested profile nor the
// debug fallback is available.
type NoSigningProfileError struct {
	Requested string
	Available []string
}

func (e *NoSigningProfileError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("no signing profile %q and no %q fallback: no profiles configured", e.Requested, model.DebugProfileName)
	}
	return fmt.Sprintf("no signing profile %q and no %q fallback (available: %s)", e.Requested, model.DebugProfileName, strings.Join(e.Available, ", "))
}

// InvalidSdkVersionError reports an out-of-range or inverted SDK level.
type InvalidSdkVersionError struct {
	Field  model.SdkField
	Value  int
	Reason string
}

func (e *InvalidSdkVersionError) Error() string {
	return fmt.Sprintf("invalid %s sdk version %d: %s", e.Field, e.Value, e.Reason)
}

// ConfigMismatchError reports two modules declaring different values for
// something that must be identical across the build.
type ConfigMismatchError struct {
	Key         string
	FirstModule string
	FirstValue  string
	Module      string
	Value       string
}

func (e *ConfigMismatchError) Error() string {
	return fmt.Sprintf("%s mismatch: module %q declares %q but module %q declares %q",
		e.Key, e.FirstModule, e.FirstValue, e.Module, e.Value)
}
