package coordinator

import (
	"context"
	"fmt"
	"sort"

	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
	"github.com/specialistvlad/buildgridgo/internal/model"
)

// ResolveSigningProfile picks the profile named requested from available.
// When it is missing the "debug" profile is substituted and the resolution
// is tagged FallbackUsed with the reason; the substitution is also logged at
// WARN so a debug-signed release never goes unnoticed. Without a debug
// profile the call fails with *NoSigningProfileError.
func ResolveSigningProfile(ctx context.Context, requested string, available []model.SigningProfile) (model.SigningResolution, error) {
	logger := ctxlog.FromContext(ctx)

	byName := make(map[string]model.SigningProfile, len(available))
	for _, p := range available {
		byName[p.Name] = p
	}

	if p, ok := byName[requested]; ok && requested != "" {
		logger.Debug("Signing profile matched.", "profile", requested)
		return model.SigningResolution{
			Requested: requested,
			Profile:   p,
			Outcome:   model.ExactMatch,
		}, nil
	}

	debug, ok := byName[model.DebugProfileName]
	if !ok {
		names := make([]string, 0, len(byName))
		for name := range byName {
			names = append(names, name)
		}
		sort.Strings(names)
		return model.SigningResolution{}, &NoSigningProfileError{Requested: requested, Available: names}
	}

	reason := fmt.Sprintf("signing profile %q is not configured", requested)
	if requested == "" {
		reason = "no signing profile requested"
	}
	logger.Warn("Falling back to debug signing profile.", "requested", requested, "reason", reason)
	return model.SigningResolution{
		Requested: requested,
		Profile:   debug,
		Outcome:   model.FallbackUsed,
		Reason:    reason,
	}, nil
}
