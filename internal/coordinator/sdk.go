package coordinator

import (
	"context"
	"strconv"

	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
	"github.com/specialistvlad/buildgridgo/internal/model"
)

// ResolveSdkVersion returns declared when it is present and positive, the
// external default otherwise. A resolved value that is not positive fails
// with *InvalidSdkVersionError.
func ResolveSdkVersion(field model.SdkField, declared *int, externalDefault int) (int, error) {
	value := externalDefault
	if declared != nil && *declared > 0 {
		value = *declared
	}
	if value <= 0 {
		return 0, &InvalidSdkVersionError{Field: field, Value: value, Reason: "must be positive"}
	}
	return value, nil
}

// ResolveSdkVersions resolves all three fields of a module and checks that
// min does not exceed target. A declaration always wins over the external
// default; when both exist and differ the override is logged so that
// diverging sources stay visible. The returned map records where each value
// came from.
func ResolveSdkVersions(ctx context.Context, declared model.DeclaredSdk, defaults model.SdkVersions) (model.SdkVersions, map[model.SdkField]model.SdkSource, error) {
	logger := ctxlog.FromContext(ctx)

	var resolved model.SdkVersions
	sources := make(map[model.SdkField]model.SdkSource, len(model.SdkFields))
	for _, field := range model.SdkFields {
		d := declared.Get(field)
		value, err := ResolveSdkVersion(field, d, defaults.Get(field))
		if err != nil {
			return model.SdkVersions{}, nil, err
		}

		source := model.SourceDefault
		if d != nil && *d > 0 {
			source = model.SourceDeclared
			if def := defaults.Get(field); def > 0 && def != *d {
				logger.Warn("Declared SDK version overrides external default.", "field", string(field), "declared", *d, "default", def)
			}
		} else if d != nil {
			logger.Warn("Ignoring non-positive SDK declaration.", "field", string(field), "declared", *d, "default", value)
		}
		resolved.Set(field, value)
		sources[field] = source
	}

	if resolved.Min > resolved.Target {
		return model.SdkVersions{}, nil, &InvalidSdkVersionError{
			Field:  model.SdkMin,
			Value:  resolved.Min,
			Reason: "exceeds target sdk version " + strconv.Itoa(resolved.Target),
		}
	}
	return resolved, sources, nil
}
