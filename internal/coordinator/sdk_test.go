package coordinator

import (
	"context"
	"testing"

	"github.com/specialistvlad/buildgridgo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestResolveSdkVersion(t *testing.T) {
	testCases := []struct {
		name     string
		declared *int
		def      int
		expected int
		wantErr  bool
	}{
		{name: "declared wins", declared: intPtr(23), def: 21, expected: 23},
		{name: "absent uses default", declared: nil, def: 21, expected: 21},
		{name: "zero declaration uses default", declared: intPtr(0), def: 21, expected: 21},
		{name: "negative declaration uses default", declared: intPtr(-4), def: 21, expected: 21},
		{name: "no usable value", declared: nil, def: 0, wantErr: true},
		{name: "negative default", declared: intPtr(0), def: -1, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveSdkVersion(model.SdkMin, tc.declared, tc.def)
			if tc.wantErr {
				var sdkErr *InvalidSdkVersionError
				require.ErrorAs(t, err, &sdkErr)
				assert.Equal(t, model.SdkMin, sdkErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestResolveSdkVersions(t *testing.T) {
	defaults := model.SdkVersions{Min: 21, Target: 34, Compile: 35}

	t.Run("mixes declared and default", func(t *testing.T) {
		got, sources, err := ResolveSdkVersions(context.Background(), model.DeclaredSdk{Min: intPtr(23)}, defaults)
		require.NoError(t, err)
		assert.Equal(t, model.SdkVersions{Min: 23, Target: 34, Compile: 35}, got)
		assert.Equal(t, model.SourceDeclared, sources[model.SdkMin])
		assert.Equal(t, model.SourceDefault, sources[model.SdkTarget])
		assert.Equal(t, model.SourceDefault, sources[model.SdkCompile])
	})

	t.Run("min above target is rejected", func(t *testing.T) {
		_, _, err := ResolveSdkVersions(context.Background(), model.DeclaredSdk{Min: intPtr(23), Target: intPtr(21)}, defaults)
		var sdkErr *InvalidSdkVersionError
		require.ErrorAs(t, err, &sdkErr)
		assert.Equal(t, model.SdkMin, sdkErr.Field)
		assert.Equal(t, 23, sdkErr.Value)
		assert.Contains(t, err.Error(), "exceeds target sdk version 21")
	})

	t.Run("missing default without declaration", func(t *testing.T) {
		_, _, err := ResolveSdkVersions(context.Background(), model.DeclaredSdk{}, model.SdkVersions{Min: 21, Target: 34})
		var sdkErr *InvalidSdkVersionError
		require.ErrorAs(t, err, &sdkErr)
		assert.Equal(t, model.SdkCompile, sdkErr.Field)
	})
}
