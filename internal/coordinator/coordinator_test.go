package coordinator

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/buildgridgo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sub(name string) model.ProjectNode {
	return model.ProjectNode{Name: name, Parent: "android"}
}

func TestDeclareDependency(t *testing.T) {
	ctx := context.Background()

	t.Run("records constraint once", func(t *testing.T) {
		c := New()
		require.NoError(t, c.DeclareDependency(ctx, sub("plugin"), sub("app")))
		require.NoError(t, c.DeclareDependency(ctx, sub("plugin"), sub("app")))

		assert.Equal(t, []model.EvaluationConstraint{{Dependent: "plugin", Primary: "app"}}, c.Constraints())
	})

	t.Run("self dependency is a cycle", func(t *testing.T) {
		c := New()
		err := c.DeclareDependency(ctx, sub("app"), sub("app"))
		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, []string{"app", "app"}, cycleErr.Path)
	})

	t.Run("closing a cycle is refused and not recorded", func(t *testing.T) {
		c := New()
		require.NoError(t, c.DeclareDependency(ctx, sub("b"), sub("a")))
		require.NoError(t, c.DeclareDependency(ctx, sub("c"), sub("b")))

		err := c.DeclareDependency(ctx, sub("a"), sub("c"))
		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, []string{"a", "b", "c", "a"}, cycleErr.Path)
		assert.Contains(t, err.Error(), "a -> b -> c -> a")
		assert.Len(t, c.Constraints(), 2)
	})
}

func TestEvaluateInOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("primary evaluated before every sibling", func(t *testing.T) {
		c := New()
		root := model.ProjectNode{Name: "android"}
		nodes := []model.ProjectNode{root, sub("camera"), sub("app"), sub("share")}
		for _, n := range nodes[1:] {
			if n.Name == "app" {
				continue
			}
			require.NoError(t, c.DeclareDependency(ctx, n, sub("app")))
		}

		var seen []string
		done := map[string]bool{}
		order, err := c.EvaluateInOrder(ctx, nodes, func(ctx context.Context, n model.ProjectNode) error {
			if n.Name != "app" && n.Name != "android" {
				assert.True(t, done["app"], "%s evaluated before app", n.Name)
			}
			done[n.Name] = true
			seen = append(seen, n.Name)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"android", "app", "camera", "share"}, order)
		assert.Equal(t, order, seen)
	})

	t.Run("independent nodes keep input order", func(t *testing.T) {
		c := New()
		nodes := []model.ProjectNode{sub("z"), sub("m"), sub("a")}
		order, err := c.EvaluateInOrder(ctx, nodes, func(context.Context, model.ProjectNode) error { return nil })
		require.NoError(t, err)
		assert.Equal(t, []string{"z", "m", "a"}, order)
	})

	t.Run("first failure stops the pass", func(t *testing.T) {
		c := New()
		require.NoError(t, c.DeclareDependency(ctx, sub("plugin"), sub("app")))
		boom := errors.New("boom")

		order, err := c.EvaluateInOrder(ctx, []model.ProjectNode{sub("plugin"), sub("app")}, func(_ context.Context, n model.ProjectNode) error {
			if n.Name == "app" {
				return boom
			}
			t.Fatalf("plugin must not be evaluated after app failed")
			return nil
		})
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), ":app")
		assert.Empty(t, order)
	})

	t.Run("missing primary is rejected", func(t *testing.T) {
		c := New()
		require.NoError(t, c.DeclareDependency(ctx, sub("plugin"), sub("app")))

		_, err := c.EvaluateInOrder(ctx, []model.ProjectNode{sub("plugin")}, func(context.Context, model.ProjectNode) error { return nil })
		assert.ErrorContains(t, err, "not part of the requested set")
	})

	t.Run("canceled context stops before the next node", func(t *testing.T) {
		c := New()
		cctx, cancel := context.WithCancel(ctx)
		order, err := c.EvaluateInOrder(cctx, []model.ProjectNode{sub("a"), sub("b")}, func(context.Context, model.ProjectNode) error {
			cancel()
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, []string{"a"}, order)
	})
}

func TestReconcileIdentifier(t *testing.T) {
	t.Run("agreeing modules", func(t *testing.T) {
		c := New()
		require.NoError(t, c.ReconcileIdentifier("application_id", "app", "com.example.app"))
		require.NoError(t, c.ReconcileIdentifier("application_id", "wear", "com.example.app"))
		require.NoError(t, c.ReconcileIdentifier("application_id", "lib", ""))

		v, ok := c.Canonical("application_id")
		require.True(t, ok)
		assert.Equal(t, "com.example.app", v)
	})

	t.Run("conflicting modules", func(t *testing.T) {
		c := New()
		require.NoError(t, c.ReconcileIdentifier("application_id", "app", "com.example.app"))
		err := c.ReconcileIdentifier("application_id", "wear", "com.exemplo.app")

		var mismatch *ConfigMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "app", mismatch.FirstModule)
		assert.Equal(t, "com.example.app", mismatch.FirstValue)
		assert.Equal(t, "wear", mismatch.Module)
		assert.Equal(t, "com.exemplo.app", mismatch.Value)

		v, _ := c.Canonical("application_id")
		assert.Equal(t, "com.example.app", v, "the later declaration must not win")
	})

	t.Run("keys are independent", func(t *testing.T) {
		c := New()
		require.NoError(t, c.ReconcileIdentifier("application_id", "app", "com.example.app"))
		require.NoError(t, c.ReconcileIdentifier("java_version", "app", "11"))
		assert.Error(t, c.ReconcileIdentifier("java_version", "plugin", "17"))
	})
}
