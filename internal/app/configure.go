package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/specialistvlad/buildgridgo/internal/config"
	"github.com/specialistvlad/buildgridgo/internal/coordinator"
	"github.com/specialistvlad/buildgridgo/internal/ctxlog"
	"github.com/specialistvlad/buildgridgo/internal/model"
	"go.opentelemetry.io/otel/codes"
)

// Keys reconciled across modules.
const (
	keyApplicationID = "application_id"
	keyJavaVersion   = "java_version"
)

// defaultRequestedProfile is what an application module asks for when
// neither it nor the driver names a profile: the build is a release build.
const defaultRequestedProfile = "release"

// Configure runs one configuration pass: resolve every output directory,
// declare the evaluation constraints, then evaluate projects in order. Any
// error aborts the pass; no partial report is returned.
func (a *App) Configure(ctx context.Context) (report *Report, err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	ctx, span := tracer.Start(ctx, "app.configure")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	logger := ctxlog.FromContext(ctx)
	logger.Info("Configuration pass started.", "layout", a.cfg.LayoutPath)

	dirs, err := a.resolveDirectories(ctx)
	if err != nil {
		return nil, err
	}

	coord := coordinator.New()
	if err := a.declareConstraints(ctx, coord); err != nil {
		return nil, err
	}

	defaultSdk, err := a.model.Defaults.Sdk()
	if err != nil {
		return nil, err
	}

	pass := &pass{
		app:        a,
		coord:      coord,
		dirs:       dirs,
		defaultSdk: defaultSdk,
		scope:      make(map[string]*model.ResolvedProject),
	}
	order, err := coord.EvaluateInOrder(ctx, a.model.Nodes(), pass.evaluate)
	if err != nil {
		return nil, err
	}

	report = &Report{
		Root:        dirs.Root,
		Order:       order,
		Constraints: coord.Constraints(),
	}
	buildable := 0
	for _, name := range order {
		rp := pass.scope[name]
		report.Projects = append(report.Projects, rp)
		if !rp.Buildable() {
			continue
		}
		buildable++
		if rp.Signing.IsFallback() {
			report.SigningFallbacks = append(report.SigningFallbacks, name)
		}
	}
	logger.Info("Configuration pass finished.", "projects", len(report.Projects), "buildable", buildable, "signing_fallbacks", len(report.SigningFallbacks))
	return report, nil
}

// declareConstraints registers every node and the three kinds of ordering
// constraints: parent before child, depends_on, and references through
// `project.<name>`; finally every other subproject waits for the primary.
func (a *App) declareConstraints(ctx context.Context, coord *coordinator.Coordinator) error {
	logger := ctxlog.FromContext(ctx)
	m := a.model
	root := m.RootNode()
	coord.Register(root)

	nodeOf := func(name string) (model.ProjectNode, bool) {
		if name == root.Name {
			return root, true
		}
		p, ok := m.Project(name)
		if !ok {
			return model.ProjectNode{}, false
		}
		return p.Node(), true
	}

	for _, p := range m.Projects {
		node := p.Node()
		coord.Register(node)

		if p.Parent != root.Name {
			parent, ok := nodeOf(p.Parent)
			if !ok {
				return fmt.Errorf("project %q has unknown parent %q", p.Name, p.Parent)
			}
			if err := coord.DeclareDependency(ctx, node, parent); err != nil {
				return err
			}
		}

		for _, dep := range p.DependsOn {
			primary, ok := nodeOf(dep)
			if !ok {
				return fmt.Errorf("project %q depends on unknown project %q", p.Name, dep)
			}
			if err := coord.DeclareDependency(ctx, node, primary); err != nil {
				return err
			}
		}

		for _, ref := range a.evaluator.References(p) {
			primary, ok := nodeOf(ref)
			if !ok {
				return fmt.Errorf("project %q references unknown project %q", p.Name, ref)
			}
			if err := coord.DeclareDependency(ctx, node, primary); err != nil {
				return err
			}
		}
	}

	primary, ok := m.Project(m.Settings.Primary)
	if !ok {
		if m.Settings.PrimaryExplicit {
			return fmt.Errorf("primary project %q is not declared", m.Settings.Primary)
		}
		logger.Debug("No primary project in layout, skipping primary constraints.", "primary", m.Settings.Primary)
		return nil
	}
	for _, p := range m.Projects {
		if p.Name == primary.Name {
			continue
		}
		if err := coord.DeclareDependency(ctx, p.Node(), primary.Node()); err != nil {
			return err
		}
	}
	return nil
}

// pass holds the state of one ordered evaluation.
type pass struct {
	app        *App
	coord      *coordinator.Coordinator
	dirs       *directories
	defaultSdk model.SdkVersions
	scope      map[string]*model.ResolvedProject
}

func (ps *pass) evaluate(ctx context.Context, node model.ProjectNode) error {
	rp := &model.ResolvedProject{Name: node.Name, BuildDir: ps.dirs.ByName[node.Name]}
	if node.IsRoot() {
		ps.scope[node.Name] = rp
		return nil
	}

	p, _ := ps.app.model.Project(node.Name)
	values, err := ps.app.evaluator.Evaluate(ctx, p, ps.app.model.Defaults, ps.scope)
	if err != nil {
		return err
	}
	if err := ps.resolve(ctx, rp, values); err != nil {
		return err
	}
	ps.scope[node.Name] = rp
	ctxlog.FromContext(ctx).Debug("Project evaluated.", "build_dir", rp.BuildDir.String(), "application", values.IsApplication())
	return nil
}

func (ps *pass) resolve(ctx context.Context, rp *model.ResolvedProject, values *config.ProjectValues) error {
	defaults := ps.app.model.Defaults

	rp.ApplicationID = values.ApplicationID
	rp.Namespace = values.Namespace
	if rp.Namespace == "" {
		rp.Namespace = values.ApplicationID
	}
	if err := ps.coord.ReconcileIdentifier(keyApplicationID, rp.Name, values.ApplicationID); err != nil {
		return err
	}

	if values.JavaVersion != nil {
		rp.JavaVersion = *values.JavaVersion
		if err := ps.coord.ReconcileIdentifier(keyJavaVersion, rp.Name, strconv.Itoa(rp.JavaVersion)); err != nil {
			return err
		}
	}

	declaresSdk := values.Sdk.Min != nil || values.Sdk.Target != nil || values.Sdk.Compile != nil
	if values.IsApplication() || declaresSdk {
		sdk, sources, err := coordinator.ResolveSdkVersions(ctx, values.Sdk, ps.defaultSdk)
		if err != nil {
			return err
		}
		rp.Sdk = &sdk
		rp.SdkSources = sources
	}

	if !values.IsApplication() {
		return nil
	}

	if values.VersionCode != nil {
		rp.VersionCode = *values.VersionCode
	} else if v, ok, err := defaults.Int(config.DefaultVersionCode); err != nil {
		return err
	} else if ok {
		rp.VersionCode = v
	}
	rp.VersionName = values.VersionName
	if rp.VersionName == "" {
		v, _, err := defaults.String(config.DefaultVersionName)
		if err != nil {
			return err
		}
		rp.VersionName = v
	}

	requested := ps.app.cfg.Profile
	if requested == "" {
		requested = values.SigningProfile
	}
	if requested == "" {
		requested = defaultRequestedProfile
	}
	signing, err := coordinator.ResolveSigningProfile(ctx, requested, ps.app.model.Signing)
	if err != nil {
		return err
	}
	rp.Signing = &signing
	return nil
}
