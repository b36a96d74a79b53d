package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/specialistvlad/buildgridgo/internal/layout"
	"github.com/specialistvlad/buildgridgo/internal/model"
)

// Report is the result of a configuration pass.
type Report struct {
	Root        model.Directory              `json:"root"`
	Order       []string                     `json:"evaluation_order"`
	Constraints []model.EvaluationConstraint `json:"constraints"`
	Projects    []*model.ResolvedProject     `json:"projects"`
	// SigningFallbacks lists the modules signed with the debug profile
	// because their requested profile was missing.
	SigningFallbacks []string `json:"signing_fallbacks"`
}

// Project returns the resolved project named name.
func (r *Report) Project(name string) (*model.ResolvedProject, bool) {
	for _, p := range r.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

func writeReport(w io.Writer, format string, r *Report) error {
	if format == OutputJSON {
		return writeJSON(w, r)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "root\t%s\n", r.Root)
	fmt.Fprintf(tw, "order\t%s\n\n", strings.Join(r.Order, ", "))
	fmt.Fprintln(tw, "PROJECT\tBUILD DIR\tAPPLICATION ID\tSDK (min/target/compile)\tSIGNING")
	for _, p := range r.Projects {
		sdk := "-"
		if p.Sdk != nil {
			sdk = fmt.Sprintf("%d/%d/%d", p.Sdk.Min, p.Sdk.Target, p.Sdk.Compile)
		}
		signing := "-"
		if p.Signing != nil {
			signing = p.Signing.Profile.Name
			if p.Signing.IsFallback() {
				signing += " (fallback: " + p.Signing.Reason + ")"
			}
		}
		appID := p.ApplicationID
		if appID == "" {
			appID = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Name, p.BuildDir, appID, sdk, signing)
	}
	return tw.Flush()
}

func writeCleanReport(w io.Writer, format string, r layout.CleanReport) error {
	if format == OutputJSON {
		return writeJSON(w, r)
	}
	for _, d := range r.Removed {
		fmt.Fprintf(w, "removed  %s\n", d)
	}
	for _, d := range r.Missing {
		fmt.Fprintf(w, "absent   %s\n", d)
	}
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "warning  %s: %s\n", warn.Directory, warn.Message)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
