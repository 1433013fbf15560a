// Package console renders the one-shot `hybridctl status` report: the same
// facts the Info tab shows, printed once in a compact ANSI format that
// survives `adb shell` and copy-paste into bug reports.
package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"hybridctl/internal/daemon"
	"hybridctl/ui/tui/components"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

const leaderWidth = 24

// Report is one snapshot of everything the status command prints.
type Report struct {
	Version string
	Mock    bool
	Notice  string

	Modules     []daemon.Module
	Mounts      []string
	Storage     daemon.StorageUsage
	Info        daemon.SystemInfo
	Conflicts   []daemon.ConflictEntry
	Diagnostics []daemon.Diagnostic

	// Probe failures, one line each. The report prints what it has.
	Errors []string
}

// Gather runs every probe once. Failures land in Report.Errors instead of
// aborting, so a half-broken daemon still yields a usable report.
func Gather(ctx context.Context, c daemon.Client) Report {
	var r Report
	probe := func(name string, fn func() error) {
		if err := fn(); err != nil {
			r.Errors = append(r.Errors, fmt.Sprintf("%s: %v", name, err))
		}
	}

	probe("version", func() error { v, err := c.Version(ctx); r.Version = v; return err })
	probe("modules", func() error { mods, err := c.ScanModules(ctx); r.Modules = mods; return err })
	probe("mounts", func() error { ids, err := c.ActiveMounts(ctx); r.Mounts = ids; return err })
	probe("storage", func() error { u, err := c.StorageUsage(ctx); r.Storage = u; return err })
	probe("system", func() error { info, err := c.SystemInfo(ctx); r.Info = info; return err })
	probe("conflicts", func() error { cs, err := c.Conflicts(ctx); r.Conflicts = cs; return err })
	probe("diagnostics", func() error { ds, err := c.Diagnostics(ctx); r.Diagnostics = ds; return err })
	probe("rescue notice", func() error { n, err := c.RescueNotice(ctx); r.Notice = n; return err })
	return r
}

// Print renders the report in a highly compact format.
func Print(w io.Writer, r Report) {
	title := "META-HYBRID STATUS"
	if r.Mock {
		title += " (mock data)"
	}
	fmt.Fprintf(w, "%s■ %s%s", colorCyan, title, colorReset)
	if r.Version != "" {
		fmt.Fprintf(w, "  daemon %s", r.Version)
	}
	fmt.Fprintln(w)

	if r.Notice != "" {
		fmt.Fprintf(w, "%s─ BOOTLOOP RESCUE%s\n", colorRed, colorReset)
		fmt.Fprintf(w, "  %s%s%s\n", colorYellow, r.Notice, colorReset)
	}

	printStorage(w, r.Storage)
	printSystem(w, r.Info)
	printModules(w, r.Modules)
	printConflicts(w, r.Conflicts)
	printDiagnostics(w, r.Diagnostics)

	for _, e := range r.Errors {
		fmt.Fprintf(w, "  %s! %s%s\n", colorYellow, e, colorReset)
	}

	fmt.Fprintf(w, "%s─ Summary%s: %d modules | %d mounted | storage %.1f%%\n\n",
		colorCyan, colorReset, len(r.Modules), len(r.Mounts), r.Storage.Percent)
}

func printStorage(w io.Writer, u daemon.StorageUsage) {
	if u.Size == 0 {
		return
	}
	fmt.Fprintf(w, "%s─ Overlay storage%s\n", colorCyan, colorReset)
	bar := components.Gauge{Width: 24}
	fmt.Fprintf(w, "  %s %.1f%%  %s of %s (%s)\n",
		bar.Render(u.Percent), u.Percent, formatBytes(u.Used), formatBytes(u.Size), u.Type)
}

func printSystem(w io.Writer, info daemon.SystemInfo) {
	if info.Kernel == "" && info.MountBase == "" {
		return
	}
	fmt.Fprintf(w, "%s─ System%s\n", colorCyan, colorReset)
	fmt.Fprintf(w, "  %s %s\n", leader("Kernel"), info.Kernel)
	fmt.Fprintf(w, "  %s %s\n", leader("SELinux"), info.SELinux)
	fmt.Fprintf(w, "  %s %s\n", leader("Mount base"), info.MountBase)
	fmt.Fprintf(w, "  %s %d\n", leader("Active mounts"), info.ActiveMounts)
}

func printModules(w io.Writer, mods []daemon.Module) {
	if len(mods) == 0 {
		return
	}
	fmt.Fprintf(w, "%s─ Modules (%d)%s\n", colorCyan, len(mods), colorReset)
	for _, m := range mods {
		marker := " "
		switch {
		case m.Mounted:
			marker = fmt.Sprintf("%s✓%s", colorGreen, colorReset)
		case !m.Enabled:
			marker = fmt.Sprintf("%s!%s", colorYellow, colorReset)
		}
		note := ""
		if !m.Enabled {
			note = " (disabled)"
		}
		fmt.Fprintf(w, "  %s %s[%s]%s %s%s\n",
			leader(m.ID), colorFor(m.Mode), m.Mode, colorReset, marker, note)
	}
}

func printConflicts(w io.Writer, conflicts []daemon.ConflictEntry) {
	if len(conflicts) == 0 {
		return
	}
	fmt.Fprintf(w, "%s─ Path conflicts (%d)%s\n", colorRed, len(conflicts), colorReset)
	for _, c := range conflicts {
		fmt.Fprintf(w, "  %sX%s %s/%s ← %s\n",
			colorRed, colorReset, c.Partition, c.RelativePath, strings.Join(c.ContendingModules, ", "))
	}
}

func printDiagnostics(w io.Writer, diags []daemon.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	fmt.Fprintf(w, "%s─ Diagnostics (%d)%s\n", colorCyan, len(diags), colorReset)
	for _, d := range diags {
		color := colorGreen
		mark := "✓"
		switch d.Level {
		case daemon.DiagWarning:
			color, mark = colorYellow, "!"
		case daemon.DiagCritical:
			color, mark = colorRed, "X"
		}
		fmt.Fprintf(w, "  %s%s%s %s: %s\n", color, mark, colorReset, d.Context, d.Message)
	}
}

func colorFor(mode daemon.MountMode) string {
	switch mode {
	case daemon.ModeMagic:
		return colorYellow
	case daemon.ModeIgnore:
		return colorReset
	default:
		return colorGreen
	}
}

// leader pads the label with a dotted run so values line up.
func leader(label string) string {
	if len(label) > leaderWidth-2 {
		label = label[:leaderWidth-5] + "..."
	}
	dots := strings.Repeat("·", leaderWidth-len(label))
	return label + colorCyan + dots + colorReset
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
