package tui

import (
	"context"
	"time"

	"hybridctl/internal/daemon"
	"hybridctl/internal/github"

	tea "github.com/charmbracelet/bubbletea"
)

// Commands: every daemon call runs in its own tea.Cmd goroutine with a
// bounded context and reports back as a typed message.

func callCtx(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func animateCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*16, func(t time.Time) tea.Msg {
		return AnimateMsg(t)
	})
}

func storageTickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return StorageTickMsg(t)
	})
}

func toastCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

func loadConfigCmd(c daemon.Client, seq int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx(timeout)
		defer cancel()
		cfg, err := c.LoadConfig(ctx)
		return ConfigLoadedMsg{Seq: seq, Config: cfg, Err: err}
	}
}

func saveConfigCmd(c daemon.Client, seq int, timeout time.Duration, cfg daemon.Config, csv string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx(timeout)
		defer cancel()
		err := c.SaveConfig(ctx, cfg)
		return ConfigSavedMsg{Seq: seq, Config: cfg, CSV: csv, Err: err}
	}
}

func loadModulesCmd(c daemon.Client, seq int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx(timeout)
		defer cancel()
		mods, err := c.ScanModules(ctx)
		return ModulesLoadedMsg{Seq: seq, Modules: mods, Err: err}
	}
}

func saveModulesCmd(c daemon.Client, seq int, timeout time.Duration, mods []daemon.Module) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx(timeout)
		defer cancel()
		err := c.SaveModules(ctx, mods)
		return ModulesSavedMsg{Seq: seq, Modules: mods, Err: err}
	}
}

func loadLogsCmd(c daemon.Client, seq int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx(timeout)
		defer cancel()
		blob, err := c.ReadLogs(ctx)
		return LogsLoadedMsg{Seq: seq, Blob: blob, Err: err}
	}
}

func loadStorageCmd(c daemon.Client, seq int, timeout time.Duration, background bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx(timeout)
		defer cancel()
		usage, err := c.StorageUsage(ctx)
		return StorageLoadedMsg{Seq: seq, Usage: usage, Background: background, Err: err}
	}
}

func loadSystemInfoCmd(c daemon.Client, seq int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx(timeout)
		defer cancel()
		info, err := c.SystemInfo(ctx)
		return SystemInfoLoadedMsg{Seq: seq, Info: info, Err: err}
	}
}

func loadMountsCmd(c daemon.Client, seq int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx(timeout)
		defer cancel()
		mounts, err := c.ActiveMounts(ctx)
		return MountsLoadedMsg{Seq: seq, Mounts: mounts, Err: err}
	}
}

func loadConflictsCmd(c daemon.Client, seq int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx(timeout)
		defer cancel()
		conflicts, err := c.Conflicts(ctx)
		return ConflictsLoadedMsg{Seq: seq, Conflicts: conflicts, Err: err}
	}
}

func loadDiagnosticsCmd(c daemon.Client, seq int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx(timeout)
		defer cancel()
		diags, err := c.Diagnostics(ctx)
		return DiagnosticsLoadedMsg{Seq: seq, Diagnostics: diags, Err: err}
	}
}

func loadContributorsCmd(svc *github.Service, seq int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx(timeout)
		defer cancel()
		list, cached, err := svc.Contributors(ctx)
		return ContributorsLoadedMsg{Seq: seq, Contributors: list, FromCache: cached, Err: err}
	}
}

func accentColorCmd(c daemon.Client, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx(timeout)
		defer cancel()
		color, err := c.AccentColor(ctx)
		return AccentColorMsg{Color: color, Err: err}
	}
}

func versionCmd(c daemon.Client, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx(timeout)
		defer cancel()
		ver, err := c.Version(ctx)
		return VersionLoadedMsg{Version: ver, Err: err}
	}
}

func rescueNoticeCmd(c daemon.Client, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx(timeout)
		defer cancel()
		notice, err := c.RescueNotice(ctx)
		return RescueNoticeMsg{Notice: notice, Err: err}
	}
}

func dismissNoticeCmd(c daemon.Client, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx(timeout)
		defer cancel()
		return NoticeDismissedMsg{Err: c.DismissRescueNotice(ctx)}
	}
}

func openLinkCmd(c daemon.Client, timeout time.Duration, url string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := callCtx(timeout)
		defer cancel()
		return LinkOpenedMsg{URL: url, Err: c.OpenLink(ctx, url)}
	}
}
