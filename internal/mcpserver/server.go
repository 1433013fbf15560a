package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"hybridctl/internal/daemon"
)

// Server exposes the meta-hybrid admin surface as MCP tools. Every tool
// wraps the same daemon client the TUI uses; the server adds no state of
// its own.
type Server struct {
	mcpServer *mcp.Server
	client    daemon.Client
}

// Config carries the identity the server announces during the handshake.
type Config struct {
	ServerName    string
	ServerVersion string
}

// NewServer creates a new MCP server instance over the given daemon client.
func NewServer(cfg Config, client daemon.Client) *Server {
	impl := &mcp.Implementation{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	}

	s := &Server{
		mcpServer: mcp.NewServer(impl, nil),
		client:    client,
	}
	s.registerTools()
	return s
}

type GetConfigArgs struct{}

type GetConfigResult struct {
	Config daemon.Config `json:"config" jsonschema:"current mount configuration"`
}

type SaveConfigArgs struct {
	Config daemon.Config `json:"config" jsonschema:"full mount configuration to persist"`
}

type SaveConfigResult struct {
	Saved bool `json:"saved" jsonschema:"true when the daemon accepted the config"`
}

type ListModulesArgs struct{}

type ListModulesResult struct {
	Modules []daemon.Module `json:"modules" jsonschema:"modules visible to the daemon"`
}

type SetModuleModeArgs struct {
	ModuleID string `json:"module_id" jsonschema:"module identifier"`
	Mode     string `json:"mode" jsonschema:"mount mode: auto, magic or ignore"`
}

type SetModuleModeResult struct {
	Module daemon.Module `json:"module" jsonschema:"the module after the change"`
}

type ReadLogsArgs struct {
	Level string `json:"level,omitempty" jsonschema:"keep only lines at this level: info, warn or error"`
	Tail  int    `json:"tail,omitempty" jsonschema:"keep only the last N lines after filtering"`
}

type ReadLogsResult struct {
	Lines []daemon.LogLine `json:"lines" jsonschema:"classified daemon log lines"`
}

type GetStorageArgs struct{}

type GetStorageResult struct {
	Usage daemon.StorageUsage `json:"usage" jsonschema:"overlay storage usage"`
}

type GetSystemInfoArgs struct{}

type GetSystemInfoResult struct {
	Info daemon.SystemInfo `json:"info" jsonschema:"host and daemon runtime summary"`
}

type ListMountsArgs struct{}

type ListMountsResult struct {
	Mounts []string `json:"mounts" jsonschema:"ids of currently mounted modules"`
}

type CheckConflictsArgs struct{}

type CheckConflictsResult struct {
	Conflicts []daemon.ConflictEntry `json:"conflicts" jsonschema:"paths claimed by more than one module"`
}

type RunDiagnosticsArgs struct{}

type RunDiagnosticsResult struct {
	Diagnostics []daemon.Diagnostic `json:"diagnostics" jsonschema:"issues found by the pre-mount plan check"`
}

// registerTools wires every admin operation up as a typed tool.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_config",
		Description: "Read the daemon's current mount configuration: verbosity, storage backend overrides, module/temp directories, mount source and the ordered partition list.",
	}, s.handleGetConfig)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "save_config",
		Description: "Persist a full mount configuration object. Directory fields must be absolute paths; there is no partial update.",
	}, s.handleSaveConfig)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_modules",
		Description: "Rescan and list the modules the daemon can see, including mount mode, enabled flag and whether each one is currently mounted.",
	}, s.handleListModules)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_module_mode",
		Description: "Change one module's mount mode (auto, magic or ignore) and persist the module list.",
	}, s.handleSetModuleMode)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "read_logs",
		Description: "Read the daemon log as classified lines (info, warn, error), optionally filtered by level and trimmed to the newest N lines.",
	}, s.handleReadLogs)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_storage",
		Description: "Report overlay storage usage: total size, used bytes, percentage and the backing filesystem type.",
	}, s.handleGetStorage)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_system_info",
		Description: "Report kernel version, SELinux status, the daemon's mount base and how many modules are actively mounted.",
	}, s.handleGetSystemInfo)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_mounts",
		Description: "List the ids of modules the daemon currently has mounted.",
	}, s.handleListMounts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "check_conflicts",
		Description: "Report paths claimed by more than one module, per partition, with the contending module ids.",
	}, s.handleCheckConflicts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "run_diagnostics",
		Description: "Run the daemon's pre-mount plan check and report issues at info, warning or critical level.",
	}, s.handleRunDiagnostics)
}

func (s *Server) handleGetConfig(ctx context.Context, _ *mcp.CallToolRequest, _ GetConfigArgs) (*mcp.CallToolResult, GetConfigResult, error) {
	cfg, err := s.client.LoadConfig(ctx)
	if err != nil {
		return nil, GetConfigResult{}, fmt.Errorf("load config: %w", err)
	}
	return nil, GetConfigResult{Config: cfg}, nil
}

func (s *Server) handleSaveConfig(ctx context.Context, _ *mcp.CallToolRequest, args SaveConfigArgs) (*mcp.CallToolResult, SaveConfigResult, error) {
	if !daemon.ValidPath(args.Config.ModuleDir) {
		return nil, SaveConfigResult{}, fmt.Errorf("moduledir must be an absolute path, got %q", args.Config.ModuleDir)
	}
	if !daemon.ValidPath(args.Config.TempDir) {
		return nil, SaveConfigResult{}, fmt.Errorf("tempdir must be an absolute path, got %q", args.Config.TempDir)
	}

	if err := s.client.SaveConfig(ctx, args.Config); err != nil {
		return nil, SaveConfigResult{}, fmt.Errorf("save config: %w", err)
	}
	return nil, SaveConfigResult{Saved: true}, nil
}

func (s *Server) handleListModules(ctx context.Context, _ *mcp.CallToolRequest, _ ListModulesArgs) (*mcp.CallToolResult, ListModulesResult, error) {
	mods, err := s.client.ScanModules(ctx)
	if err != nil {
		return nil, ListModulesResult{}, fmt.Errorf("scan modules: %w", err)
	}
	return nil, ListModulesResult{Modules: mods}, nil
}

func (s *Server) handleSetModuleMode(ctx context.Context, _ *mcp.CallToolRequest, args SetModuleModeArgs) (*mcp.CallToolResult, SetModuleModeResult, error) {
	mode := daemon.MountMode(args.Mode)
	if !mode.Valid() {
		return nil, SetModuleModeResult{}, fmt.Errorf("invalid mode: %s (must be 'auto', 'magic' or 'ignore')", args.Mode)
	}

	mods, err := s.client.ScanModules(ctx)
	if err != nil {
		return nil, SetModuleModeResult{}, fmt.Errorf("scan modules: %w", err)
	}

	idx := -1
	for i := range mods {
		if mods[i].ID == args.ModuleID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, SetModuleModeResult{}, fmt.Errorf("unknown module: %s", args.ModuleID)
	}

	mods[idx].Mode = mode
	if err := s.client.SaveModules(ctx, mods); err != nil {
		return nil, SetModuleModeResult{}, fmt.Errorf("save modules: %w", err)
	}
	return nil, SetModuleModeResult{Module: mods[idx]}, nil
}

func (s *Server) handleReadLogs(ctx context.Context, _ *mcp.CallToolRequest, args ReadLogsArgs) (*mcp.CallToolResult, ReadLogsResult, error) {
	if args.Level != "" {
		switch daemon.LogLevel(args.Level) {
		case daemon.LevelInfo, daemon.LevelWarn, daemon.LevelError:
		default:
			return nil, ReadLogsResult{}, fmt.Errorf("invalid level: %s (must be 'info', 'warn' or 'error')", args.Level)
		}
	}

	blob, err := s.client.ReadLogs(ctx)
	if err != nil {
		return nil, ReadLogsResult{}, fmt.Errorf("read logs: %w", err)
	}

	lines := daemon.ParseLogBlob(blob)
	if args.Level != "" {
		kept := lines[:0]
		for _, l := range lines {
			if string(l.Level) == args.Level {
				kept = append(kept, l)
			}
		}
		lines = kept
	}
	if args.Tail > 0 && len(lines) > args.Tail {
		lines = lines[len(lines)-args.Tail:]
	}
	return nil, ReadLogsResult{Lines: lines}, nil
}

func (s *Server) handleGetStorage(ctx context.Context, _ *mcp.CallToolRequest, _ GetStorageArgs) (*mcp.CallToolResult, GetStorageResult, error) {
	usage, err := s.client.StorageUsage(ctx)
	if err != nil {
		return nil, GetStorageResult{}, fmt.Errorf("storage usage: %w", err)
	}
	return nil, GetStorageResult{Usage: usage}, nil
}

func (s *Server) handleGetSystemInfo(ctx context.Context, _ *mcp.CallToolRequest, _ GetSystemInfoArgs) (*mcp.CallToolResult, GetSystemInfoResult, error) {
	info, err := s.client.SystemInfo(ctx)
	if err != nil {
		return nil, GetSystemInfoResult{}, fmt.Errorf("system info: %w", err)
	}
	return nil, GetSystemInfoResult{Info: info}, nil
}

func (s *Server) handleListMounts(ctx context.Context, _ *mcp.CallToolRequest, _ ListMountsArgs) (*mcp.CallToolResult, ListMountsResult, error) {
	mounts, err := s.client.ActiveMounts(ctx)
	if err != nil {
		return nil, ListMountsResult{}, fmt.Errorf("active mounts: %w", err)
	}
	return nil, ListMountsResult{Mounts: mounts}, nil
}

func (s *Server) handleCheckConflicts(ctx context.Context, _ *mcp.CallToolRequest, _ CheckConflictsArgs) (*mcp.CallToolResult, CheckConflictsResult, error) {
	conflicts, err := s.client.Conflicts(ctx)
	if err != nil {
		return nil, CheckConflictsResult{}, fmt.Errorf("conflicts: %w", err)
	}
	return nil, CheckConflictsResult{Conflicts: conflicts}, nil
}

func (s *Server) handleRunDiagnostics(ctx context.Context, _ *mcp.CallToolRequest, _ RunDiagnosticsArgs) (*mcp.CallToolResult, RunDiagnosticsResult, error) {
	diags, err := s.client.Diagnostics(ctx)
	if err != nil {
		return nil, RunDiagnosticsResult{}, fmt.Errorf("diagnostics: %w", err)
	}
	return nil, RunDiagnosticsResult{Diagnostics: diags}, nil
}

// Start serves the protocol on stdio until the context ends. The banner goes
// to stderr; stdout belongs to the transport.
func (s *Server) Start(ctx context.Context) error {
	fmt.Fprintf(os.Stderr, "Starting hybridctl MCP server on stdio...\n")
	transport := &mcp.StdioTransport{}
	return s.mcpServer.Run(ctx, transport)
}
