// Command mcp-client is a development REPL for poking at the hybridctl MCP
// server. It spawns the server command given on the command line and speaks
// the protocol over its stdio.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// replCommand maps one slash command onto a tool call. build turns the words
// after the command name into tool arguments, or fails with a usage hint.
type replCommand struct {
	tool  string
	help  string
	build func(words []string) (map[string]any, error)
}

func noArgs([]string) (map[string]any, error) { return map[string]any{}, nil }

var commands = map[string]replCommand{
	"/config":    {tool: "get_config", help: "read the mount configuration", build: noArgs},
	"/modules":   {tool: "list_modules", help: "list modules", build: noArgs},
	"/storage":   {tool: "get_storage", help: "overlay storage usage", build: noArgs},
	"/sysinfo":   {tool: "get_system_info", help: "kernel, SELinux, mount base", build: noArgs},
	"/mounts":    {tool: "list_mounts", help: "active mounts", build: noArgs},
	"/conflicts": {tool: "check_conflicts", help: "path conflicts", build: noArgs},
	"/diag":      {tool: "run_diagnostics", help: "run the pre-mount checks", build: noArgs},
	"/mode": {tool: "set_module_mode", help: "/mode <id> <auto|magic|ignore>",
		build: func(words []string) (map[string]any, error) {
			if len(words) != 2 {
				return nil, errors.New("usage: /mode <module-id> <auto|magic|ignore>")
			}
			return map[string]any{"module_id": words[0], "mode": words[1]}, nil
		}},
	"/logs": {tool: "read_logs", help: "/logs [level] [tail]",
		build: func(words []string) (map[string]any, error) {
			args := map[string]any{}
			if len(words) > 0 {
				args["level"] = words[0]
			}
			if len(words) > 1 {
				n, err := strconv.Atoi(words[1])
				if err != nil {
					return nil, fmt.Errorf("tail must be a number, got %q", words[1])
				}
				args["tail"] = n
			}
			return args, nil
		}},
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: mcp-client <server-command> [<args>]")
		fmt.Fprintln(os.Stderr, "Example: mcp-client ./hybridctl mcp --mock")
		os.Exit(2)
	}

	ctx := context.Background()

	// The server's stderr carries its banner and log noise; pass it through so
	// protocol stdout stays clean.
	srv := exec.Command(flag.Arg(0), flag.Args()[1:]...)
	srv.Stderr = os.Stderr

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "hybridctl-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.CommandTransport{Command: srv}, nil)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer session.Close()

	fmt.Println("Connected to the hybridctl MCP server.")
	fmt.Println("/tools lists the server's tools, /help the client commands, /exit quits.")

	in := bufio.NewScanner(os.Stdin)
	for prompt(); in.Scan(); prompt() {
		words := strings.Fields(in.Text())
		if len(words) == 0 {
			continue
		}

		switch name := words[0]; name {
		case "/exit":
			return
		case "/help":
			printHelp()
		case "/tools":
			listTools(ctx, session)
		default:
			cmd, ok := commands[name]
			if !ok {
				fmt.Println("Unknown command. /help lists commands.")
				continue
			}
			args, err := cmd.build(words[1:])
			if err != nil {
				fmt.Println(err)
				continue
			}
			call(ctx, session, cmd.tool, args)
		}
	}
	if err := in.Err(); err != nil {
		log.Printf("read stdin: %v", err)
	}
}

func prompt() { fmt.Print("> ") }

func printHelp() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-11s %s\n", name, commands[name].help)
	}
}

func listTools(ctx context.Context, session *mcp.ClientSession) {
	for tool, err := range session.Tools(ctx, nil) {
		if err != nil {
			log.Printf("list tools: %v", err)
			return
		}
		fmt.Printf("  %-16s %s\n", tool.Name, tool.Description)
	}
}

func call(ctx context.Context, session *mcp.ClientSession, tool string, args map[string]any) {
	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: tool, Arguments: args})
	if err != nil {
		log.Printf("call %s: %v", tool, err)
		return
	}

	marker := "✅"
	if res.IsError {
		marker = "❌"
	}
	for _, content := range res.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			fmt.Printf("%s %s\n", marker, text.Text)
			continue
		}
		blob, err := json.MarshalIndent(content, "", "  ")
		if err != nil {
			fmt.Printf("%s %+v\n", marker, content)
			continue
		}
		fmt.Printf("%s %s\n", marker, blob)
	}
}
