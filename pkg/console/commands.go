package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/getmockd/mockswitch/pkg/messages"
)

// ErrQuit is returned by Exec and Run when the operator asks to quit.
var ErrQuit = errors.New("console: quit")

type command struct {
	name    string
	aliases []string
	// arg names the required argument; empty means none.
	arg string
	run func(ctx context.Context, arg string) error
}

func (c *Console) registerCommands() {
	ctrl := c.ctrl
	noErr := func(f func()) func(context.Context, string) error {
		return func(context.Context, string) error {
			f()
			return nil
		}
	}

	c.ordered = []*command{
		{name: "listHandlers", aliases: []string{"list-handlers", "list", "ls"}, run: noErr(c.ListHandlers)},
		{name: "enableHandler", aliases: []string{"enable-handler", "enable"}, arg: "handler id", run: ctrl.EnableHandler},
		{name: "disableHandler", aliases: []string{"disable-handler", "disable"}, arg: "handler id", run: ctrl.DisableHandler},
		{name: "isHandlerEnabled", aliases: []string{"is-handler-enabled", "status"}, arg: "handler id",
			run: func(_ context.Context, id string) error {
				c.HandlerStatus(id)
				return nil
			}},
		{name: "enableGroup", aliases: []string{"enable-group"}, arg: "group name", run: ctrl.EnableGroup},
		{name: "disableGroup", aliases: []string{"disable-group"}, arg: "group name", run: ctrl.DisableGroup},
		{name: "enableAllHandlers", aliases: []string{"enable-all-handlers", "enable-all"},
			run: func(ctx context.Context, _ string) error { return ctrl.EnableAllHandlers(ctx) }},
		{name: "disableAllHandlers", aliases: []string{"disable-all-handlers", "disable-all"},
			run: func(ctx context.Context, _ string) error { return ctrl.DisableAllHandlers(ctx) }},
		{name: "getCurrentConfig", aliases: []string{"get-current-config", "config"},
			run: noErr(func() { c.PrintConfig() })},
		{name: "saveConfigToLocalStorage", aliases: []string{"save-config", "save"},
			run: func(ctx context.Context, _ string) error { return ctrl.SaveConfigToStorage(ctx) }},
		{name: "loadConfigFromLocalStorage", aliases: []string{"load-config", "reload"},
			run: func(ctx context.Context, _ string) error { return ctrl.LoadConfigFromStorage(ctx) }},
		{name: "resetToInitialCodeConfig", aliases: []string{"reset-config", "reset"},
			run: func(ctx context.Context, _ string) error { return ctrl.ResetToInitialConfig(ctx) }},
		{name: "isWorkerRunning", aliases: []string{"is-worker-running", "worker"},
			run: noErr(func() { c.WorkerStatus() })},
		{name: "getHandlers", aliases: []string{"get-handlers", "handlers"},
			run: noErr(func() { c.PrintHandlers() })},
		{name: "help", aliases: []string{"?"}, run: noErr(c.Help)},
		{name: "exit", aliases: []string{"quit"},
			run: func(context.Context, string) error { return ErrQuit }},
	}

	c.commands = make(map[string]*command)
	for _, cmd := range c.ordered {
		c.commands[strings.ToLower(cmd.name)] = cmd
		for _, alias := range cmd.aliases {
			c.commands[strings.ToLower(alias)] = cmd
		}
	}
}

// Commands returns the canonical command names in help order.
func (c *Console) Commands() []string {
	names := make([]string, len(c.ordered))
	for i, cmd := range c.ordered {
		names[i] = cmd.name
	}
	return names
}

// Exec runs one command line. Unknown commands and missing arguments are
// printed, not returned. Controller errors are returned.
func (c *Console) Exec(ctx context.Context, line string) error {
	name, arg := parseLine(line)
	if name == "" {
		return nil
	}

	cmd, ok := c.commands[strings.ToLower(name)]
	if !ok {
		c.say(messages.UnknownCommand{Command: name})
		return nil
	}
	if cmd.arg != "" && arg == "" {
		c.say(messages.MissingArgument{Command: cmd.name, Argument: cmd.arg})
		return nil
	}
	return cmd.run(ctx, arg)
}

// Run reads commands from r until EOF, ctx is done or the operator quits.
// Command errors are printed and the loop continues. EOF and cancellation
// return nil; quitting returns ErrQuit.
func (c *Console) Run(ctx context.Context, r io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	c.prompt()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			if err := c.Exec(ctx, line); err != nil {
				if errors.Is(err, ErrQuit) {
					return ErrQuit
				}
				c.println("error: " + err.Error())
			}
			c.prompt()
		}
	}
}

func (c *Console) prompt() {
	if c.silent {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.out, "mockswitch> ")
}
