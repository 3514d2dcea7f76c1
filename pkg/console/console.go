package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/getmockd/mockswitch/pkg/controller"
	"github.com/getmockd/mockswitch/pkg/messages"
)

// idColumn is the width of the handler ID column in listings.
const idColumn = 15

// Console formats controller state for a human and dispatches commands.
type Console struct {
	ctrl     *controller.Controller
	catalog  messages.Catalog
	silent   bool
	commands map[string]*command
	ordered  []*command

	mu  sync.Mutex
	out io.Writer
}

// New creates a Console writing to out.
func New(ctrl *controller.Controller, out io.Writer) *Console {
	if out == nil {
		out = io.Discard
	}
	c := &Console{
		ctrl:    ctrl,
		catalog: ctrl.Reporter().Catalog(),
		silent:  ctrl.Reporter().Silent(),
		out:     out,
	}
	c.registerCommands()
	return c
}

// Register creates the console for ctrl and announces it. It is the single
// place the application exposes the controller to an operator.
func Register(ctx context.Context, ctrl *controller.Controller, out io.Writer) *Console {
	c := New(ctrl, out)
	if ctrl.Enabled() {
		ctrl.Reporter().Report(ctx, messages.ControllerReady{})
	}
	return c
}

// println writes one line unless output is silenced.
func (c *Console) println(line string) {
	if c.silent {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.out, line)
}

func (c *Console) say(m messages.Message) {
	c.println(c.catalog.Format(m))
}

// printJSON writes v as indented JSON.
func (c *Console) printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		c.println(err.Error())
		return
	}
	c.println(string(data))
}

// ListHandlers prints every handler grouped by group name, or a placeholder
// when there is nothing to show.
func (c *Console) ListHandlers() {
	c.say(messages.HandlerListHeader{})
	handlers := c.ctrl.Handlers()
	if len(handlers) == 0 {
		c.say(messages.NoHandlersToShow{})
		return
	}

	group := ""
	for i, h := range handlers {
		if i == 0 || h.GroupName != group {
			group = h.GroupName
			c.println("<" + group + ">")
		}
		c.println(fmt.Sprintf("  - %-*s | %s | %s", idColumn, h.ID, messages.StatusLabel(h.Enabled), h.Description))
	}
}

// HandlerStatus prints and returns the state of id. ok is false when the ID
// is unknown.
func (c *Console) HandlerStatus(id string) (enabled, ok bool) {
	enabled, ok = c.ctrl.HandlerEnabled(id)
	if !ok {
		c.say(messages.HandlerNotFound{ID: id})
		return false, false
	}
	entry, _ := c.ctrl.Registry().Resolve(id)
	c.say(messages.HandlerStatus{ID: id, Description: entry.Descriptor.Description, Enabled: enabled})
	return enabled, true
}

// Help prints the command guide.
func (c *Console) Help() {
	for _, line := range c.catalog.Help() {
		c.println(line)
	}
}

// PrintConfig prints and returns a copy of the in-memory state map.
func (c *Console) PrintConfig() map[string]bool {
	cfg := c.ctrl.CurrentConfig()
	c.say(messages.CurrentConfig{States: cfg})
	c.printJSON(cfg)
	return cfg
}

// WorkerStatus prints and returns whether the worker is running.
func (c *Console) WorkerStatus() bool {
	running := c.ctrl.IsWorkerRunning()
	c.say(messages.WorkerRunningStatus{Running: running})
	return running
}

// PrintHandlers prints the handler list as JSON.
func (c *Console) PrintHandlers() []controller.HandlerInfo {
	handlers := c.ctrl.Handlers()
	if handlers == nil {
		handlers = []controller.HandlerInfo{}
	}
	c.printJSON(handlers)
	return handlers
}

// parseLine splits a command line into a command name and its argument.
// "cmd arg", "cmd(arg)", "cmd('arg')" and "cmd(\"arg\")" are accepted.
func parseLine(line string) (name, arg string) {
	line = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ";"))
	if line == "" {
		return "", ""
	}

	if open := strings.IndexByte(line, '('); open > 0 && strings.HasSuffix(line, ")") {
		name = strings.TrimSpace(line[:open])
		arg = strings.TrimSpace(line[open+1 : len(line)-1])
		return name, strings.Trim(arg, `"'`+"`")
	}

	fields := strings.Fields(line)
	name = fields[0]
	if len(fields) > 1 {
		arg = strings.Trim(strings.Join(fields[1:], " "), `"'`)
	}
	return name, arg
}
