// Package console is an interactive operator console that speaks to a
// running daemon over its HTTP API.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/anmitsu/go-shlex"
)

const prompt = "lsd> "

// errExit signals a clean exit from the read loop.
var errExit = errors.New("exit")

type Console struct {
	client   *Client
	readline *readline.Instance
	stdout   io.Writer
	// commands are built fresh per dispatch, getopt sets keep state
	// between parses.
	commands map[string]func() *command

	// dispatchCtx carries the context of the current Dispatch call into
	// command actions.
	dispatchCtx context.Context
}

func New(client *Client, stdin io.ReadCloser, stdout, stderr io.Writer) (*Console, error) {
	cfg := &readline.Config{
		Prompt: prompt,
		Stdin:  readline.NewCancelableStdin(stdin),
		Stdout: stdout,
		Stderr: stderr,
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	console := &Console{
		client:   client,
		readline: rl,
		stdout:   stdout,
	}
	console.commands = console.buildCommands()

	return console, nil
}

func (c *Console) buildCommands() map[string]func() *command {
	return map[string]func() *command{
		"send": func() *command {
			return &command{
				Use:    "send MESSAGE...",
				Short:  "Push a message to the display.",
				Action: c.runSend,
			}
		},
		"last": func() *command {
			return &command{
				Use:    "last",
				Short:  "Print the last acknowledged message.",
				Action: c.runLast,
			}
		},
		"help": func() *command {
			return &command{
				Use:    "help",
				Short:  "List the available commands.",
				Action: c.runHelp,
			}
		},
		"exit": func() *command {
			return &command{
				Use:   "exit",
				Short: "Leave the console.",
				Action: func(out io.Writer, args []string) error {
					return errExit
				},
			}
		},
	}
}

// Run reads and dispatches commands until EOF or exit.
func (c *Console) Run(ctx context.Context) error {
	defer c.readline.Close()

	for {
		line, err := c.readline.Readline()
		switch {
		case err == readline.ErrInterrupt:
			continue
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if err := c.Dispatch(ctx, line); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			fmt.Fprintln(c.stdout, ColorBoldRed.Sprintf("error: %v", err))
		}
	}
}

// Dispatch parses one console line and runs its command.
func (c *Console) Dispatch(ctx context.Context, line string) error {
	tokens, err := shlex.Split(line, true)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	newCommand, ok := c.commands[tokens[0]]
	if !ok {
		return fmt.Errorf("unknown command %q, try help", tokens[0])
	}

	c.dispatchCtx = ctx
	return newCommand().Run(c.stdout, tokens)
}

func (c *Console) runSend(out io.Writer, args []string) error {
	if len(args) == 0 {
		return errors.New("send needs a message")
	}

	echoed, err := c.client.Send(c.dispatchCtx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Fprintln(out, ColorBoldGreen.Sprint("sent: "), echoed)
	return nil
}

func (c *Console) runLast(out io.Writer, args []string) error {
	message, err := c.client.Last(c.dispatchCtx)
	if err != nil {
		return err
	}

	if message == "" {
		fmt.Fprintln(out, "nothing acknowledged yet")
		return nil
	}

	fmt.Fprintln(out, ColorBoldCyan.Sprint("last: "), message)
	return nil
}

func (c *Console) runHelp(out io.Writer, args []string) error {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(out, "Commands:")
	for _, name := range names {
		fmt.Fprintf(out, "  %-6s %s\n", name, c.commands[name]().Short)
	}
	return nil
}
