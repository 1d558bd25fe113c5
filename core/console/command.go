package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	getopt "github.com/pborman/getopt/v2"
)

var (
	ColorBoldGreen = color.New(color.FgGreen, color.Bold)
	ColorBoldCyan  = color.New(color.FgCyan, color.Bold)
	ColorBoldRed   = color.New(color.FgRed, color.Bold)
)

// command is a single console verb with getopt flag parsing.
type command struct {
	// Use holds a one line usage string
	Use string
	// Short holds a one line description of the command.
	Short string
	// Action runs after flag parsing with the remaining arguments.
	Action func(out io.Writer, args []string) error

	flags    *getopt.Set
	showHelp *bool
}

// Flags gets the command's flag set.
func (c *command) Flags() *getopt.Set {
	if c.flags == nil {
		c.flags = getopt.New()
	}

	return c.flags
}

// PrintHelp writes help for the command to the given writer.
func (c *command) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, c.Use)
	fmt.Fprintln(w, c.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	c.Flags().PrintOptions(w)
}

// Run parses argv and invokes the action.
func (c *command) Run(out io.Writer, argv []string) error {
	opts := c.Flags()

	if c.showHelp == nil {
		c.showHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	if err := opts.Getopt(argv, nil); err != nil {
		c.PrintHelp(out)
		return err
	}

	if *c.showHelp {
		c.PrintHelp(out)
		return nil
	}

	return c.Action(out, opts.Args())
}
