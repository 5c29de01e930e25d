package mrnotify

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// The version of mrnotify. Is set while building.
var Version = "0.1.0"

// Returned for malformed invocations.
var ErrUsage = errors.New("invalid usage")

type stringSliceFlag []string

func (i *stringSliceFlag) String() string {
	return strings.Join(*i, "; ")
}

func (i *stringSliceFlag) Set(value string) error {
	*i = append(*i, value)
	return nil
}

// Prints the help for a command
func printCmdUsage(out io.Writer, flagSet *flag.FlagSet, commandName, nonFlagArgs string) {
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  mrnotify %s [flags]", commandName)
	if nonFlagArgs != "" {
		fmt.Fprint(out, " "+nonFlagArgs)
	}
	fmt.Fprintln(out, "")

	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Flags:")
	flagSet.SetOutput(out)
	flagSet.PrintDefaults()
}

// Prints the help for the given command.
func HelpCmd(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command to print the help for", ErrUsage)
	}
	switch args[0] {
	case "run":
		flagSet, _ := newRunFlagSet()
		flagSet.Usage()
	case "version":
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  mrnotify version")
	default:
		return fmt.Errorf("%w: unknown command '%s'", ErrUsage, args[0])
	}
	return nil
}

// Prints the version.
func VersionCmd(args []string) error {
	fmt.Fprintf(os.Stdout, "mrnotify v%s\n", Version)
	return nil
}
