// Copyright 2023 qbee.io
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package flags

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

const (
	helpOption = "help"
)

// ErrHelpRequested is returned by Execute after rendering help requested with -h or --help.
var ErrHelpRequested = errors.New("help requested")

// ErrUsage marks errors caused by invalid command-line usage.
var ErrUsage = errors.New("usage error")

// Command represents an executable command with its options.
type Command struct {
	// Name of the command shown in the usage line.
	Name string

	// Description of the command.
	Description string

	// Options to be applied before Target is executed.
	Options []Option

	// Target function to be executed when the Command is called.
	Target func(opts Options) error

	// Output receives help messages. Defaults to os.Stdout.
	Output io.Writer
}

// Execute Target of the Command or show help.
func (cmd Command) Execute(args []string, opts Options) error {
	var err error
	if args, opts, err = cmd.evaluateArgs(args, opts); err != nil {
		cmd.renderHelp()
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	if _, helpRequested := opts[helpOption]; helpRequested {
		cmd.renderHelp()
		return ErrHelpRequested
	}

	if len(args) > 0 {
		cmd.renderHelp()
		return fmt.Errorf("%w: unexpected argument: %s", ErrUsage, args[0])
	}

	if cmd.Target == nil {
		return fmt.Errorf("%w: command has no target", ErrUsage)
	}

	return cmd.Target(opts)
}

func (cmd Command) output() io.Writer {
	if cmd.Output == nil {
		return os.Stdout
	}

	return cmd.Output
}

// renderOptions for the command.
func (cmd Command) renderOptions() {
	if len(cmd.Options) == 0 {
		return
	}

	out := cmd.output()

	_, _ = fmt.Fprintln(out, "\nOptions:")

	writer := tabwriter.NewWriter(out, 0, 1, 2, ' ', 0)
	for _, opt := range cmd.Options {
		if opt.Hidden {
			continue
		}

		line := "  "

		if opt.Short == "" {
			line += "    "
		} else {
			line += fmt.Sprintf("-%s, ", opt.Short)
		}

		line += fmt.Sprintf("--%s", opt.Name)

		if opt.Flag == "" {
			line += fmt.Sprintf(" %s", strings.ToUpper(strings.ReplaceAll(opt.Name, "-", "_")))
		}

		line += fmt.Sprintf("\t%s\t", opt.Help)

		if opt.Required {
			line += "[required]\t"
		} else {
			line += "[optional]\t"
		}

		if opt.Default != "" {
			line += fmt.Sprintf("(default: %s)\t", opt.Default)
		}

		_, _ = fmt.Fprintln(writer, line)
	}
	_ = writer.Flush()

	_, _ = fmt.Fprintln(out)
}

// renderHelp prints help message of the command.
func (cmd Command) renderHelp() {
	name := cmd.Name
	if name == "" {
		name = os.Args[0]
	}

	_, _ = fmt.Fprintf(cmd.output(), "Usage: %s [options]\n", name)

	if cmd.Description != "" {
		_, _ = fmt.Fprintf(cmd.output(), "\n%s\n", cmd.Description)
	}

	cmd.renderOptions()
}

// evaluateArgs evaluates argument applicable to the current Command, set options and return unprocessed arguments.
func (cmd Command) evaluateArgs(args []string, opts Options) ([]string, Options, error) {
	if opts == nil {
		opts = make(Options)
	}

	commandOptions := make(map[string]Option)

	for i := range cmd.Options {
		opt := cmd.Options[i]
		commandOptions["--"+opt.Name] = opt

		if opt.Short != "" {
			commandOptions["-"+opt.Short] = opt
		}

		if opt.Default != "" {
			opts[opt.Name] = opt.Default
		}
	}

	var remaining []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--help" || arg == "-h" {
			opts[helpOption] = "y"
			return nil, opts, nil
		}

		if arg == "--" {
			remaining = args[i+1:]
			break
		}

		if strings.HasPrefix(arg, "-") && arg != "-" {
			opt, ok := commandOptions[arg]
			if !ok {
				return nil, nil, fmt.Errorf("unknown option: %s", arg)
			}

			if opt.Flag != "" {
				opts[opt.Name] = opt.Flag
			} else {
				i++
				if i == len(args) {
					return nil, nil, fmt.Errorf("value required for %s", arg)
				}

				opts[opt.Name] = args[i]
			}
		} else {
			remaining = args[i:]
			break
		}
	}

	// check for required options
	for _, opt := range cmd.Options {
		if _, isSet := opts[opt.Name]; opt.Required && !isSet {
			return nil, nil, fmt.Errorf("--%s is required", opt.Name)
		}
	}

	return remaining, opts, nil
}
