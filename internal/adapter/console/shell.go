package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/YelzhanWeb/tableside/internal/adapter/logger"
	"github.com/YelzhanWeb/tableside/internal/domain"
)

var ErrUnknownCommand = errors.New("unknown command")

type Command struct {
	Name  string
	Usage string
	Run   func(ctx context.Context, args []string) error
}

// Shell reads one command per line until quit, EOF or ctx is done.
type Shell struct {
	in       io.Reader
	out      io.Writer
	logger   logger.Logger
	commands map[string]Command
}

func NewShell(in io.Reader, out io.Writer, logger logger.Logger, commands ...Command) *Shell {
	s := &Shell{
		in:       in,
		out:      out,
		logger:   logger,
		commands: make(map[string]Command, len(commands)),
	}
	for _, c := range commands {
		s.commands[c.Name] = c
	}
	return s
}

func (s *Shell) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			return err
		case line := <-lines:
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			switch fields[0] {
			case "quit", "exit":
				return nil
			case "help":
				s.help()
				continue
			}
			if err := s.Exec(ctx, fields); err != nil {
				s.report(err)
			}
		}
	}
}

// Exec runs a single command line already split into fields.
func (s *Shell) Exec(ctx context.Context, fields []string) error {
	if len(fields) == 0 {
		return fmt.Errorf("%w: empty", ErrUnknownCommand)
	}
	cmd, ok := s.commands[fields[0]]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
	}
	return cmd.Run(ctx, fields[1:])
}

func (s *Shell) report(err error) {
	switch {
	case errors.Is(err, domain.ErrUpdateInFlight):
		fmt.Fprintln(s.out, "already updating, wait for the next refresh")
	case errors.Is(err, ErrUnknownCommand):
		fmt.Fprintf(s.out, "%v (try help)\n", err)
	default:
		s.logger.Debug("command_failed", err.Error(), "", nil)
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
}

func (s *Shell) help() {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(s.out, "  %s\n", s.commands[name].Usage)
	}
	fmt.Fprintln(s.out, "  help | quit")
}
