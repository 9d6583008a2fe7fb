package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/gilbert/calculator"
)

func main() {
	app := &cli.App{
		Name:      "calc",
		Usage:     "evaluate a prefix-notation arithmetic expression",
		ArgsUsage: "[expression]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "error",
				Usage:   "logging level (error, info or debug)",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "read expressions from `FILE`, one per line",
			},
		},
		Action: run,
	}
	app.RunAndExitOnError()
}

func newLogger(level string) zerolog.Logger {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).Level(zerolog.ErrorLevel)
	switch strings.ToLower(level) {
	case "error":
	case "info":
		log = log.Level(zerolog.InfoLevel)
	case "debug":
		log = log.Level(zerolog.DebugLevel)
	default:
		log.Error().Msgf("unsupported logging level: %s. supported levels are: error, info, debug.", level)
		return log
	}
	log.Info().Msgf("setting logging level to %s", level)
	return log
}

func run(c *cli.Context) error {
	log := newLogger(c.String("log-level"))
	parser := calculator.NewParser()
	parser.SetLogger(log)

	if c.NArg() > 1 {
		log.Error().Msgf("too many expressions specified. %s is extra.", c.Args().Get(1))
		return cli.Exit("", 2)
	}

	if fn := c.String("file"); fn != "" {
		f, err := os.Open(fn)
		if err != nil {
			return errors.Wrap(err, "opening expression file")
		}
		defer f.Close()
		return evalLines(parser, log, f)
	}

	if c.NArg() == 0 {
		if isatty.IsTerminal(os.Stdin.Fd()) {
			repl(parser)
			return nil
		}
		return evalLines(parser, log, os.Stdin)
	}

	return evalOne(parser, log, c.Args().First())
}

func evalOne(p *calculator.Parser, log zerolog.Logger, expr string) error {
	log.Info().Msgf("evaluating expression: %s", expr)
	node, err := p.Parse(expr)
	if err != nil {
		log.Error().Msg(err.Error())
		return cli.Exit("", 1)
	}
	v, err := node.Eval()
	if err != nil {
		log.Error().Msg(err.Error())
		return cli.Exit("", 1)
	}
	fmt.Printf("Expression evaluates to %d\n", v)
	return nil
}

func evalLines(p *calculator.Parser, log zerolog.Logger, r io.Reader) error {
	var n int
	var failed bool
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		n++
		if err := evalOne(p, log, line); err != nil {
			failed = true
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading expressions")
	}
	if n == 0 {
		log.Info().Msg("no expression to evaluate.")
		return nil
	}
	if failed {
		return cli.Exit("", 1)
	}
	return nil
}

func repl(p *calculator.Parser) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		node, err := p.Parse(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		v, err := node.Eval()
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(v)
	}
}
