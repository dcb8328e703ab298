package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/dtnitsch/mastodon-wordcloud/internal/cloud"
	"github.com/dtnitsch/mastodon-wordcloud/internal/history"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	app := newApp()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.RunContext(ctx, reorderArgs(app, os.Args)); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "toot-cloud",
		Usage:     "Create a word cloud from the statuses of a Mastodon account",
		ArgsUsage: "server_url account_name access_token (a token named like an option goes after --)",
		Flags:     cloud.Flags(),
		Action:    cloud.CloudAction,
		Commands:  []*cli.Command{history.Command()},
	}
}

// reorderArgs moves flags ahead of positional arguments so options may
// follow server_url, account_name and access_token. Only registered flag
// names are moved; anything else, including a token that starts with "-",
// stays positional. Subcommand invocations are left untouched.
func reorderArgs(app *cli.App, args []string) []string {
	if len(args) < 2 {
		return args
	}
	for _, cmd := range app.Commands {
		if cmd.HasName(args[1]) {
			return args
		}
	}
	if args[1] == "help" || args[1] == "h" {
		return args
	}

	// name -> takes a value
	known := map[string]bool{"help": false, "h": false}
	for _, f := range app.Flags {
		_, isBool := f.(*cli.BoolFlag)
		for _, name := range f.Names() {
			known[name] = !isBool
		}
	}

	flags := []string{}
	positional := []string{}
	for i := 1; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		takesValue, isFlag := known[name]
		// Unknown dashed words, such as a token starting with "-", stay positional.
		if len(arg) < 2 || !strings.HasPrefix(arg, "-") || !isFlag {
			positional = append(positional, arg)
			continue
		}
		flags = append(flags, arg)
		if hasValue || !takesValue {
			continue
		}
		if i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, args[0])
	out = append(out, flags...)
	if len(positional) > 0 {
		out = append(out, "--")
		out = append(out, positional...)
	}
	return out
}
