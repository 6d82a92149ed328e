package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"moviecat/internal/app"
	"moviecat/internal/config"
	"moviecat/internal/util"
)

const usage = `Usage: moviecat [-config path] <command> [arguments]

Commands:
  login <email>                    sign in (password read from stdin)
  register <email>                 create an account
  logout                           sign out
  whoami                           show the current session

  movies search [flags]            search the catalog
  movies get <id>                  show one movie
  movies top [flags]               popularity top list

  rate <movieId> <value>           rate a movie (0.5-5.0, steps of 0.5)
  ratings                          list my ratings
  unrate <movieId>                 remove my rating

  recommend [flags]                fetch my recommendations
  recommend stream <userId>        watch a recommendation run live

  requests create [flags]          file a movie request
  requests mine                    list my requests
  requests list [flags]            list all requests (admin)
  requests approve <id> [note]     approve a request (admin)
  requests reject <id> [note]      reject a request (admin)

  admin movies [flags]             catalog management listing
  admin delete-movie <id>          delete a movie and its ratings
  admin fetch <url>                import movie metadata from a page URL
  admin ratings [flags]            all-users rating listing
  admin remap                      remap the database
  admin stats                      dashboard statistics

  dashboard                        combined overview (top + ratings + recs)
  test-credentials                 list seeded accounts (mock mode only)
  selftest                         exercise every service (mock mode only)
`

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	util.InitLogger(cfg.LogLevel)

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	if err := run(a, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "moviecat: %v\n", err)
		os.Exit(1)
	}
}

func run(a *app.App, command string, args []string) error {
	switch command {
	case "login":
		return cmdLogin(a, args)
	case "register":
		return cmdRegister(a, args)
	case "logout":
		return cmdLogout(a)
	case "whoami":
		return cmdWhoami(a)
	case "movies":
		return cmdMovies(a, args)
	case "rate":
		return cmdRate(a, args)
	case "ratings":
		return cmdRatings(a)
	case "unrate":
		return cmdUnrate(a, args)
	case "recommend":
		return cmdRecommend(a, args)
	case "requests":
		return cmdRequests(a, args)
	case "admin":
		return cmdAdmin(a, args)
	case "dashboard":
		return cmdDashboard(a)
	case "test-credentials":
		return cmdTestCredentials(a)
	case "selftest":
		return cmdSelftest(a)
	}
	flag.Usage()
	return fmt.Errorf("unknown command %q", command)
}
