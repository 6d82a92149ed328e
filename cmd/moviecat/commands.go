package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"moviecat/internal/app"
	"moviecat/internal/confirm"
	"moviecat/internal/fixtures"
	"moviecat/internal/guard"
	"moviecat/pkg/adminops"
	"moviecat/pkg/authsvc"
	"moviecat/pkg/domain"
	"moviecat/pkg/movies"
	"moviecat/pkg/recommend"
	"moviecat/pkg/requests"
)

var stdin = bufio.NewReader(os.Stdin)

// ensureRoute runs the path through the route table the way the UI would
// before rendering a page. A denial surfaces as an error carrying the
// redirect target.
func ensureRoute(a *app.App, path string) error {
	res := a.Routes.Resolve(a.Sessions, path)
	if res.Decision.Allowed {
		return nil
	}
	redirect := res.Decision.Redirect
	if redirect.Path == guard.LoginRoute {
		return fmt.Errorf("sign in first (redirected to %s)", redirect.URL())
	}
	return fmt.Errorf("access denied (redirected to %s)", redirect.URL())
}

// confirmAction routes a destructive action through the confirmation gate
// and resolves it from an interactive prompt.
func confirmAction(a *app.App, cfg confirm.Config) bool {
	answer := a.Gate.Request(cfg)

	pending, _ := a.Gate.Pending()
	fmt.Printf("%s\n%s [%s/%s]: ", pending.Title, pending.Message, pending.ConfirmText, pending.CancelText)
	line, _ := stdin.ReadString('\n')
	if s := strings.ToLower(strings.TrimSpace(line)); s == "y" || s == "yes" {
		a.Gate.Confirm()
	} else {
		a.Gate.Cancel()
	}
	return <-answer
}

func readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, arg)
	}
	return id, nil
}

// --- auth ---

func cmdLogin(a *app.App, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: login <email>")
	}
	if err := ensureRoute(a, "/login"); err != nil {
		return err
	}
	password, err := readLine("Password: ")
	if err != nil {
		return err
	}
	result, err := a.Auth.Login(context.Background(), authsvc.Credentials{Email: args[0], Password: password})
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s (%s)\n", result.User.Email, result.User.Role)
	return nil
}

func cmdRegister(a *app.App, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: register <email>")
	}
	if err := ensureRoute(a, "/register"); err != nil {
		return err
	}
	password, err := readLine("Password: ")
	if err != nil {
		return err
	}
	user, err := a.Auth.Register(context.Background(), authsvc.Registration{Email: args[0], Password: password})
	if err != nil {
		return err
	}
	fmt.Printf("Account created for %s (id %d). Sign in with: moviecat login %s\n", user.Email, user.UserID, user.Email)
	return nil
}

func cmdLogout(a *app.App) error {
	if err := a.Auth.Logout(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func cmdWhoami(a *app.App) error {
	user, ok := a.Sessions.Current()
	if !ok {
		fmt.Println("Not signed in.")
		return nil
	}
	fmt.Printf("%s (id %d, role %s)\n", user.Email, user.UserID, user.Role)
	return nil
}

// --- movies ---

func cmdMovies(a *app.App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: movies <search|get|top> ...")
	}
	ctx := context.Background()
	switch args[0] {
	case "search":
		fs := flag.NewFlagSet("movies search", flag.ContinueOnError)
		query := fs.String("q", "", "title substring")
		genres := fs.String("genres", "", "comma-separated genres")
		minRating := fs.Float64("min-rating", 0, "minimum average rating")
		yearFrom := fs.Int("year-from", 0, "earliest year")
		yearTo := fs.Int("year-to", 0, "latest year")
		limit := fs.Int("limit", 20, "page size")
		offset := fs.Int("offset", 0, "page offset")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := ensureRoute(a, "/movies"); err != nil {
			return err
		}
		params := movies.SearchParams{
			Query:     *query,
			MinRating: *minRating,
			YearFrom:  *yearFrom,
			YearTo:    *yearTo,
			Limit:     *limit,
			Offset:    *offset,
		}
		if *genres != "" {
			params.Genres = strings.Split(*genres, ",")
		}
		page, err := a.Movies.Search(ctx, params)
		if err != nil {
			return err
		}
		fmt.Printf("%d of %d movies\n", len(page.Movies), page.Total)
		printMovies(page.Movies)
		return nil
	case "get":
		if len(args) != 2 {
			return fmt.Errorf("usage: movies get <id>")
		}
		id, err := parseID(args[1], "movie id")
		if err != nil {
			return err
		}
		if err := ensureRoute(a, fmt.Sprintf("/movies/%d", id)); err != nil {
			return err
		}
		movie, err := a.Movies.Get(ctx, id)
		if err != nil {
			return err
		}
		printMovieDetail(movie)
		return nil
	case "top":
		fs := flag.NewFlagSet("movies top", flag.ContinueOnError)
		genre := fs.String("genre", "", "restrict to one genre")
		limit := fs.Int("limit", 10, "list size")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := ensureRoute(a, "/movies"); err != nil {
			return err
		}
		top, err := a.Movies.Top(ctx, movies.TopParams{Genre: *genre, Limit: *limit})
		if err != nil {
			return err
		}
		printMovies(top)
		return nil
	}
	return fmt.Errorf("unknown movies subcommand %q", args[0])
}

// --- ratings ---

func cmdRate(a *app.App, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: rate <movieId> <value>")
	}
	id, err := parseID(args[0], "movie id")
	if err != nil {
		return err
	}
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid rating %q", args[1])
	}
	if err := ensureRoute(a, fmt.Sprintf("/movies/%d", id)); err != nil {
		return err
	}
	rating, err := a.Ratings.Rate(context.Background(), id, value)
	if err != nil {
		return err
	}
	fmt.Printf("Rated movie %d: %.1f\n", rating.MovieID, rating.Rating)
	return nil
}

func cmdRatings(a *app.App) error {
	if err := ensureRoute(a, "/management"); err != nil {
		return err
	}
	list, err := a.Ratings.MyRatings(context.Background())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No ratings yet.")
		return nil
	}
	for _, r := range list {
		fmt.Printf("  movie %-4d %.1f\n", r.MovieID, r.Rating)
	}
	return nil
}

func cmdUnrate(a *app.App, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: unrate <movieId>")
	}
	id, err := parseID(args[0], "movie id")
	if err != nil {
		return err
	}
	if err := ensureRoute(a, "/management"); err != nil {
		return err
	}
	if !confirmAction(a, confirm.Config{
		Title:   "Remove rating",
		Message: fmt.Sprintf("Remove your rating for movie %d?", id),
	}) {
		fmt.Println("Cancelled.")
		return nil
	}
	if err := a.Ratings.Delete(context.Background(), id); err != nil {
		return err
	}
	fmt.Println("Rating removed.")
	return nil
}

// --- recommendations ---

func cmdRecommend(a *app.App, args []string) error {
	if len(args) > 0 && args[0] == "stream" {
		return cmdRecommendStream(a, args[1:])
	}
	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)
	k := fs.Int("k", 10, "number of recommendations")
	refresh := fs.Bool("refresh", false, "bypass the server-side cache")
	user := fs.Int("user", 0, "fetch for another user (admin)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := ensureRoute(a, "/recommendations"); err != nil {
		return err
	}

	ctx := context.Background()
	var resp domain.RecommendationResponse
	var err error
	if *user > 0 {
		resp, err = a.Recommend.ForUser(ctx, *user, recommend.Params{K: *k})
	} else {
		resp, err = a.Recommend.ForMe(ctx, recommend.Params{K: *k, Refresh: *refresh})
	}
	if err != nil {
		return err
	}
	fmt.Printf("Recommendations for user %d (%s, cached=%v):\n", resp.UserID, resp.Algorithm, resp.FromCache)
	for _, item := range resp.Items {
		fmt.Printf("  %.2f  %-6d %s\n", item.Score, item.MovieID, item.Title)
	}
	return nil
}

func cmdRecommendStream(a *app.App, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: recommend stream <userId>")
	}
	userID, err := parseID(args[0], "user id")
	if err != nil {
		return err
	}
	if err := ensureRoute(a, "/admin/management"); err != nil {
		return err
	}

	// Ctrl-C tears the stream down cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stream, err := a.Recommend.Stream(ctx, userID, 20)
	if err != nil {
		return err
	}
	for msg := range stream {
		switch msg.Type {
		case domain.StreamStart:
			fmt.Println(msg.Msg)
		case domain.StreamProgress:
			fmt.Printf("  [%3d%%] %s\n", msg.Progress, msg.Msg)
		case domain.StreamRecommendations:
			fmt.Printf("Recommendations for user %d:\n", msg.UserID)
			for _, item := range msg.Items {
				fmt.Printf("  %.2f  %-6d %s\n", item.Score, item.MovieID, item.Title)
			}
		case domain.StreamError:
			return fmt.Errorf("stream failed: %s", msg.Error)
		}
	}
	return ctx.Err()
}

// --- movie requests ---

func cmdRequests(a *app.App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: requests <create|mine|list|approve|reject> ...")
	}
	ctx := context.Background()
	switch args[0] {
	case "create":
		fs := flag.NewFlagSet("requests create", flag.ContinueOnError)
		typ := fs.String("type", "add", "request type: add or edit")
		movieID := fs.Int("movie", 0, "movie id (edit requests)")
		title := fs.String("title", "", "proposed title")
		year := fs.Int("year", 0, "proposed year")
		genres := fs.String("genres", "", "comma-separated proposed genres")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := ensureRoute(a, "/management"); err != nil {
			return err
		}
		draft := requests.Draft{
			Type:    domain.RequestType(*typ),
			MovieID: *movieID,
			Movie:   domain.MoviePayload{Title: *title, Year: *year},
		}
		if *genres != "" {
			draft.Movie.Genres = strings.Split(*genres, ",")
		}
		created, err := a.Requests.Create(ctx, draft)
		if err != nil {
			return err
		}
		fmt.Printf("Request %d filed (%s, %s)\n", created.RequestID, created.Type, created.Status)
		return nil
	case "mine":
		if err := ensureRoute(a, "/management"); err != nil {
			return err
		}
		list, err := a.Requests.Mine(ctx)
		if err != nil {
			return err
		}
		printRequests(list)
		return nil
	case "list":
		fs := flag.NewFlagSet("requests list", flag.ContinueOnError)
		status := fs.String("status", "", "filter: pending, approved, rejected")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := ensureRoute(a, "/admin/management"); err != nil {
			return err
		}
		list, err := a.Requests.All(ctx, domain.RequestStatus(*status))
		if err != nil {
			return err
		}
		printRequests(list)
		return nil
	case "approve", "reject":
		if len(args) < 2 {
			return fmt.Errorf("usage: requests %s <id> [note]", args[0])
		}
		id, err := parseID(args[1], "request id")
		if err != nil {
			return err
		}
		note := strings.Join(args[2:], " ")
		if err := ensureRoute(a, "/admin/management"); err != nil {
			return err
		}
		var req domain.MovieRequest
		if args[0] == "approve" {
			req, err = a.Requests.Approve(ctx, id, note)
		} else {
			req, err = a.Requests.Reject(ctx, id, note)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Request %d is now %s\n", req.RequestID, req.Status)
		return nil
	}
	return fmt.Errorf("unknown requests subcommand %q", args[0])
}

// --- admin ---

func cmdAdmin(a *app.App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: admin <movies|delete-movie|fetch|ratings|remap|stats> ...")
	}
	if err := ensureRoute(a, "/admin/management"); err != nil {
		return err
	}
	ctx := context.Background()
	switch args[0] {
	case "movies":
		fs := flag.NewFlagSet("admin movies", flag.ContinueOnError)
		search := fs.String("search", "", "title substring")
		genre := fs.String("genre", "", "restrict to one genre")
		sortBy := fs.String("sort", "", "sort key: title, year, rating, popularity")
		order := fs.String("order", "asc", "sort order: asc or desc")
		limit := fs.Int("limit", 20, "page size")
		offset := fs.Int("offset", 0, "page offset")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		page, err := a.Admin.Movies(ctx, adminops.ManagementParams{
			Search: *search, Genre: *genre, SortBy: *sortBy, SortOrder: *order,
			Limit: *limit, Offset: *offset,
		})
		if err != nil {
			return err
		}
		fmt.Printf("%d of %d movies\n", len(page.Movies), page.Total)
		printMovies(page.Movies)
		return nil
	case "delete-movie":
		if len(args) != 2 {
			return fmt.Errorf("usage: admin delete-movie <id>")
		}
		id, err := parseID(args[1], "movie id")
		if err != nil {
			return err
		}
		if !confirmAction(a, confirm.Config{
			Title:   "Delete movie",
			Message: fmt.Sprintf("Delete movie %d and all of its ratings?", id),
			Kind:    "danger",
		}) {
			fmt.Println("Cancelled.")
			return nil
		}
		result, err := a.Admin.DeleteMovie(ctx, id)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	case "fetch":
		if len(args) != 2 {
			return fmt.Errorf("usage: admin fetch <url>")
		}
		pageURL := args[1]
		if !confirmAction(a, confirm.Config{
			Title:   "Import movie",
			Message: fmt.Sprintf("Import movie metadata from %s?", pageURL),
		}) {
			fmt.Println("Cancelled.")
			return nil
		}
		movie, err := a.Admin.FetchFromURL(ctx, pageURL)
		if err != nil {
			return err
		}
		printMovieDetail(movie)
		return nil
	case "ratings":
		fs := flag.NewFlagSet("admin ratings", flag.ContinueOnError)
		userID := fs.Int("user", 0, "filter by user")
		movieID := fs.Int("movie", 0, "filter by movie")
		minRating := fs.Float64("min", 0, "minimum value")
		maxRating := fs.Float64("max", 0, "maximum value")
		limit := fs.Int("limit", 20, "page size")
		offset := fs.Int("offset", 0, "page offset")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		page, err := a.Admin.Ratings(ctx, adminops.RatingsParams{
			UserID: *userID, MovieID: *movieID,
			MinRating: *minRating, MaxRating: *maxRating,
			Limit: *limit, Offset: *offset,
		})
		if err != nil {
			return err
		}
		fmt.Printf("%d of %d ratings\n", len(page.Ratings), page.Total)
		for _, r := range page.Ratings {
			fmt.Printf("  user %-4d %.1f  %s\n", r.UserID, r.Rating.Rating, r.MovieTitle)
		}
		return nil
	case "remap":
		if !confirmAction(a, confirm.Config{
			Title:       "Remap database",
			Message:     "Remap the whole database? This can take a while.",
			ConfirmText: "remap",
			Kind:        "danger",
		}) {
			fmt.Println("Cancelled.")
			return nil
		}
		result, err := a.Admin.Remap(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%d movies, %d ratings, %dms)\n",
			result.Message, result.AffectedMovies, result.AffectedRatings, result.Duration)
		return nil
	case "stats":
		stats, err := a.Admin.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("movies: %d\nusers: %d\nratings: %d\npending requests: %d\n",
			stats.TotalMovies, stats.TotalUsers, stats.TotalRatings, stats.PendingRequests)
		return nil
	}
	return fmt.Errorf("unknown admin subcommand %q", args[0])
}

// --- dashboard ---

// cmdDashboard fans three fetches out concurrently and renders them once
// all have answered.
func cmdDashboard(a *app.App) error {
	if err := ensureRoute(a, "/home"); err != nil {
		return err
	}
	ctx := context.Background()

	var (
		top  []domain.Movie
		mine []domain.Rating
		recs domain.RecommendationResponse
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		top, err = a.Movies.Top(ctx, movies.TopParams{Limit: 5})
		return err
	})
	if a.Sessions.IsAuthenticated() {
		g.Go(func() error {
			var err error
			mine, err = a.Ratings.MyRatings(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			recs, err = a.Recommend.ForMe(ctx, recommend.Params{K: 5})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Println("Top movies:")
	printMovies(top)
	if !a.Sessions.IsAuthenticated() {
		fmt.Println("\nSign in to see your ratings and recommendations.")
		return nil
	}
	fmt.Printf("\nYour ratings (%d):\n", len(mine))
	for _, r := range mine {
		fmt.Printf("  movie %-4d %.1f\n", r.MovieID, r.Rating)
	}
	fmt.Println("\nRecommended for you:")
	for _, item := range recs.Items {
		fmt.Printf("  %.2f  %-6d %s\n", item.Score, item.MovieID, item.Title)
	}
	return nil
}

// cmdSelftest exercises every service surface against the mock dataset and
// reports a line per step, the way the service-tester page did.
func cmdSelftest(a *app.App) error {
	if !a.Config.MockData {
		return fmt.Errorf("selftest mutates data and only runs in mock mode")
	}
	ctx := context.Background()
	failures := 0
	step := func(name string, fn func() error) {
		if err := fn(); err != nil {
			failures++
			fmt.Printf("FAIL %-28s %v\n", name, err)
			return
		}
		fmt.Printf("ok   %s\n", name)
	}

	step("auth: login admin", func() error {
		_, err := a.Auth.Login(ctx, authsvc.Credentials{Email: "admin@movies.com", Password: "admin123"})
		return err
	})
	step("movies: get", func() error {
		_, err := a.Movies.Get(ctx, 1)
		return err
	})
	step("movies: search", func() error {
		page, err := a.Movies.Search(ctx, movies.SearchParams{Genres: []string{"Acción"}})
		if err == nil && page.Total == 0 {
			return fmt.Errorf("empty result")
		}
		return err
	})
	step("movies: top", func() error {
		_, err := a.Movies.Top(ctx, movies.TopParams{Limit: 10})
		return err
	})
	step("ratings: rate", func() error {
		_, err := a.Ratings.Rate(ctx, 1, 4.5)
		return err
	})
	step("ratings: mine", func() error {
		_, err := a.Ratings.MyRatings(ctx)
		return err
	})
	step("recommend: fetch", func() error {
		_, err := a.Recommend.ForMe(ctx, recommend.Params{K: 5})
		return err
	})
	step("requests: create+approve", func() error {
		created, err := a.Requests.Create(ctx, requests.Draft{
			Type:  domain.RequestAdd,
			Movie: domain.MoviePayload{Title: "Selftest Movie", Year: 2025},
		})
		if err != nil {
			return err
		}
		_, err = a.Requests.Approve(ctx, created.RequestID, "selftest")
		return err
	})
	step("admin: stats", func() error {
		_, err := a.Admin.Stats(ctx)
		return err
	})
	step("auth: logout", a.Auth.Logout)

	if failures > 0 {
		return fmt.Errorf("%d step(s) failed", failures)
	}
	fmt.Println("All services answered.")
	return nil
}

// cmdTestCredentials mirrors the seeded-account listing the login screen
// shows in mock mode.
func cmdTestCredentials(a *app.App) error {
	if !a.Config.MockData {
		return fmt.Errorf("test credentials are only available in mock mode")
	}
	fmt.Println("Seeded accounts:")
	for _, cred := range fixtures.Users() {
		fmt.Printf("  %-26s %-12s (%s)\n", cred.User.Email, cred.Password, cred.User.Role)
	}
	return nil
}

// --- rendering ---

func printMovies(list []domain.Movie) {
	for _, m := range list {
		fmt.Printf("  %-4d %-28s %d  %.1f  %s\n",
			m.MovieID, m.Title, m.Year, m.AverageRating(), strings.Join(m.Genres, ", "))
	}
}

func printMovieDetail(m domain.Movie) {
	fmt.Printf("%s (%d)\n", m.Title, m.Year)
	fmt.Printf("  genres:  %s\n", strings.Join(m.Genres, ", "))
	fmt.Printf("  rating:  %.1f (%d votes)\n", m.AverageRating(), ratingCount(m))
	if m.ExternalData != nil && m.ExternalData.Overview != "" {
		fmt.Printf("  %s\n", m.ExternalData.Overview)
	}
	if url := m.PosterURL(); url != "" {
		fmt.Printf("  poster:  %s\n", url)
	}
}

func ratingCount(m domain.Movie) int {
	if m.RatingStats == nil {
		return 0
	}
	return m.RatingStats.Count
}

func printRequests(list []domain.MovieRequest) {
	if len(list) == 0 {
		fmt.Println("No requests.")
		return
	}
	for _, r := range list {
		fmt.Printf("  %-4d %-5s %-9s %s\n", r.RequestID, r.Type, r.Status, r.Movie.Title)
	}
}
