// showscape-ui is a terminal frontend for the movie API.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"showscape/internal/frontend"
	"showscape/pkg/utils"

	"go.uber.org/zap"
)

const help = `Commands:
  list                 show movies for the active filter
  genre <name>         filter by genre (empty clears it)
  year <yyyy>          filter by release year (0 clears it)
  clear                clear filters
  add                  add a movie
  edit <id>            edit a movie
  delete <id>          delete a movie
  help                 show this help
  quit                 exit`

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Terminal output belongs to the UI; logs only go to the file.
	logger, err := newLogger(config)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui := &app{
		api:    frontend.NewClient(config.UI.APIBaseURL, nil, logger),
		out:    newRenderer(os.Stdout),
		in:     bufio.NewScanner(os.Stdin),
		logger: logger,
	}
	ui.list = frontend.NewListController(ui.api, config.UI.Debounce, logger)
	defer ui.list.Close()

	ui.list.OnChange(func(s frontend.ListState) {
		if s.Status != frontend.StatusLoading {
			ui.out.list(s)
		}
	})

	logger.Info("Starting UI", zap.String("api", config.UI.APIBaseURL))
	ui.out.println(help)
	_ = ui.list.Load(ctx)

	ui.run(ctx)
}

func newLogger(config *utils.Config) (*zap.Logger, error) {
	if config.App.LogPath == "" {
		return zap.NewNop(), nil
	}
	return utils.InitFileLogger(config.App.LogPath, config.App.Name+"-ui", config.App.Debug)
}

type app struct {
	api    *frontend.Client
	list   *frontend.ListController
	out    *renderer
	in     *bufio.Scanner
	logger *zap.Logger
}

func (a *app) run(ctx context.Context) {
	for ctx.Err() == nil {
		fmt.Print("> ")
		if !a.in.Scan() {
			return
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(a.in.Text()), " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "":
		case "list":
			_ = a.list.Refresh(ctx)
		case "genre":
			a.list.SetGenreFilter(arg)
		case "year":
			year, err := parseYear(arg)
			if err != nil {
				a.out.errorf("Invalid year: %s", arg)
				continue
			}
			a.list.SetYearFilter(year)
		case "clear":
			a.list.ClearFilters()
		case "add":
			a.submit(ctx, frontend.NewAddForm(a.api, a.reload, a.logger))
		case "edit":
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil || id < 1 {
				a.out.errorf("Invalid movie id: %s", arg)
				continue
			}
			form := frontend.NewEditForm(a.api, id, a.reload, a.logger)
			if err := form.Load(ctx); err != nil {
				a.out.form(form.State())
				continue
			}
			a.submit(ctx, form)
		case "delete":
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil || id < 1 {
				a.out.errorf("Invalid movie id: %s", arg)
				continue
			}
			if a.confirm("Are you sure you want to delete this movie?") {
				_ = a.list.Delete(ctx, id)
			}
		case "help":
			a.out.println(help)
		case "quit", "exit":
			return
		default:
			a.out.errorf("Unknown command %q, try 'help'", cmd)
		}
	}
}

func (a *app) reload(ctx context.Context) {
	_ = a.list.Load(ctx)
}

// submit prompts for every field, keeping the current value on empty input.
func (a *app) submit(ctx context.Context, form *frontend.FormController) {
	current := form.State().Values
	fields := []struct {
		name, label, value string
	}{
		{"title", "Title", current.Title},
		{"description", "Description", current.Description},
		{"releaseDate", "Release Date (YYYY-MM-DD)", current.ReleaseDate},
		{"genre", "Genre", current.Genre},
		{"rating", "Rating (0-10)", strconv.FormatFloat(current.Rating, 'f', -1, 64)},
	}

	for _, f := range fields {
		for {
			fmt.Printf("%s [%s]: ", f.label, f.value)
			if !a.in.Scan() {
				return
			}
			value := strings.TrimSpace(a.in.Text())
			if value == "" {
				value = f.value
			}
			if err := form.Set(f.name, value); err != nil {
				a.out.errorf("%v", err)
				continue
			}
			break
		}
	}

	_, _ = form.Submit(ctx)
	a.out.form(form.State())
}

func (a *app) confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	if !a.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(a.in.Text()))
	return answer == "y" || answer == "yes"
}

func parseYear(arg string) (int, error) {
	if arg == "" {
		return 0, nil
	}
	return strconv.Atoi(arg)
}
