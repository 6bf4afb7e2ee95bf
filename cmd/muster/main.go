package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hollis/muster/internal/app"
	"github.com/hollis/muster/internal/dates"
	"github.com/hollis/muster/internal/model"
	"github.com/hollis/muster/internal/ui"
	"github.com/hollis/muster/internal/ui/theme"
)

var version = "0.1.0"

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "add":
			handleAdd(os.Args[2:])
			return
		case "clear":
			handleClear(os.Args[2:])
			return
		case "version":
			fmt.Printf("muster v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	// Parse flags for TUI mode
	themeFlag := flag.String("theme", "", "Theme name (default, nord, gruvbox)")
	configFlag := flag.String("config", "", "Path to config file")
	memFlag := flag.Bool("mem", false, "Run without persistence (in-memory session)")
	flag.Parse()

	if err := runTUI(*themeFlag, *configFlag, *memFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `muster - a keyboard-driven task list

Usage:
  muster                    Start the TUI
  muster add <task>         Quick add a task
  muster clear [--yes]      Delete all tasks
  muster version            Show version
  muster help               Show this help

Quick Add Syntax:
  muster add "Buy groceries"
  muster add "Review PR due:tomorrow"

  Due date:  due:tomorrow due:friday due:2d due:2026-01-15

TUI Options:
  --theme <name>    Theme (default, nord, gruvbox)
  --config <path>   Config file (default ~/.config/muster/config.toml)
  --mem             In-memory session, nothing is saved

Keybindings:
  Navigation:   j/k           Move cursor
                g/G           Go to top/bottom
                x             Mark for bulk actions

  Tasks:        o/O           New task below/above
                i or enter    Edit task fields
                !             Toggle done
                D             Delete

  Editing:      tab/S-tab     Switch field
                enter         Save
                esc           Discard

  General:      h or ?        Help
                q             Quit`

	fmt.Println(help)
}

func handleAdd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: muster add <task>")
		fmt.Fprintln(os.Stderr, "Example: muster add \"Buy groceries due:tomorrow\"")
		os.Exit(1)
	}

	application, err := app.New(app.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	task := model.NewTask("")

	// A due:<expr> token goes through the date resolver; everything
	// else is the title.
	var titleParts []string
	for _, word := range strings.Fields(strings.Join(args, " ")) {
		if expr, found := strings.CutPrefix(strings.ToLower(word), "due:"); found {
			due, err := dates.Resolve(expr, time.Now(), application.Config.DueHour)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			task.Due = due
			continue
		}
		titleParts = append(titleParts, word)
	}
	task.Title = strings.Join(titleParts, " ")

	existing, err := application.Store.LoadTasks()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tasks: %v\n", err)
		os.Exit(1)
	}
	task.Position = len(existing)

	if err := application.Store.SaveTask(task); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating task: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created: %s\n", task.Title)
	if task.Due != nil {
		fmt.Printf("Due: %s\n", task.Due.Format("Mon, Jan 2 15:04"))
	}
}

func handleClear(args []string) {
	yes := false
	for _, arg := range args {
		if arg == "--yes" || arg == "-y" {
			yes = true
		}
	}

	if !yes {
		fmt.Print("Delete ALL tasks? This cannot be undone. [y/N] ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return
		}
	}

	application, err := app.New(app.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	if err := application.Store.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing tasks: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("All tasks deleted.")
}

func runTUI(themeName, configPath string, inMemory bool) error {
	application, err := app.New(app.Options{
		ConfigPath: configPath,
		InMemory:   inMemory,
	})
	if err != nil {
		return err
	}
	defer application.Close()

	// Flag wins over config for the theme choice.
	if themeName == "" {
		themeName = application.Config.Theme
	}
	if t, ok := theme.ByName(themeName); ok {
		theme.SetTheme(t)
	}

	m := ui.NewModel(application.Store, ui.Options{
		Logger:         application.Logger,
		DueHour:        application.Config.DueHour,
		DeferHour:      application.Config.DeferHour,
		StartupWarning: application.StartupWarning,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
