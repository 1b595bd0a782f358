package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"focusflow/internal/bootstrap"
	"focusflow/internal/modules/planner/dto"
	"focusflow/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	dataDir  string
	backend  string
	locale   string
	logLevel string
	day      int
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "focusflow",
		Short:         "Daily task planner that adapts to your energy",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", config.DefaultDataDir(), "directory holding the snapshot and config")
	root.PersistentFlags().StringVar(&flags.backend, "backend", "", "storage backend: file|sqlite")
	root.PersistentFlags().StringVar(&flags.locale, "locale", "", "locale: en|es")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug|info|warn|error")
	root.PersistentFlags().IntVar(&flags.day, "day", -1, "day to act on, 0=Monday..6=Sunday (default today)")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newTodayCmd(flags))
	root.AddCommand(newWeekCmd(flags))
	root.AddCommand(newRegenerateCmd(flags))
	root.AddCommand(newAddCmd(flags))
	root.AddCommand(newCompletionCmds(flags)...)
	root.AddCommand(newEditCmd(flags))
	root.AddCommand(newSetTimeCmd(flags))
	root.AddCommand(newSetDurationCmd(flags))
	root.AddCommand(newChaosCmd(flags))
	root.AddCommand(newMoodCmd(flags))
	root.AddCommand(newWeekendCmd(flags))
	root.AddCommand(newWFHCmd(flags))
	root.AddCommand(newTemplateCmd(flags))
	root.AddCommand(newPrefsCmd(flags))
	root.AddCommand(newResetCmd(flags))
	return root
}

func loadConfig(flags *globalFlags) (config.Config, error) {
	cfg, err := config.New(flags.dataDir)
	if err != nil {
		return config.Config{}, err
	}
	if flags.backend != "" {
		cfg.Backend = flags.backend
	}
	if flags.locale != "" {
		cfg.Locale = flags.locale
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openPlanner bootstraps the app, loads the stored snapshot and applies --day.
// Callers must Close the returned app.
func openPlanner(cmd *cobra.Command, flags *globalFlags, opts bootstrap.Options) (*bootstrap.App, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	opts.Stdin = cmd.InOrStdin()
	opts.Stderr = cmd.ErrOrStderr()
	app, err := bootstrap.New(cfg, opts)
	if err != nil {
		return nil, err
	}
	if err := app.PlannerCLI.Open(commandContext(cmd)); err != nil {
		_ = app.Close()
		return nil, err
	}
	if flags.day >= 0 {
		if err := app.PlannerCLI.SelectDay(flags.day); err != nil {
			_ = app.Close()
			return nil, err
		}
	}
	return app, nil
}

// withPlanner runs fn against an opened non-interactive planner.
func withPlanner(flags *globalFlags, fn func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		app, err := openPlanner(cmd, flags, bootstrap.Options{})
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()
		return fn(commandContext(cmd), cmd, app)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the focusflow terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := openPlanner(cmd, flags, bootstrap.Options{Interactive: true})
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newTodayCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the plan of the selected day",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withPlanner(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
		day, err := app.PlannerCLI.Day(ctx)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), day)
		}
		printDay(cmd.OutOrStdout(), day)
		return nil
	})
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newWeekCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Summarize Monday to Friday",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withPlanner(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
		week, err := app.PlannerCLI.Week(ctx)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), week)
		}
		for _, d := range week.Days {
			marker := " "
			if d.Active {
				marker = "*"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d %-10s %s %-6s %d/%d\n", marker, d.DayIndex, d.DayName, d.Date, d.Mode, d.Completed, d.Total)
		}
		return nil
	})
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newRegenerateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate",
		Short: "Rebuild the selected day from its routine templates",
		Args:  cobra.NoArgs,
		RunE: withPlanner(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
			day, err := app.PlannerCLI.Regenerate(ctx)
			if err != nil {
				return err
			}
			printDay(cmd.OutOrStdout(), day)
			return nil
		}),
	}
}

func newAddCmd(flags *globalFlags) *cobra.Command {
	var minutes int
	var taskType, start string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an ad-hoc task to the selected day",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")
		return withPlanner(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
			task, err := app.PlannerCLI.AddTask(ctx, title, minutes, taskType, start)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s) on %s\n", task.Title, task.ID, task.Date)
			return nil
		})(cmd, args)
	}
	cmd.Flags().IntVar(&minutes, "minutes", 30, "duration in minutes")
	cmd.Flags().StringVar(&taskType, "type", "other", "task type: water|food|work|study|exercise|break|other")
	cmd.Flags().StringVar(&start, "at", "", "start time HH:MM (optional)")
	return cmd
}

func newCompletionCmds(flags *globalFlags) []*cobra.Command {
	set := func(use, short string, completed *bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <task-id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withPlanner(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
					var out dto.CompletionOutput
					var err error
					if completed == nil {
						out, err = app.PlannerCLI.ToggleCompleted(ctx, args[0])
					} else {
						out, err = app.PlannerCLI.SetCompleted(ctx, args[0], *completed)
					}
					if err != nil {
						return err
					}
					if !out.Found {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: no such task (unchanged)\n", out.TaskID)
						return nil
					}
					state := "open"
					if out.Completed {
						state = "done"
					}
					if !out.Changed {
						state += " (unchanged)"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", out.TaskID, state)
					return nil
				})(cmd, args)
			},
		}
	}
	done, undo := true, false
	return []*cobra.Command{
		set("done", "Mark a task as completed", &done),
		set("undo", "Mark a task as not completed", &undo),
		set("toggle", "Flip the completion of a task", nil),
	}
}

func newEditCmd(flags *globalFlags) *cobra.Command {
	var title, taskType, start string
	var minutes int
	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit title, type, duration or start time of a task",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		input := dto.EditTaskInput{TaskID: args[0]}
		if cmd.Flags().Changed("title") {
			input.Title = &title
		}
		if cmd.Flags().Changed("type") {
			input.Type = &taskType
		}
		if cmd.Flags().Changed("minutes") {
			input.Duration = &minutes
		}
		if cmd.Flags().Changed("at") {
			input.StartTime = &start
		}
		return withPlanner(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
			out, err := app.PlannerCLI.EditTask(ctx, input)
			if err != nil {
				return err
			}
			printChange(cmd.OutOrStdout(), out)
			return nil
		})(cmd, args)
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&taskType, "type", "", "new task type")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "new duration in minutes")
	cmd.Flags().StringVar(&start, "at", "", "new start time HH:MM, empty to clear")
	return cmd
}

func newSetTimeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set-time <task-id> <HH:MM|->",
		Short: "Set or clear the start time of a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := args[1]
			if start == "-" {
				start = ""
			}
			return withPlanner(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
				out, err := app.PlannerCLI.SetStartTime(ctx, args[0], start)
				if err != nil {
					return err
				}
				printChange(cmd.OutOrStdout(), out)
				return nil
			})(cmd, args)
		},
	}
}

func newSetDurationCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set-duration <task-id> <minutes>",
		Short: "Set the duration of a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("minutes must be a number: %w", err)
			}
			return withPlanner(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
				out, err := app.PlannerCLI.SetDuration(ctx, args[0], minutes)
				if err != nil {
					return err
				}
				printChange(cmd.OutOrStdout(), out)
				return nil
			})(cmd, args)
		},
	}
}

func newChaosCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chaos",
		Short: "Toggle chaos mode on the selected day",
		Args:  cobra.NoArgs,
		RunE: withPlanner(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
			out, err := app.PlannerCLI.ToggleChaos(ctx)
			if err != nil {
				return err
			}
			switch {
			case out.Affected == 0:
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "chaos unchanged for %s: no open tasks\n", out.Date)
			case out.Chaos:
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "chaos on for %s: %d tasks shrunk\n", out.Date, out.Affected)
			default:
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "chaos off for %s: durations restored\n", out.Date)
			}
			return nil
		}),
	}
}

func newMoodCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mood <ko|normal|motivated>",
		Short: "Rescale the flexible tasks of the selected day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
				out, err := app.PlannerCLI.ApplyMood(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "mood %s on %s: %d tasks rescaled\n", out.Mood, out.Date, out.Affected)
				return nil
			})(cmd, args)
		},
	}
}

func newWeekendCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "weekend <relax|chores|study>",
		Short: "Add a weekend activity pack to the selected day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
				tasks, err := app.PlannerCLI.AddWeekendPack(ctx, args[0])
				if err != nil {
					return err
				}
				for _, t := range tasks {
					printTask(cmd.OutOrStdout(), t)
				}
				return nil
			})(cmd, args)
		},
	}
}

func newWFHCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "wfh",
		Short: "Toggle the selected weekday between office and wfh",
		Args:  cobra.NoArgs,
		RunE: withPlanner(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
			out, err := app.PlannerCLI.ToggleWFH(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s (run regenerate to rebuild its plan)\n", out.DayName, out.Mode)
			return nil
		}),
	}
}

func newTemplateCmd(flags *globalFlags) *cobra.Command {
	template := &cobra.Command{Use: "template", Short: "Manage office and wfh routine templates"}

	template.AddCommand(&cobra.Command{
		Use:   "list <office|wfh>",
		Short: "List the templates of a mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
				list, err := app.PlannerCLI.ListTemplates(ctx, args[0])
				if err != nil {
					return err
				}
				if len(list) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no templates")
					return nil
				}
				for _, tpl := range list {
					printTemplate(cmd.OutOrStdout(), tpl)
				}
				return nil
			})(cmd, args)
		},
	})

	var minutes int
	var taskType, start string
	add := &cobra.Command{
		Use:   "add <office|wfh> <title>",
		Short: "Add a template",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args[1:], " ")
			return withPlanner(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
				tpl, err := app.PlannerCLI.AddTemplate(ctx, args[0], title, minutes, taskType, start)
				if err != nil {
					return err
				}
				printTemplate(cmd.OutOrStdout(), tpl)
				return nil
			})(cmd, args)
		},
	}
	add.Flags().IntVar(&minutes, "minutes", 30, "duration in minutes")
	add.Flags().StringVar(&taskType, "type", "other", "task type")
	add.Flags().StringVar(&start, "at", "", "start time HH:MM; timed templates are fixed")
	template.AddCommand(add)

	var editTitle, editType, editStart string
	var editMinutes int
	edit := &cobra.Command{
		Use:   "edit <office|wfh> <template-id>",
		Short: "Edit a template; existing tasks are not touched",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := dto.EditTemplateInput{Mode: args[0], TemplateID: args[1]}
			if cmd.Flags().Changed("title") {
				input.Title = &editTitle
			}
			if cmd.Flags().Changed("type") {
				input.Type = &editType
			}
			if cmd.Flags().Changed("minutes") {
				input.Duration = &editMinutes
			}
			if cmd.Flags().Changed("at") {
				input.StartTime = &editStart
			}
			return withPlanner(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
				tpl, err := app.PlannerCLI.EditTemplate(ctx, input)
				if err != nil {
					return err
				}
				printTemplate(cmd.OutOrStdout(), tpl)
				return nil
			})(cmd, args)
		},
	}
	edit.Flags().StringVar(&editTitle, "title", "", "new title")
	edit.Flags().StringVar(&editType, "type", "", "new task type")
	edit.Flags().IntVar(&editMinutes, "minutes", 0, "new duration in minutes")
	edit.Flags().StringVar(&editStart, "at", "", "new start time HH:MM")
	template.AddCommand(edit)

	template.AddCommand(&cobra.Command{
		Use:   "remove <office|wfh> <template-id>",
		Short: "Remove a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlanner(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
				if err := app.PlannerCLI.RemoveTemplate(ctx, args[0], args[1]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s from %s\n", args[1], args[0])
				return nil
			})(cmd, args)
		},
	})
	return template
}

func newPrefsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "prefs",
		Short: "Show stored preferences",
		Args:  cobra.NoArgs,
		RunE: withPlanner(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
			p, err := app.PlannerCLI.Preferences(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "office_days=%v\nwfh_days=%v\nmood=%s\nsound=%t\nconfetti=%t\n", p.OfficeDays, p.WFHDays, p.Mood, p.UseSound, p.UseConfetti)
			if !p.LastSaved.IsZero() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "last_saved=%s\n", p.LastSaved.Format(time.RFC3339))
			}
			return nil
		}),
	}
}

func newResetCmd(flags *globalFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all stored data and start over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := openPlanner(cmd, flags, bootstrap.Options{AssumeYes: yes})
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.PlannerCLI.Reset(commandContext(cmd)); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "done")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func printDay(w io.Writer, day dto.DayOutput) {
	header := fmt.Sprintf("%s %s [%s] %d%%", day.DayName, day.Date, day.Mode, day.Progress)
	if day.IsWeekend {
		header = fmt.Sprintf("%s %s [weekend] %d%%", day.DayName, day.Date, day.Progress)
	}
	if day.Chaos {
		header += " CHAOS"
	}
	_, _ = fmt.Fprintln(w, header)
	if len(day.Tasks) == 0 {
		_, _ = fmt.Fprintln(w, "no tasks")
		return
	}
	for _, t := range day.Tasks {
		printTask(w, t)
	}
}

func printTask(w io.Writer, t dto.TaskOutput) {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	start := t.StartTime
	if start == "" {
		start = "--:--"
	}
	var tags []string
	if t.IsFixed {
		tags = append(tags, "fixed")
	}
	if t.IsMini {
		tags = append(tags, fmt.Sprintf("mini, was %dm", t.OriginalDuration))
	}
	suffix := ""
	if len(tags) > 0 {
		suffix = " (" + strings.Join(tags, "; ") + ")"
	}
	_, _ = fmt.Fprintf(w, "%s %s %3dm %-8s %s%s\t%s\n", check, start, t.Duration, t.Type, t.Title, suffix, t.ID)
}

func printChange(w io.Writer, out dto.TaskChangeOutput) {
	if !out.Found {
		_, _ = fmt.Fprintf(w, "%s: no such task (unchanged)\n", out.Task.ID)
		return
	}
	printTask(w, out.Task)
}

func printTemplate(w io.Writer, t dto.TemplateOutput) {
	start := t.StartTime
	if start == "" {
		start = "--:--"
	}
	kind := "flexible"
	if t.IsFixed {
		kind = "fixed"
	}
	_, _ = fmt.Fprintf(w, "%s %3dm %-8s %-8s %s\t%s\n", start, t.Duration, t.Type, kind, t.Title, t.ID)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
