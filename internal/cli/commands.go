package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/comitanigiacomo/capsule-journal/internal/adapters/repository"
	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
	"github.com/comitanigiacomo/capsule-journal/internal/core/services"
	"github.com/comitanigiacomo/capsule-journal/internal/logger"
)

func newViper() *viper.Viper {
	return viper.New()
}

// session is filled by the root command before any subcommand runs.
type session struct {
	app *App
}

func New() *cobra.Command {
	s := &session{}

	cmd := &cobra.Command{
		Use:           "capsule",
		Short:         "A journal of dated, colored capsules.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(newViper())
			if err != nil {
				return err
			}
			logger.Init(logger.Config{Debug: cfg.Debug, File: cfg.LogFile})
			logger.Debug("opening journal", "path", cfg.Path)

			s.app = NewApp(repository.NewDiskvStore(cfg.Path), cfg.Location)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addWrite(cmd, s)
	addList(cmd, s)
	addEdit(cmd, s)
	addDelete(cmd, s)
	addStats(cmd, s)
	addPrefs(cmd, s)
	addBackup(cmd, s)
	return cmd
}

// Execute runs the CLI and maps failures to an exit status.
func Execute() int {
	if err := New().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "capsule:", err)
		return 1
	}
	return 0
}

type entryFlags struct {
	date  string
	mood  string
	color string
}

func (f *entryFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "day of the entry (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.mood, "mood", "", "mood label (default Happy)")
	cmd.Flags().StringVar(&f.color, "color", "", "palette name or #RRGGBB (default blue)")
}

// parseDate keeps the current time of day so entries on one day keep their order.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	day, err := domain.ParseDay(s)
	if err != nil {
		return time.Time{}, err
	}
	now := time.Now().In(loc)
	return time.Date(day.Year, day.Month, day.Day, now.Hour(), now.Minute(), now.Second(), 0, loc), nil
}

func addWrite(topLevel *cobra.Command, s *session) {
	f := &entryFlags{}

	cmd := &cobra.Command{
		Use:   "write <content...>",
		Short: "Write a new entry",
		Example: `
capsule write went to the sea --mood Calm --color green
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires some content")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(f.date, s.app.Location)
			if err != nil {
				return err
			}

			entry, err := s.app.Entries.Create(cmd.Context(), services.CreateEntryInput{
				Date:    date,
				Mood:    f.mood,
				Content: strings.Join(args, " "),
				Color:   f.color,
			})
			if err != nil {
				return err
			}
			printEntry(cmd.OutOrStdout(), entry, s.app.Location)
			return nil
		},
	}

	f.bind(cmd)
	topLevel.AddCommand(cmd)
}

func addList(topLevel *cobra.Command, s *session) {
	var day string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				entries []*domain.Entry
				err     error
			)
			if day != "" {
				d, parseErr := domain.ParseDay(day)
				if parseErr != nil {
					return parseErr
				}
				entries, err = s.app.Entries.FilterByDay(cmd.Context(), d.Start(s.app.Location))
			} else {
				entries, err = s.app.Entries.List(cmd.Context())
			}
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no entries")
				return nil
			}
			for _, e := range entries {
				printEntry(cmd.OutOrStdout(), e, s.app.Location)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "only entries of this day (YYYY-MM-DD)")
	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command, s *session) {
	f := &entryFlags{}
	var content string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an entry; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := s.app.ResolveID(ctx, args[0])
			if err != nil {
				return err
			}
			existing, err := s.app.Entries.GetByID(ctx, id)
			if err != nil {
				return err
			}

			input := services.UpdateEntryInput{
				ID:      id,
				Date:    existing.Date,
				Mood:    existing.Mood,
				Content: existing.Content,
				Color:   existing.Color,
			}
			if cmd.Flags().Changed("date") {
				if input.Date, err = parseDate(f.date, s.app.Location); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("mood") {
				input.Mood = f.mood
			}
			if cmd.Flags().Changed("color") {
				input.Color = f.color
			}
			if cmd.Flags().Changed("content") {
				input.Content = content
			}

			entry, err := s.app.Entries.Update(ctx, input)
			if err != nil {
				return err
			}
			printEntry(cmd.OutOrStdout(), entry, s.app.Location)
			return nil
		},
	}

	f.bind(cmd)
	cmd.Flags().StringVar(&content, "content", "", "new text of the entry")
	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command, s *session) {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := s.app.ResolveID(ctx, args[0])
			if err != nil {
				return err
			}
			if err := s.app.Entries.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addStats(topLevel *cobra.Command, s *session) {
	var today string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show streaks and day counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if today != "" {
				d, err := domain.ParseDay(today)
				if err != nil {
					return err
				}
				now = d.Start(s.app.Location)
			}

			stats, err := s.app.Stats.Summary(cmd.Context(), now)
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&today, "today", "", "compute as of this day (YYYY-MM-DD)")
	topLevel.AddCommand(cmd)
}

func addPrefs(topLevel *cobra.Command, s *session) {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := s.app.Preferences.Get(cmd.Context())
			if err != nil {
				return err
			}
			printPreferences(cmd.OutOrStdout(), prefs)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "dark-mode on|off",
		Short:     "Toggle dark mode",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := s.app.Preferences.SetDarkMode(cmd.Context(), args[0] == "on")
			if err != nil {
				return err
			}
			printPreferences(cmd.OutOrStdout(), prefs)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "name <display name>",
		Short: "Set the display name (2 to 20 characters)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := s.app.Preferences.SetDisplayName(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			printPreferences(cmd.OutOrStdout(), prefs)
			return nil
		},
	})

	var remove bool
	avatar := &cobra.Command{
		Use:   "avatar [image file]",
		Short: "Set the avatar from an image file, or remove it with --clear",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var image []byte
			switch {
			case remove:
			case len(args) == 1:
				data, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				image = data
			default:
				return errors.New("requires an image file or --clear")
			}

			prefs, err := s.app.Preferences.SetAvatar(cmd.Context(), image)
			if err != nil {
				return err
			}
			printPreferences(cmd.OutOrStdout(), prefs)
			return nil
		},
	}
	avatar.Flags().BoolVar(&remove, "clear", false, "remove the avatar")
	cmd.AddCommand(avatar)

	topLevel.AddCommand(cmd)
}

func addBackup(topLevel *cobra.Command, s *session) {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore the whole journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write a snapshot to file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := s.app.Backup.ExportBytes(cmd.Context())
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], data, 0o600); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Replace the journal with a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := s.app.Backup.ImportBytes(cmd.Context(), data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored from %s\n", args[0])
			return nil
		},
	})

	topLevel.AddCommand(cmd)
}
