package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/CrowderSoup/godolist/app"
	"github.com/CrowderSoup/godolist/client"
	"github.com/CrowderSoup/godolist/config"
	"github.com/CrowderSoup/godolist/models"
	"github.com/CrowderSoup/godolist/store"
	"github.com/spf13/cobra"
)

type cli struct {
	envFile string
	email   string
	name    string

	app *app.App
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:          "godolist",
		Short:        "Terminal client for the godolist API",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Everything in the Work folder (id 3)
  godolist --email ada@example.com tasks 3

  # Search across all folders
  godolist --email ada@example.com tasks --search report

  # Ask the assistant to summarise task 12 and its files
  godolist --email ada@example.com process 12 --type summarize
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.start(cmd)
		},
	}
	cmd.PersistentFlags().StringVar(&c.envFile, "env", ".env", "env file to load before reading the environment")
	cmd.PersistentFlags().StringVar(&c.email, "email", "", "email to sign in with (required)")
	cmd.PersistentFlags().StringVar(&c.name, "name", "", "display name to sign in with")

	cmd.AddCommand(
		newTasksCmd(c),
		newFoldersCmd(c),
		newAddCmd(c),
		newDoneCmd(c),
		newMoveCmd(c),
		newProcessCmd(c),
	)
	return cmd
}

// start signs in and loads the folders and tasks.
func (c *cli) start(cmd *cobra.Command) error {
	if strings.TrimSpace(c.email) == "" {
		return writeErr(cmd, errors.New("--email is required"))
	}
	cfg, err := config.Load(c.envFile)
	if err != nil {
		return writeErr(cmd, err)
	}
	c.app = app.New(cfg, client.Identity{Email: c.email, DisplayName: c.name})
	if err := c.app.Start(cmd.Context()); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func newTasksCmd(c *cli) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "tasks [folder-id|unassigned|myday|important|completed|all]",
		Short: "List tasks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := store.SelectorAll
			if len(args) == 1 {
				selector = args[0]
			}
			writeTasks(cmd.OutOrStdout(), c.app.Store.SearchTasks(search, selector))
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "match title or notes in every folder")
	return cmd
}

func newFoldersCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "folders",
		Short: "List folders with their open task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.app.Store
			for _, f := range s.Folders() {
				open := 0
				for _, t := range s.TasksByFolder(strconv.FormatInt(f.ID, 10)) {
					if !t.Completed {
						open++
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d open\n", f.ID, f.Name, open)
			}
			return nil
		},
	}
}

func newAddCmd(c *cli) *cobra.Command {
	var (
		notes     string
		folderID  int64
		important bool
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := models.Record{
				models.FieldTitle:       strings.Join(args, " "),
				models.FieldDescription: notes,
				models.FieldImportant:   important,
			}
			if folderID > 0 {
				fields[models.FieldListID] = folderID
			}
			task, err := c.app.Actions.CreateTask(cmd.Context(), fields)
			if err != nil {
				return writeErr(cmd, err)
			}
			writeTasks(cmd.OutOrStdout(), []models.Task{task})
			return nil
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "task notes")
	cmd.Flags().Int64Var(&folderID, "folder", 0, "folder id")
	cmd.Flags().BoolVar(&important, "important", false, "mark as important")
	return cmd
}

func newDoneCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "done <task-id>",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := c.app.Store.Task(id); !ok {
				return writeErr(cmd, fmt.Errorf("task %d not found", id))
			}
			task, err := c.app.Actions.ToggleTaskCompletion(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			writeTasks(cmd.OutOrStdout(), []models.Task{task})
			return nil
		},
	}
}

func newMoveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <folder-id> <task-id>...",
		Short: "Move tasks into a folder",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, a := range args {
				id, err := parseID(a)
				if err != nil {
					return writeErr(cmd, err)
				}
				ids = append(ids, id)
			}
			if err := c.app.Actions.MoveTasksToFolder(cmd.Context(), ids[0], ids[1:]); err != nil {
				return writeErr(cmd, err)
			}
			writeTasks(cmd.OutOrStdout(), c.app.Store.TasksByFolder(strconv.FormatInt(ids[0], 10)))
			return nil
		},
	}
}

func newProcessCmd(c *cli) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "process <task-id>",
		Short: "Ask the assistant to analyse a task and its files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			analysis, err := c.app.Actions.ProcessTask(cmd.Context(), id, kind)
			if err != nil {
				return writeErr(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), analysis.Result)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "type", models.AnalysisReview, "review, analyze or summarize")
	return cmd
}

func writeTasks(w io.Writer, tasks []models.Task) {
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		star := ""
		if t.Important {
			star = " *"
		}
		fmt.Fprintf(w, "[%s] %d\t%s%s\n", mark, t.ID, t.Title, star)
	}
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
