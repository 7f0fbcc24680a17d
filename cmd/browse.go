package cmd

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/huh"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/hyj0824/ojAssistant/client"
	"github.com/hyj0824/ojAssistant/internal/config"
	"github.com/hyj0824/ojAssistant/internal/fetch"
	"github.com/hyj0824/ojAssistant/internal/files"
	"github.com/hyj0824/ojAssistant/ui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [workdir]",
	Short: "Browse courses and submit solutions interactively",
	Long: `Browse your courses, homeworks and problems, and submit Java
solutions for grading.

The optional positional argument overrides the configured working
directory for this invocation only.

Examples:
  oja browse
  oja browse ~/cs109/hw3`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		override := ""
		if len(args) > 0 {
			override = args[0]
		}
		workDir, err := cfg.ResolveWorkDir(override)
		if err != nil {
			return fmt.Errorf("failed to resolve work directory: %w", err)
		}
		ui.Infof("Working directory: %s", workDir)

		c, store, err := newClient()
		if err != nil {
			return err
		}
		if err := ensureLogin(c, store); err != nil {
			ui.Errorf("%v", err)
			return err
		}

		ui.Infof("Fetching courses...")
		courses, err := c.MyCourses()
		if err != nil {
			return fmt.Errorf("failed to fetch courses: %w", err)
		}
		if len(courses.List) == 0 {
			return fmt.Errorf("you are not enrolled in any course")
		}
		ui.RenderCourses(courses.List)

		course, err := selectCourse(courses.List, cfg.AutoSelectCourse)
		if err != nil {
			return err
		}

		autoHomework := cfg.AutoSelectHomework
		for {
			hws, err := fetch.Homeworks(c, course.CourseID, slog.Default())
			if err != nil {
				return err
			}
			ui.RenderHomeworks(hws)

			hw, ok, err := selectHomework(hws, autoHomework)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			autoHomework = false

			ui.Infof("Fetching problems for %s...", hw.HomeworkName)
			problems, err := fetch.Problems(c, hw.HomeworkID, course.CourseID, slog.Default())
			if err != nil {
				ui.Errorf("%v", err)
				continue
			}

			quit, err := interactWithProblems(cmd, c, cfg, workDir, course, hw, problems)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	},
}

func selectCourse(courses []client.Course, autoSelect bool) (client.Course, error) {
	if autoSelect || len(courses) == 1 {
		ui.Infof("Selected course: %s", courses[0].CourseName)
		return courses[0], nil
	}

	opts := make([]huh.Option[int], len(courses))
	for i, course := range courses {
		opts[i] = huh.NewOption(fmt.Sprintf("[%d] %s", course.CourseID, course.CourseName), i)
	}

	var idx int
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().Title("Select a course").Options(opts...).Value(&idx),
	))
	if err := form.Run(); err != nil {
		return client.Course{}, fmt.Errorf("course selection failed: %w", err)
	}
	return courses[idx], nil
}

// selectHomework returns ok=false when the user chooses to quit.
func selectHomework(hws []client.Homework, autoSelect bool) (client.Homework, bool, error) {
	if autoSelect {
		ui.Infof("Selected homework: %s", hws[0].HomeworkName)
		return hws[0], true, nil
	}

	const quitIdx = -1
	opts := make([]huh.Option[int], 0, len(hws)+1)
	for i, hw := range hws {
		opts = append(opts, huh.NewOption(fmt.Sprintf("[%d] %s", hw.HomeworkID, hw.HomeworkName), i))
	}
	opts = append(opts, huh.NewOption("Quit", quitIdx))

	var idx int
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().Title("Select a homework").Options(opts...).Value(&idx),
	))
	if err := form.Run(); err != nil {
		return client.Homework{}, false, fmt.Errorf("homework selection failed: %w", err)
	}
	if idx == quitIdx {
		return client.Homework{}, false, nil
	}
	return hws[idx], true, nil
}

// interactWithProblems loops over problem selection and per-problem
// actions. It returns quit=true when the whole session should end, and
// quit=false to go back to the homework list.
func interactWithProblems(cmd *cobra.Command, c *client.Client, cfg *config.Config, workDir string, course client.Course, hw client.Homework, problems []client.Problem) (bool, error) {
	for {
		ui.RenderProblems(problems)

		const (
			backIdx = -1
			quitIdx = -2
		)
		opts := make([]huh.Option[int], 0, len(problems)+2)
		for i, p := range problems {
			opts = append(opts, huh.NewOption(fmt.Sprintf("%d. %s", i+1, p.ProblemName), i))
		}
		opts = append(opts,
			huh.NewOption("Back to homeworks", backIdx),
			huh.NewOption("Quit", quitIdx),
		)

		var idx int
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[int]().Title("Select a problem").Options(opts...).Value(&idx),
		))
		if err := form.Run(); err != nil {
			return false, fmt.Errorf("problem selection failed: %w", err)
		}
		switch idx {
		case backIdx:
			return false, nil
		case quitIdx:
			return true, nil
		}

		problem := problems[idx]
		ui.RenderProblemDetail(problem, cfg.MaxRecordsToShow)

		if err := problemActions(cmd, c, workDir, course, hw, problem); err != nil {
			return false, err
		}

		// Refresh records so a fresh submission shows up in the
		// duplicate check and the table.
		if records, err := c.RecentRecords(problem.ProblemID, hw.HomeworkID, course.CourseID); err == nil {
			problems[idx].Records = records.List
		}
	}
}

func problemActions(cmd *cobra.Command, c *client.Client, workDir string, course client.Course, hw client.Homework, problem client.Problem) error {
	for {
		const (
			actSubmit = iota
			actExport
			actUnitTest
			actOpen
			actBack
		)

		var action int
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[int]().
				Title(fmt.Sprintf("%s - what next?", problem.ProblemName)).
				Options(
					huh.NewOption("Submit a solution", actSubmit),
					huh.NewOption("Export statement as markdown", actExport),
					huh.NewOption("Download unit test", actUnitTest),
					huh.NewOption("Open on the platform", actOpen),
					huh.NewOption("Back", actBack),
				).
				Value(&action),
		))
		if err := form.Run(); err != nil {
			return fmt.Errorf("action selection failed: %w", err)
		}

		switch action {
		case actSubmit:
			handleSubmission(cmd.Context(), c, workDir, course, hw, problem)
			return nil
		case actExport:
			path, err := files.ExportProblem(problem, course.CourseID, hw.HomeworkID, workDir)
			if err != nil {
				ui.Errorf("%v", err)
			} else {
				ui.Successf("Statement saved to %s", path)
			}
		case actUnitTest:
			path, err := files.DownloadUnitTest(course.CourseCode, hw.HomeworkID, problem.ProblemID, problem.ProblemName, workDir)
			if err != nil {
				ui.Warnf("%v", err)
			} else {
				ui.Successf("Unit test saved to %s", path)
			}
		case actOpen:
			url := fmt.Sprintf("%s/course/%d/homework/%d", c.BaseURL, course.CourseID, hw.HomeworkID)
			if err := browser.OpenURL(url); err != nil {
				ui.Errorf("Could not open browser: %v", err)
			}
		case actBack:
			return nil
		}
	}
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
