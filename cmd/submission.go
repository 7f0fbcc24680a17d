package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hyj0824/ojAssistant/client"
	"github.com/hyj0824/ojAssistant/internal/files"
	"github.com/hyj0824/ojAssistant/internal/submit"
	"github.com/hyj0824/ojAssistant/ui"
)

// handleSubmission walks one submission through file selection, the
// duplicate check, the confirmation prompt, and the grading poll. All
// failures are reported and swallowed so the caller can return to the
// problem list.
func handleSubmission(ctx context.Context, c *client.Client, workDir string, course client.Course, hw client.Homework, problem client.Problem) {
	fmt.Println(strings.Repeat("-", 40))
	ui.Infof("Submitting solution for: %s", problem.ProblemName)

	var input string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Java files").
			Description(fmt.Sprintf(
				"Comma-separated names (\".java\" optional), a directory, or empty for Main.java / all .java files in %s", workDir)).
			Value(&input),
	))
	if err := form.Run(); err != nil {
		ui.Errorf("File prompt failed: %v", err)
		return
	}

	paths, err := files.ResolveJava(workDir, input)
	if err != nil {
		ui.Errorf("%v", err)
		return
	}
	ui.Successf("Selected files:")
	for _, path := range paths {
		fmt.Printf("  - %s\n", path)
	}

	sources, err := files.ReadSources(paths)
	if err != nil {
		ui.Errorf("%v", err)
		return
	}

	req := submit.Request{
		CourseID:    course.CourseID,
		HomeworkID:  hw.HomeworkID,
		ProblemID:   problem.ProblemID,
		TimeLimitMS: problem.Details.JavaTimeLimitMS(),
		Files:       sources,
	}

	confirm := func() bool {
		ok := true
		confirmForm := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Submit %d file(s) for %q?", len(paths), problem.ProblemName)).
				Value(&ok),
		))
		if err := confirmForm.Run(); err != nil {
			return false
		}
		if ok {
			ui.Infof("Submitting, then waiting for the judge...")
		}
		return ok
	}

	submitter := submit.New(c, slog.Default())
	outcome, err := submitter.Run(ctx, req, problem.Records, confirm)

	switch {
	case errors.Is(err, submit.ErrGradingTimeout):
		ui.Warnf("The judge is still running; check the record on the platform later")
	case err != nil:
		ui.Errorf("%v", err)
	case outcome.State == submit.StateCancelled && outcome.Duplicate != nil:
		ui.Warnf("These files are identical to your last submission")
		fmt.Printf("  Last submitted: %s (record %d)\n", outcome.Duplicate.SubmittedAt, outcome.Duplicate.RecordID)
		fmt.Printf("  Files: %s\n", baseNames(paths))
		ui.Errorf("Submission cancelled; save your changes first")
	case outcome.State == submit.StateCancelled:
		ui.Infof("Submission cancelled")
	case outcome.State == submit.StateAccepted:
		outcome.Result.ProblemName = problem.ProblemName
		ui.RenderGradingResult(outcome.Result)
		ui.Successf("All test cases passed!")
	case outcome.State == submit.StateRejected:
		outcome.Result.ProblemName = problem.ProblemName
		ui.RenderGradingResult(outcome.Result)
		ui.Errorf("Not fully accepted, see the breakdown above")
	}
}

func baseNames(paths []string) string {
	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = filepath.Base(path)
	}
	return strings.Join(names, ", ")
}
