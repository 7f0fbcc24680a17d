package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hyj0824/ojAssistant/client"
)

var (
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	gray    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
)

// Status line helpers shared by all commands.

func Infof(format string, args ...any) {
	fmt.Println(cyan.Render("! ") + fmt.Sprintf(format, args...))
}

func Successf(format string, args ...any) {
	fmt.Println(green.Render("✓ ") + fmt.Sprintf(format, args...))
}

func Warnf(format string, args ...any) {
	fmt.Println(yellow.Render("⚠ ") + fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...any) {
	fmt.Println(red.Render("✗ ") + fmt.Sprintf(format, args...))
}

// StateStyle maps a grading result state to its display style.
func StateStyle(state string) lipgloss.Style {
	switch state {
	case client.ResultAccepted:
		return green
	case client.ResultWrongAnswer, client.ResultRuntimeErr:
		return red
	case client.ResultTimeLimit, client.ResultCompileErr:
		return yellow
	case client.ResultMemoryLimit:
		return magenta
	case client.ResultPending:
		return cyan
	default:
		return gray
	}
}

// colorize replaces the first occurrence of cell inside a pre-padded row
// with its styled rendering, keeping column alignment intact.
func colorize(row, cell string, style lipgloss.Style) string {
	if cell == "" {
		return row
	}
	return strings.Replace(row, cell, style.Render(cell), 1)
}

// RenderCourses prints the numbered course list.
func RenderCourses(courses []client.Course) {
	Successf("Your courses:")
	for i, course := range courses {
		fmt.Printf("  %d. [%d] %s - %s\n", i+1, course.CourseID, course.CourseName, course.Description)
	}
}

// RenderHomeworks prints the homework table, sorted by the caller.
func RenderHomeworks(hws []client.Homework) {
	Successf("Homeworks (by due date):")

	header := fmt.Sprintf("  %-3s | %-20s | %-8s | %-8s | %-10s | %-7s | %-21s",
		"ID", "Name", "Status", "Problems", "Completion", "Score", "Due Date")
	fmt.Println(header)
	fmt.Println(strings.Repeat("-", len(header)))

	now := time.Now()
	for _, hw := range hws {
		status, style := homeworkStatus(hw, now)
		completion := "0%"
		score := "0/0"
		if hw.Details != nil {
			score = fmt.Sprintf("%v/%d", hw.Details.CurrentScore, int(hw.Details.TotalScore))
			completion = fmt.Sprintf("%d%%", int(hw.Details.AttemptRate))
		}
		dueDate := hw.NextDate
		if dueDate == "" {
			dueDate = "No Due Date"
		}

		row := fmt.Sprintf("  %-3d | %-20s | %-8s | %-8d | %-10s | %-7s | %-21s",
			hw.HomeworkID, hw.HomeworkName, status, hw.ProblemsCount, completion, score, dueDate)
		fmt.Println(colorize(row, status, style))
	}
}

// homeworkStatus folds the platform's state flag, the due date, and the
// score into one display status.
func homeworkStatus(hw client.Homework, now time.Time) (string, lipgloss.Style) {
	status, style := "Unknown", gray
	switch hw.State {
	case 1:
		status, style = "Pending", yellow
	case 2:
		status, style = "Active", cyan
	case 3:
		status, style = "Closed", red
	case 4:
		status, style = "Finished", green
	}

	if hw.State == 2 && hw.NextDate != "" {
		if due, err := time.ParseInLocation("2006-01-02 15:04:05", hw.NextDate, time.Local); err == nil && now.After(due) {
			status, style = "Expired", red
		}
	}

	if hw.Details != nil && hw.Details.TotalScore > 0 && hw.Details.CurrentScore == hw.Details.TotalScore {
		status, style = "Complete", green
	}
	return status, style
}

// RenderProblems prints the problem table with the latest submission
// state of each problem.
func RenderProblems(problems []client.Problem) {
	Successf("Problems in this homework:")

	header := fmt.Sprintf("  %-3s | %-30s | %-13s | %-10s | %-15s",
		"No.", "Problem Name", "Status", "Difficulty", "Time Limit")
	fmt.Println(header)
	fmt.Println(strings.Repeat("-", len(header)))

	for i, p := range problems {
		status := "Not Attempted"
		style := gray
		if len(p.Records) > 0 {
			status = p.Records[0].ResultState
			style = StateStyle(status)
		}

		difficulty := p.Details.DifficultyName()
		timeLimit := "Unknown"
		if ms := p.Details.JavaTimeLimitMS(); ms > 0 {
			timeLimit = fmt.Sprintf("%d ms", ms)
		}

		row := fmt.Sprintf("  %-3d | %-30s | %-13s | %-10s | %-15s",
			i+1, truncate(p.ProblemName, 30), status, difficulty, timeLimit)
		row = colorize(row, status, style)
		fmt.Println(colorize(row, difficulty, difficultyStyle(p.Details)))
	}
}

func difficultyStyle(details *client.ProblemInfo) lipgloss.Style {
	if details == nil {
		return gray
	}
	switch details.Difficulty {
	case 1:
		return cyan
	case 2:
		return green
	case 3:
		return yellow
	case 4:
		return red
	case 5:
		return magenta
	default:
		return gray
	}
}

// RenderProblemDetail prints one problem's limits, tags, and its most
// recent submission records (capped at maxRecords).
func RenderProblemDetail(p client.Problem, maxRecords int) {
	divider := strings.Repeat("-", 40)
	fmt.Println(divider)
	fmt.Printf("Problem: %s\n", p.ProblemName)
	fmt.Println(divider)

	if p.Details != nil {
		fmt.Printf("Type: %s\n", p.Details.ProblemType)
		for lang, limit := range p.Details.TimeLimit {
			fmt.Printf("Time limit: %s: %d ms\n", lang, limit)
		}
		for lang, limit := range p.Details.MemoryLimit {
			fmt.Printf("Memory limit: %s: %d MB\n", lang, limit)
		}
		fmt.Printf("IO mode: %s\n", p.Details.IOModeName())
		fmt.Printf("Difficulty: %s\n", difficultyStyle(p.Details).Render(p.Details.DifficultyName()))
		if len(p.Details.PublicTags) > 0 {
			fmt.Printf("Tags: %s\n", strings.Join(p.Details.PublicTags, ", "))
		}
	}
	fmt.Println(divider)

	if len(p.Records) == 0 {
		Warnf("No submission records")
		return
	}

	count := min(maxRecords, len(p.Records))
	Successf("Last %d submission(s):", count)

	header := fmt.Sprintf("  %-6s | %-5s | %-19s | %-9s", "Status", "Score", "Submit Time", "Record ID")
	fmt.Println(header)
	fmt.Println(strings.Repeat("-", len(header)))

	for _, record := range p.Records[:count] {
		row := fmt.Sprintf("  %-6s | %-5v | %-19s | %-9d",
			record.ResultState, record.Score, record.SubmissionTime, record.RecordID)
		fmt.Println(colorize(row, record.ResultState, StateStyle(record.ResultState)))
	}
}

// RenderGradingResult prints the verdict table for a finished grading
// run, with full messages appended for any case whose message was
// truncated in the table.
func RenderGradingResult(result *client.GradingResult) {
	divider := strings.Repeat("-", 60)
	fmt.Println()
	fmt.Println(divider)
	fmt.Printf("Grading result - record %d\n", result.RecordID)
	fmt.Printf("Problem: %s\n", result.ProblemName)
	fmt.Printf("State: %s\n", StateStyle(result.ResultState).Render(result.ResultState))
	fmt.Printf("Score: %v\n", result.Score)
	fmt.Printf("Submitted: %s\n", result.SubmissionTime)
	fmt.Println(divider)

	Infof("Test case results:")
	header := fmt.Sprintf("  %-3s | %-6s | %-17s | %-8s | %-10s | %-27s",
		"No.", "Status", "Test Case", "Time(ms)", "Memory(MB)", "Message")
	fmt.Println(header)
	fmt.Println(strings.Repeat("-", len(header)))

	for i, tc := range result.ResultList {
		title := flatten(tc.Title)
		message := flatten(tc.Message)
		if message == "" {
			message = "N/A"
		}

		row := fmt.Sprintf("  %-3d | %-6s | %-17s | %-8d | %-10d | %-27s",
			i+1, tc.State, truncate(title, 17), tc.Time, tc.Memory, truncate(message, 27))
		fmt.Println(colorize(row, tc.State, StateStyle(tc.State)))
	}

	for i, tc := range result.ResultList {
		if len(flatten(tc.Message)) > 27 {
			fmt.Printf("\nFull message for case %d (%s):\n  %s\n", i+1, tc.Title, tc.Message)
		}
	}
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}

func flatten(s string) string {
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
}
