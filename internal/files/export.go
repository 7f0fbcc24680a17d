package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyj0824/ojAssistant/client"
)

// maxExportedRecords caps how many recent submissions the export
// includes.
const maxExportedRecords = 5

// ExportProblem writes the problem statement, limits, and recent
// submissions as a markdown file in workDir and returns its path.
func ExportProblem(p client.Problem, courseID, homeworkID int, workDir string) (string, error) {
	name := sanitizeName(p.ProblemName)
	fileName := fmt.Sprintf("%d_%d_%d_%s.md", courseID, homeworkID, p.ProblemID, name)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.ProblemName)
	fmt.Fprintf(&b, "**Problem ID:** %d  \n", p.ProblemID)
	fmt.Fprintf(&b, "**Course:** %d  \n", courseID)
	fmt.Fprintf(&b, "**Homework:** %d  \n\n", homeworkID)

	b.WriteString("## Problem info\n\n")
	fmt.Fprintf(&b, "**Difficulty:** %s  \n", p.Details.DifficultyName())
	fmt.Fprintf(&b, "**IO mode:** %s  \n", p.Details.IOModeName())
	if p.Details != nil {
		if len(p.Details.TimeLimit) > 0 {
			b.WriteString("**Time limit:**")
			for lang, limit := range p.Details.TimeLimit {
				fmt.Fprintf(&b, " %s: %d ms  \n", lang, limit)
			}
		}
		if len(p.Details.MemoryLimit) > 0 {
			b.WriteString("**Memory limit:**")
			for lang, limit := range p.Details.MemoryLimit {
				fmt.Fprintf(&b, " %s: %d MB  \n", lang, limit)
			}
		}
		if len(p.Details.PublicTags) > 0 {
			fmt.Fprintf(&b, "**Tags:** %s  \n", strings.Join(p.Details.PublicTags, ", "))
		}
	}

	b.WriteString("\n## Statement\n\n")
	if p.Details != nil && p.Details.Content != "" {
		b.WriteString(p.Details.Content)
		b.WriteString("\n")
	} else {
		b.WriteString("Statement not available\n")
	}

	if len(p.Records) > 0 {
		b.WriteString("\n## Recent submissions\n\n")
		count := min(maxExportedRecords, len(p.Records))
		for i := 0; i < count; i++ {
			record := p.Records[i]
			fmt.Fprintf(&b, "### Submission %d (%s) %s\n\n", i+1, record.SubmissionTime, stateEmoji(record.ResultState))
			fmt.Fprintf(&b, "**Record ID:** %d  \n", record.RecordID)
			fmt.Fprintf(&b, "**State:** %s  \n", record.ResultState)
			fmt.Fprintf(&b, "**Score:** %v  \n", record.Score)
			if len(record.Code) > 0 {
				b.WriteString("\n**Submitted code:**\n\n")
				for codeName, code := range record.Code {
					fmt.Fprintf(&b, "**%s**\n\n```%s\n%s\n```\n\n", codeName, fenceLang(codeName), code)
				}
			}
			if i < count-1 {
				b.WriteString("---\n\n")
			}
		}
	}

	path := filepath.Join(workDir, fileName)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write problem export: %w", err)
	}
	return path, nil
}

func sanitizeName(name string) string {
	if name == "" {
		return "unknown"
	}
	return strings.NewReplacer("/", "-", "\\", "-").Replace(name)
}

func stateEmoji(state string) string {
	switch state {
	case client.ResultAccepted:
		return "✅"
	case client.ResultWrongAnswer:
		return "❌"
	case client.ResultTimeLimit:
		return "⏱️"
	case client.ResultMemoryLimit:
		return "💾"
	case client.ResultRuntimeErr:
		return "💥"
	case client.ResultCompileErr:
		return "⚠️"
	default:
		return "❓"
	}
}

func fenceLang(fileName string) string {
	switch {
	case strings.HasSuffix(fileName, ".java"):
		return "java"
	case strings.HasSuffix(fileName, ".py"):
		return "python"
	case strings.HasSuffix(fileName, ".cpp"), strings.HasSuffix(fileName, ".c"):
		return "cpp"
	default:
		return ""
	}
}
