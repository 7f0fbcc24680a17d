// Package fetch enriches homework and problem listings with their
// per-item details, fanning the extra API calls out over a small worker
// pool to hide latency.
package fetch

import (
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/hyj0824/ojAssistant/client"
)

// maxWorkers bounds concurrent detail fetches per batch.
const maxWorkers = 5

// Homeworks lists a course's homeworks sorted by due date and attaches
// score/completion details to each. A failed detail fetch leaves that
// homework without details rather than failing the batch.
func Homeworks(c *client.Client, courseID int, logger *slog.Logger) ([]client.Homework, error) {
	list, err := c.HomeworksList(courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch homework list: %w", err)
	}
	if len(list.List) == 0 {
		return nil, fmt.Errorf("course %d has no homeworks", courseID)
	}

	hws := list.List
	sort.SliceStable(hws, func(i, j int) bool {
		return dueDate(hws[i]) < dueDate(hws[j])
	})

	var g errgroup.Group
	g.SetLimit(maxWorkers)
	for i := range hws {
		g.Go(func() error {
			details, err := c.HomeworkDetail(hws[i].HomeworkID, courseID)
			if err != nil {
				logger.Debug("homework detail fetch failed", "homeworkId", hws[i].HomeworkID, "err", err)
				return nil
			}
			hws[i].Details = details
			return nil
		})
	}
	_ = g.Wait()

	return hws, nil
}

// Problems lists a homework's problems and attaches the statement
// details and recent submission records to each, preserving the
// platform's ordering. Individual fetch failures degrade to empty
// details, never abort the batch.
func Problems(c *client.Client, homeworkID, courseID int, logger *slog.Logger) ([]client.Problem, error) {
	list, err := c.ProblemsList(homeworkID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch problem list: %w", err)
	}
	if len(list.List) == 0 {
		return nil, fmt.Errorf("homework %d has no problems", homeworkID)
	}

	problems := list.List

	var g errgroup.Group
	g.SetLimit(maxWorkers)
	for i := range problems {
		g.Go(func() error {
			p := &problems[i]
			details, err := c.ProblemDetail(p.ProblemID, homeworkID, courseID)
			if err != nil {
				logger.Debug("problem detail fetch failed", "problemId", p.ProblemID, "err", err)
			} else {
				p.Details = details
			}

			records, err := c.RecentRecords(p.ProblemID, homeworkID, courseID)
			if err != nil {
				logger.Debug("record fetch failed", "problemId", p.ProblemID, "err", err)
			} else {
				p.Records = records.List
			}
			return nil
		})
	}
	_ = g.Wait()

	return problems, nil
}

func dueDate(hw client.Homework) string {
	if hw.NextDate == "" {
		return "9999-12-31 23:59:59"
	}
	return hw.NextDate
}
