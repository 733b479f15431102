package report

import "github.com/phrazzld/task-manager-api/internal/domain"

// Summary holds the counts shown at the top of a report.
type Summary struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// Summarize counts completed and pending tasks.
func Summarize(tasks []domain.Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}
