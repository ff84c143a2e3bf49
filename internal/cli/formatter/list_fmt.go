package formatter

import (
	"fmt"
	"io"

	"github.com/alexanderramin/lt/internal/report"
)

var listHeaders = []string{"Date", "Time", "Duration", "Project", "Issue", "Comment"}

// WriteList writes worklog rows as a table followed by footer.
func WriteList(w io.Writer, rows []report.ListRow, footer string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, Dim(footer))
		return err
	}
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{r.Date, r.Time, r.Duration, r.Project, r.Issue, r.Comment}
	}
	if err := RenderTable(w, listHeaders, data); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "\n"+footer)
	return err
}
