package presentation

import "github.com/spacesedan/sentiscope/internal/models"

type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Sample is the first n rows of the source column next to the result
// columns. n <= 0 returns every row.
func Sample(column string, texts []string, res models.AnalysisResult, n int) Table {
	rows := res.Len()
	if n > 0 && n < rows {
		rows = n
	}

	t := Table{
		Columns: append([]string{column}, res.OutputColumns()...),
		Rows:    make([][]string, rows),
	}
	for i := 0; i < rows; i++ {
		text := ""
		if i < len(texts) {
			text = texts[i]
		}
		t.Rows[i] = append([]string{text}, res.Row(i)...)
	}
	return t
}

// Summary is the group level table of results that have one.
func Summary(res models.AnalysisResult) (Table, bool) {
	s, ok := res.(models.Summarizer)
	if !ok {
		return Table{}, false
	}
	return Table{Columns: s.SummaryColumns(), Rows: s.SummaryRows()}, true
}
