package statement

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// readers returns the first page text of a document, by file extension.
var readers = map[string]func(path string) (string, error){
	".pdf": firstPDFPage,
	".txt": textFile,
}

func firstPDFPage(path string) (text string, err error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if r.NumPage() < 1 {
		return "", fmt.Errorf("no page in %q", path)
	}
	p := r.Page(1)
	if p.V.IsNull() {
		return "", fmt.Errorf("empty first page in %q", path)
	}
	rows, err := p.GetTextByRow()
	if err != nil {
		return "", fmt.Errorf("reading text of %q: %w", path, err)
	}
	return joinRows(rows), nil
}

// joinRows lays out the text of a page one row per line, top to bottom. Separately
// positioned runs of a row, such as the cells of a table, are separated by a space.
func joinRows(rows pdf.Rows) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, t := range row.Content {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(t.S)
		}
	}
	return b.String()
}

func textFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
