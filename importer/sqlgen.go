package importer

import (
	"fmt"
	"strings"
)

// GenInsertStmt generates a named INSERT statement binding each column to :column.
func GenInsertStmt(table string, columns []string) (string, error) {
	if table == "" || len(columns) == 0 {
		return "", fmt.Errorf("table name and columns are required")
	}

	params := make([]string, len(columns))
	for i, col := range columns {
		params[i] = ":" + col
	}

	stmtSQL := fmt.Sprintf(`
INSERT INTO %s (
	%s
) VALUES (%s)`,
		table,
		strings.Join(columns, ", "),
		strings.Join(params, ", "),
	)
	return strings.TrimSpace(stmtSQL), nil
}
