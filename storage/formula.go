package storage

import "fmt"

// Spreadsheet formula builders. Derived columns reference sibling cells by
// row-relative position so the same formula string works on every row.

func formula(expr string) string { return "=" + expr }

// cellRef builds a row-relative reference to a column of the current row.
func cellRef(column string) string {
	return fmt.Sprintf(`INDIRECT(CONCAT("%s",ROW()))`, column)
}

func fnIf(cond, whenTrue, whenFalse string) string {
	return fmt.Sprintf("IF(%s,%s,%s)", cond, whenTrue, whenFalse)
}

func fnIsBlank(value string) string { return fmt.Sprintf("ISBLANK(%s)", value) }

func fnIsNumber(value string) string { return fmt.Sprintf("ISNUMBER(%s)", value) }

func fnAnd(a, b string) string { return fmt.Sprintf("AND(%s,%s)", a, b) }

func fnDateDif(start, end, unit string) string {
	return fmt.Sprintf("DATEDIF(%s,%s,%q)", start, end, unit)
}

func fnToday() string { return "TODAY()" }
