package serviceimpl

import (
	"fmt"

	"github.com/PayRam/go-search/internal/sqlexpr"
	"github.com/PayRam/go-search/models"
)

const defaultDecimalPrecision = 38

// columnExpression renders the column as text so it can be compared with LIKE.
// Dates use style 103 (dd/mm/yyyy) and times style 108 (hh:mi:ss), or 114
// (hh:mi:ss:mmm) when the target asks for fractional seconds. The separator
// literal follows the quoting of mode.
func columnExpression(target models.ColumnTarget, mode models.ValueMode) string {
	col := target.Quoted()
	switch target.Kind {
	case models.KindInteger:
		return fmt.Sprintf("convert(varchar(20), %s)", col)
	case models.KindDecimal:
		precision := target.Precision
		if precision <= 0 {
			precision = defaultDecimalPrecision
		}
		// sign and decimal point
		return fmt.Sprintf("convert(varchar(%d), %s)", precision+2, col)
	case models.KindGUID:
		return fmt.Sprintf("convert(varchar(36), %s)", col)
	case models.KindDate:
		return dateExpression(col)
	case models.KindDateTime, models.KindTime:
		q := sqlexpr.Quote(mode)
		return dateExpression(col) + " + " + q + " " + q + " + " + timeExpression(col, target.Size)
	}
	return col
}

func dateExpression(col string) string {
	return fmt.Sprintf("convert(varchar(10), %s, 103)", col)
}

func timeExpression(col string, size int) string {
	if size > 0 {
		return fmt.Sprintf("convert(varchar(12), %s, 114)", col)
	}
	return fmt.Sprintf("convert(varchar(8), %s, 108)", col)
}
