package session

// TableRow is one line of the learn table.
type TableRow struct {
	Value     int
	Answer    float64
	Text      string
	Undefined bool
}

// AnswerTable lists the expected answer for every value of r in ascending
// order, for review before a quiz.
func AnswerTable(fn FunctionSpec, r Range) []TableRow {
	rows := make([]TableRow, 0, r.Len())
	for _, v := range r.Values() {
		ans := Expected(fn, v)
		rows = append(rows, TableRow{
			Value:     v,
			Answer:    ans,
			Text:      FormatAnswer(ans),
			Undefined: Undefined(ans),
		})
	}
	return rows
}
