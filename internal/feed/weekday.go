package feed

import (
	"strings"
	"time"
)

// ROLÊ polls encode their event day as a Portuguese weekday name somewhere in
// the title. The table is ordered and scanned front to back; the first name
// found wins.
var weekdayNames = [...]struct {
	name string
	day  time.Weekday
}{
	{"DOMINGO", time.Sunday},
	{"SEGUNDA-FEIRA", time.Monday},
	{"TERÇA-FEIRA", time.Tuesday},
	{"QUARTA-FEIRA", time.Wednesday},
	{"QUINTA-FEIRA", time.Thursday},
	{"SEXTA-FEIRA", time.Friday},
	{"SÁBADO", time.Saturday},
}

// ExtractWeekday scans a title for an embedded weekday name,
// case-insensitively. ok is false when no name occurs.
func ExtractWeekday(title string) (day time.Weekday, ok bool) {
	upper := strings.ToUpper(title)
	for _, entry := range weekdayNames {
		if strings.Contains(upper, entry.name) {
			return entry.day, true
		}
	}
	return 0, false
}
