// internal/app/system/csvutil/roster.go
package csvutil

import (
	"encoding/csv"
	"html/template"
	"io"
	"strings"
)

// RosterRow is the normalized row produced by PreScanRosterCSV.
type RosterRow struct {
	FullName   string
	Email      string // lower-case
	Role       string // canonical lower-case
	Department string // optional
}

// PreScanRosterCSV reads all rows from r, skips a header if present,
// validates each row, and either returns normalized rows OR a formatted
// HTML error message (template.HTML) describing the first few bad lines.
// It never writes to a DB; it's safe to call before any mutations.
//
// Expected columns: Full Name, Email, Role, Department (optional).
func PreScanRosterCSV(r io.Reader) (rows []RosterRow, htmlErr template.HTML, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Pull first row to check header
	first, ferr := reader.Read()
	if ferr == io.EOF {
		first = nil
	} else if ferr != nil {
		return nil, template.HTML(template.HTMLEscapeString(ferr.Error())), nil
	}
	var raw [][]string
	if len(first) >= 2 &&
		(strings.EqualFold(strings.TrimSpace(first[0]), "full name") ||
			strings.EqualFold(strings.TrimSpace(first[0]), "name")) &&
		strings.EqualFold(strings.TrimSpace(first[1]), "email") {
		// header detected → skip
	} else if first != nil {
		raw = append(raw, first)
	}
	for {
		rec, e := reader.Read()
		if e == io.EOF {
			break
		}
		if e != nil || len(rec) == 0 {
			continue
		}
		raw = append(raw, rec)
	}

	type rowErr struct{ Email, Name, Role, Reason string }
	var errs []rowErr
	allowed := map[string]bool{
		"manager": true, "teacher": true, "student": true,
	}
	normalize := func(rec []string) RosterRow {
		var n, e, role, dept string
		if len(rec) > 0 {
			n = strings.TrimSpace(rec[0])
		}
		if len(rec) > 1 {
			e = strings.ToLower(strings.TrimSpace(rec[1]))
		}
		if len(rec) > 2 {
			role = strings.TrimSpace(rec[2])
		}
		if len(rec) > 3 {
			dept = strings.TrimSpace(rec[3])
		}
		return RosterRow{FullName: n, Email: e, Role: role, Department: dept}
	}

	for _, rec := range raw {
		row := normalize(rec)
		if row.FullName == "" && row.Email == "" && row.Role == "" {
			continue
		}
		if row.FullName == "" {
			errs = append(errs, rowErr{
				Email: row.Email, Name: row.FullName, Role: row.Role, Reason: "missing full name",
			})
		}
		if row.Email == "" {
			errs = append(errs, rowErr{
				Email: row.Email, Name: row.FullName, Role: row.Role, Reason: "missing email",
			})
		}
		role := strings.ToLower(row.Role)
		if role == "" || !allowed[role] {
			errs = append(errs, rowErr{
				Email: row.Email, Name: row.FullName, Role: row.Role, Reason: "invalid or missing role",
			})
		} else {
			row.Role = role
		}
		rows = append(rows, row)
	}

	if len(errs) > 0 {
		var b strings.Builder
		b.WriteString("Upload rejected: one or more rows are invalid.<br>")
		b.WriteString("Each row must have a Full Name, an Email, and a valid Role.<br>")
		b.WriteString("Allowed roles (case-insensitive): manager, teacher, student.<br>")

		max := 5
		if len(errs) < max {
			max = len(errs)
		}
		if max > 0 {
			b.WriteString("Examples:<br>")
			for i := 0; i < max; i++ {
				e := errs[i]
				email := strings.TrimSpace(e.Email)
				if email == "" {
					email = "(no email on row)"
				}
				role := strings.TrimSpace(e.Role)
				if role == "" {
					role = "(missing)"
				}
				name := strings.TrimSpace(e.Name)
				if name == "" {
					name = "(missing)"
				}
				b.WriteString("• ")
				b.WriteString(template.HTMLEscapeString(email))
				b.WriteString(" | ")
				b.WriteString(template.HTMLEscapeString(name))
				b.WriteString(" | ")
				b.WriteString(template.HTMLEscapeString(role))
				b.WriteString(" → ")
				b.WriteString(template.HTMLEscapeString(e.Reason))
				b.WriteString("<br>")
			}
		}
		return nil, template.HTML(b.String()), nil
	}

	return rows, "", nil
}
