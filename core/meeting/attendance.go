package meeting

import (
	"regexp"
	"strings"

	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/group"
)

var (
	// one roster member per line: "Name (RollNumber): <status>"
	attendanceLineRegex = regexp.MustCompile(`^(.+?) \(([^)]+)\): (.+)$`)

	// absence is flagged by either loan word appearing in the status phrase
	absentMarkers = []string{"absent", "vắng"}

	reasonSeparator = " - "
)

// EncodeAttendance renders attendance records into the single text blob the
// capstone API stores (one string column). One line per member; a reason, if
// any, follows the status after " - ".
func EncodeAttendance(records []AttendanceRecord) string {
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		status := "Present"
		if !rec.Attended {
			status = "Absent"
		}
		if rec.Reason != "" {
			status += reasonSeparator + rec.Reason
		}
		lines = append(lines, rec.Name+" ("+rec.RollNumber+"): "+status)
	}
	return strings.Join(lines, "\n")
}

// ReconcileAttendance aligns submitted records with the group roster before
// they are encoded. Records whose roll number is not on the roster are
// discarded and identity fields are refreshed from the roster, so a stale
// client cannot write members that no longer exist.
func ReconcileAttendance(grp group.Group, records []AttendanceRecord) []AttendanceRecord {
	out := make([]AttendanceRecord, 0, len(records))
	for _, rec := range records {
		s, ok := grp.Member(rec.RollNumber)
		if !ok {
			continue
		}
		rec.StudentID = s.ID
		rec.Name = s.Name
		rec.Role = s.Role
		out = append(out, rec)
	}
	return out
}

// DecodeAttendance parses a stored attendance blob against the current
// roster. The roster, not the text, decides membership: the result always has
// one record per roster member in roster order. Members missing from the text
// default to absent with no reason; text lines whose roll number left the
// roster are discarded. Roll number is the join key — names can collide.
func DecodeAttendance(text string, roster []group.Student) []AttendanceRecord {
	type entry struct {
		attended bool
		reason   string
	}
	byRoll := make(map[string]entry)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := attendanceLineRegex.FindStringSubmatch(line)
		if m == nil {
			continue // malformed line: documented silent default
		}
		status := m[3]
		reason := ""
		if idx := strings.Index(status, reasonSeparator); idx >= 0 {
			reason = strings.TrimSpace(status[idx+len(reasonSeparator):])
			status = status[:idx]
		}
		byRoll[m[2]] = entry{attended: !isAbsentStatus(status), reason: reason}
	}

	records := make([]AttendanceRecord, 0, len(roster))
	for _, s := range roster {
		rec := AttendanceRecord{
			StudentID:  s.ID,
			Name:       s.Name,
			RollNumber: s.RollNumber,
			Role:       s.Role,
		}
		if e, ok := byRoll[s.RollNumber]; ok {
			rec.Attended = e.attended
			rec.Reason = e.reason
		}
		records = append(records, rec)
	}
	return records
}

func isAbsentStatus(status string) bool {
	status = strings.ToLower(status)
	for _, marker := range absentMarkers {
		if strings.Contains(status, marker) {
			return true
		}
	}
	return false
}
