package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/srodi/corepin/pkg/types"
)

// procReadFile allows tests to stub reading /proc/PID/comm.
var procReadFile = os.ReadFile

// Row describes one pinned process for status output.
type Row struct {
	PID  types.PID    `json:"pid"`
	Comm string       `json:"comm"`
	Core types.CoreID `json:"core"`
}

// BuildRows resolves process names for the current assignment and orders
// the rows by core id for stable display.
func BuildRows(assignment map[types.PID]types.CoreID) []Row {
	cache := make(map[types.PID]string, len(assignment))
	rows := make([]Row, 0, len(assignment))
	for pid, core := range assignment {
		rows = append(rows, Row{PID: pid, Comm: commForPID(pid, cache), Core: core})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Core < rows[j].Core })
	return rows
}

// Render writes the assignment table plus a pool summary.
func Render(w io.Writer, rows []Row, free []types.CoreID, interval time.Duration) {
	fmt.Fprintf(w, "Updated: %s | Interval: %v\n\n", time.Now().Format(time.RFC3339), interval)

	if len(rows) == 0 {
		fmt.Fprintln(w, "No compiler processes pinned")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "CORE\tPID\tCOMM")
		for _, row := range rows {
			fmt.Fprintf(tw, "%d\t%d\t%s\n", row.Core, row.PID, row.Comm)
		}
		tw.Flush()
	}

	fmt.Fprintf(w, "\nFree cores: %s\n", FormatCores(free))
}

// FormatCores renders a core list like "1 4 7", or "none".
func FormatCores(cores []types.CoreID) string {
	if len(cores) == 0 {
		return "none"
	}
	parts := make([]string, len(cores))
	for i, c := range cores {
		parts[i] = strconv.Itoa(int(c))
	}
	return strings.Join(parts, " ")
}

func commForPID(pid types.PID, cache map[types.PID]string) string {
	if name, ok := cache[pid]; ok {
		return name
	}
	path := filepath.Join("/proc", strconv.Itoa(int(pid)), "comm")
	data, err := procReadFile(path)
	if err != nil {
		name := fmt.Sprintf("pid-%d", pid)
		cache[pid] = name
		return name
	}
	comm := strings.TrimSpace(string(data))
	if comm == "" {
		comm = fmt.Sprintf("pid-%d", pid)
	}
	cache[pid] = comm
	return comm
}
