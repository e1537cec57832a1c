package hpreport

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/errgo.v1"
)

// WriteCSV writes the table as CSV: a provenance comment line naming
// the git commit the results came from, the header, then one line per
// row with values printed to cents.
func (t *Table) WriteCSV(w io.Writer, commit string, now time.Time) error {
	if _, err := fmt.Fprintf(w, "# git commit: %s (%s)\n", commit, now.Format("2006-01-02")); err != nil {
		return errgo.Mask(err)
	}
	header := append([]string{"baseline_tech", "hp_tech", "geography"}, t.Columns...)
	if _, err := fmt.Fprintln(w, strings.Join(header, ",")); err != nil {
		return errgo.Mask(err)
	}
	for _, r := range t.Rows {
		fields := []string{r.BaselineTech, r.HPTech, quoteCSV(r.Geography)}
		for _, v := range r.Values {
			fields = append(fields, strconv.FormatFloat(v, 'f', 2, 64))
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, ",")); err != nil {
			return errgo.Mask(err)
		}
	}
	return nil
}

func quoteCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// GitCommit returns the short hash of the checked-out commit in dir, or
// "unknown" when dir is not inside a git repository.
func GitCommit(dir string) string {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}

// Save writes the table to a timestamped CSV file under dir, creating
// dir if needed, and returns the path of the file it wrote.
func (t *Table) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return "", errgo.Mask(err)
	}
	now := time.Now().UTC()
	path := filepath.Join(dir, now.Format("20060102_150405")+"_results.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", errgo.Mask(err)
	}
	defer f.Close()
	if err := t.WriteCSV(f, GitCommit(dir), now); err != nil {
		return "", errgo.Notef(err, "cannot write results to %q", path)
	}
	if err := f.Close(); err != nil {
		return "", errgo.Mask(err)
	}
	return path, nil
}
