// Package xlscheck validates model output against the reference
// spreadsheet. It copies the workbook aside, optionally rewrites input
// cells, has LibreOffice recalculate every formula by converting the
// file, and reads cached cell values back out of the result.
package xlscheck

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/tealeg/xlsx"
	"gopkg.in/errgo.v1"
)

// DefaultSheet is the sheet assumed when a modification key carries no
// "Sheet!" prefix.
const DefaultSheet = "Model"

// DefaultTimeout bounds one LibreOffice conversion. Recalculating the
// reference workbook takes a few seconds; anything near this long has
// wedged.
const DefaultTimeout = 2 * time.Minute

// Modifications maps "SheetName!CellRef" (or a bare cell reference on
// the default sheet) to the value written there before recalculation.
type Modifications map[string]float64

// Recalculate copies the workbook at src into workDir, applies mods and
// converts it with LibreOffice, which recalculates every formula and
// caches the results. It returns the recalculated workbook.
//
// The conversion reads from workDir/input and writes to workDir/output.
// The directories must differ: when LibreOffice converts a file onto
// itself it reports success but silently fails to save, leaving formula
// cells without cached values.
func Recalculate(ctx context.Context, src, workDir string, mods Modifications) (*Workbook, error) {
	inputDir := filepath.Join(workDir, "input")
	outputDir := filepath.Join(workDir, "output")
	for _, dir := range []string{inputDir, outputDir} {
		if err := os.MkdirAll(dir, 0o777); err != nil {
			return nil, errgo.Mask(err)
		}
	}

	dest := filepath.Join(inputDir, filepath.Base(src))
	if err := copyFile(src, dest); err != nil {
		return nil, errgo.Notef(err, "cannot copy workbook")
	}
	if len(mods) > 0 {
		if err := applyModifications(dest, mods); err != nil {
			return nil, errgo.Notef(err, "cannot apply modifications to %q", dest)
		}
	}

	cmd := exec.CommandContext(ctx, "libreoffice",
		"--headless",
		"--calc",
		"--convert-to", "xlsx",
		"--outdir", outputDir,
		dest,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errgo.Notef(err, "libreoffice recalculation failed; stdout: %s; stderr: %s", stdout.String(), stderr.String())
	}

	out := filepath.Join(outputDir, filepath.Base(src))
	if _, err := os.Stat(out); err != nil {
		return nil, errgo.Newf("recalculated workbook not found at %q; libreoffice stdout: %s; stderr: %s", out, stdout.String(), stderr.String())
	}
	return Open(out)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return errgo.Mask(err)
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return errgo.Mask(err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return errgo.Mask(err)
	}
	return out.Close()
}

func applyModifications(path string, mods Modifications) error {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return errgo.Mask(err)
	}
	for key, value := range mods {
		sheetName, ref := splitRef(key)
		sheet, ok := f.Sheet[sheetName]
		if !ok {
			return errgo.Newf("no sheet %q in workbook", sheetName)
		}
		x, y, err := xlsx.GetCoordsFromCellIDString(ref)
		if err != nil {
			return errgo.Notef(err, "bad cell reference %q", key)
		}
		sheet.Cell(y, x).SetFloat(value)
	}
	return f.Save(path)
}

func splitRef(key string) (sheet, ref string) {
	if i := strings.Index(key, "!"); i >= 0 {
		return key[:i], key[i+1:]
	}
	return DefaultSheet, key
}

// Workbook reads cached cell values out of a recalculated workbook.
type Workbook struct {
	Path string
	file *xlsx.File
}

// Open opens the workbook at path for reading.
func Open(path string) (*Workbook, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, errgo.Notef(err, "cannot open workbook %q", path)
	}
	return &Workbook{Path: path, file: f}, nil
}

// Cell returns the cached numeric value of the cell at ref (e.g. "E40")
// on the named sheet.
func (wb *Workbook) Cell(sheetName, ref string) (float64, error) {
	sheet, ok := wb.file.Sheet[sheetName]
	if !ok {
		return 0, errgo.Newf("no sheet %q in %q", sheetName, wb.Path)
	}
	x, y, err := xlsx.GetCoordsFromCellIDString(ref)
	if err != nil {
		return 0, errgo.Notef(err, "bad cell reference %q", ref)
	}
	v, err := sheet.Cell(y, x).Float()
	if err != nil {
		return 0, errgo.Notef(err, "cell %s!%s is not numeric", sheetName, ref)
	}
	return v, nil
}

// Row returns the cached numeric values of n consecutive cells starting
// at ref and moving right, one value per model scenario column.
func (wb *Workbook) Row(sheetName, ref string, n int) ([]float64, error) {
	sheet, ok := wb.file.Sheet[sheetName]
	if !ok {
		return nil, errgo.Newf("no sheet %q in %q", sheetName, wb.Path)
	}
	x, y, err := xlsx.GetCoordsFromCellIDString(ref)
	if err != nil {
		return nil, errgo.Notef(err, "bad cell reference %q", ref)
	}
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := sheet.Cell(y, x+i).Float()
		if err != nil {
			return nil, errgo.Notef(err, "cell %s!%s is not numeric", sheetName, xlsx.GetCellIDStringFromCoords(x+i, y))
		}
		vals[i] = v
	}
	return vals, nil
}
