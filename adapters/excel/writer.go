package excel

import (
	"fmt"

	"gobayes/domain/regress"
	"gobayes/internal/errors"

	"github.com/xuri/excelize/v2"
)

const (
	sheetFrequentist = "Frequentist"
	sheetPosterior   = "Posterior"
	sheetComparison  = "Comparison"
)

// Writer exports a completed analysis report to an Excel workbook with one
// sheet per result section.
type Writer struct {
	filePath string
}

// NewWriter creates an Excel report writer targeting the given path
func NewWriter(filePath string) *Writer {
	return &Writer{filePath: filePath}
}

// Write saves the report to disk, overwriting any existing file
func (w *Writer) Write(r *regress.Report) error {
	if r == nil {
		return errors.InvalidInput("cannot export a nil report")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeFrequentist(f, r.Frequentist); err != nil {
		return errors.Wrap(err, "failed to write frequentist sheet")
	}
	if err := w.writePosterior(f, r.Posterior); err != nil {
		return errors.Wrap(err, "failed to write posterior sheet")
	}
	if err := w.writeComparison(f, r.Comparison); err != nil {
		return errors.Wrap(err, "failed to write comparison sheet")
	}

	// Drop the default sheet so the workbook opens on results.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.Wrap(err, "failed to remove default sheet")
	}

	if err := f.SaveAs(w.filePath); err != nil {
		return errors.Wrapf(err, "failed to save workbook to %s", w.filePath)
	}
	return nil
}

func (w *Writer) writeFrequentist(f *excelize.File, fit *regress.FrequentistFit) error {
	if fit == nil {
		return nil
	}
	if _, err := f.NewSheet(sheetFrequentist); err != nil {
		return err
	}
	headers := []interface{}{"Coefficient", "Estimate", "Std. Error", "t", "p-value"}
	if err := f.SetSheetRow(sheetFrequentist, "A1", &headers); err != nil {
		return err
	}
	for i, c := range fit.Coefficients {
		row := []interface{}{c.Key.String(), c.Estimate, c.StdErr, c.TStat, c.PValue}
		if err := f.SetSheetRow(sheetFrequentist, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	footerRow := len(fit.Coefficients) + 3
	footer := []interface{}{"Adjusted R²", fit.AdjustedR2, "Residual SD", fit.ResidualSD, "n", fit.SampleSize}
	return f.SetSheetRow(sheetFrequentist, fmt.Sprintf("A%d", footerRow), &footer)
}

func (w *Writer) writePosterior(f *excelize.File, p *regress.PosteriorSummary) error {
	if p == nil {
		return nil
	}
	if _, err := f.NewSheet(sheetPosterior); err != nil {
		return err
	}
	headers := []interface{}{"Coefficient", "Median", "HDI Low", "HDI High", "pd", "ROPE Overlap", "R-hat", "ESS"}
	if err := f.SetSheetRow(sheetPosterior, "A1", &headers); err != nil {
		return err
	}
	for i, c := range p.Coefficients {
		row := []interface{}{c.Key.String(), c.Median, c.CILow, c.CIHigh, c.PD, c.ROPEOverlap, c.RHat, c.ESS}
		if err := f.SetSheetRow(sheetPosterior, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	footerRow := len(p.Coefficients) + 3
	footer := []interface{}{"Converged", p.Converged, "Credible Mass", p.CredibleMass, "ROPE Half Width", p.ROPEHalfWidth}
	return f.SetSheetRow(sheetPosterior, fmt.Sprintf("A%d", footerRow), &footer)
}

func (w *Writer) writeComparison(f *excelize.File, rows []regress.ComparisonRow) error {
	if len(rows) == 0 {
		return nil
	}
	if _, err := f.NewSheet(sheetComparison); err != nil {
		return err
	}
	headers := []interface{}{"Coefficient", "p-value", "1 - pd"}
	if err := f.SetSheetRow(sheetComparison, "A1", &headers); err != nil {
		return err
	}
	for i, row := range rows {
		values := []interface{}{row.Key.String(), row.PValue, row.PseudoP}
		if err := f.SetSheetRow(sheetComparison, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return err
		}
	}
	return nil
}
