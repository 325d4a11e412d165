package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/wildstyl3r/dfrxsec/internal/config"
	"github.com/wildstyl3r/dfrxsec/internal/integration"
	"github.com/wildstyl3r/dfrxsec/internal/utils"
	"github.com/wildstyl3r/dfrxsec/internal/xsec"
)

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Write renders one table with values converted to units.
func (de *DataExtractor) Write(w io.Writer, item SequentialDataItem, units []string) error {
	xColumnValue, yColumnValues, yLabels, err := item.values(de)
	if err != nil {
		return err
	}
	rows := [][]string{item.columnNames, append([]string{""}, yLabels...)}
	for x := range xColumnValue {
		row := []string{format(config.Natural(xColumnValue[x], item.xUnit, units, false))}
		for i := range yColumnValues[x] {
			row = append(row, format(config.Natural(yColumnValues[x][i], item.yUnit, units, false)))
		}
		rows = append(rows, row)
	}
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// Save writes every selected table of the run under the output path.
func (de *DataExtractor) Save(runName string, df DataFlags, units []string) error {
	for name, output := range df.sequentials {
		if !*output.saveFlag && !*df.all {
			continue
		}
		file, err := utils.OpenFile(de.run.MakeDir, df.outputPath, output.fileSuffix, runName)
		if err != nil {
			return fmt.Errorf("unable to save %s: %w", name, err)
		}
		err = de.Write(file, output, units)
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("unable to save %s: %w", name, err)
		}
	}
	return nil
}

// SummaryRow describes a run in the summary table: model parameters,
// threshold and total cross section at the highest run energy.
func (de *DataExtractor) SummaryRow(runName string, units []string) []string {
	row := []string{runName}
	if dfr, ok := de.alg.(*xsec.ReinDFR); ok {
		p := dfr.Parameters()
		row = append(row, format(p.Ma), format(p.Beta))
	} else {
		row = append(row, "", "")
	}
	energy := []config.UnitElement{{Class: config.Energy, Power: 1}}
	area := []config.UnitElement{{Class: config.Area, Power: 1}}
	row = append(row, format(config.Natural(integration.Threshold(de.run.LeptonMass), energy, units, false)))
	last := -1
	for i, E := range de.run.Energies {
		if last < 0 || E > de.run.Energies[last] {
			last = i
		}
	}
	if last >= 0 {
		row = append(row,
			format(config.Natural(de.run.Energies[last], energy, units, false)),
			format(config.Natural(de.totals[last], area, units, false)))
	}
	return row
}

var SummaryColumns = []string{"run", "Ma", "beta", "threshold", "E_max", "sigma(E_max)"}

func WriteSummary(w io.Writer, rows utils.CSV) error {
	return utils.WriteCSV(w, [][]string{SummaryColumns}, rows)
}
