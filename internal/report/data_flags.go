package report

import (
	"flag"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/wildstyl3r/dfrxsec/internal/config"
	"github.com/wildstyl3r/dfrxsec/internal/constants"
)

type DataItem struct {
	saveFlag   *bool
	fileSuffix string
}

type SequentialDataItem struct {
	DataItem
	columnNames []string
	values      func(*DataExtractor) (args []float64, values [][]float64, labels []string, err error)
	xUnit       []config.UnitElement
	yUnit       []config.UnitElement
}

type DataFlags struct {
	all         *bool
	sequentials map[string]SequentialDataItem
	outputPath  string
}

const slicePoints = 100

func NewDataFlags(fs *flag.FlagSet) DataFlags {
	return DataFlags{
		all: fs.Bool("all", false, "save every available table"),
		sequentials: map[string]SequentialDataItem{
			"Total cross section": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("tot", true, "save total cross section"),
					fileSuffix: "xsec",
				},
				columnNames: []string{"E", "sigma"},
				values: func(de *DataExtractor) (args []float64, values [][]float64, labels []string, err error) {
					for i, E := range de.run.Energies {
						args = append(args, E)
						values = append(values, []float64{de.totals[i]})
					}
					return args, values, []string{de.run.Algorithm}, nil
				},
				xUnit: []config.UnitElement{{Class: config.Energy, Power: 1}},
				yUnit: []config.UnitElement{{Class: config.Area, Power: 1}},
			},
			"Differential cross section in y": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("dy", false, "save d2sigma/dxdy along y at x = SliceX"),
					fileSuffix: "d2xsec_dxdy",
				},
				columnNames: []string{"y", "d2sigma/dxdy"},
				values: func(de *DataExtractor) (args []float64, values [][]float64, labels []string, err error) {
					args = floats.Span(make([]float64, slicePoints), constants.ASmallNum, 1.-constants.ASmallNum)
					values = make([][]float64, len(args))
					for _, E := range de.run.Energies {
						labels = append(labels, fmt.Sprintf("E=%g", E))
						column, err := de.sliceY(E, args)
						if err != nil {
							return nil, nil, nil, err
						}
						for i := range column {
							values[i] = append(values[i], column[i])
						}
					}
					return args, values, labels, nil
				},
				xUnit: []config.UnitElement{},
				yUnit: []config.UnitElement{{Class: config.Area, Power: 1}},
			},
			"Pion-nucleon cross section": {
				DataItem: DataItem{
					saveFlag:   fs.Bool("pin", false, "save total pion-nucleon cross section"),
					fileSuffix: "piN",
				},
				columnNames: []string{"E_pi", "sigma_piN"},
				values: func(de *DataExtractor) (args []float64, values [][]float64, labels []string, err error) {
					maxE := 0.
					for _, E := range de.run.Energies {
						maxE = max(maxE, E)
					}
					if maxE <= constants.PionMass {
						return nil, nil, nil, nil
					}
					for _, E := range floats.LogSpan(make([]float64, slicePoints), constants.PionMass*(1+constants.ASmallNum), maxE) {
						sigma, err := de.table.TotalXSec(E)
						if err != nil {
							continue
						}
						args = append(args, E)
						values = append(values, []float64{sigma})
					}
					return args, values, []string{de.run.PionTable}, nil
				},
				xUnit: []config.UnitElement{{Class: config.Energy, Power: 1}},
				yUnit: []config.UnitElement{{Class: config.Area, Power: 1}},
			},
		},
	}
}

func (df *DataFlags) SetOutputPath(path string) {
	df.outputPath = path
}
