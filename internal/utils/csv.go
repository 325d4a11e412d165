package utils

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/facette/natsort"
)

// CSV rows ordered naturally by their first column.
type CSV [][]string

func (data CSV) Less(i, j int) bool {
	return natsort.Compare(data[i][0], data[j][0])
}

func (data CSV) Len() int {
	return len(data)
}
func (data CSV) Swap(i, j int) {
	data[i], data[j] = data[j], data[i]
}

// WriteCSV writes the header rows as given followed by data in natural order.
func WriteCSV(w io.Writer, header [][]string, data CSV) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(header); err != nil {
		return err
	}
	sort.Stable(data)
	if err := cw.WriteAll(data); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func NaturalSort(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return natsort.Compare(names[i], names[j])
	})
}
