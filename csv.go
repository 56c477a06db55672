package texemit

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// PointRecord is the flat CSV form of an EmissionPoint.
type PointRecord struct {
	TexX     float64 `csv:"tex_x"`
	TexY     float64 `csv:"tex_y"`
	U        float64 `csv:"u"`
	V        float64 `csv:"v"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	Z        float64 `csv:"z"`
	NX       float64 `csv:"nx"`
	NY       float64 `csv:"ny"`
	NZ       float64 `csv:"nz"`
	R        uint8   `csv:"r"`
	G        uint8   `csv:"g"`
	B        uint8   `csv:"b"`
	A        uint8   `csv:"a"`
	Triangle int     `csv:"triangle"`
}

func NewPointRecord(p EmissionPoint) PointRecord {
	return PointRecord{
		TexX:     p.TexPosition[0],
		TexY:     p.TexPosition[1],
		U:        p.UV[0],
		V:        p.UV[1],
		X:        p.Position[0],
		Y:        p.Position[1],
		Z:        p.Position[2],
		NX:       p.Normal[0],
		NY:       p.Normal[1],
		NZ:       p.Normal[2],
		R:        p.Color.R,
		G:        p.Color.G,
		B:        p.Color.B,
		A:        p.Color.A,
		Triangle: p.Triangle,
	}
}

// WriteCSV writes the points with a header row.
func WriteCSV(w io.Writer, points []EmissionPoint) error {
	records := make([]*PointRecord, len(points))
	for i, p := range points {
		r := NewPointRecord(p)
		records[i] = &r
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("writing points csv: %w", err)
	}
	return nil
}
