// Package pdf genera el reporte de reabastecimiento: los artículos activos
// cuyo stock actual cayó por debajo del mínimo, listos para imprimir y pasar
// al encargado de compras.
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ferreteria/inventario-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 140, Green: 60, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// LowStockReportGenerator genera el PDF del reporte con Maroto v2.
type LowStockReportGenerator struct{}

// NewLowStockReportGenerator construye el generador.
func NewLowStockReportGenerator() *LowStockReportGenerator {
	return &LowStockReportGenerator{}
}

// Generate produce el PDF y devuelve sus bytes. generatedAt se imprime en el
// encabezado para que el reporte sea auditable.
func (g *LowStockReportGenerator) Generate(articles []*entity.Article, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de stock bajo", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt, len(articles)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, a := range articles {
		m.AddRows(articleRow(a))
	}
	if len(articles) == 0 {
		m.AddRows(row.New(8).Add(
			text.NewCol(12, "Sin artículos por debajo del stock mínimo.",
				props.Text{Size: 9, Style: fontstyle.Italic, Color: colorGray}),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar PDF de stock bajo: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(generatedAt time.Time, count int) core.Row {
	return row.New(12).Add(
		text.NewCol(8, "Ferretería — Reporte de reabastecimiento", props.Text{
			Size: 13, Style: fontstyle.Bold, Color: colorPrimary,
		}),
		text.NewCol(4, fmt.Sprintf("%s\n%d artículo(s)", generatedAt.Format("2006-01-02 15:04"), count), props.Text{
			Size: 8, Align: align.Right, Color: colorGray,
		}),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Size: 9, Style: fontstyle.Bold}
	return row.New(7).Add(
		text.NewCol(2, "Código", header),
		text.NewCol(4, "Nombre", header),
		text.NewCol(2, "Stock actual", headerAligned(header)),
		text.NewCol(2, "Stock mínimo", headerAligned(header)),
		text.NewCol(2, "Proveedor", header),
	)
}

func headerAligned(p props.Text) props.Text {
	p.Align = align.Right
	return p
}

func articleRow(a *entity.Article) core.Row {
	cell := props.Text{Size: 8}
	num := props.Text{Size: 8, Align: align.Right}
	return row.New(6).Add(
		text.NewCol(2, a.Code, cell),
		text.NewCol(4, a.Name, cell),
		text.NewCol(2, fmt.Sprintf("%d", a.CurrentStock), num),
		text.NewCol(2, fmt.Sprintf("%d", a.MinimumStock), num),
		text.NewCol(2, a.Supplier, cell),
	)
}
