// Package pdf genera los reportes imprimibles de bodega con Maroto v2:
// el reporte de stock bajo y la planilla de conteo físico por ubicación.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Ubicación | En mano | Mín | [Conteo]│
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de filas                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	marotoentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/nexwms/warehouse-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// MarotoReportGenerator genera los reportes de bodega usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateLowStockReport genera el PDF del reporte de stock bajo y devuelve
// sus bytes. Las filas vienen ordenadas por criticidad.
func (g *MarotoReportGenerator) GenerateLowStockReport(_ context.Context, levels []*entity.StockLevel) ([]byte, error) {
	m := maroto.New(reportConfig("Reporte de Stock Bajo"))

	m.AddRows(headerRow("REPORTE DE STOCK BAJO"))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(false))
	for _, lvl := range levels {
		m.AddRows(levelRow(lvl, false))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(levels)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de stock bajo: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateCountSheet genera la planilla de conteo físico para una ubicación:
// las mismas columnas más una columna en blanco para anotar lo contado.
func (g *MarotoReportGenerator) GenerateCountSheet(_ context.Context, locationName string, levels []*entity.StockLevel) ([]byte, error) {
	m := maroto.New(reportConfig("Planilla de Conteo Físico"))

	m.AddRows(headerRow("PLANILLA DE CONTEO · " + locationName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(true))
	for _, lvl := range levels {
		m.AddRows(levelRow(lvl, true))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(levels)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar planilla de conteo: %w", err)
	}
	return doc.GetBytes(), nil
}

func reportConfig(title string) *marotoentity.Config {
	return config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string) core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(countColumn bool) core.Row {
	h := func(size int, label string) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))
	}
	cols := []core.Col{
		h(2, "SKU"),
		h(3, "Producto"),
		h(3, "Ubicación"),
		h(1, "En mano"),
		h(1, "Mínimo"),
	}
	if countColumn {
		cols = append(cols, h(2, "Conteo"))
	} else {
		cols = append(cols, h(2, "Bodega"))
	}
	return row.New(7).Add(cols...)
}

func levelRow(lvl *entity.StockLevel, countColumn bool) core.Row {
	qtyColor := colorGray
	if lvl.IsBelowMin() {
		qtyColor = colorAlert
	}
	cell := func(size int, value string, color *props.Color) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Top: 1, Color: color}))
	}
	cols := []core.Col{
		cell(2, lvl.SKUCode, nil),
		cell(3, lvl.ProductName, nil),
		cell(3, lvl.LocationName, nil),
		cell(1, strconv.FormatInt(lvl.QuantityOnHand, 10), qtyColor),
		cell(1, strconv.FormatInt(lvl.MinStockLevel, 10), colorGray),
	}
	if countColumn {
		cols = append(cols, cell(2, "__________", colorGray))
	} else {
		cols = append(cols, cell(2, lvl.WarehouseName, nil))
	}
	return row.New(6).Add(cols...)
}

func footerRow(total int) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Total de renglones: %d", total), props.Text{
				Size: 8, Top: 2, Color: colorGray,
			}),
		),
	)
}
