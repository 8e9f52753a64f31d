// Package pdf genera el comprobante de canje de puntos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda de puntos      │  Pedido #N + Fecha + Estado │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COLABORADOR: Nombre + Email + Área                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | Pts. Unit | Subtotal               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL CANJEADO                                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  QR (id del pedido) + instrucciones de entrega               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/rewards-store/internal/application/ports"
	"github.com/jhoicas/rewards-store/internal/domain/entity"
)

var _ ports.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var statusLabels = map[string]string{
	entity.OrderStatusPending:   "Pendiente de entrega",
	entity.OrderStatusCompleted: "Entregado",
	entity.OrderStatusCancelled: "Cancelado",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa ports.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	storeName string
}

// NewMarotoReceiptGenerator construye el generador. storeName aparece en el encabezado.
func NewMarotoReceiptGenerator(storeName string) *MarotoReceiptGenerator {
	if storeName == "" {
		storeName = "Tienda de puntos"
	}
	return &MarotoReceiptGenerator{storeName: storeName}
}

// GenerateReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(
	_ context.Context,
	order *entity.Order,
	items []*entity.OrderItem,
	user *entity.User,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Comprobante de canje #%d", order.Number), true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(employeeRow(user))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableItemRows(items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(order))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(pickupRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReceiptGenerator) headerRow(order *entity.Order) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de canje de puntos", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("PEDIDO #%d", order.Number), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+order.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+nonEmpty(statusLabels[order.Status], order.Status), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func employeeRow(user *entity.User) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("COLABORADOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(user.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Área: %s",
				user.Email,
				nonEmpty(user.Department, "—"),
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Pts. unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableItemRows: una fila por línea, con los valores congelados al canjear.
func tableItemRows(items []*entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				strconv.Itoa(it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				it.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatPoints(it.PointsCost),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatPoints(it.Subtotal()),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalRow(order *entity.Order) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL CANJEADO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatPoints(order.TotalPoints)+" pts", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// pickupRow: QR con el id del pedido para validar la entrega.
func pickupRow(order *entity.Order) core.Row {
	return row.New(50).Add(
		col.New(4).Add(code.NewQr(order.ID, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Presenta este código al recoger tu pedido.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Referencia: "+order.ID, props.Text{
				Size: 7, Top: 12, Left: 3, Color: colorGray,
			}),
			text.New("Los puntos canjeados se reembolsan\nsi el pedido es cancelado.", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 22, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatPoints inserta puntos de miles. Ej: 25000 → "25.000".
func formatPoints(n int) string {
	s := strconv.Itoa(n)
	neg := n < 0
	if neg {
		s = s[1:]
	}
	l := len(s)
	if l > 3 {
		buf := make([]byte, 0, l+l/3)
		for i, c := range []byte(s) {
			if i > 0 && (l-i)%3 == 0 {
				buf = append(buf, '.')
			}
			buf = append(buf, c)
		}
		s = string(buf)
	}
	if neg {
		return "-" + s
	}
	return s
}
