package services

import (
	"fmt"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

var (
	receiptDark  = color.Color{Red: 38, Green: 38, Blue: 34}
	receiptMuted = color.Color{Red: 121, Green: 119, Blue: 109}
)

// GenerateReceiptPDF renders the receipt of a pending order: the cart
// snapshot, the total and the payment instructions.
func GenerateReceiptPDF(order *models.PendingOrder, cart *models.Cart, instructions string) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	m.Row(15, func() {
		m.Col(12, func() {
			m.Text("COMPROBANTE DE PEDIDO", props.Text{Size: 20, Style: consts.Bold, Color: receiptDark})
		})
	})
	m.Row(10, func() {
		m.Col(12, func() {
			m.Text("MODEVA STORE", props.Text{Size: 14, Style: consts.Bold, Color: receiptDark})
		})
	})

	m.Row(8, func() {})

	m.Row(5, func() {
		m.Col(6, func() {
			m.Text(order.Email, props.Text{Size: 10, Style: consts.Bold, Color: receiptDark})
		})
		m.Col(6, func() {
			m.Text(fmt.Sprintf("Pedido %s", order.RemoteOrderName), props.Text{Size: 10, Color: receiptDark, Align: consts.Right})
		})
	})
	m.Row(5, func() {
		m.Col(6, func() {
			m.Text(paymentMethodLabel(order.PaymentMethod), props.Text{Size: 9, Color: receiptMuted})
		})
		m.Col(6, func() {
			m.Text(fmt.Sprintf("Fecha: %s", order.CreatedAt.Format("02/01/2006")), props.Text{Size: 9, Color: receiptMuted, Align: consts.Right})
		})
	})
	m.Row(5, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Reserva válida hasta: %s", order.HoldExpiresAt.Format("02/01/2006 15:04")), props.Text{Size: 9, Color: receiptMuted, Align: consts.Right})
		})
	})

	m.Row(8, func() {})

	header := props.Text{Size: 8, Style: consts.Bold, Color: receiptDark, Align: consts.Right}
	m.Row(6, func() {
		m.Col(6, func() {
			m.Text("Producto", props.Text{Size: 8, Style: consts.Bold, Color: receiptDark})
		})
		m.Col(2, func() { m.Text("Cant.", header) })
		m.Col(2, func() { m.Text("Precio", header) })
		m.Col(2, func() { m.Text("Total", header) })
	})

	cell := props.Text{Size: 9, Color: receiptDark, Align: consts.Right}
	if cart != nil {
		for _, line := range cart.Lines {
			title := line.Merchandise.ProductTitle
			if line.Merchandise.Title != "" && line.Merchandise.Title != "Default Title" {
				title += " - " + line.Merchandise.Title
			}
			m.Row(6, func() {
				m.Col(6, func() {
					m.Text(title, props.Text{Size: 9, Color: receiptDark})
				})
				m.Col(2, func() { m.Text(fmt.Sprintf("%d", line.Quantity), cell) })
				m.Col(2, func() { m.Text(formatMoney(line.Merchandise.Price), cell) })
				m.Col(2, func() { m.Text(formatMoney(line.Cost), cell) })
			})
		}
	}

	m.Row(8, func() {})

	m.Row(8, func() {
		m.Col(8, func() {})
		m.Col(2, func() {
			m.Text("Total", props.Text{Size: 12, Style: consts.Bold, Color: receiptDark, Align: consts.Right})
		})
		m.Col(2, func() {
			m.Text(formatMoney(models.Money{Amount: order.Total, CurrencyCode: order.Currency}), props.Text{Size: 12, Style: consts.Bold, Color: receiptDark, Align: consts.Right})
		})
	})

	if instructions != "" {
		m.Row(10, func() {})
		m.Row(6, func() {
			m.Col(12, func() {
				m.Text("Instrucciones de pago", props.Text{Size: 10, Style: consts.Bold, Color: receiptDark})
			})
		})
		m.Row(20, func() {
			m.Col(12, func() {
				m.Text(instructions, props.Text{Size: 9, Color: receiptMuted})
			})
		})
	}

	m.Row(12, func() {})
	m.Row(5, func() {
		m.Col(12, func() {
			m.Text("Gracias por tu compra.", props.Text{Size: 8, Style: consts.Bold, Color: receiptDark})
		})
	})

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func formatMoney(m models.Money) string {
	if m.CurrencyCode == "" {
		return fmt.Sprintf("$%.2f", m.Amount)
	}
	return fmt.Sprintf("%s %.2f", m.CurrencyCode, m.Amount)
}

func paymentMethodLabel(m models.PaymentMethod) string {
	switch m {
	case models.PaymentCash:
		return "Pago en efectivo"
	case models.PaymentBankTransfer:
		return "Transferencia bancaria"
	default:
		return "Tarjeta"
	}
}
