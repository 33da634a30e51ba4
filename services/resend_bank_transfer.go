package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"strings"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// BankTransferEmailData holds what the bank transfer instructions mail shows.
type BankTransferEmailData struct {
	CustomerEmail string
	OrderName     string
	Total         models.Money
	Lines         []models.CartLine
	Instructions  string
	HoldExpiresAt string
	PDFContent    []byte
}

// SendBankTransferInstructions mails the payment instructions of a pending
// order with the receipt attached.
func (r *ResendClient) SendBankTransferInstructions(ctx context.Context, data BankTransferEmailData) error {
	var rows strings.Builder
	for _, line := range data.Lines {
		rows.WriteString(fmt.Sprintf(`
      <tr>
        <td style="padding: 8px 0; font-size: 14px; color: #262622;">%s</td>
        <td style="padding: 8px 0; font-size: 14px; text-align: right; color: #262622;">%d</td>
        <td style="padding: 8px 0; font-size: 14px; text-align: right; font-weight: 600; color: #262622;">%s</td>
      </tr>`, html.EscapeString(line.Merchandise.ProductTitle), line.Quantity, formatMoney(line.Cost)))
	}

	instructions := strings.ReplaceAll(html.EscapeString(data.Instructions), "\n", "<br/>")

	body := fmt.Sprintf(`<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Pedido %s</title>
</head>
<body style="margin: 0; padding: 16px; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Roboto', sans-serif; background-color: #fafaf7; line-height: 1.5;">
  <table width="100%%" cellpadding="0" cellspacing="0" border="0" style="max-width: 640px; margin: auto; background: #ffffff; padding: 24px;">
    <tr>
      <td style="border-bottom: 1px solid #e5e5e0; padding-bottom: 16px;">
        <h1 style="margin: 0; font-size: 24px; font-weight: bold; color: #262622;">Recibimos tu pedido %s</h1>
        <p style="margin: 8px 0 0 0; font-size: 14px; color: #79776d;">Reservamos tus productos hasta el %s.</p>
      </td>
    </tr>
    <tr>
      <td style="padding: 16px 0;">
        <table width="100%%" cellpadding="0" cellspacing="0" border="0">
          <tbody>%s
          </tbody>
        </table>
      </td>
    </tr>
    <tr>
      <td style="padding: 8px 0; border-top: 1px solid #e5e5e0; font-size: 16px; font-weight: bold; color: #262622; text-align: right;">Total %s</td>
    </tr>
    <tr>
      <td style="padding: 16px 0;">
        <p style="margin: 0 0 8px 0; font-size: 14px; font-weight: bold; color: #262622;">Datos para la transferencia</p>
        <p style="margin: 0; font-size: 14px; color: #262622;">%s</p>
      </td>
    </tr>
    <tr>
      <td style="padding: 16px 0; border-top: 1px solid #e5e5e0;">
        <p style="font-size: 14px; color: #79776d;">Adjuntamos el comprobante del pedido.</p>
      </td>
    </tr>
  </table>
</body>
</html>
`, data.OrderName, data.OrderName, data.HoldExpiresAt, rows.String(), formatMoney(data.Total), instructions)

	email := resendEmail{
		To:      data.CustomerEmail,
		Subject: fmt.Sprintf("Tu pedido %s en Modeva: datos para la transferencia", data.OrderName),
		HTML:    body,
	}
	if len(data.PDFContent) > 0 {
		email.Attachments = []resendAttachment{{
			Filename: fmt.Sprintf("pedido-%s.pdf", strings.TrimPrefix(data.OrderName, "#")),
			Content:  base64.StdEncoding.EncodeToString(data.PDFContent),
		}}
	}

	if err := r.send(ctx, email); err != nil {
		return err
	}
	r.log.WithField("order", data.OrderName).Info("[resend] bank transfer instructions sent")
	return nil
}
