package mailsmodels

import (
	"fmt"

	"logictraders-backend/utils"
)

func PurchaseConfirmation(email string, productName string, amount float64, currency string) {
	subject := "Subject: Your LogicTraders purchase \r\n"
	mime := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"
	body := fmt.Sprintf(`
	<div style="background-color: #0B1F3A; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%;  min-height: 300px;">
			<tbody>
				<tr>
					<td><h1 style="text-align:center">Thank you for your purchase</h1></td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">Your payment of %.2f %s for <strong>%s</strong> has been confirmed. You now have access from your dashboard.</td>
				</tr>
			</tbody>
		</table>
	</div>
`, amount, currency, productName)

	message := []byte(subject + mime + body)

	utils.SendMail(email, message)
}
