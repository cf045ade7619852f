package mailsmodels

import (
	"fmt"

	"logictraders-backend/utils"
)

func Welcome(email string, username string) {
	subject := "Subject: Welcome to LogicTraders \r\n"
	mime := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"
	body := fmt.Sprintf(`
	<div style="background-color: #0B1F3A; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%;  min-height: 300px;">
			<tbody>
				<tr>
					<td><h1 style="text-align:center">Welcome to LogicTraders</h1></td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">Hi %s, your account has been created. Browse our courses, signal plans and trading bots to get started.</td>
				</tr>
			</tbody>
		</table>
	</div>
`, username)

	message := []byte(subject + mime + body)

	utils.SendMail(email, message)
}
