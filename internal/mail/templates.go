package mail

import "fmt"

func PasswordResetMessage(baseURL, to, token string) Message {
	body := fmt.Sprintf(`To reset your password, visit the following link:
%s/reset-password/%s

If you did not make this request then simply ignore this email and no changes will be made.
`, baseURL, token)
	return Message{
		To:      to,
		Subject: "Password Reset Request",
		Body:    body,
	}
}

// ContactQueryMessage forwards a visitor query to the site admin. The
// visitor's address goes in the subject so the admin can reply.
func ContactQueryMessage(to, name, email, message string) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Contact Us Query from: %s, email: %s", name, email),
		Body:    message,
	}
}

func SubscribeConfirmMessage(baseURL, to, token string) Message {
	body := fmt.Sprintf(`To subscribe to the monthly newsletter, visit the following link:
%s/subscribe/%s

The link will expire after 3 minutes.
If you did not make this request then simply ignore this email and no changes will be made.
`, baseURL, token)
	return Message{
		To:      to,
		Subject: "Subscribe Request",
		Body:    body,
	}
}
