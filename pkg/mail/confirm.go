package mail

import (
	"context"
	"fmt"
	"net/url"
)

const confirmSubject = "Confirm your JollofKitchen account"

// SendAccountConfirmation delivers the one-time confirmation link for a new
// account. baseURL is the storefront confirmation page; the token rides in
// the query string.
func SendAccountConfirmation(ctx context.Context, sender Sender, to, firstName, baseURL, token string) error {
	if sender == nil {
		return fmt.Errorf("mail sender is required")
	}
	link, err := confirmLink(baseURL, token)
	if err != nil {
		return err
	}

	plain := fmt.Sprintf(
		"Hi %s,\n\nWelcome to JollofKitchen. Confirm your account by opening the link below:\n\n%s\n\nIf you did not create this account you can ignore this email.\n",
		firstName, link,
	)
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>Welcome to JollofKitchen. Confirm your account by clicking the link below:</p><p><a href="%s">Confirm my account</a></p><p>If you did not create this account you can ignore this email.</p>`,
		firstName, link,
	)

	return sender.Send(ctx, to, confirmSubject, plain, html)
}

func confirmLink(baseURL, token string) (string, error) {
	if baseURL == "" {
		return "", fmt.Errorf("confirmation base url is required")
	}
	if token == "" {
		return "", fmt.Errorf("confirmation token is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing confirmation url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
