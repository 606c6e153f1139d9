package mail

import "context"

// Mailer is the outbound-mail boundary. The account service depends only on
// this interface, so auth logic is testable without a real transport.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
