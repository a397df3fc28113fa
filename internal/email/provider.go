package email

// Provider sends transactional mail. Every caller treats sending as
// best-effort; a provider error never fails the request that triggered it.
type Provider interface {
	Send(email *Email) error
	SendWelcome(to, username string) error
	Validate() error
}

// Email is one outgoing message.
type Email struct {
	From    string
	To      []string
	Subject string
	Body    string
}
