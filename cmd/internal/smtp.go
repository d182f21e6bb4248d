package internal

import (
	"github.com/wneessen/go-mail"

	"github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/config"
)

// NewMailClient instantiates the SMTP client, STARTTLS is used when the relay offers it.
func NewMailClient(conf config.SMTP) (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(conf.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}

	if conf.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(conf.Username),
			mail.WithPassword(conf.Password),
		)
	}

	client, err := mail.NewClient(conf.Host, opts...)
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "mail.NewClient")
	}

	return client, nil
}
