package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/twilio/twilio-go"
	"github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// Notifier delivers short operational messages to the shop owner.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// LogNotifier writes messages to the log. It is used when no SMS
// credentials are configured.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, message string) error {
	n.log.Info("notification", zap.String("message", message))
	return nil
}

type messageSender interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioNotifier sends messages as SMS, or WhatsApp when the recipient is
// written as "whatsapp:+<number>".
type TwilioNotifier struct {
	sender     messageSender
	from       string
	to         string
	log        *zap.Logger
	initial    time.Duration
	maxElapsed time.Duration
}

func NewTwilioNotifier(accountSID, authToken, from, to string, log *zap.Logger) *TwilioNotifier {
	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return newTwilioNotifier(rest.Api, from, to, log)
}

func newTwilioNotifier(sender messageSender, from, to string, log *zap.Logger) *TwilioNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &TwilioNotifier{
		sender:     sender,
		from:       from,
		to:         to,
		log:        log,
		initial:    500 * time.Millisecond,
		maxElapsed: 30 * time.Second,
	}
}

func (n *TwilioNotifier) Notify(ctx context.Context, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetBody(message)
	if strings.HasPrefix(n.to, "whatsapp:") && !strings.HasPrefix(n.from, "whatsapp:") {
		params.SetFrom("whatsapp:" + n.from)
	} else {
		params.SetFrom(n.from)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = n.initial
	b.MaxElapsedTime = n.maxElapsed

	send := func() error {
		resp, err := n.sender.CreateMessage(params)
		if err != nil {
			// Client errors will not succeed on retry.
			var restErr *client.TwilioRestError
			if errors.As(err, &restErr) && restErr.Status >= http.StatusBadRequest && restErr.Status < http.StatusInternalServerError {
				return backoff.Permanent(err)
			}
			return err
		}
		if resp != nil && resp.Sid != nil {
			n.log.Info("message sent", zap.String("to", n.to), zap.String("sid", *resp.Sid))
		} else {
			n.log.Info("message sent, but no SID returned", zap.String("to", n.to))
		}
		return nil
	}

	return backoff.RetryNotify(send, backoff.WithContext(b, ctx), func(err error, wait time.Duration) {
		n.log.Warn("failed to send message, retrying",
			zap.String("to", n.to),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	})
}
