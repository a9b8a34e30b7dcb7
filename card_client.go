package dwaplatform

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dwaplatform/client-go/internal/api"
	"github.com/dwaplatform/client-go/internal/metrics"
	"github.com/dwaplatform/client-go/internal/redact"
	"github.com/dwaplatform/client-go/internal/validate"
)

const tracerName = "github.com/dwaplatform/client-go"

// Card is the card returned by the service on a successful registration.
// Raw holds the response body verbatim.
type Card = api.Card

// Account identifies the account a card is registered on. The three ids
// are templated into the registration path.
type Account struct {
	ClientID  string
	UserID    string
	AccountID string
}

// RegistrationRequest carries the card fields of one registration.
// Its String method redacts the card data.
type RegistrationRequest struct {
	Token      string
	CardNumber string
	// Expiration is MMYY.
	Expiration string
	CVV        string
}

// String implements fmt.Stringer without exposing card data.
func (r RegistrationRequest) String() string {
	return fmt.Sprintf("RegistrationRequest{CardNumber: %s}", redact.MaskPAN(r.CardNumber))
}

// GoString implements fmt.GoStringer so %#v is redacted too.
func (r RegistrationRequest) GoString() string {
	return r.String()
}

// Completion receives the outcome of a registration. Exactly one of card
// and err is non-nil.
type Completion func(card *Card, err error)

// Outcome is the channel form of a Completion call.
type Outcome struct {
	Card *Card
	Err  error
}

// CardClient registers cards against the tokenization service. It is bound
// to one Configuration, immutable, and safe for concurrent use.
type CardClient struct {
	config    Configuration
	transport Transport
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

// NewCardClient creates a client bound to cfg. Most hosts obtain the client
// from a Registry instead; NewCardClient suits callers that inject it.
func NewCardClient(cfg Configuration, opts ...Option) (*CardClient, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return newCardClient(cfg, newClientConfig(opts))
}

func newCardClient(cfg Configuration, cc *clientConfig) (*CardClient, error) {
	m, err := metrics.New(cc.registerer)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	tp := cc.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &CardClient{
		config:    cfg,
		transport: cc.buildTransport(),
		logger:    cc.logger.With(slog.String("component", "card_client")),
		metrics:   m,
		tracer:    tp.Tracer(tracerName),
	}, nil
}

// Configuration returns the configuration the client is bound to.
func (c *CardClient) Configuration() Configuration {
	return c.config
}

// RegisterCard registers a card on acct.
//
// Input is validated first; on failure onComplete is called with a
// *ValidationError before RegisterCard returns and nothing is sent.
// Otherwise one request is submitted and RegisterCard returns immediately;
// onComplete is later called exactly once, on the transport's goroutine,
// with either the registered card or a *NetworkError / *APIReplyError.
// There are no retries.
func (c *CardClient) RegisterCard(acct Account, req RegistrationRequest, onComplete Completion) {
	c.RegisterCardContext(context.Background(), acct, req, onComplete)
}

// RegisterCardContext is RegisterCard with the registration span started as
// a child of the span in ctx. ctx is used only for tracing; it does not
// cancel the request, which is bounded by the transport timeout.
func (c *CardClient) RegisterCardContext(ctx context.Context, acct Account, req RegistrationRequest, onComplete Completion) {
	if onComplete == nil {
		onComplete = func(*Card, error) {}
	}

	if err := c.validate(acct, req); err != nil {
		c.metrics.Rejected(KindValidation.String())
		c.logger.Debug("card registration rejected", slog.Any("err", err))
		onComplete(nil, err)
		return
	}

	apiReq, err := api.NewRegisterCardRequest(c.config.HostName, c.config.Sandbox,
		api.AccountPath{ClientID: acct.ClientID, UserID: acct.UserID, AccountID: acct.AccountID},
		api.RegisterCardRequest{
			Token:      req.Token,
			CardNumber: req.CardNumber,
			Expiration: req.Expiration,
			CVV:        req.CVV,
		})
	if err != nil {
		onComplete(nil, err) //coverage:ignore
		return               //coverage:ignore
	}

	logger := c.logger.With(slog.String("request_id", apiReq.RequestID))
	_, span := c.tracer.Start(ctx, "dwaplatform.RegisterCard",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("dwaplatform.request_id", apiReq.RequestID),
			attribute.String("dwaplatform.host", c.config.HostName),
			attribute.Bool("dwaplatform.sandbox", c.config.Sandbox),
		))

	logger.Debug("submitting card registration",
		slog.String("path", apiReq.Path),
		slog.Bool("sandbox", c.config.Sandbox),
		slog.String("card", redact.MaskPAN(req.CardNumber)),
		slog.String("card_fingerprint", redact.Fingerprint(req.CardNumber)))

	start := time.Now()
	c.metrics.Submitted()

	var once sync.Once
	c.transport.Submit(apiReq, func(d Delivery) {
		fired := false
		once.Do(func() {
			fired = true
			card, err := api.Classify(d)
			c.finish(logger, span, card, err, time.Since(start))
			onComplete(card, err)
		})
		if !fired {
			logger.Warn("dropping duplicate transport delivery", slog.Int("status", d.StatusCode))
		}
	})
}

// Register is RegisterCard with the outcome delivered on a channel. The
// channel is buffered and receives exactly one Outcome.
func (c *CardClient) Register(acct Account, req RegistrationRequest) <-chan Outcome {
	return c.RegisterContext(context.Background(), acct, req)
}

// RegisterContext is Register with tracing parented on ctx, as in
// RegisterCardContext.
func (c *CardClient) RegisterContext(ctx context.Context, acct Account, req RegistrationRequest) <-chan Outcome {
	ch := make(chan Outcome, 1)
	c.RegisterCardContext(ctx, acct, req, func(card *Card, err error) {
		ch <- Outcome{Card: card, Err: err}
	})
	return ch
}

func (c *CardClient) validate(acct Account, req RegistrationRequest) error {
	if err := validate.RegistrationFields(req.Token, req.CardNumber, req.Expiration, req.CVV); err != nil {
		return err
	}
	return validate.Account(acct.ClientID, acct.UserID, acct.AccountID)
}

func (c *CardClient) finish(logger *slog.Logger, span trace.Span, card *Card, err error, elapsed time.Duration) {
	defer span.End()

	if err == nil {
		c.metrics.Completed("success", elapsed)
		span.SetAttributes(attribute.String("dwaplatform.outcome", "success"))
		span.SetStatus(codes.Ok, "")
		logger.Info("card registered", slog.String("card_id", card.ID), slog.Duration("elapsed", elapsed))
		return
	}

	kind := KindOf(err)
	c.metrics.Completed(kind.String(), elapsed)
	span.SetAttributes(attribute.String("dwaplatform.outcome", kind.String()))
	if replyErr, ok := err.(*APIReplyError); ok {
		span.SetAttributes(attribute.Int("http.response.status_code", replyErr.StatusCode))
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, kind.String())
	logger.Warn("card registration failed",
		slog.String("kind", kind.String()),
		slog.Any("err", err),
		slog.Duration("elapsed", elapsed))
}
