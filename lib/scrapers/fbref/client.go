package fbref

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"fbref-transfers/lib/restyutil"
	"fbref-transfers/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBaseUrl   = "https://fbref.com"
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	DefaultTimeout   = 30 * time.Second
)

// ErrNotFound means the page definitively does not exist.
var ErrNotFound = errors.New("page not found")

// TransientError is a failure that may succeed on a later attempt: a
// network error, an unexpected status or an unparsable body.
type TransientError struct {
	URL    string
	Status int
	Err    error
}

func (e *TransientError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func IsTransient(err error) bool {
	var target *TransientError
	return errors.As(err, &target)
}

type ClientOptions struct {
	BaseUrl   string
	UserAgent string
	// minimum interval between two requests
	Delay   time.Duration
	Timeout time.Duration
	// when set, every request/response pair is written to this directory
	DumpDir          string
	CloudflareBypass bool
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
	pacer   *Pacer
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	client.SetHeader("user-agent", opts.UserAgent)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(opts.Timeout)

	telemetry.InstrumentResty(client, "fbref.lib.scrapers.fbref/http")
	if opts.DumpDir != "" {
		out, err := restyutil.NewFilesystemOutput(opts.DumpDir)
		if err != nil {
			return nil, err
		}
		restyutil.InstrumentClient(client, out)
	}

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
		pacer:   NewPacer(opts.Delay),
	}, nil
}

// Resolve makes `ref` absolute against the client's base url.
func (c *Client) Resolve(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return c.BaseUrl.ResolveReference(u).String()
}

func recordOutcome(ctx context.Context, outcome string) {
	fetchCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// Fetch waits for the pacer then requests and parses a page. It returns
// ErrNotFound on a 404, a *TransientError on any other failure, or the
// context's error when ctx is done.
func (c *Client) Fetch(ctx context.Context, target string) (*goquery.Document, error) {
	target = c.Resolve(target)

	ctx, span := tracer.Start(ctx, "Fetch", trace.WithAttributes(
		attribute.String("url", target),
	))
	defer span.End()

	err := c.pacer.Wait(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	res, err := c.Http.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		recordOutcome(ctx, "transient")
		return nil, &TransientError{URL: target, Err: err}
	}

	switch {
	case res.StatusCode() == http.StatusNotFound:
		span.AddEvent("not found")
		recordOutcome(ctx, "not_found")
		return nil, fmt.Errorf("%w: %s", ErrNotFound, target)
	case res.StatusCode() < 200 || res.StatusCode() >= 300:
		span.SetStatus(codes.Error, "unexpected status")
		recordOutcome(ctx, "transient")
		slog.WarnContext(ctx, "unexpected status", "url", target, "status", res.StatusCode())
		return nil, &TransientError{
			URL:    target,
			Status: res.StatusCode(),
			Err:    fmt.Errorf("unexpected status %s", res.Status()),
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		recordOutcome(ctx, "transient")
		return nil, &TransientError{URL: target, Status: res.StatusCode(), Err: err}
	}
	recordOutcome(ctx, "ok")
	return doc, nil
}
