package upload

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/mvckit/pkg/logger"
	"github.com/dmitrymomot/mvckit/pkg/request"
	"github.com/dmitrymomot/mvckit/pkg/validator"
)

// Materializer turns multipart requests into request parameters and file attributes.
// It is safe for concurrent use; all per-request state lives in Materialize.
type Materializer struct {
	cfg      Config
	decoder  Decoder
	resolver LimitResolver
	logger   *slog.Logger
	metrics  Metrics
}

// Option configures a Materializer.
type Option func(*Materializer)

// WithDecoder replaces the default mime/multipart decoder.
func WithDecoder(d Decoder) Option {
	return func(m *Materializer) {
		if d != nil {
			m.decoder = d
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(m *Materializer) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithLimitResolver sets the operation-level limit lookup.
func WithLimitResolver(r LimitResolver) Option {
	return func(m *Materializer) {
		m.resolver = r
	}
}

// WithMetrics sets the recorder for decoded parts and failed passes.
// The default records nothing.
func WithMetrics(mt Metrics) Option {
	return func(m *Materializer) {
		if mt != nil {
			m.metrics = mt
		}
	}
}

// New creates a Materializer for cfg.
func New(cfg Config, opts ...Option) *Materializer {
	m := &Materializer{
		cfg:     cfg,
		logger:  logger.Discard(),
		metrics: nopMetrics{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.decoder == nil {
		m.decoder = NewMultipartDecoder(cfg.TempDir(), cfg.MaxMemory)
	}
	m.logger = m.logger.With(logger.Component("upload"))
	return m
}

// Config returns the global settings.
func (m *Materializer) Config() Config {
	return m.cfg
}

// Materialize decodes a multipart request body into req.
//
// Form fields become parameters, published once the whole body decoded.
// Files with a filename become a parameter holding the field name plus an
// attribute holding the *File. A failure stops the pass and is added to msgs;
// it is never returned. Non-multipart requests are left untouched.
//
// Spooled files are released through req.Defer, so the caller runs req.Cleanup
// when the request is done.
func (m *Materializer) Materialize(req *request.Request, msgs *validator.Messages) {
	if req == nil || req.Request == nil || !IsMultipart(req.Request) {
		return
	}
	if msgs == nil {
		msgs = &validator.Messages{}
	}

	ctx := req.Context()
	limits := ResolveLimits(req.Request, m.cfg.Limits(), m.resolver)
	m.logger.InfoContext(ctx, "decoding multipart request",
		slog.String("operation", Operation(req.Request)),
		logger.Group("limits",
			slog.Int64("size", limits.Size),
			slog.Int64("file_size", limits.FileSize),
		),
	)

	p := &pass{
		m:       m,
		req:     req,
		charset: req.CharacterEncoding(),
		counter: IndexCounter{},
		params:  NewParamMultimap(),
		atomic:  m.cfg.AtomicAttachments,
	}
	if err := p.run(limits); err != nil {
		p.rollback()
		m.report(req.Request, msgs, err)
		return
	}
	p.commit()
}

func (m *Materializer) report(r *http.Request, msgs *validator.Messages, err error) {
	msg := FailureMessage(err)
	msgs.Add(msg)
	m.metrics.Failed(failureReason(err))
	m.logger.WarnContext(r.Context(), "multipart request rejected",
		slog.String("key", msg.Key),
		logger.Error(err),
	)
}

// pass holds the state of one decode walk.
type pass struct {
	m       *Materializer
	req     *request.Request
	charset string
	counter IndexCounter
	params  *ParamMultimap
	atomic  bool
	// attached holds files waiting for commit in atomic mode.
	attached []*File
}

func (p *pass) run(limits Limits) error {
	parts, err := p.m.decoder.Decode(p.req.Request, limits)
	if err != nil {
		return err
	}
	for {
		part, err := parts.NextPart()
		// An *UploadError may wrap io.EOF for a truncated body, so match the bare value only.
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := p.handle(part); err != nil {
			_ = part.Discard()
			return err
		}
	}
}

func (p *pass) handle(part *RawPart) error {
	ctx := p.req.Context()
	name := NormalizeName(part.FieldName, p.counter)
	if name != part.FieldName {
		p.m.logger.DebugContext(ctx, "array field renamed",
			logger.Field(part.FieldName),
			slog.String("normalized", name),
		)
	}

	if part.FormField {
		b, err := part.Bytes()
		if err != nil {
			return &UploadError{Err: err}
		}
		res := DecodeText(b, p.charset)
		if res.Fallback {
			p.m.logger.DebugContext(ctx, "charset decoding failed, reading value as UTF-8",
				logger.Field(name),
				slog.String("charset", res.Charset),
				logger.Error(res.Err),
			)
		}
		p.params.Add(name, res.Text)
		p.m.metrics.PartDecoded(KindField, part.Size)
		_ = part.Discard()
		return nil
	}

	if part.Filename == "" {
		p.m.logger.DebugContext(ctx, "file field without a file", logger.Field(name))
		p.m.metrics.PartDecoded(KindEmpty, 0)
		_ = part.Discard()
		return nil
	}

	file := newFile(name, part)
	p.req.Defer(func() { _ = file.Remove() })
	p.m.metrics.PartDecoded(KindFile, file.Size)
	p.m.logger.DebugContext(ctx, "file received",
		logger.Field(name),
		logger.Filename(file.Filename),
		logger.Bytes("size", file.Size),
	)
	if p.atomic {
		p.attached = append(p.attached, file)
		return nil
	}
	attach(p.req, file)
	return nil
}

// commit publishes the collected parameters and, in atomic mode, the held files.
func (p *pass) commit() {
	for _, f := range p.attached {
		attach(p.req, f)
	}
	p.attached = nil
	p.params.Publish(p.req)
}

// rollback drops unpublished state. Files attached outside atomic mode stay.
func (p *pass) rollback() {
	for _, f := range p.attached {
		_ = f.Remove()
	}
	p.attached = nil
}

func attach(req *request.Request, f *File) {
	req.SetParameter(f.FieldName, f.FieldName)
	req.SetAttribute(f.FieldName, f)
}
