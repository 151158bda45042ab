package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/stevedore/internal/ui/output"
	"go.trai.ch/stevedore/internal/ui/style"
)

// PrettyHandler is a slog.Handler that produces human-readable, colored output.
// Lines forwarded from an image build or a builder container start with a
// "[resource] " prefix, which is rendered bold in its own color.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	levelVar := &slog.LevelVar{}
	if opts != nil && opts.Level != nil {
		levelVar.Set(opts.Level.Level())
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: levelVar,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	icon, color := levelStyle(r.Level)

	var b strings.Builder
	if icon != "" {
		b.WriteString(h.out.String(icon).Foreground(color).String())
		b.WriteByte(' ')
	}

	resource, text := splitResource(r.Message)
	if resource != "" {
		tag := h.out.String("[" + resource + "]").Bold().Foreground(termenv.RGBColor(string(style.Blue)))
		b.WriteString(tag.String())
		b.WriteByte(' ')
	}

	for _, attr := range h.attrs {
		text += " " + formatAttr(h.group, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		text += " " + formatAttr(h.group, attr)
		return true
	})

	body := h.out.String(text).Foreground(color)
	if r.Level < slog.LevelInfo {
		body = body.Faint()
	}
	b.WriteString(body.String())
	b.WriteByte('\n')

	_, err := h.out.WriteString(b.String())
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)

	return &PrettyHandler{out: h.out, level: h.level, attrs: newAttrs, group: h.group}
}

// WithGroup returns a new Handler whose attribute keys are qualified by name,
// nested below any group already set.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &PrettyHandler{out: h.out, level: h.level, attrs: h.attrs, group: group}
}

func levelStyle(level slog.Level) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, termenv.RGBColor(string(style.Red))
	case level >= slog.LevelWarn:
		return style.Warning, termenv.RGBColor(string(style.Yellow))
	default:
		return "", termenv.RGBColor(string(style.Slate))
	}
}

// splitResource separates a leading "[name] " prefix from msg.
func splitResource(msg string) (string, string) {
	if !strings.HasPrefix(msg, "[") {
		return "", msg
	}
	end := strings.Index(msg, "] ")
	if end <= 1 || strings.ContainsAny(msg[1:end], " []") {
		return "", msg
	}
	return msg[1:end], msg[end+2:]
}

func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	return key + "=" + attr.Value.String()
}
