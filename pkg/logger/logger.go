package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with seating-domain helpers
type Logger struct {
	*slog.Logger
}

// New creates a logger writing to stdout, leveled by LOG_LEVEL
func New() *Logger {
	return NewWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"))
}

// NewWithWriter creates a logger writing to w. Text output in gin debug
// mode, JSON otherwise.
func NewWithWriter(w io.Writer, level string) *Logger {
	lvl := getLogLevel(level)

	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}

	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithUserID adds user ID to logger context
func (l *Logger) WithUserID(userID string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("user_id", userID))}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("error", err.Error()))}
}

// WithFields adds multiple fields to logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{Logger: l.Logger.With(args...)}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Seating logging methods

// LogChartCreated logs when a seating chart is created
func (l *Logger) LogChartCreated(ctx context.Context, chartID, eventID, userID string, totalSeats int) {
	l.Logger.InfoContext(ctx,
		"Seating Chart Created",
		slog.String("chart_id", chartID),
		slog.String("event_id", eventID),
		slog.String("user_id", userID),
		slog.Int("total_seats", totalSeats),
	)
}

// LogChartDeleted logs when a seating chart is removed
func (l *Logger) LogChartDeleted(ctx context.Context, chartID, userID string) {
	l.Logger.InfoContext(ctx,
		"Seating Chart Deleted",
		slog.String("chart_id", chartID),
		slog.String("user_id", userID),
	)
}

// LogHoldPlaced logs a successful session hold
func (l *Logger) LogHoldPlaced(ctx context.Context, chartID, sessionID string, seats int, expiresAt time.Time) {
	l.Logger.InfoContext(ctx,
		"Seats Held",
		slog.String("chart_id", chartID),
		slog.String("session_id", sessionID),
		slog.Int("seats", seats),
		slog.Time("expires_at", expiresAt),
	)
}

// LogHoldsReleased logs an explicit session release
func (l *Logger) LogHoldsReleased(ctx context.Context, chartID, sessionID string, released int) {
	l.Logger.InfoContext(ctx,
		"Session Holds Released",
		slog.String("chart_id", chartID),
		slog.String("session_id", sessionID),
		slog.Int("released", released),
	)
}

// LogHoldsExpired logs a cleanup sweep that released something
func (l *Logger) LogHoldsExpired(ctx context.Context, chartID string, cleaned int) {
	l.Logger.InfoContext(ctx,
		"Expired Holds Cleaned",
		slog.String("chart_id", chartID),
		slog.Int("cleaned", cleaned),
	)
}

// LogSeatsReserved logs ledger reservations for a ticket
func (l *Logger) LogSeatsReserved(ctx context.Context, chartID, ticketID, orderID string, seats int) {
	l.Logger.InfoContext(ctx,
		"Seats Reserved",
		slog.String("chart_id", chartID),
		slog.String("ticket_id", ticketID),
		slog.String("order_id", orderID),
		slog.Int("seats", seats),
	)
}

// LogSeatsReleased logs ledger releases for a ticket
func (l *Logger) LogSeatsReleased(ctx context.Context, ticketID string, released int) {
	l.Logger.InfoContext(ctx,
		"Seats Released",
		slog.String("ticket_id", ticketID),
		slog.Int("released", released),
	)
}

// LogSeatConflict logs a rejected hold or reservation
func (l *Logger) LogSeatConflict(ctx context.Context, chartID, kind string, err error) {
	l.Logger.WarnContext(ctx,
		"Seat Conflict",
		slog.String("chart_id", chartID),
		slog.String("error_kind", kind),
		slog.String("error", err.Error()),
	)
}

// Security logging methods

// LogAuthFailure logs failed authentication
func (l *Logger) LogAuthFailure(ctx context.Context, reason, ip string) {
	l.Logger.WarnContext(ctx,
		"Authentication Failure",
		slog.String("reason", reason),
		slog.String("ip", ip),
	)
}

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
