package verify

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"time"
)

// AuditLogger records verification activity without ever writing a raw
// seed; seeds appear only as a truncated hash.
type AuditLogger struct {
	logger *log.Logger
}

// NewAuditLoggerTo creates an audit logger writing to w
func NewAuditLoggerTo(w io.Writer) *AuditLogger {
	return &AuditLogger{
		logger: log.New(w, "[AUDIT] ", log.LstdFlags|log.LUTC),
	}
}

// LogVerifyOperation logs a completed verification
func (al *AuditLogger) LogVerifyOperation(req *Request, res *Result, duration time.Duration) {
	al.logger.Printf(
		"verify_operation request_id=%s seed_hash=%s mode=%s step=%s max_index=%d grids=%d bets=%d wins=%d commitment=%s duration=%v engine_version=%s timestamp=%s",
		res.ID,
		al.hashSeed(req.Seed),
		res.Mode,
		res.Step,
		res.MaxIndex,
		len(res.Grids),
		len(res.Outcomes),
		res.Wins(),
		res.Commitment,
		duration,
		EngineVersion,
		time.Now().UTC().Format(time.RFC3339),
	)
}

// LogRejected logs a request that failed before a result was produced
func (al *AuditLogger) LogRejected(requestID string, req *Request, err error) {
	errType, field := ErrTypeInternal, ""
	var verr *Error
	if errors.As(err, &verr) {
		errType, field = verr.Type, verr.Field
	}
	al.logger.Printf(
		"verify_rejected request_id=%s seed_hash=%s type=%s category=%s field=%s message=%q engine_version=%s timestamp=%s",
		requestID,
		al.hashSeed(req.Seed),
		errType,
		GetErrorCategory(errType),
		field,
		err.Error(),
		EngineVersion,
		time.Now().UTC().Format(time.RFC3339),
	)
}

// LogBatch logs the summary of a batch run
func (al *AuditLogger) LogBatch(total, failed int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "aborted"
	}
	al.logger.Printf(
		"verify_batch total=%d failed=%d duration=%v status=%s engine_version=%s timestamp=%s",
		total,
		failed,
		duration,
		status,
		EngineVersion,
		time.Now().UTC().Format(time.RFC3339),
	)
}

// hashSeed creates a SHA256 hash of a seed for logging (first 16 chars for brevity)
func (al *AuditLogger) hashSeed(seed string) string {
	if seed == "" {
		return "empty"
	}
	hash := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(hash[:])[:16]
}
