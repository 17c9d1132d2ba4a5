// internal/findings/parser.go
package findings

import (
	"errors"
	"fmt"
	"io/fs"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scanbrief/api/schemas"
	"github.com/xkilldash9x/scanbrief/internal/sarif"
)

// Reasons recorded on a Failure result.
const (
	ReasonNotFound    = "file not found"
	reasonReadPrefix  = "read error"
	reasonParsePrefix = "parse error"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Parser turns one scan result document into a schemas.ScanResult. It never
// returns an error: unreadable or malformed input becomes the failure variant.
type Parser struct {
	fs     afero.Fs
	logger *zap.Logger
}

// NewParser creates a parser reading from fsys. A nil fsys means the OS filesystem.
func NewParser(fsys afero.Fs, logger *zap.Logger) *Parser {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{fs: fsys, logger: logger.Named("parser")}
}

// Parse reads the document at path and normalizes it for category.
func (p *Parser) Parse(category schemas.Category, path string) schemas.ScanResult {
	logger := p.logger.With(zap.String("category", string(category)), zap.String("path", path))

	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Scan result document not found")
			return schemas.NewFailure(category, schemas.FailureInputUnavailable, ReasonNotFound)
		}
		logger.Warn("Scan result document could not be read", zap.Error(err))
		return schemas.NewFailure(category, schemas.FailureInputUnavailable, fmt.Sprintf("%s: %v", reasonReadPrefix, err))
	}

	result, doc := decode(category, data)
	if result.OK() {
		logger.Info("Parsed scan result document",
			zap.String("tool", doc.ToolName()),
			zap.Int("findings", result.Total()),
			zap.Int("high", result.Counts.High),
			zap.Int("medium", result.Counts.Medium),
			zap.Int("low", result.Counts.Low),
		)
	} else {
		logger.Warn("Scan result document is malformed", zap.String("reason", result.Failure.Reason))
	}
	return result
}

// Decode normalizes an in-memory document. It is the pure half of Parse.
func Decode(category schemas.Category, data []byte) schemas.ScanResult {
	result, _ := decode(category, data)
	return result
}

// decode also returns the decoded log, which is nil when the document is malformed.
func decode(category schemas.Category, data []byte) (schemas.ScanResult, *sarif.Log) {
	var log sarif.Log
	if err := json.Unmarshal(data, &log); err != nil {
		return schemas.NewFailure(category, schemas.FailureInputMalformed, fmt.Sprintf("%s: %v", reasonParsePrefix, err)), nil
	}

	results := log.AllResults()
	findings := make([]schemas.Finding, 0, len(results))
	for _, r := range results {
		findings = append(findings, toFinding(r))
	}
	return schemas.NewSuccess(category, findings), &log
}

func toFinding(r *sarif.Result) schemas.Finding {
	return schemas.Finding{
		Message:      r.MessageText(),
		Severity:     schemas.SeverityFromLevel(r.LevelOrDefault()),
		LocationPath: r.URI(),
		RuleID:       r.RuleIDOrDefault(),
	}
}
