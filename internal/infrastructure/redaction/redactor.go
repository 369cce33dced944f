// Package redaction masks secrets in block configuration before it is reported.
package redaction

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"github.com/zricethezav/gitleaks/v8/config"
	"github.com/zricethezav/gitleaks/v8/detect"
)

// Marker replaces redacted values when hash mode is off.
const Marker = "[REDACTED]"

// Redactor masks sensitive config values.
// All fields are read-only after construction, making it safe for concurrent use.
type Redactor struct {
	detector *detect.Detector
	patterns []*regexp.Regexp
	keys     []string
	salt     string
	hashMode bool
}

// Config holds the configuration for the Redactor.
type Config struct {
	// Extra patterns to redact (e.g. "INT-[A-Z0-9]{16}")
	Patterns []string
	// Config keys whose values are always redacted (e.g. "password", "smtp.password")
	Keys []string
	// Salt for hash mode. If empty, hashes are deterministic but unsalted.
	Salt string
	// Replace with a short HMAC instead of the marker
	HashMode bool
	// Use only the built-in and custom patterns
	DisableGitleaks bool
}

// DefaultKeys are redacted regardless of their value.
var DefaultKeys = []string{"password", "secret", "api_key", "token"}

// New creates a new Redactor with the given configuration.
func New(cfg Config) (*Redactor, error) {
	r := &Redactor{
		keys:     append(append([]string{}, DefaultKeys...), cfg.Keys...),
		salt:     cfg.Salt,
		hashMode: cfg.HashMode,
		patterns: make([]*regexp.Regexp, 0, len(cfg.Patterns)+len(defaultPatterns)),
	}

	if !cfg.DisableGitleaks {
		detector, err := newGitleaksDetector()
		if err != nil {
			return nil, err
		}
		r.detector = detector
	}

	for _, p := range append(append([]string{}, defaultPatterns...), cfg.Patterns...) {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to compile redaction pattern %s: %w", p, err)
		}
		r.patterns = append(r.patterns, re)
	}

	return r, nil
}

// newGitleaksDetector builds a detector from the gitleaks default rule set.
func newGitleaksDetector() (*detect.Detector, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(strings.NewReader(config.DefaultConfig)); err != nil {
		return nil, fmt.Errorf("failed to read gitleaks config: %w", err)
	}

	var vc config.ViperConfig
	if err := v.Unmarshal(&vc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gitleaks config: %w", err)
	}

	cfg, err := vc.Translate()
	if err != nil {
		return nil, fmt.Errorf("failed to translate gitleaks config: %w", err)
	}

	return detect.NewDetector(cfg), nil
}

// RedactConfig returns a copy of cfg with sensitive values masked.
// Nested mappings and lists are copied; cfg itself is never modified.
func (r *Redactor) RedactConfig(cfg map[string]any) map[string]any {
	if cfg == nil {
		return nil
	}
	out, _ := r.walk(cfg, "").(map[string]any)
	return out
}

// ScrubString replaces secrets found in s.
func (r *Redactor) ScrubString(s string) string {
	if s == "" {
		return ""
	}

	result := s
	if r.detector != nil {
		for _, finding := range r.detector.Detect(detect.Fragment{Raw: result}) {
			if finding.Secret == "" {
				continue
			}
			result = strings.ReplaceAll(result, finding.Secret, r.mask(finding.Secret))
		}
	}

	for _, re := range r.patterns {
		result = re.ReplaceAllStringFunc(result, r.mask)
	}

	return result
}

// walk copies v, masking leaves under a sensitive key path. path is the
// dot-separated key of v, with list positions as decimal segments.
func (r *Redactor) walk(v any, path string) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = r.walk(child, join(path, k))
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = r.walk(child, join(path, strconv.Itoa(i)))
		}
		return out
	case string:
		if r.isSensitiveKey(path) {
			return r.mask(val)
		}
		return r.ScrubString(val)
	case nil:
		return nil
	default:
		if r.isSensitiveKey(path) {
			return r.mask(fmt.Sprint(val))
		}
		return val
	}
}

// isSensitiveKey reports whether the last segment of path is a sensitive key.
// "password" matches "smtp.password" and "users.0.password".
func (r *Redactor) isSensitiveKey(path string) bool {
	lower := strings.ToLower(path)
	for _, k := range r.keys {
		k = strings.ToLower(k)
		if lower == k || strings.HasSuffix(lower, "."+k) {
			return true
		}
	}
	return false
}

func (r *Redactor) mask(secret string) string {
	if !r.hashMode {
		return Marker
	}
	return r.hash(secret)
}

// hash returns a truncated HMAC-SHA256 of the secret, e.g. [hmac:a1b2c3d4e5f6a7b8].
// The same secret always maps to the same hash for a given salt.
func (r *Redactor) hash(secret string) string {
	mac := hmac.New(sha256.New, []byte(r.salt))
	mac.Write([]byte(secret))
	return fmt.Sprintf("[hmac:%s]", hex.EncodeToString(mac.Sum(nil))[:16])
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// defaultPatterns catch common secrets even with gitleaks disabled.
var defaultPatterns = []string{
	// AWS Access Key ID
	`\b((?:AKIA|ABIA|ACCA|ASIA)[0-9A-Z]{16})\b`,
	// Private key header
	`-----BEGIN [A-Z ]+ PRIVATE KEY-----`,
	// GitHub token
	`gh[pousr]_[A-Za-z0-9_]{36,255}`,
	// Slack token
	`xox[baprs]-([0-9a-zA-Z]{10,48})?`,
}
