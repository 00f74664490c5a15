// Package output serialises a submitted dialog result.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/goliatone/go-formdialog/pkg/model"
)

// Format controls how collected values are serialised.
type Format string

const (
	// FormatJSON emits a JSON object keyed by label in field order.
	FormatJSON Format = "json"
	// FormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	FormatFormURLEncoded Format = "form"
	// FormatPrettyText emits one label=value line per value.
	FormatPrettyText Format = "pretty"
)

// ErrUnknownFormat is returned for format names not listed above.
var ErrUnknownFormat = errors.New("output: unknown format")

// Formats lists the supported format names.
func Formats() []Format {
	return []Format{FormatJSON, FormatFormURLEncoded, FormatPrettyText}
}

// ParseFormat maps a flag value to a Format. The empty string selects JSON.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatFormURLEncoded, FormatPrettyText:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// Encode serialises res in the given format.
func Encode(res model.Result, format Format) ([]byte, error) {
	switch format {
	case FormatFormURLEncoded:
		return []byte(flattenForm(res)), nil
	case FormatPrettyText:
		return []byte(prettyPrint(res)), nil
	case FormatJSON, "":
		return jsonBytes(res)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Write encodes res to w followed by a newline when the payload lacks one.
func Write(w io.Writer, res model.Result, format Format) error {
	payload, err := Encode(res, format)
	if err != nil {
		return err
	}
	if len(payload) == 0 || payload[len(payload)-1] != '\n' {
		payload = append(payload, '\n')
	}
	_, err = w.Write(payload)
	return err
}

func flattenForm(res model.Result) string {
	flattened := url.Values{}
	for i, label := range res.Labels() {
		switch v := res.At(i).(type) {
		case []any:
			for _, item := range v {
				flattened.Add(label+"[]", text(item))
			}
		default:
			flattened.Set(label, text(v))
		}
	}
	return flattened.Encode()
}

func prettyPrint(res model.Result) string {
	var b strings.Builder
	for i, label := range res.Labels() {
		switch v := res.At(i).(type) {
		case []any:
			if len(v) == 0 {
				fmt.Fprintf(&b, "%s=\n", label)
			}
			for idx, item := range v {
				fmt.Fprintf(&b, "%s[%d]=%s\n", label, idx, text(item))
			}
		default:
			fmt.Fprintf(&b, "%s=%s\n", label, text(v))
		}
	}
	return b.String()
}

// jsonBytes writes the object by hand so keys keep field order.
func jsonBytes(res model.Result) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range res.Labels() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(res.At(i))
		if err != nil {
			return nil, fmt.Errorf("output: field %q: %w", label, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
