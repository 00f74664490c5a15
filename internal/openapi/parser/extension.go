package parser

import (
	"fmt"
	"strings"

	pkgopenapi "github.com/goliatone/go-formdialog/pkg/openapi"
)

const extensionNamespace = "x-formdialog"

// parseExtension reads the x-formdialog object. Unknown keys and values of
// the wrong type are ignored.
func parseExtension(raw map[string]any) pkgopenapi.Extension {
	var ext pkgopenapi.Extension
	values, ok := raw[extensionNamespace].(map[string]any)
	if !ok {
		return ext
	}

	ext.Label, _ = toString(values["label"])
	ext.Help, _ = toString(values["help"])
	ext.VisibleWhen, _ = toString(values["visibleWhen"])
	ext.EnabledWhen, _ = toString(values["enabledWhen"])
	ext.Hide = toStrings(values["hide"])
	ext.Disable = toStrings(values["disable"])
	if remember, ok := values["remember"].(bool); ok {
		ext.Remember = remember
	}
	if order, ok := toInt(values["order"]); ok {
		ext.Order = &order
	}
	if modes, ok := values["modes"].(map[string]any); ok && len(modes) > 0 {
		ext.Modes = make(map[string][]string, len(modes))
		for option, list := range modes {
			if tags := toStrings(list); len(tags) > 0 {
				ext.Modes[option] = tags
			}
		}
	}
	return ext
}

func toString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v), true
	case nil:
		return "", false
	default:
		return fmt.Sprint(v), true
	}
}

// toStrings accepts a list or a single string.
func toStrings(value any) []string {
	switch v := value.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []string{s}
		}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := toString(item); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	case []string:
		return append([]string(nil), v...)
	}
	return nil
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	}
	return 0, false
}
