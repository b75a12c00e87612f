package message

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const indent = "  "

// Format builds the two-block Document for an event: a summary of the
// notification type, cluster and project, followed by the pretty-printed payload.
func Format(attributes Attributes) (Document, error) {
	resolved := attributes.Resolve()

	details, err := PrettyJSON(resolved.Payload)
	if err != nil {
		return Document{}, err
	}

	summary := fmt.Sprintf("`%s`\nCluster: `%s`\nProject number: `%s`\nDetails:",
		resolved.ShortTypeName(), resolved.ClusterName, resolved.ProjectID)

	return Document{
		Blocks: []Block{
			markdownSection(summary),
			markdownSection(fmt.Sprintf("```%s```", details)),
		},
	}, nil
}

// PrettyJSON validates payload and re-indents it with two spaces. Key order,
// numbers and string escapes are kept exactly as written.
func PrettyJSON(payload string) (string, error) {
	raw, err := decodeJSON(payload)
	if err != nil {
		return "", newParseError(payload, err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", indent); err != nil {
		return "", newParseError(payload, err)
	}
	return buf.String(), nil
}

func decodeJSON(payload string) (json.RawMessage, error) {
	decoder := json.NewDecoder(bytes.NewReader([]byte(payload)))

	var raw json.RawMessage
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}

	// a second value, or garbage, after the first one is not valid JSON
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = fmt.Errorf("unexpected data after top-level value at offset %d", decoder.InputOffset())
		}
		return nil, err
	}

	return bytes.TrimSpace(raw), nil
}
