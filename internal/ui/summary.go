package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"moncollect/internal/collect"
)

// savedCollector is what the summary view shows after a successful submit.
type savedCollector struct {
	ID       int64 // 0 when the submit func does not report one
	NodePath string
	Payload  collect.Payload
}

// collectorMarkdown renders c as a markdown table.
func collectorMarkdown(c savedCollector) string {
	node := fmt.Sprintf("#%d", c.Payload.NID)
	if c.NodePath != "" {
		node = fmt.Sprintf("%s (#%d)", c.NodePath, c.Payload.NID)
	}
	rows := [][2]string{
		{"Metric", "`" + collect.Metric + "`"},
		{"Node", node},
		{"Name", c.Payload.Name},
		{"Service", collect.ServiceOrEmpty(c.Payload.Tags)},
		{"Port", fmt.Sprintf("%d", c.Payload.Port)},
		{"Timeout", fmt.Sprintf("%ds", c.Payload.Timeout)},
		{"Step", fmt.Sprintf("%ds", c.Payload.Step)},
		{"Tags", "`" + c.Payload.Tags + "`"},
	}
	if c.Payload.Comment != "" {
		rows = append(rows, [2]string{"Comment", c.Payload.Comment})
	}

	var b strings.Builder
	if c.ID > 0 {
		fmt.Fprintf(&b, "### Collector #%d\n\n", c.ID)
	} else {
		b.WriteString("### Collector\n\n")
	}
	b.WriteString("| Field | Value |\n|---|---|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s |\n", r[0], escapeCell(r[1]))
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

// payloadJSON is the clipboard form of a payload.
func payloadJSON(p collect.Payload) (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
