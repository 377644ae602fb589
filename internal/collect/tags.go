package collect

import "strings"

const (
	servicePrefix = "service="
	tagSeparator  = ","
)

// Tag is one key=value token of a collector tag string.
type Tag struct {
	Key   string
	Value string
}

// ExtractService returns the value of the first token in tags that starts
// with the literal prefix "service=". Tokens are not trimmed. An empty tag
// string, or one without such a token, yields ErrServiceTagMissing.
func ExtractService(tags string) (string, error) {
	for _, token := range strings.Split(tags, tagSeparator) {
		if value, ok := strings.CutPrefix(token, servicePrefix); ok {
			return value, nil
		}
	}
	return "", serviceTagMissingError(tags)
}

// ServiceOrEmpty is ExtractService for prefill: a missing tag is "".
func ServiceOrEmpty(tags string) string {
	service, err := ExtractService(tags)
	if err != nil {
		return ""
	}
	return service
}

// ServiceTag builds the tag string submitted for service. It is the only
// tag a port collector carries; any other tags the collector had before
// editing are not preserved.
func ServiceTag(service string) string {
	return servicePrefix + service
}

// ParseTags splits a tag string into key/value pairs. Empty tokens are
// skipped; a token without "=" has an empty value.
func ParseTags(tags string) []Tag {
	var out []Tag
	for _, token := range strings.Split(tags, tagSeparator) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		key, value, _ := strings.Cut(token, "=")
		out = append(out, Tag{Key: key, Value: value})
	}
	return out
}
