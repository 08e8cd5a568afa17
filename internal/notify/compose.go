package notify

import "strings"

// Compose renders a congratulation template. Only the first occurrence of
// each placeholder is substituted; templates are expected to use each
// placeholder once.
func Compose(template, sprintName, mention string) string {
	content := strings.Replace(template, "{username}", mention, 1)
	return strings.Replace(content, "{sprintName}", sprintName, 1)
}
