package templates

import _ "embed"

// EmbeddedTemplate is the HTML shell for the html output format. Rendered
// questions are injected into its questions-list container.
//
//go:embed template.html
var EmbeddedTemplate string
