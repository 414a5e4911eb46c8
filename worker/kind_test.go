package worker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindForLabel(t *testing.T) {
	cases := []struct {
		label string
		want  Kind
	}{
		{label: "json", want: KindJSON},
		{label: "css", want: KindCSS},
		{label: "scss", want: KindCSS},
		{label: "less", want: KindCSS},
		{label: "html", want: KindHTML},
		{label: "handlebars", want: KindHTML},
		{label: "razor", want: KindHTML},
		{label: "typescript", want: KindTypeScript},
		{label: "javascript", want: KindTypeScript},
		{label: "yaml", want: KindYAML},
		{label: "", want: KindDefault},
		{label: "go", want: KindDefault},
		{label: "markdown", want: KindDefault},
		// Labels are exact: no case folding, no trimming.
		{label: "CSS", want: KindDefault},
		{label: " css", want: KindDefault},
		{label: "yml", want: KindDefault},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, KindForLabel(tc.label), "label %q", tc.label)
	}
}
