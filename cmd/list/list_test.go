package list

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mdman-dev/mdman/pkg/config"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		mappings config.Mappings
		exp      string
	}{
		{
			name:     "Empty",
			mappings: config.Mappings{},
			exp:      "No files are currently being tracked\n",
		},
		{
			name: "MultipleSources",
			mappings: config.Mappings{
				"/notes/b.md": {"/backup/b.md"},
				"/notes/a.md": {"/backup/a.md", "/shared/a.md"},
			},
			exp: "Tracked files:\n" +
				"\n" +
				"Source: /notes/a.md\n" +
				"  → /backup/a.md\n" +
				"  → /shared/a.md\n" +
				"\n" +
				"Source: /notes/b.md\n" +
				"  → /backup/b.md\n" +
				"\n",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.exp, format(test.mappings))
		})
	}
}
