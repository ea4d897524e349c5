package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFlags_Instance(t *testing.T) {
	tests := []struct {
		name       string
		flags      listFlags
		wantPage   int
		wantCursor string
		wantSize   int
	}{
		{
			name:     "no flags",
			flags:    listFlags{},
			wantPage: 1,
			wantSize: 10,
		},
		{
			name:       "bookmark only",
			flags:      listFlags{urlState: "filesPage=3&filesAfter=file-19&filesPageSize=25"},
			wantPage:   3,
			wantCursor: "file-19",
			wantSize:   25,
		},
		{
			name:       "explicit flags override bookmark",
			flags:      listFlags{urlState: "filesPage=2&filesAfter=file-9", page: 4, after: "file-29"},
			wantPage:   4,
			wantCursor: "file-29",
			wantSize:   10,
		},
		{
			name:     "foreign namespace ignored",
			flags:    listFlags{urlState: "batchesPage=5&batchesAfter=batch-4"},
			wantPage: 1,
			wantSize: 10,
		},
		{
			name:     "malformed page falls back",
			flags:    listFlags{urlState: "filesPage=banana"},
			wantPage: 1,
			wantSize: 10,
		},
		{
			name:     "oversized bookmark page size is clamped",
			flags:    listFlags{urlState: "filesPageSize=500"},
			wantPage: 1,
			wantSize: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := tt.flags.instance(NamespaceFiles, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, inst.Page())
			assert.Equal(t, tt.wantCursor, inst.Cursor())
			assert.Equal(t, tt.wantSize, inst.PageSize())
		})
	}
}

func TestListFlags_Instance_MalformedURL(t *testing.T) {
	flags := listFlags{urlState: "%zz"}

	_, err := flags.instance(NamespaceFiles, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing --url")
}

func TestFormatUnix(t *testing.T) {
	assert.Equal(t, "-", formatUnix(0))
	assert.Equal(t, "2023-12-21T19:33:20Z", formatUnix(1703187200))
}
