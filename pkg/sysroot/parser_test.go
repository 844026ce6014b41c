package sysroot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vision-bindings/cvprobe/pkg/discovery"
)

const header4 = `// This definition means that OpenCV is built with enabled non-free code.
#define CV_VERSION_MAJOR    4
#define CV_VERSION_MINOR    2
#define CV_VERSION_REVISION 0
#define CV_VERSION_STATUS   ""
`

const header2x = `#define CV_MAJOR_VERSION    2
#define CV_MINOR_VERSION    4
#define CV_SUBMINOR_VERSION 13
`

func TestParseVersionHeader(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{name: "modern macros", content: header4, want: "4.2.0"},
		{name: "legacy macros", content: header2x, want: "2.4.13"},
		{
			name:    "modern macros win when both present",
			content: header4 + header2x,
			want:    "4.2.0",
		},
		{name: "no macros", content: "#pragma once\n", wantErr: true},
		{name: "empty header", content: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersionHeader(strings.NewReader(tt.content))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, discovery.ErrMalformedOutput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
