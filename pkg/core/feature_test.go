package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeature(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    VersionFeature
		wantErr bool
	}{
		{name: "opencv-32", input: "opencv-32", want: FeatureOpenCV32},
		{name: "opencv-34", input: "opencv-34", want: FeatureOpenCV34},
		{name: "opencv-4", input: "opencv-4", want: FeatureOpenCV4},
		{name: "empty selects default", input: "", want: FeatureOpenCV4},
		{name: "unknown feature", input: "opencv-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFeature(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFeatureFromFlags(t *testing.T) {
	tests := []struct {
		name         string
		v32, v34, v4 bool
		want         VersionFeature
		wantErr      bool
	}{
		{name: "none selects default", want: FeatureOpenCV4},
		{name: "only 32", v32: true, want: FeatureOpenCV32},
		{name: "only 34", v34: true, want: FeatureOpenCV34},
		{name: "only 4", v4: true, want: FeatureOpenCV4},
		{name: "two at once is a construction error", v32: true, v34: true, wantErr: true},
		{name: "all three is a construction error", v32: true, v34: true, v4: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FeatureFromFlags(tt.v32, tt.v34, tt.v4)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpectedPrefix(t *testing.T) {
	assert.Equal(t, "3.2", FeatureOpenCV32.ExpectedPrefix())
	assert.Equal(t, "3.4", FeatureOpenCV34.ExpectedPrefix())
	assert.Equal(t, "4", FeatureOpenCV4.ExpectedPrefix())
}

func TestDefine(t *testing.T) {
	assert.Equal(t, "OCVRS_OPENCV_32", FeatureOpenCV32.Define())
	assert.Equal(t, "OCVRS_OPENCV_34", FeatureOpenCV34.Define())
	assert.Equal(t, "OCVRS_OPENCV_4", FeatureOpenCV4.Define())
}
