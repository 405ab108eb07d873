package userrepo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_Value(t *testing.T) {
	v, err := NewDate(time.Date(1987, time.June, 1, 15, 4, 5, 0, time.UTC)).Value()
	require.NoError(t, err)
	assert.Equal(t, "1987-06-01", v)
}

func TestDate_Scan(t *testing.T) {
	want := time.Date(1987, time.June, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		src  any
	}{
		{name: "time", src: time.Date(1987, time.June, 1, 0, 0, 0, 0, time.UTC)},
		{name: "iso string", src: "1987-06-01"},
		{name: "bytes", src: []byte("1987-06-01")},
		{name: "rfc3339", src: "1987-06-01T00:00:00Z"},
		{name: "sqlite timestamp", src: "1987-06-01 00:00:00+00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tt.src))
			assert.True(t, want.Equal(d.Time), d.Time.String())
		})
	}

	t.Run("garbage", func(t *testing.T) {
		var d Date
		assert.Error(t, d.Scan("yesterday"))
		assert.Error(t, d.Scan(42))
	})
}
