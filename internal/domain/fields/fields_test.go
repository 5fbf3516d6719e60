package fields

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("1999-03-31")
	require.NoError(t, err)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1999-03-31"`, string(b))

	var decoded Date
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.True(t, decoded.Equal(d.Time))
}

func TestDateUnmarshalInvalid(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"31/03/1999"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`1999`), &d))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2010, 7, 16, 13, 45, 0, 0, time.UTC)))
	assert.Equal(t, "2010-07-16", d.Format(DateLayout))

	require.NoError(t, d.Scan("2012-01-02"))
	assert.Equal(t, "2012-01-02", d.Format(DateLayout))

	assert.Error(t, d.Scan(42))
}
