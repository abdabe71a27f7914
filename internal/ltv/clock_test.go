package ltv

import (
	"testing"
	"time"

	"lever/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	now := time.Unix(1603366002+150, 0)

	mark, err := Mark(core.TimeBasisBlock, 1603366002, 15, now)
	require.Nil(t, err)
	assert.Equal(t, int64(10), mark)

	mark, err = Mark(core.TimeBasisSecond, 0, 0, now)
	require.Nil(t, err)
	assert.Equal(t, now.Unix(), mark)

	_, err = Mark(core.TimeBasisBlock, 1603366002, 0, now)
	assert.NotNil(t, err)

	_, err = Mark(core.TimeBasisBlock, now.Unix()+100, 15, now)
	assert.NotNil(t, err)

	_, err = Mark(core.TimeBasis("era"), 0, 0, now)
	assert.NotNil(t, err)
}
