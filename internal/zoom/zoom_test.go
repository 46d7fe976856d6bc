package zoom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 阈值 11/12 的边界行为：阈值本身落入更细一档
func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		z    float64
		want Level
	}{
		{0, LevelCity},
		{10.9, LevelCity},
		{11, LevelDistrict},
		{11.9, LevelDistrict},
		{12, LevelVillage},
		{20, LevelVillage},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.z, 11, 12), "z=%v", c.z)
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "city", LevelCity.String())
	assert.Equal(t, "district", LevelDistrict.String())
	assert.Equal(t, "village", LevelVillage.String())
}

func TestParseLevel(t *testing.T) {
	l, ok := ParseLevel("village")
	assert.True(t, ok)
	assert.Equal(t, LevelVillage, l)
	_, ok = ParseLevel("province")
	assert.False(t, ok)
}

// 连续落在同档的缩放序列只通知一次，切档时再通知
func TestTrackerDeduplicatesNotifications(t *testing.T) {
	tr := NewTracker(11, 12)
	var fired []Level
	tr.OnChange(func(l Level) { fired = append(fired, l) })

	for _, z := range []float64{11.0, 11.2, 11.5, 11.9} {
		lvl, _ := tr.Observe(z)
		assert.Equal(t, LevelDistrict, lvl)
	}
	assert.Equal(t, []Level{LevelDistrict}, fired)

	_, changed := tr.Observe(12.3)
	assert.True(t, changed)
	_, changed = tr.Observe(12.9)
	assert.False(t, changed)
	assert.Equal(t, []Level{LevelDistrict, LevelVillage}, fired)
}

func TestTrackerCurrent(t *testing.T) {
	tr := NewTracker(11, 12)
	_, emitted := tr.Current()
	assert.False(t, emitted)
	tr.Observe(5)
	cur, emitted := tr.Current()
	assert.True(t, emitted)
	assert.Equal(t, LevelCity, cur)
}
