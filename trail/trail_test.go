package trail

import (
	"math/rand"
	"testing"
	"time"

	"github.com/automoto/memory-ninja/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func newTestSampler() *Sampler {
	return NewSampler(config.Default.Trail)
}

func TestIngest_FirstSampleOnlyPrimes(t *testing.T) {
	s := newTestSampler()
	pts := s.Ingest(Point{X: 10, Y: 10, T: at(0)}, at(0))
	assert.Empty(t, pts)
}

func TestIngest_FastMoveAppends(t *testing.T) {
	s := newTestSampler()
	s.Ingest(Point{X: 0, Y: 0, T: at(0)}, at(0))
	pts := s.Ingest(Point{X: 5, Y: 0, T: at(1)}, at(1))

	require.Len(t, pts, 1)
	assert.Equal(t, 5.0, pts[0].X)
}

func TestIngest_InterpolatesLongSegments(t *testing.T) {
	s := newTestSampler()
	s.Ingest(Point{X: 0, Y: 0, T: at(0)}, at(0))
	s.Ingest(Point{X: 4, Y: 0, T: at(1)}, at(1))
	pts := s.Ingest(Point{X: 44, Y: 0, T: at(11)}, at(11))

	// 40 units at interval 8 is 5 steps: 4 fillers plus the sample
	require.Len(t, pts, 6)
	want := []float64{4, 12, 20, 28, 36, 44}
	for i, p := range pts {
		assert.InDelta(t, want[i], p.X, 1e-9)
	}
	assert.Equal(t, at(3), pts[1].T)
	assert.Equal(t, at(11), pts[5].T)
}

func TestIngest_NoInterpolationIntoEmptyTrail(t *testing.T) {
	s := newTestSampler()
	s.Ingest(Point{X: 0, Y: 0, T: at(0)}, at(0))
	pts := s.Ingest(Point{X: 100, Y: 0, T: at(10)}, at(10))
	assert.Len(t, pts, 1)
}

func TestIngest_SlowMoveClearsTrail(t *testing.T) {
	s := newTestSampler()
	s.Ingest(Point{X: 0, Y: 0, T: at(0)}, at(0))
	for i := 1; i <= 20; i++ {
		s.Ingest(Point{X: float64(i * 6), Y: 0, T: at(i)}, at(i))
	}
	require.NotZero(t, s.Len())

	// 1 unit over 10ms is well under the threshold
	pts := s.Ingest(Point{X: 121, Y: 0, T: at(30)}, at(30))
	assert.Empty(t, pts)
}

func TestIngest_SpeedAtThresholdIsStationary(t *testing.T) {
	s := newTestSampler()
	s.Ingest(Point{X: 0, Y: 0, T: at(0)}, at(0))
	s.Ingest(Point{X: 5, Y: 0, T: at(1)}, at(1))
	pts := s.Ingest(Point{X: 8, Y: 0, T: at(11)}, at(11))
	assert.Empty(t, pts)
}

func TestIngest_ZeroElapsedIsStationary(t *testing.T) {
	s := newTestSampler()
	s.Ingest(Point{X: 0, Y: 0, T: at(0)}, at(0))
	s.Ingest(Point{X: 5, Y: 0, T: at(1)}, at(1))
	pts := s.Ingest(Point{X: 50, Y: 0, T: at(1)}, at(1))
	assert.Empty(t, pts)
}

func TestIngest_CapDropsOldest(t *testing.T) {
	cfg := config.Default.Trail
	cfg.MaxLength = 5
	s := NewSampler(cfg)

	s.Ingest(Point{X: 0, Y: 0, T: at(0)}, at(0))
	for i := 1; i <= 10; i++ {
		s.Ingest(Point{X: float64(i * 5), Y: 0, T: at(i)}, at(i))
	}
	pts := s.Points()
	require.Len(t, pts, 5)
	assert.Equal(t, 30.0, pts[0].X)
	assert.Equal(t, 50.0, pts[4].X)
}

func TestPurge_DropsExpiredWithoutInput(t *testing.T) {
	s := newTestSampler()
	s.Ingest(Point{X: 0, Y: 0, T: at(0)}, at(0))
	s.Ingest(Point{X: 5, Y: 0, T: at(1)}, at(1))
	require.Len(t, s.Points(), 1)

	assert.Len(t, s.Purge(at(500)), 1)
	assert.Empty(t, s.Purge(at(801)))
}

func TestTrailExpiryProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := newTestSampler()
	fade := config.Default.Trail.FadeWindow

	ms := 0
	x, y := 0.0, 0.0
	for i := 0; i < 2000; i++ {
		ms += rng.Intn(40)
		x += (rng.Float64() - 0.5) * 60
		y += (rng.Float64() - 0.5) * 60
		now := at(ms + rng.Intn(5))

		pts := s.Ingest(Point{X: x, Y: y, T: at(ms)}, now)
		for _, p := range pts {
			assert.Less(t, p.Age(now), fade)
		}
		assert.LessOrEqual(t, len(pts), config.Default.Trail.MaxLength)
		for j := 1; j < len(pts); j++ {
			assert.False(t, pts[j].T.Before(pts[j-1].T))
		}
	}
}

func TestLift_ForgetsPreviousSample(t *testing.T) {
	s := newTestSampler()
	s.Ingest(Point{X: 0, Y: 0, T: at(0)}, at(0))
	s.Ingest(Point{X: 5, Y: 0, T: at(1)}, at(1))
	s.Lift()
	assert.Zero(t, s.Len())

	pts := s.Ingest(Point{X: 500, Y: 0, T: at(2)}, at(2))
	assert.Empty(t, pts)
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := newTestSampler()
	s.Ingest(Point{X: 0, Y: 0, T: at(0)}, at(0))
	s.Ingest(Point{X: 5, Y: 0, T: at(1)}, at(1))
	snap := s.Snapshot()
	s.Lift()
	assert.Len(t, snap, 1)
}
