package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type PoolTestSuite struct {
	suite.Suite
	pool *WorkerPool
}

func (suite *PoolTestSuite) SetupTest() {
	suite.pool = NewWorkerPool(2)
}

func (suite *PoolTestSuite) TearDownTest() {
	suite.pool.Close()
}

func (suite *PoolTestSuite) TestRunsJob() {
	done := make(chan struct{})

	suite.pool.Run(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		suite.Fail("job never ran")
	}

	assert.Eventually(suite.T(), func() bool {
		return suite.pool.ActiveCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func (suite *PoolTestSuite) TestOverflowRunsImmediately() {
	gate := make(chan struct{})
	defer close(gate)

	// Saturate both workers
	suite.pool.Run(func() { <-gate })
	suite.pool.Run(func() { <-gate })
	assert.Eventually(suite.T(), func() bool {
		return suite.pool.ActiveCount() == 2
	}, time.Second, 10*time.Millisecond)

	// The next job must not queue behind them
	overflow := make(chan struct{})
	suite.pool.Run(func() { close(overflow) })

	select {
	case <-overflow:
	case <-time.After(time.Second):
		suite.Fail("overflow job queued behind saturated pool")
	}
	assert.Equal(suite.T(), 2, suite.pool.ActiveCount())
}

func (suite *PoolTestSuite) TestDrainsAfterLoad() {
	gate := make(chan struct{})

	for i := 0; i < 4; i++ {
		suite.pool.Run(func() { <-gate })
	}
	close(gate)

	assert.Eventually(suite.T(), func() bool {
		return suite.pool.ActiveCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func (suite *PoolTestSuite) TestRunAfterClose() {
	suite.pool.Close()

	done := make(chan struct{})
	suite.pool.Run(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		suite.Fail("job not run after pool close")
	}
}

func TestRunPoolSuite(t *testing.T) {
	suite.Run(t, new(PoolTestSuite))
}
