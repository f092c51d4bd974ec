package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type WatchersTestSuite struct {
	suite.Suite
	watchers *Watchers
}

func (suite *WatchersTestSuite) SetupTest() {
	suite.watchers = NewWatchers()
}

func (suite *WatchersTestSuite) TestWakeMatching() {
	watch := suite.watchers.WatchPrefix([]byte("user/"))

	suite.watchers.Wake([]byte("user/1/name"))

	assert.True(suite.T(), fired(watch, time.Second))
}

func (suite *WatchersTestSuite) TestWakeNonMatching() {
	watch := suite.watchers.WatchPrefix([]byte("room/"))

	suite.watchers.Wake([]byte("user/1/name"))

	assert.False(suite.T(), fired(watch, 50*time.Millisecond))
}

func (suite *WatchersTestSuite) TestEmptyPrefixMatchesEverything() {
	watch := suite.watchers.WatchPrefix(nil)

	suite.watchers.Wake([]byte("anything"))

	assert.True(suite.T(), fired(watch, time.Second))
}

func (suite *WatchersTestSuite) TestSingleShot() {
	watch := suite.watchers.WatchPrefix([]byte("a"))

	suite.watchers.Wake([]byte("abc"))
	// A second wake must not touch the spent subscription.
	suite.watchers.Wake([]byte("abc"))

	assert.True(suite.T(), fired(watch, time.Second))
}

func (suite *WatchersTestSuite) TestMultipleWaitersSamePrefix() {
	first := suite.watchers.WatchPrefix([]byte("a"))
	second := suite.watchers.WatchPrefix([]byte("a"))

	suite.watchers.Wake([]byte("abc"))

	assert.True(suite.T(), fired(first, time.Second))
	assert.True(suite.T(), fired(second, time.Second))
}

func (suite *WatchersTestSuite) TestAbandonedWatcherIsHarmless() {
	suite.watchers.WatchPrefix([]byte("a"))

	// Nobody is listening; wake must still complete.
	suite.watchers.Wake([]byte("abc"))
}

func TestRunWatchersSuite(t *testing.T) {
	suite.Run(t, new(WatchersTestSuite))
}
