package logging_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/suite"

	"github.com/c2fo/doclib/internal/logging"
)

type loggingSuite struct {
	suite.Suite
	level  zerolog.Level
	logger zerolog.Logger
}

func (s *loggingSuite) SetupTest() {
	s.level = zerolog.GlobalLevel()
	s.logger = log.Logger
}

func (s *loggingSuite) TearDownTest() {
	zerolog.SetGlobalLevel(s.level)
	log.Logger = s.logger
}

func (s *loggingSuite) TestInit() {
	buf := &bytes.Buffer{}
	s.Require().NoError(logging.Init("warn", buf))
	s.Equal(zerolog.WarnLevel, zerolog.GlobalLevel())

	logger := logging.GetLogger("library")
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	s.NotContains(out, "hidden")
	s.Contains(out, "shown")
	s.Contains(out, "component=")
	s.Contains(out, "library")
}

func (s *loggingSuite) TestInit_UnknownLevel() {
	buf := &bytes.Buffer{}
	s.Error(logging.Init("loud", buf))
	s.Equal(zerolog.InfoLevel, zerolog.GlobalLevel())
}

func (s *loggingSuite) TestInit_EmptyLevel() {
	s.Require().NoError(logging.Init("", &bytes.Buffer{}))
	s.Equal(zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestLogging(t *testing.T) {
	suite.Run(t, new(loggingSuite))
}
