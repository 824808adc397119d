package backend

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/suite"

	"github.com/c2fo/doclib/mocks"
)

/**********************************
 ************TESTS*****************
 **********************************/

type testSuite struct {
	suite.Suite
}

func (s *testSuite) TestBackend() {
	//
	m1 := mocks.NewProvider(s.T())
	Register("mock", m1)

	// register a new backend
	m2 := mocks.NewProvider(s.T())
	Register("new mock", m2)

	// register another backend
	m3 := mocks.NewProvider(s.T())
	Register("newest mock", m3)

	// get backend
	b := Backend("new mock")
	s.Same(m2, b, "registered provider is returned")
	s.Nil(Backend("unknown"))

	// check all RegisteredBackends names
	s.Equal([]string{"mock", "new mock", "newest mock"}, RegisteredBackends(), "found 3 sorted backends")

	// Unregister a backend
	Unregister("newest mock")
	s.Len(RegisteredBackends(), 2, "found 2 backends")

	// Unregister all backends
	UnregisterAll()
	s.Empty(RegisteredBackends(), "found 0 backends")
}

func (s *testSuite) TestReadChunks() {
	var chunks []string
	var offsets []int64
	var lasts []bool
	n, total, err := ReadChunks(strings.NewReader("abcdefghij"), 4, func(chunk []byte, offset int64, last bool) error {
		chunks = append(chunks, string(chunk))
		offsets = append(offsets, offset)
		lasts = append(lasts, last)
		return nil
	})
	s.Require().NoError(err)
	s.Equal(3, n)
	s.Equal(int64(10), total)
	s.Equal([]string{"abcd", "efgh", "ij"}, chunks)
	s.Equal([]int64{0, 4, 8}, offsets)
	s.Equal([]bool{false, false, true}, lasts)
}

func (s *testSuite) TestReadChunks_ExactMultiple() {
	var lasts []bool
	n, total, err := ReadChunks(bytes.NewReader([]byte("abcdefgh")), 4, func(_ []byte, _ int64, last bool) error {
		lasts = append(lasts, last)
		return nil
	})
	s.Require().NoError(err)
	s.Equal(2, n)
	s.Equal(int64(8), total)
	s.Equal([]bool{false, true}, lasts)
}

func (s *testSuite) TestReadChunks_Empty() {
	var calls int
	n, total, err := ReadChunks(strings.NewReader(""), 4, func(chunk []byte, _ int64, last bool) error {
		calls++
		s.Empty(chunk)
		s.True(last)
		return nil
	})
	s.Require().NoError(err)
	s.Equal(1, n, "an empty file is uploaded as a single empty chunk")
	s.Zero(total)
	s.Equal(1, calls)
}

func (s *testSuite) TestReadChunks_CallbackError() {
	_, _, err := ReadChunks(strings.NewReader("abcdefgh"), 2, func(_ []byte, offset int64, _ bool) error {
		if offset == 2 {
			return errTest
		}
		return nil
	})
	s.ErrorIs(err, errTest)
}

func (s *testSuite) TestReadChunks_InvalidSize() {
	_, _, err := ReadChunks(strings.NewReader("abc"), 0, func([]byte, int64, bool) error { return nil })
	s.Error(err)
}

func (s *testSuite) TestReadChunks_HugeChunkSize() {
	var got []string
	n, total, err := ReadChunks(strings.NewReader("hello"), 1<<50, func(chunk []byte, offset int64, last bool) error {
		s.Zero(offset)
		s.True(last)
		s.Less(cap(chunk), 1<<20, "buffer is sized by the data read, not the chunk size")
		got = append(got, string(chunk))
		return nil
	})
	s.Require().NoError(err)
	s.Equal(1, n)
	s.EqualValues(5, total)
	s.Equal([]string{"hello"}, got)
}

func (s *testSuite) TestReadChunks_ReaderError() {
	r := io.MultiReader(strings.NewReader("abcdef"), iotest.ErrReader(errTest))
	n, total, err := ReadChunks(r, 4, func([]byte, int64, bool) error { return nil })
	s.ErrorIs(err, errTest)
	s.Zero(n, "the first chunk is held back until the next one is read")
	s.Zero(total)
}

type testError string

func (e testError) Error() string { return string(e) }

const errTest = testError("stop")

func TestBackend(t *testing.T) {
	suite.Run(t, new(testSuite))
}
