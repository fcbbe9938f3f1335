package core

import (
	"errors"
	"strconv"
	"testing"

	"gotest.tools/assert"
)

type mockedResultStream struct {
	max     int
	current int
}

func newMockedResultStream(maxRows int) *mockedResultStream {
	return &mockedResultStream{
		max: maxRows,
	}
}

func (mir *mockedResultStream) Meta() *Meta {
	return &Meta{}
}

func (mir *mockedResultStream) Header() Header {
	return Header{"header1", "header2"}
}

func (mir *mockedResultStream) Next() (Row, error) {
	if mir.current < mir.max {
		num := mir.current
		mir.current += 1
		return Row{num, strconv.Itoa(num)}, nil
	}

	return nil, errors.New("no next row")
}

func (mir *mockedResultStream) HasNext() bool {
	return mir.current < mir.max
}

func (mir *mockedResultStream) Close() {}

func (mir *mockedResultStream) Range(from int, to int) []Row {
	var rows []Row

	for i := from; i < to; i++ {
		rows = append(rows, Row{i, strconv.Itoa(i)})
	}
	return rows
}

func TestCache(t *testing.T) {
	// prepare cache and mocks
	result := new(Result)

	numOfRows := 10
	stream := newMockedResultStream(numOfRows)

	err := result.SetIter(stream, 0)
	assert.NilError(t, err)

	type testCase struct {
		name          string
		from          int
		to            int
		expectedRows  []Row
		expectedError error
	}

	testCases := []testCase{
		{
			name:          "get all",
			from:          0,
			to:            -1,
			expectedRows:  stream.Range(0, numOfRows),
			expectedError: nil,
		},
		{
			name:          "get basic range",
			from:          0,
			to:            3,
			expectedRows:  stream.Range(0, 3),
			expectedError: nil,
		},
		{
			name:          "get last 2",
			from:          -3,
			to:            -1,
			expectedRows:  stream.Range(numOfRows-2, numOfRows),
			expectedError: nil,
		},
		{
			name:          "get only one",
			from:          0,
			to:            1,
			expectedRows:  stream.Range(0, 1),
			expectedError: nil,
		},

		{
			name:          "invalid range",
			from:          5,
			to:            1,
			expectedRows:  nil,
			expectedError: ErrInvalidRange(5, 1),
		},
		{
			name:          "invalid range (even if 10 can be higher than -1, its undefined and should fail)",
			from:          -5,
			to:            10,
			expectedRows:  nil,
			expectedError: ErrInvalidRange(-5, 10),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := result.Rows(tc.from, tc.to)
			if err != nil && tc.expectedError != nil {
				assert.Equal(t, err.Error(), tc.expectedError.Error())
				return
			}

			assert.DeepEqual(t, rows, tc.expectedRows)
		})
	}
}

func TestCacheLimit(t *testing.T) {
	result := new(Result)

	err := result.SetIter(newMockedResultStream(10), 3)
	assert.NilError(t, err)

	assert.Equal(t, result.Len(), 3)
	assert.Equal(t, result.Truncated(), true)

	result = new(Result)
	err = result.SetIter(newMockedResultStream(10), 20)
	assert.NilError(t, err)

	assert.Equal(t, result.Len(), 10)
	assert.Equal(t, result.Truncated(), false)
}

func TestCacheDict(t *testing.T) {
	result := new(Result)

	err := result.SetIter(newMockedResultStream(3), 0)
	assert.NilError(t, err)

	assert.DeepEqual(t, []string(result.Keys()), []string{"header1", "header2"})

	dict := result.Dict()
	assert.DeepEqual(t, dict["header1"], []any{0, 1, 2})
	assert.DeepEqual(t, dict["header2"], []any{"0", "1", "2"})
}
