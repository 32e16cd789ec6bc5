package confirm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemover struct {
	removed []string
	err     error
}

func (r *fakeRemover) Remove(id string) error {
	if r.err != nil {
		return r.err
	}
	r.removed = append(r.removed, id)
	return nil
}

func TestStartsIdle(t *testing.T) {
	f := New(&fakeRemover{}, nil)
	_, pending := f.Pending()
	assert.False(t, pending)
}

func TestRequestThenCancel(t *testing.T) {
	r := &fakeRemover{}
	f := New(r, nil)

	f.Request("2")
	id, pending := f.Pending()
	require.True(t, pending)
	assert.Equal(t, "2", id)

	f.Cancel()
	_, pending = f.Pending()
	assert.False(t, pending)
	assert.Empty(t, r.removed)
}

func TestRequestThenConfirm(t *testing.T) {
	r := &fakeRemover{}
	f := New(r, nil)

	f.Request("2")
	id, err := f.Confirm()
	require.NoError(t, err)

	assert.Equal(t, "2", id)
	assert.Equal(t, []string{"2"}, r.removed)
	_, pending := f.Pending()
	assert.False(t, pending)
}

func TestLastRequestWins(t *testing.T) {
	r := &fakeRemover{}
	f := New(r, nil)

	f.Request("1")
	f.Request("3")
	_, err := f.Confirm()
	require.NoError(t, err)

	assert.Equal(t, []string{"3"}, r.removed)
}

func TestConfirmWhenIdleIsNoop(t *testing.T) {
	r := &fakeRemover{}
	f := New(r, nil)

	id, err := f.Confirm()
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Empty(t, r.removed)
}

func TestConfirmFailureStaysPending(t *testing.T) {
	r := &fakeRemover{err: errors.New("disk full")}
	f := New(r, nil)
	f.Request("1")

	_, err := f.Confirm()
	require.Error(t, err)

	id, pending := f.Pending()
	assert.True(t, pending)
	assert.Equal(t, "1", id)
}
