package live

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscription struct {
	events chan api.Event
	closes atomic.Int32
}

func (f *fakeSubscription) Events() <-chan api.Event { return f.events }
func (f *fakeSubscription) Close() error {
	f.closes.Add(1)
	return nil
}

type fakeSubscriber struct {
	mu     sync.Mutex
	calls  int
	topics []api.Topic
	sub    *fakeSubscription
	err    error
}

func (f *fakeSubscriber) Subscribe(_ context.Context, topics ...api.Topic) (api.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.topics = topics
	if f.err != nil {
		return nil, f.err
	}
	f.sub = &fakeSubscription{events: make(chan api.Event, 4)}
	return f.sub, nil
}

func counter() (Fetch[int], *atomic.Int32) {
	var n atomic.Int32
	return func(context.Context) (int, error) {
		return int(n.Add(1)), nil
	}, &n
}

func TestSkip_NeverFetchesOrSubscribes(t *testing.T) {
	q := Skip[[]string]()

	assert.True(t, q.Skipped())
	v, ok := q.Get()
	assert.False(t, ok)
	assert.Nil(t, v)
	assert.NoError(t, q.Err())
	assert.NoError(t, q.Close())

	ch, cancel := q.Observe()
	defer cancel()
	select {
	case <-ch:
		t.Fatal("skipped query must not deliver values")
	default:
	}
}

func TestDisabled_NoData(t *testing.T) {
	q := Disabled[int]()
	assert.True(t, q.Disabled())
	assert.False(t, q.Skipped())
	_, ok := q.Get()
	assert.False(t, ok)
	assert.NoError(t, q.Close())
}

func TestWatch_SubscribesThenFetches(t *testing.T) {
	sub := &fakeSubscriber{}
	topics := []api.Topic{api.UserTopic(api.CartItems, "u1")}

	var subscribedBeforeFetch bool
	fetch := func(context.Context) (string, error) {
		sub.mu.Lock()
		subscribedBeforeFetch = sub.calls == 1
		sub.mu.Unlock()
		return "v1", nil
	}

	q := Watch(context.Background(), sub, topics, fetch, logging.Nop{})
	defer q.Close()

	assert.True(t, subscribedBeforeFetch)
	assert.Equal(t, topics, sub.topics)
	v, ok := q.Get()
	require.True(t, ok)
	assert.Equal(t, "v1", v)
}

func TestWatch_RefetchesOnEvent(t *testing.T) {
	sub := &fakeSubscriber{}
	fetch, n := counter()

	q := Watch(context.Background(), sub, nil, fetch, nil)
	defer q.Close()

	ch, cancel := q.Observe()
	defer cancel()
	assert.Equal(t, 1, <-ch)

	sub.sub.events <- api.Event{}
	select {
	case v := <-ch:
		assert.Equal(t, 2, v)
	case <-time.After(2 * time.Second):
		t.Fatal("no pushed update")
	}
	assert.Equal(t, int32(2), n.Load())
}

func TestWatch_FetchErrorKeepsLastValue(t *testing.T) {
	sub := &fakeSubscriber{}
	boom := errors.New("boom")
	var calls atomic.Int32
	fetch := func(context.Context) (int, error) {
		if calls.Add(1) == 1 {
			return 7, nil
		}
		return 0, boom
	}

	q := Watch(context.Background(), sub, nil, fetch, nil)
	defer q.Close()

	sub.sub.events <- api.Event{}
	require.Eventually(t, func() bool { return errors.Is(q.Err(), boom) }, 2*time.Second, 10*time.Millisecond)

	v, ok := q.Get()
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestWatch_SubscribeFailureStillReadsOnce(t *testing.T) {
	sub := &fakeSubscriber{err: errors.New("offline")}
	fetch, _ := counter()

	q := Watch(context.Background(), sub, nil, fetch, nil)
	v, ok := q.Get()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.NoError(t, q.Err())
	assert.NoError(t, q.Close())
}

func TestClose_ReleasesSubscriptionOnce(t *testing.T) {
	sub := &fakeSubscriber{}
	fetch, n := counter()

	q := Watch(context.Background(), sub, nil, fetch, nil)
	ch, _ := q.Observe()

	require.NoError(t, q.Close())
	require.NoError(t, q.Close())
	assert.Equal(t, int32(1), sub.sub.closes.Load())

	// drain the initial value; then the channel must be closed
	<-ch
	_, open := <-ch
	assert.False(t, open)

	before := n.Load()
	select {
	case sub.sub.events <- api.Event{}:
	default:
	}
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, before, n.Load(), "closed query must not refetch")
}

func TestObserve_LatestWins(t *testing.T) {
	sub := &fakeSubscriber{}
	fetch, _ := counter()

	q := Watch(context.Background(), sub, nil, fetch, nil)
	defer q.Close()

	ch, cancel := q.Observe()
	defer cancel()

	q.publish(10)
	q.publish(11)
	assert.Equal(t, 11, <-ch)
}

func TestPending_SkippedUntilStarted(t *testing.T) {
	q := Pending[int]()
	assert.True(t, q.Skipped())
	assert.False(t, q.Disabled())

	ch, cancel := q.Observe()
	defer cancel()

	fetch, n := counter()
	sub := &fakeSubscriber{}
	q.Start(context.Background(), sub, []api.Topic{api.UserTopic(api.CartItems, "u1")}, fetch, logging.Nop{})
	defer q.Close()

	assert.False(t, q.Skipped())
	assert.Equal(t, int32(1), n.Load())
	select {
	case v := <-ch:
		assert.Equal(t, 1, v)
	case <-time.After(time.Second):
		t.Fatal("observer registered before Start got nothing")
	}

	q.Start(context.Background(), sub, nil, fetch, logging.Nop{})
	assert.Equal(t, 1, sub.calls, "second Start is ignored")

	sub.sub.events <- api.Event{}
	assert.Eventually(t, func() bool { v, _ := q.Get(); return v == 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, q.Close())
	assert.Equal(t, int32(1), sub.sub.closes.Load())
}

func TestPending_CloseBeforeStart(t *testing.T) {
	q := Pending[int]()
	ch, _ := q.Observe()
	require.NoError(t, q.Close())

	_, open := <-ch
	assert.False(t, open)

	fetch, n := counter()
	sub := &fakeSubscriber{}
	q.Start(context.Background(), sub, nil, fetch, logging.Nop{})
	assert.Zero(t, sub.calls, "a closed query never subscribes")
	assert.Zero(t, n.Load())
	require.NoError(t, q.Close())
}
