package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testEvent struct {
	Text string
}

type exampleEvent int

const (
	exampleC exampleEvent = iota
	exampleD
)

func TestAsRecoversConcreteType(t *testing.T) {
	var ev Event = testEvent{Text: "Hello, World!"}

	got, ok := As[testEvent](ev)
	assert.True(t, ok)
	assert.Equal(t, "Hello, World!", got.Text)

	_, ok = As[exampleEvent](ev)
	assert.False(t, ok, "a non-matching cast reports false")

	_, ok = As[*testEvent](ev)
	assert.False(t, ok, "pointer and value types are distinct")
}

func TestIsDistinguishesFamilies(t *testing.T) {
	sender, receiver := NewChannel()
	for _, ev := range []Event{testEvent{Text: "A"}, exampleC, testEvent{Text: "B"}, exampleD} {
		assert.NoError(t, sender.Send(ev))
	}

	var tests, examples int
	for {
		ev, ok := receiver.Next()
		if !ok {
			break
		}
		switch {
		case Is[testEvent](ev):
			tests++
		case Is[exampleEvent](ev):
			examples++
		}
	}
	assert.Equal(t, 2, tests)
	assert.Equal(t, 2, examples)
}

func TestTypeNameAndDescribe(t *testing.T) {
	assert.Equal(t, "events.Quit", TypeName(Quit{}))
	assert.Equal(t, "events.testEvent", TypeName(testEvent{}))
	assert.Equal(t, "<nil>", TypeName(nil))
	assert.Equal(t, "events.testEvent{Text:hi}", Describe(testEvent{Text: "hi"}))
}
