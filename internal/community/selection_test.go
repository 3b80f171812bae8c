package community

import (
	"testing"

	"github.com/malezi/malezi/internal/models"
)

func TestSelectChannelClearsTopic(t *testing.T) {
	var sel Selection
	ch := models.Channel{ID: "c1", Name: "general"}
	tp := models.Topic{ID: "t1", ChannelID: "c1"}

	sel.SelectChannel(ch)
	if err := sel.SelectTopic(tp); err != nil {
		t.Fatal(err)
	}

	sel.SelectChannel(models.Channel{ID: "c2", Name: "other"})
	if _, ok := sel.Topic(); ok {
		t.Error("topic should be cleared when the channel changes")
	}

	got, ok := sel.Channel()
	if !ok || got.ID != "c2" {
		t.Errorf("got channel %+v, want c2", got)
	}
}

func TestReselectingSameChannelClearsTopic(t *testing.T) {
	var sel Selection
	ch := models.Channel{ID: "c1"}

	sel.SelectChannel(ch)
	if err := sel.SelectTopic(models.Topic{ID: "t1", ChannelID: "c1"}); err != nil {
		t.Fatal(err)
	}
	sel.SelectChannel(ch)
	if _, ok := sel.Topic(); ok {
		t.Error("re-selecting the channel should still clear the topic")
	}
}

func TestSelectTopicRequiresChannel(t *testing.T) {
	var sel Selection
	if err := sel.SelectTopic(models.Topic{ID: "t1", ChannelID: "c1"}); err == nil {
		t.Error("selecting a topic with no channel should fail")
	}
}

func TestSelectTopicRejectsWrongChannel(t *testing.T) {
	var sel Selection
	sel.SelectChannel(models.Channel{ID: "c1"})

	if err := sel.SelectTopic(models.Topic{ID: "t1", ChannelID: "c2"}); err == nil {
		t.Error("selecting a topic under another channel should fail")
	}
	if _, ok := sel.Topic(); ok {
		t.Error("failed selection should not set the topic")
	}
}

func TestClearChannelClearsBoth(t *testing.T) {
	var sel Selection
	sel.SelectChannel(models.Channel{ID: "c1"})
	if err := sel.SelectTopic(models.Topic{ID: "t1", ChannelID: "c1"}); err != nil {
		t.Fatal(err)
	}

	sel.ClearChannel()
	if _, ok := sel.Channel(); ok {
		t.Error("channel should be cleared")
	}
	if _, ok := sel.Topic(); ok {
		t.Error("topic should be cleared")
	}
}

func TestClearTopicKeepsChannel(t *testing.T) {
	var sel Selection
	sel.SelectChannel(models.Channel{ID: "c1"})
	if err := sel.SelectTopic(models.Topic{ID: "t1", ChannelID: "c1"}); err != nil {
		t.Fatal(err)
	}

	sel.ClearTopic()
	if _, ok := sel.Topic(); ok {
		t.Error("topic should be cleared")
	}
	if _, ok := sel.Channel(); !ok {
		t.Error("channel should survive ClearTopic")
	}
}
