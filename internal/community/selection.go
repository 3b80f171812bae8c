package community

import (
	"fmt"

	"github.com/malezi/malezi/internal/models"
)

// Selection tracks the caller's position in the channel→topic hierarchy.
// A topic can only be selected under the currently selected channel, and
// switching channels always drops the topic. Pure state, no I/O.
type Selection struct {
	channel *models.Channel
	topic   *models.Topic
}

// Channel returns the selected channel, or false if none is selected.
func (s *Selection) Channel() (models.Channel, bool) {
	if s.channel == nil {
		return models.Channel{}, false
	}
	return *s.channel, true
}

// Topic returns the selected topic, or false if none is selected.
func (s *Selection) Topic() (models.Topic, bool) {
	if s.topic == nil {
		return models.Topic{}, false
	}
	return *s.topic, true
}

// SelectChannel makes ch current and clears any topic selection, even
// when re-selecting the same channel.
func (s *Selection) SelectChannel(ch models.Channel) {
	s.channel = &ch
	s.topic = nil
}

// SelectTopic makes tp current. It fails unless tp belongs to the
// selected channel.
func (s *Selection) SelectTopic(tp models.Topic) error {
	if s.channel == nil {
		return fmt.Errorf("no channel selected")
	}
	if tp.ChannelID != s.channel.ID {
		return fmt.Errorf("topic %s does not belong to channel %s", tp.ID, s.channel.ID)
	}
	s.topic = &tp
	return nil
}

// ClearTopic drops the topic selection, keeping the channel.
func (s *Selection) ClearTopic() {
	s.topic = nil
}

// ClearChannel drops both the channel and topic selections.
func (s *Selection) ClearChannel() {
	s.channel = nil
	s.topic = nil
}
