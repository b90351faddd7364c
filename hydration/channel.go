package hydration

import "strings"

// Channel is one reminder output
type Channel uint8

const (
	ChannelNotification Channel = iota
	ChannelAudio
	ChannelVisual
	channelCount
)

var channelNames = [...]string{
	ChannelNotification: "notification",
	ChannelAudio:        "audio",
	ChannelVisual:       "visual",
}

func (c Channel) String() string {
	if c >= channelCount {
		return "unknown"
	}
	return channelNames[c]
}

// Channels lists every channel in checkbox order
func Channels() []Channel {
	return []Channel{ChannelNotification, ChannelAudio, ChannelVisual}
}

// ChannelSet is a bit set of enabled reminder channels
type ChannelSet uint8

func (s ChannelSet) Has(c Channel) bool {
	return s&(1<<c) != 0
}

func (s *ChannelSet) Enable(c Channel) {
	*s |= 1 << c
}

func (s *ChannelSet) Disable(c Channel) {
	*s &^= 1 << c
}

// Toggle flips c and returns its new state
func (s *ChannelSet) Toggle(c Channel) bool {
	*s ^= 1 << c
	return s.Has(c)
}

// Empty reports whether no channel is enabled
func (s ChannelSet) Empty() bool {
	return s == 0
}

func (s ChannelSet) String() string {
	var names []string
	for _, c := range Channels() {
		if s.Has(c) {
			names = append(names, c.String())
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}
