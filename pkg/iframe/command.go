// Package iframe defines the protocol spoken with the hosted wrapper page
// around the YouTube IFrame API: a closed set of player commands rendered
// to JavaScript and the named event channels the page posts back.
package iframe

import (
	"fmt"
	"strconv"
)

// Command is a single operation against the wrapper page's player. JS
// renders the literal JavaScript call evaluated inside the embedded view;
// nothing else in the codebase builds JS text.
type Command interface {
	JS() string
}

type Play struct{}

func (Play) JS() string { return "play()" }

type Pause struct{}

func (Pause) JS() string { return "pause()" }

type Load struct {
	VideoID string
	StartAt int
}

func (c Load) JS() string {
	return fmt.Sprintf("loadById(%s, %d)", strconv.Quote(c.VideoID), c.StartAt)
}

type Cue struct {
	VideoID string
	StartAt int
}

func (c Cue) JS() string {
	return fmt.Sprintf("cueById(%s, %d)", strconv.Quote(c.VideoID), c.StartAt)
}

type Mute struct{}

func (Mute) JS() string { return "mute()" }

type UnMute struct{}

func (UnMute) JS() string { return "unMute()" }

type SetVolume struct {
	Volume int
}

func (c SetVolume) JS() string { return fmt.Sprintf("setVolume(%d)", c.Volume) }

type Seek struct {
	Seconds        float64
	AllowSeekAhead bool
}

func (c Seek) JS() string {
	return fmt.Sprintf("seekTo(%s, %t)", strconv.FormatFloat(c.Seconds, 'f', -1, 64), c.AllowSeekAhead)
}

type HideAnnotations struct{}

func (HideAnnotations) JS() string { return "hideAnnotations()" }
