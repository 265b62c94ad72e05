package sound

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// Player plays a short embedded alert sound.
type Player struct {
	data   []byte
	volume float64

	once    sync.Once
	buffer  *beep.Buffer
	initErr error
}

// New creates a Player for WAV data. volume is relative to the file, in
// powers of two: 0 keeps the original level, -1 halves it.
func New(data []byte, volume float64) *Player {
	return &Player{data: data, volume: volume}
}

// Play starts the alert sound without blocking. The audio device is opened
// on the first call; if that fails every later call returns the same error.
func (player *Player) Play() error {
	player.once.Do(func() {
		buffer, format, err := decode(player.data)
		if err != nil {
			player.initErr = err
			return
		}
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			player.initErr = fmt.Errorf("init speaker: %w", err)
			return
		}
		player.buffer = buffer
	})
	if player.initErr != nil {
		return player.initErr
	}

	speaker.Play(&effects.Volume{
		Streamer: player.buffer.Streamer(0, player.buffer.Len()),
		Base:     2,
		Volume:   player.volume,
		Silent:   false,
	})
	return nil
}

func decode(data []byte) (*beep.Buffer, beep.Format, error) {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return buffer, format, nil
}
