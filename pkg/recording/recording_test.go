package recording

import (
	"bytes"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfoust/frag/pkg/game/events"
	"github.com/cfoust/frag/pkg/game/sound"
	"github.com/cfoust/frag/pkg/game/weapon"
)

func TestRoundTrip(t *testing.T) {
	var buffer bytes.Buffer

	header := NewHeader(60)
	header.Created = time.Unix(1700000000, 0)

	writer, err := NewWriter(&buffer, header)
	require.NoError(t, err)
	writer.SkipEmpty = true

	frames := []events.Frame{
		{
			Tick: 3,
			Time: 50 * time.Millisecond,
			Cues: []events.Cue{{Actor: 0, Sound: sound.ShootAK47}},
			Damage: []events.Damage{{
				Attacker: 0,
				Victim:   1,
				Weapon:   weapon.AK47,
				Amount:   100,
				Headshot: true,
				Lethal:   true,
				Health:   0,
			}},
			Deaths: []events.Death{{Actor: 1}},
			Splatters: []events.Splatter{{
				Victim:   1,
				Position: mgl64.Vec3{0, 0, -11.5},
				Normal:   mgl64.Vec3{0, 0, 1},
			}},
		},
		{Tick: 4, Time: 66 * time.Millisecond},
		{
			Tick:     300,
			Time:     5 * time.Second,
			Respawns: []events.Respawn{{Actor: 1, Position: mgl64.Vec3{0, 5, 8}}},
		},
	}
	for _, frame := range frames {
		require.NoError(t, writer.Write(frame))
	}
	require.NoError(t, writer.Flush())
	assert.Equal(t, 2, writer.Frames())

	read, got, err := ReadAll(&buffer)
	require.NoError(t, err)
	assert.Equal(t, header.Session, read.Session)
	assert.Equal(t, uint(60), read.TickRate)
	assert.True(t, header.Created.Equal(read.Created))

	require.Len(t, got, 2)
	assert.Equal(t, frames[0], got[0])
	assert.Equal(t, frames[2], got[1])
}

func TestNotARecording(t *testing.T) {
	data, err := cbor.Marshal(map[string]int{"hello": 1})
	require.NoError(t, err)

	_, err = NewReader(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrFormat)

	_, err = NewReader(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestFutureVersion(t *testing.T) {
	var buffer bytes.Buffer
	header := NewHeader(60)
	header.Version = Version + 1

	writer, err := NewWriter(&buffer, header)
	require.NoError(t, err)
	require.NoError(t, writer.Flush())

	_, err = NewReader(&buffer)
	assert.Error(t, err)
}
