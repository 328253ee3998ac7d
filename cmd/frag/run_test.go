package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfoust/frag/pkg/game/sound"
	"github.com/cfoust/frag/pkg/recording"
)

func TestRunRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.frag")

	err := runCommand(context.Background(), runOptions{
		Frames:  120,
		Record:  path,
		Dummies: 2,
	})
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	header, frames, err := recording.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, uint(60), header.TickRate)
	require.NotEmpty(t, frames)

	shots := 0
	for _, frame := range frames {
		for _, cue := range frame.Cues {
			if cue.Sound == sound.ShootAK47 {
				shots++
			}
		}
	}
	assert.Greater(t, shots, 0)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runCommand(ctx, runOptions{
		Frames:  1000,
		Dummies: -1,
	})
	assert.NoError(t, err)
}

func TestRunBadConfig(t *testing.T) {
	err := runCommand(context.Background(), runOptions{
		Configs: []string{filepath.Join(t.TempDir(), "missing.yaml")},
		Frames:  1,
	})
	assert.Error(t, err)
}
