package sound

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeploySoundsUseReloadSamples(t *testing.T) {
	assert.Equal(t, "ak47_reload_boltpull", DeployAK47.String())
	assert.Equal(t, "usp_reload_slideback", DeployUSP.String())
	assert.Equal(t, "knife_deploy", DeployKnife.String())
}

func TestEveryIDIsNamed(t *testing.T) {
	for id := None; id < numSounds; id++ {
		assert.NotEmpty(t, id.String(), "sound %d", id)
	}
}
