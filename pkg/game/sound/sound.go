package sound

type ID int32

const (
	None ID = iota
	ShootAK47
	ShootUSP
	DryFireRifle
	DryFirePistol
	KnifeSlash
	KnifeHitWall
	KnifeHitPlayer
	DeployAK47
	DeployUSP
	DeployKnife
	AK47ClipOut
	AK47ClipIn
	AK47BoltPull
	USPClipOut
	USPClipIn
	USPSlideBack
	Respawn1
	Respawn2
	Respawn3
	numSounds
)

var names = [numSounds]string{
	None:           "none",
	ShootAK47:      "ak47_shoot",
	ShootUSP:       "usp_shoot",
	DryFireRifle:   "ak47_dryfire",
	DryFirePistol:  "usp_dryfire",
	KnifeSlash:     "knife_slash",
	KnifeHitWall:   "knife_hitwall",
	KnifeHitPlayer: "knife_hitplayer",
	DeployAK47:     "ak47_reload_boltpull",
	DeployUSP:      "usp_reload_slideback",
	DeployKnife:    "knife_deploy",
	AK47ClipOut:    "ak47_reload_clipout",
	AK47ClipIn:     "ak47_reload_clipin",
	AK47BoltPull:   "ak47_reload_boltpull",
	USPClipOut:     "usp_reload_clipout",
	USPClipIn:      "usp_reload_clipin",
	USPSlideBack:   "usp_reload_slideback",
	Respawn1:       "respawn_1",
	Respawn2:       "respawn_2",
	Respawn3:       "respawn_3",
}

var Respawns = []ID{Respawn1, Respawn2, Respawn3}

func (id ID) String() string {
	if id < 0 || id >= numSounds {
		return "unknown"
	}
	return names[id]
}
