// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform, plus the TOML server config.
package config

// BomberConfig contains all tuning for the bomb game.
type BomberConfig struct {
	Grid       BomberGrid       `yaml:"grid"`
	Player     BomberPlayer     `yaml:"player"`
	Enemies    []BomberEnemy    `yaml:"enemies"`
	AI         BomberAI         `yaml:"ai"`
	Bomb       BomberBomb       `yaml:"bomb"`
	Movement   BomberMovement   `yaml:"movement"`
	Scoring    BomberScoring    `yaml:"scoring"`
	Particles  BomberParticles  `yaml:"particles"`
	Director   BomberDirector   `yaml:"director"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BomberGrid defines the tile map.
type BomberGrid struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	TileSize        float64 `yaml:"tile_size"`
	SoftBlockChance float64 `yaml:"soft_block_chance"`
	ClearRadius     int     `yaml:"clear_radius"` // cells near the player start kept free of soft blocks
}

// BomberPlayer defines the human actor.
type BomberPlayer struct {
	StartX    int     `yaml:"start_x"` // grid cell
	StartY    int     `yaml:"start_y"`
	Speed     float64 `yaml:"speed"` // pixels per second
	MaxBombs  int     `yaml:"max_bombs"`
	BombRange int     `yaml:"bomb_range"`
}

// BomberEnemy is one AI spawn.
type BomberEnemy struct {
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	Behavior string `yaml:"behavior"` // wander, chase or flee
}

// BomberAI defines AI decision timing and speeds.
type BomberAI struct {
	ReactionTime  float64 `yaml:"reaction_time"`
	MinReaction   float64 `yaml:"min_reaction"`
	ReactionScale float64 `yaml:"reaction_scale"` // reaction shrink at full intensity
	WanderSpeed   float64 `yaml:"wander_speed"`
	ChaseSpeed    float64 `yaml:"chase_speed"`
	FleeSpeed     float64 `yaml:"flee_speed"`
}

// BomberBomb defines fuse and blast timing.
type BomberBomb struct {
	Fuse              float64 `yaml:"fuse"`
	ExplosionDuration float64 `yaml:"explosion_duration"`
}

// BomberMovement defines collision sampling.
type BomberMovement struct {
	Hitbox float64 `yaml:"hitbox"`
}

// BomberScoring defines points awarded.
type BomberScoring struct {
	Kill      int `yaml:"kill"`
	SoftBlock int `yaml:"soft_block"`
}

// BomberParticles defines the detonation effect.
type BomberParticles struct {
	Max      int     `yaml:"max"`
	Burst    int     `yaml:"burst"`
	Lifetime float64 `yaml:"lifetime"`
	Speed    float64 `yaml:"speed"`
}

// BomberDirector defines the pacing ramp.
type BomberDirector struct {
	LogEvery      float64       `yaml:"log_every"` // seconds between intensity log lines
	Reinforcement Reinforcement `yaml:"reinforcement"`
}

// Reinforcement spawns extra AI agents once intensity passes a threshold.
type Reinforcement struct {
	Enabled   bool    `yaml:"enabled"`
	Threshold float64 `yaml:"threshold"`
	Every     float64 `yaml:"every"` // seconds between spawns
	Max       int     `yaml:"max"`
	Behavior  string  `yaml:"behavior"`
}

// RacingConfig contains all tuning for the racing game.
type RacingConfig struct {
	Road       RacingRoad       `yaml:"road"`
	Camera     RacingCamera     `yaml:"camera"`
	Physics    RacingPhysics    `yaml:"physics"`
	Traffic    RacingTraffic    `yaml:"traffic"`
	Race       RacingRace       `yaml:"race"`
	Timing     RacingTiming     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RacingRoad defines the track geometry.
type RacingRoad struct {
	Segments      int     `yaml:"segments"`
	SegmentLength float64 `yaml:"segment_length"`
	RumbleLength  int     `yaml:"rumble_length"`
	Width         float64 `yaml:"width"`
	DrawDistance  int     `yaml:"draw_distance"`
	Curves        []Curve `yaml:"curves"`
}

// Curve bends segments in (From, To) exclusive by Amount per segment.
type Curve struct {
	From   int     `yaml:"from"`
	To     int     `yaml:"to"`
	Amount float64 `yaml:"amount"`
}

// RacingCamera defines the projection.
type RacingCamera struct {
	FOV    float64 `yaml:"fov"` // degrees
	Height float64 `yaml:"height"`
}

// RacingPhysics defines the player speed model. Speeds are world units per second.
type RacingPhysics struct {
	MaxSpeed      float64 `yaml:"max_speed"`
	Accel         float64 `yaml:"accel"`
	Braking       float64 `yaml:"braking"`
	Decel         float64 `yaml:"decel"`
	OffRoadDecel  float64 `yaml:"off_road_decel"`
	OffRoadLimit  float64 `yaml:"off_road_limit"`
	LateralLimit  float64 `yaml:"lateral_limit"`
	BoostAccel    float64 `yaml:"boost_accel"`
	BoostHeadroom float64 `yaml:"boost_headroom"`
	BoostDuration float64 `yaml:"boost_duration"`
	BoostCooldown float64 `yaml:"boost_cooldown"`
}

// RacingTraffic defines the AI cars.
type RacingTraffic struct {
	Cars        int     `yaml:"cars"`
	MinSpeed    float64 `yaml:"min_speed"` // fraction of max speed
	MaxSpeed    float64 `yaml:"max_speed"`
	LaneSpread  float64 `yaml:"lane_spread"` // offsets fall in [-spread, spread]
	PlayerWidth float64 `yaml:"player_width"`
	CarWidth    float64 `yaml:"car_width"`
	Bump        float64 `yaml:"bump"`    // distance the player is pushed behind a car on contact
	Overlap     float64 `yaml:"overlap"` // shrinks both widths in the contact test; 1 uses them as is
}

// RacingRace defines the race format.
type RacingRace struct {
	Laps int `yaml:"laps"`
}

// RacingTiming defines the fixed-step accumulator.
type RacingTiming struct {
	Step     float64 `yaml:"step"`
	MaxFrame float64 `yaml:"max_frame"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig picks what drives the difficulty ramp.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "seconds", "laps" or "none"
	MaxAt int    `yaml:"max_at"` // progress at which the level reaches 1
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset adjusts a difficulty block for a preset.
func (d *DifficultyConfig) ApplyPreset(preset DifficultyPreset) {
	if preset == DifficultyFixed {
		d.Enabled = false
		return
	}
	d.Enabled = true
	d.InitialLevel = InitialLevelForPreset(preset)
}
