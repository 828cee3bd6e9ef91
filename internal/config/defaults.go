package config

import (
	_ "embed"
)

//go:embed defaults/bomber.yaml
var defaultBomberYAML []byte

//go:embed defaults/racing.yaml
var defaultRacingYAML []byte

// DefaultBomberConfig returns the hardcoded bomb game configuration.
func DefaultBomberConfig() BomberConfig {
	return BomberConfig{
		Grid: BomberGrid{
			Width:           15,
			Height:          13,
			TileSize:        40,
			SoftBlockChance: 0.3,
			ClearRadius:     2,
		},
		Player: BomberPlayer{
			StartX:    1,
			StartY:    1,
			Speed:     150,
			MaxBombs:  1,
			BombRange: 2,
		},
		Enemies: []BomberEnemy{
			{X: 13, Y: 11, Behavior: "wander"},
		},
		AI: BomberAI{
			ReactionTime:  1.0,
			MinReaction:   0.2,
			ReactionScale: 0.5,
			WanderSpeed:   50,
			ChaseSpeed:    70,
			FleeSpeed:     60,
		},
		Bomb: BomberBomb{
			Fuse:              3.0,
			ExplosionDuration: 0.5,
		},
		Movement: BomberMovement{Hitbox: 30},
		Scoring:  BomberScoring{Kill: 100, SoftBlock: 10},
		Particles: BomberParticles{
			Max:      200,
			Burst:    12,
			Lifetime: 0.6,
			Speed:    80,
		},
		Director: BomberDirector{
			LogEvery: 10,
			Reinforcement: Reinforcement{
				Enabled:   false,
				Threshold: 0.5,
				Every:     30,
				Max:       3,
				Behavior:  "chase",
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression:  ProgressionConfig{Type: ProgressSeconds, MaxAt: 300},
			Scaling:      ScalingConfig{SpeedMultiplier: 0.5},
		},
	}
}

// DefaultRacingConfig returns the hardcoded racing configuration.
func DefaultRacingConfig() RacingConfig {
	return RacingConfig{
		Road: RacingRoad{
			Segments:      500,
			SegmentLength: 200,
			RumbleLength:  3,
			Width:         2000,
			DrawDistance:  300,
			Curves: []Curve{
				{From: 50, To: 150, Amount: 2},
				{From: 200, To: 300, Amount: -2},
			},
		},
		Camera: RacingCamera{FOV: 100, Height: 1000},
		Physics: RacingPhysics{
			MaxSpeed:      12000,
			Accel:         100,
			Braking:       -300,
			Decel:         -50,
			OffRoadDecel:  -200,
			OffRoadLimit:  10000,
			LateralLimit:  2,
			BoostAccel:    6000,
			BoostHeadroom: 3000,
			BoostDuration: 2,
			BoostCooldown: 5,
		},
		Traffic: RacingTraffic{
			Cars:        20,
			MinSpeed:    0.5,
			MaxSpeed:    0.8,
			LaneSpread:  0.4,
			PlayerWidth: 0.8,
			CarWidth:    0.8,
			Bump:        100,
			Overlap:     1,
		},
		Race:   RacingRace{Laps: 3},
		Timing: RacingTiming{Step: 1.0 / 60.0, MaxFrame: 0.1},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression:  ProgressionConfig{Type: ProgressLaps, MaxAt: 2},
			Scaling:      ScalingConfig{SpeedMultiplier: 0.25},
		},
	}
}
