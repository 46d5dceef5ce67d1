package config

// Simulation configuration constants and default values.

// Debug and profiling flags
const (
	// DEBUG_MODE is a debug flag; no package in this module reads it.
	DEBUG_MODE = true

	// ENABLE_BENCHMARKING is a profiling flag; no package in this module
	// reads it, and nothing starts a pprof server.
	ENABLE_BENCHMARKING = false
)

// Map and zone sizing. MAP_SIZE is the number of zones on each axis,
// ZONE_SIZE is tiles per zone.
const (
	MapWidthZones  = 40
	MapHeightZones = 20
	MapDepthZones  = 20

	ZoneWidthTiles  = 48
	ZoneHeightTiles = 24
)

// Scheduler energy costs. Every action has a base cost in energy credits;
// Move is further reduced by the actor's Speed stat (see sim.Move). No
// action in this module uses EnergyCostReload or the ReloadSpeed stat.
const (
	EnergyCostMove         = 100
	EnergyCostWait         = 100
	EnergyCostAttack       = 150
	EnergyCostShoot        = 150
	EnergyCostDropItem     = 50
	EnergyCostPickUpItem   = 75
	EnergyCostEquipItem    = 75
	EnergyCostUnequipItem  = 50
	EnergyCostTransferItem = 10
	EnergyCostToggleLight  = 25
	EnergyCostReload       = 50
	EnergyCostEat          = 50
	EnergyCostThrow        = 150

	// SchedulerIterationCap bounds how many no-acting/AI-turn steps the
	// scheduler will run in a single call before giving up and returning
	// control, as a runaway-simulation safeguard (not a semantic limit).
	SchedulerIterationCap = 100
)

// Condition base durations, in ticks.
const (
	ConditionDurationPoisoned = 1000
	ConditionDurationBleeding = 800
	ConditionDurationBurning  = 600
	ConditionDurationFeared   = 600
	ConditionDurationTaunted  = 400
	ConditionDurationConfused = 500
)

// AI default ranges, in tiles.
const (
	DefaultLeashRange     = 40
	DefaultWanderRange    = 3
	DefaultDetectionRange = 6

	// ScavengerSafeDistance is the minimum distance a Scavenger keeps from a
	// healthy (non-wounded) detected threat.
	ScavengerSafeDistance = 5
)

// Default player starting attributes, used when initializing a new-game
// player entity.
const (
	DefaultPlayerStrength  = 15
	DefaultPlayerDexterity = 20
	DefaultPlayerVision    = 8
)

// CurrentSaveVersion is the on-disk save format version. Loading a save
// tagged with an unknown version is refused (see savesystem).
const CurrentSaveVersion = 1
