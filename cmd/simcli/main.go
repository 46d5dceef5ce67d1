// Command simcli is the non-rendering command-line driver for the
// simulation core (spec.md §5): it owns the frame loop, reads queued
// player actions from stdin, and prints a terrain/visibility snapshot
// after every turn. It deliberately does no graphics — the teacher's
// game_main wires the same NewGame/Update/Draw shape around Ebiten, but
// everything below Draw (ECS setup, entity manager, game mode wiring) is
// the part this command ports, substituting a text frame for the
// Ebiten screen.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"frontiersim/ai"
	"frontiersim/combat"
	"frontiersim/common"
	"frontiersim/conditions"
	"frontiersim/config"
	"frontiersim/coords"
	"frontiersim/ecshelper"
	"frontiersim/equipment"
	"frontiersim/fovengine"
	"frontiersim/randgen"
	"frontiersim/savesystem"
	"frontiersim/sim"
	"frontiersim/spatialindex"
	"frontiersim/stableid"
	"frontiersim/worldgen"
	"frontiersim/zone"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "world.toml", "path to a world config TOML file")
		logLevel   = flag.String("log-level", "info", "zap log level (debug, info, warn, error)")
		logJSON    = flag.Bool("log-json", false, "emit structured JSON logs instead of console output")
	)
	flag.Parse()

	logger, err := newLogger(*logLevel, *logJSON)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg, err := config.LoadWorldConfig(*configPath)
	if err != nil {
		return fmt.Errorf("loading world config: %w", err)
	}
	sugar.Infow("world config loaded", "seed", cfg.Seed, "path", *configPath)

	game, err := newGameSession(cfg, sugar)
	if err != nil {
		return fmt.Errorf("initializing simulation: %w", err)
	}

	game.printView()
	game.repl()
	return nil
}

// newLogger builds a zap logger from a level name and format flag, ported
// from the pattern of constructing a zap.Config with an explicit level and
// switching encoder by output format.
func newLogger(levelName string, json bool) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if json {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}

// gameSession bundles everything a frame of the CLI loop touches: the ECS
// world, the zone manager, and the driveable Simulation.
type gameSession struct {
	em    *common.EntityManager
	zm    *zone.Manager
	proj  coords.WorldProjection
	sim   *sim.Simulation
	log   *zap.SugaredLogger
	vis   *fovengine.VisionCache
	store *savesystem.Store
	seed  uint32
}

const surfaceZ = config.MapDepthZones / 2

func newGameSession(cfg config.WorldConfig, log *zap.SugaredLogger) (*gameSession, error) {
	em := common.NewEntityManager()
	common.InitializeCommonComponents(em.World)
	ecshelper.InitializePhysicalComponents(em.World)
	equipment.InitializeEquipmentComponents(em.World)
	conditions.InitializeConditionComponents(em.World)
	combat.InitializeCombatComponents(em.World)
	ai.InitializeAIComponents(em.World)

	proj := coords.DefaultProjection()
	gen := worldgen.NewGenerator(proj, surfaceZ, 0.04)
	store := savesystem.NewStore(cfg.SaveDir, proj)
	zm := zone.NewManager(proj, gen, store, cfg.Seed, em, zone.DefaultSpawn, log)

	seed := cfg.Seed
	var playerID stableid.Id
	var tick uint32
	if store.HasGameSave() {
		var savedSeed uint32
		var err error
		playerID, tick, savedSeed, err = store.LoadGame(em)
		if err != nil {
			return nil, fmt.Errorf("loading save: %w", err)
		}
		seed = savedSeed
		log.Infow("loaded save", "seed", seed, "tick", tick, "player", playerID)
		placeLoadedPlayer(em, zm, proj, playerID)
	} else {
		startPos := coords.WorldPosition{X: proj.ZoneWidth / 2, Y: proj.ZoneHeight / 2, Z: surfaceZ}
		playerID = spawnPlayer(em, zm, proj, startPos, cfg)
	}

	rng := randgen.NewSource(seed)
	runner := ai.NewRunner(em, zm, rng)
	simulation := sim.NewSimulation(em, zm, rng, log, playerID, runner.Act)
	simulation.Clock.Tick = tick

	g := &gameSession{em: em, zm: zm, proj: proj, sim: simulation, log: log, vis: fovengine.NewVisionCache(), store: store, seed: seed}
	g.refreshZone()
	return g, nil
}

// placeLoadedPlayer loads (or generates) the zone a just-restored player
// entity sits in and inserts it into that zone's spatial index, mirroring
// spawnPlayer's load-bearing side effects for a freshly created player.
func placeLoadedPlayer(em *common.EntityManager, zm *zone.Manager, proj coords.WorldProjection, playerID stableid.Id) {
	e := common.FindByStableID(em, playerID)
	if e == nil {
		return
	}
	pos := common.GetPosition(e).WorldPosition
	zm.SetPlayerZone(proj.WorldToZoneIdx(pos.X, pos.Y, pos.Z))
	for i := 0; i < 40; i++ {
		zm.Tick()
	}
	if z, ok := zm.ZoneAt(pos); ok {
		z.Entities.InsertPos(proj.WorldToZoneLocal(pos.X, pos.Y), spatialindex.Id(playerID))
	}
}

func spawnPlayer(em *common.EntityManager, zm *zone.Manager, proj coords.WorldProjection, pos coords.WorldPosition, cfg config.WorldConfig) stableid.Id {
	zm.SetPlayerZone(proj.WorldToZoneIdx(pos.X, pos.Y, pos.Z))
	for i := 0; i < 40; i++ {
		zm.Tick()
	}

	e := em.World.NewEntity()
	e.AddComponent(common.PositionComponent, &common.Position{WorldPosition: pos})
	e.AddComponent(common.PlayerComponent, &common.Player{})
	e.AddComponent(common.VisionComponent, &common.Vision{Range: cfg.PlayerVision})
	stats := common.NewStats(cfg.PlayerStrength, cfg.PlayerDexterity, 10)
	e.AddComponent(common.StatsComponent, &stats)
	e.AddComponent(common.StatModifiersComponent, &common.StatModifiers{})
	e.AddComponent(ecshelper.EnergyComponent, &ecshelper.Energy{Value: 0})
	e.AddComponent(ecshelper.HealthComponent, &ecshelper.Health{Current: 30, Max: 30})
	e.AddComponent(conditions.ActiveConditionsComponent, &conditions.ActiveConditions{})
	id := em.AssignStableID(e)

	if z, ok := zm.ZoneAt(pos); ok {
		z.Entities.InsertPos(proj.WorldToZoneLocal(pos.X, pos.Y), spatialindex.Id(id))
	}
	return id
}

// saveGame writes the current player, its inventory, and the running tick
// and seed to the configured save slot, unloading the player's current
// zone first so its own save record is up to date too.
func (g *gameSession) saveGame() {
	if z, ok := g.zm.ZoneAt(g.playerPos()); ok {
		if err := g.store.SaveZone(g.em, z); err != nil {
			g.log.Warnw("saving zone failed", "zone", z.Idx, "error", err)
		}
	}
	if err := g.store.SaveGame(g.em, g.sim.PlayerID(), g.sim.Clock.Tick, g.seed, time.Now()); err != nil {
		g.log.Warnw("saving game failed", "error", err)
		fmt.Println("save failed:", err)
		return
	}
	fmt.Println("saved.")
}

func (g *gameSession) playerPos() coords.WorldPosition {
	e := common.FindByStableID(g.em, g.sim.PlayerID())
	if e == nil {
		return coords.WorldPosition{}
	}
	return common.GetPosition(e).WorldPosition
}

func (g *gameSession) playerVision() int {
	e := common.FindByStableID(g.em, g.sim.PlayerID())
	if e == nil {
		return config.DefaultPlayerVision
	}
	v := common.GetComponentType[*common.Vision](e, common.VisionComponent)
	if v == nil {
		return config.DefaultPlayerVision
	}
	return v.Range
}

// refreshZone recomputes FOV for the player's current zone through the
// VisionCache, which skips the shadowcast entirely when the player hasn't
// moved since the last call (spec.md §4.4).
func (g *gameSession) refreshZone() {
	pos := g.playerPos()
	z, ok := g.zm.ZoneAt(pos)
	if !ok {
		return
	}
	local := g.proj.WorldToZoneLocal(pos.X, pos.Y)
	g.vis.RecomputeChanged(g.em, map[coords.ZoneIndex]struct {
		Zone   *zone.Zone
		Origin coords.LogicalPosition
		Radius int
	}{
		z.Idx: {Zone: z, Origin: local, Radius: g.playerVision()},
	})
}

func glyph(t zone.Terrain) byte {
	switch t {
	case zone.Grass:
		return '.'
	case zone.Dirt:
		return ','
	case zone.River:
		return '~'
	case zone.Sand:
		return ':'
	case zone.Gravel:
		return '%'
	case zone.DyingGrass:
		return '"'
	case zone.Swamp:
		return '&'
	case zone.Shallows:
		return '='
	case zone.OpenAir:
		return ' '
	case zone.Rock:
		return '#'
	case zone.StairDown:
		return '>'
	default:
		return '?'
	}
}

// printView prints a window of the player's zone centered on their
// position, using '?' for unexplored tiles and '@' for the player — the
// minimal ASCII stand-in for the renderer interface spec.md §6.1 defines.
func (g *gameSession) printView() {
	pos := g.playerPos()
	z, ok := g.zm.ZoneAt(pos)
	if !ok {
		fmt.Println("(player is outside any loaded zone)")
		return
	}
	local := g.proj.WorldToZoneLocal(pos.X, pos.Y)
	const window = 10
	for y := local.Y - window; y <= local.Y+window; y++ {
		var sb strings.Builder
		for x := local.X - window; x <= local.X+window; x++ {
			switch {
			case x == local.X && y == local.Y:
				sb.WriteByte('@')
			case !z.Terrain.InBounds(x, y):
				sb.WriteByte(' ')
			case !z.Explored.Get(x, y):
				sb.WriteByte('?')
			default:
				sb.WriteByte(glyph(z.Terrain.Get(x, y)))
			}
		}
		fmt.Println(sb.String())
	}
	fmt.Printf("pos=%+v zone=%d\n", pos, z.Idx)
}

func (g *gameSession) repl() {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("commands: n/s/e/w move, wait, look, save, quit")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		cmd := strings.TrimSpace(scanner.Text())
		if !g.handle(cmd) {
			return
		}
	}
}

func (g *gameSession) handle(cmd string) bool {
	var hitCap bool
	switch cmd {
	case "quit", "q", "exit":
		return false
	case "look", "l":
		g.refreshZone()
		g.printView()
		return true
	case "save":
		g.saveGame()
		return true
	case "wait", "z":
		hitCap = g.sim.SubmitPlayerWait()
	case "n", "north":
		hitCap = g.movePlayer(coords.North)
	case "s", "south":
		hitCap = g.movePlayer(coords.South)
	case "e", "east":
		hitCap = g.movePlayer(coords.East)
	case "w", "west":
		hitCap = g.movePlayer(coords.West)
	default:
		fmt.Println("unrecognized command")
		return true
	}
	if hitCap {
		fmt.Println("(warning: scheduler iteration cap reached)")
	}
	g.refreshZone()
	g.printView()
	return true
}

func (g *gameSession) movePlayer(dir coords.Direction) (hitCap bool) {
	newPos := g.playerPos().Step(dir)
	moved, cap := g.sim.SubmitPlayerMove(newPos)
	if !moved {
		fmt.Println("blocked")
	}
	return cap
}
