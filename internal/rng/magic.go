package rng

// Magic constants, one per call site. Each identifies a distinct consumer
// of New so that two sites sharing a campaign seed and context still
// disagree. Values are arbitrary but fixed forever once assigned — changing
// one changes every save using it.
const (
	MagicGenerateRoomsAndCorridors uint64 = 0x9E3779B97F4A7C15
	MagicSpawnMonsters             uint64 = 0xC2B2AE3D27D4EB4F
	MagicSpawnItems                uint64 = 0x165667B19E3779F9
	MagicCombatRoll                uint64 = 0x27220A5FED9ADA7F
	MagicLootTable                 uint64 = 0xFF51AFD7ED558CCD
	MagicHungerTick                uint64 = 0x85EBCA6BC2B2AE35
	MagicMonsterAIDecision         uint64 = 0xC4CEB9FE1A85EC53
	MagicNewGamePlusShuffle        uint64 = 0xB492B66FBE98F273
)
